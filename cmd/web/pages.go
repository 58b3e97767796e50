package main

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vostra.ai/vostracode-web/internal/cms"
	"vostra.ai/vostracode-web/internal/handlers"
	mw "vostra.ai/vostracode-web/internal/middleware"
	"vostra.ai/vostracode-web/internal/observability"
	"vostra.ai/vostracode-web/internal/seo"
)

var (
	homeKeywords = []string{
		"AI coding assistant", "on-premise AI", "secure coding", "privacy-first AI",
		"enterprise AI", "VostraCode", "Vostra AI",
	}
	suiteKeywords = []string{
		"privacy-first AI", "on-premise AI", "data sovereignty", "enterprise AI",
		"VostraCode", "VostraSentinel", "VostraCarta", "AI security", "private AI", "enterprise AI tools",
	}
	pricingKeywords = []string{
		"VostraCode pricing", "AI coding assistant plans", "on-premise AI", "enterprise AI",
	}
)

// contentErr logs a failed content fetch. Missing documents are expected on fresh datasets.
func contentErr(ctx context.Context, what string, err error) {
	if err == nil {
		return
	}
	logger := observability.FromContext(ctx)
	if errors.Is(err, cms.ErrNotFound) {
		logger.Debug("content not found", zap.String("content", what))
		return
	}
	logger.Warn("content unavailable, section hidden", zap.String("content", what), zap.Error(err))
}

func (a *app) pageData(r *http.Request, tmpl string, page seo.Page) handlers.PageData {
	lang := mw.Lang(r.Context(), a.bundle.Fallback())
	page.Path = r.URL.Path
	return handlers.NewPageData(lang, r.URL.Path, tmpl, a.site.Build(page), handlers.Analytics{GA4MeasurementID: a.cfg.Analytics.GAMeasurementID})
}

func (a *app) homeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(ctx, a.bundle.Fallback())
	t := a.t(lang)

	var (
		start *cms.StartPage
		posts []cms.Post
	)
	var g errgroup.Group
	g.Go(func() error {
		p, err := a.content.StartPage(ctx)
		if err != nil {
			contentErr(ctx, "startPage", err)
			return nil
		}
		start = &p
		return nil
	})
	g.Go(func() error {
		ps, err := a.content.Posts(ctx, cms.DefaultPostLimit)
		if err != nil {
			contentErr(ctx, "posts", err)
			return nil
		}
		posts = ps
		return nil
	})
	_ = g.Wait()

	view := handlers.BuildHome(handlers.HomeInput{StartPage: start, Posts: posts, Lang: lang, T: t})
	pd := a.pageData(r, "page_home", seo.Page{
		Title:       t("home.title"),
		Description: t("home.description"),
		Keywords:    homeKeywords,
	})
	product := handlers.Offers[0]
	product.URL = a.site.Absolute(product.URL)
	software := seo.SoftwareApplication(product)
	software["@context"] = "https://schema.org"
	pd.SEO = pd.SEO.WithJSONLD(seo.WebSite(a.site.Name, a.site.Absolute("/")), software)
	pd.Home = &view
	a.render(w, r, http.StatusOK, pd)
}

func (a *app) pricingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(ctx, a.bundle.Fallback())
	t := a.t(lang)

	in := handlers.PricingInput{T: t, Reporter: a.reporter(ctx)}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := a.content.StartPage(gctx)
		if err != nil {
			contentErr(ctx, "startPage", err)
			return nil
		}
		in.StartPage = &p
		return nil
	})
	g.Go(func() error {
		sections, err := a.content.FeatureSections(gctx)
		if err != nil {
			contentErr(ctx, "featureSections", err)
			return nil
		}
		in.Sections = sections
		return nil
	})
	_ = g.Wait()

	view := handlers.BuildPricing(in)
	pd := a.pageData(r, "page_pricing", seo.Page{
		Title:       t("pricing.title"),
		Description: t("pricing.description"),
		Keywords:    pricingKeywords,
	})
	tierNames := make([]string, len(view.Tiers))
	for i, tier := range view.Tiers {
		tierNames[i] = tier.Name
	}
	pd.SEO = pd.SEO.WithJSONLD(
		seo.Product("VostraCode", t("pricing.description"), a.site.Absolute("/tiers"), tierNames),
		handlers.BreadcrumbJSONLD(a.site, pd.Breadcrumbs, t),
	)
	pd.Pricing = &view
	a.render(w, r, http.StatusOK, pd)
}

func (a *app) suiteHandler(w http.ResponseWriter, r *http.Request) {
	t := a.t(mw.Lang(r.Context(), a.bundle.Fallback()))
	view := handlers.BuildSuite(t)
	pd := a.pageData(r, "page_suite", seo.Page{
		Title:       t("suite.title"),
		Description: t("suite.description"),
		Keywords:    suiteKeywords,
	})
	pd.SEO = pd.SEO.WithJSONLD(
		handlers.OrganizationJSONLD(a.site),
		handlers.BreadcrumbJSONLD(a.site, pd.Breadcrumbs, t),
	)
	pd.Suite = &view
	a.render(w, r, http.StatusOK, pd)
}

func (a *app) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	t := a.t(mw.Lang(r.Context(), a.bundle.Fallback()))
	pd := a.pageData(r, "page_not_found", seo.Page{Title: t("error.not_found"), NoIndex: true})
	a.render(w, r, http.StatusNotFound, pd)
}

func (a *app) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	body, err := a.site.Sitemap(a.started)
	if err != nil {
		observability.FromContext(r.Context()).Error("sitemap", zap.Error(err))
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

func (a *app) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nAllow: /\n\nSitemap: " + a.site.Absolute("/sitemap.xml") + "\n"))
}
