package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	mw "vostra.ai/vostracode-web/internal/middleware"
	"vostra.ai/vostracode-web/internal/observability"
)

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mw.Locale(a.bundle))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(a.cfg.Server.Public, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", a.homeHandler)
	r.Get("/tiers", a.pricingHandler)
	r.Get("/pricing", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tiers", http.StatusPermanentRedirect)
	})
	r.Get("/vostra-ai", a.suiteHandler)
	r.Get("/sitemap.xml", a.sitemapHandler)
	r.Get("/robots.txt", a.robotsHandler)

	r.NotFound(a.notFoundHandler)
	return r
}

// render executes the base layout. In dev mode, templates are reparsed on each request.
func (a *app) render(w http.ResponseWriter, r *http.Request, status int, data any) {
	t := a.tmpl
	if a.cfg.Server.Dev {
		tc, err := parseTemplates(a.cfg.Server.Templates, a.bundle)
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	}
	if t == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		observability.FromContext(r.Context()).Error("template exec", zap.Error(err))
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
