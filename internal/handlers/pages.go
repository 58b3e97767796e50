// Package handlers builds the view models rendered by the page templates.
package handlers

import (
	"vostra.ai/vostracode-web/internal/nav"
	"vostra.ai/vostracode-web/internal/seo"
)

// PageData is the view model shared by every page using the base layout.
type PageData struct {
	Lang      string
	Path      string
	Template  string // content block name, e.g. "page_home"
	SEO       seo.Meta
	Analytics Analytics

	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	Home    *HomeView
	Pricing *PricingView
	Suite   *SuiteView
}

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string
}

// Enabled reports whether the gtag snippet should be injected.
func (a Analytics) Enabled() bool { return a.GA4MeasurementID != "" }

// NewPageData fills the layout fields for path.
func NewPageData(lang, path, tmpl string, meta seo.Meta, analytics Analytics) PageData {
	return PageData{
		Lang:        lang,
		Path:        path,
		Template:    tmpl,
		SEO:         meta,
		Analytics:   analytics,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
	}
}

// BreadcrumbJSONLD converts crumbs into schema.org items using labels from t.
func BreadcrumbJSONLD(site seo.Site, crumbs []nav.Crumb, t func(string) string) map[string]any {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = t(c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: site.Absolute(c.Href)})
	}
	return seo.BreadcrumbList(items)
}
