package main

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"vostra.ai/vostracode-web/internal/cms"
	"vostra.ai/vostracode-web/internal/cms/snapshot"
	"vostra.ai/vostracode-web/internal/config"
	"vostra.ai/vostracode-web/internal/i18n"
	"vostra.ai/vostracode-web/internal/matrix"
	"vostra.ai/vostracode-web/internal/observability"
	"vostra.ai/vostracode-web/internal/seo"
)

const (
	localesDir  = "locales"
	defaultLang = "en"
)

// app holds the process-wide dependencies shared by the handlers.
type app struct {
	cfg        config.Config
	logger     *zap.Logger
	content    *cms.Client
	snapshots  *snapshot.Store
	bundle     *i18n.Bundle
	localesDir string
	site       seo.Site
	tmpl       *template.Template
	// started is the sitemap lastmod.
	started time.Time
}

// appOption customises newApp; tests use it to swap the content client.
type appOption func(*app)

func withContent(c *cms.Client) appOption {
	return func(a *app) { a.content = c }
}

func withLocalesDir(dir string) appOption {
	return func(a *app) { a.localesDir = dir }
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...appOption) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{
		cfg:        cfg,
		logger:     logger,
		site:       seo.Site{BaseURL: cfg.Site.BaseURL, Name: cfg.Site.Name},
		started:    time.Now().UTC(),
		localesDir: localesDir,
	}
	for _, opt := range opts {
		opt(a)
	}

	b, err := i18n.Load(a.localesDir, defaultLang, []string{defaultLang})
	if err != nil {
		return nil, err
	}
	a.bundle = b

	if a.content == nil {
		c, err := a.newContentClient(ctx)
		if err != nil {
			return nil, err
		}
		a.content = c
	}

	return a, nil
}

// loadTemplates parses the templates once. Dev mode reparses them per request instead.
func (a *app) loadTemplates() error {
	if a.cfg.Server.Dev {
		return nil
	}
	tc, err := parseTemplates(a.cfg.Server.Templates, a.bundle)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	a.tmpl = tc
	return nil
}

func (a *app) newContentClient(ctx context.Context) (*cms.Client, error) {
	c := a.cfg.CMS
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = cms.ProjectURL(c.ProjectID, true)
	}
	opts := []cms.Option{
		cms.WithDataset(c.Dataset),
		cms.WithAPIVersion(c.APIVersion),
		cms.WithToken(c.Token),
		cms.WithTimeout(c.Timeout),
		cms.WithCacheTTL(c.CacheTTL),
		cms.WithContentDir(c.ContentDir),
		cms.WithFetchCounter(observability.NewFetchCounter(otel.GetMeterProvider().Meter("vostracode-web"))),
		cms.WithLogger(a.logger.Named("cms")),
	}
	if c.SnapshotPath != "" {
		store, err := snapshot.Open(ctx, c.SnapshotPath)
		if err != nil {
			return nil, err
		}
		a.snapshots = store
		opts = append(opts, cms.WithSnapshots(store))
	}
	return cms.NewClient(baseURL, opts...), nil
}

// Close releases the snapshot database.
func (a *app) Close() {
	if a.snapshots != nil {
		if err := a.snapshots.Close(); err != nil {
			a.logger.Warn("close snapshot store", zap.Error(err))
		}
	}
}

// t returns the catalog text for key in lang.
func (a *app) t(lang string) func(string) string {
	return func(key string) string { return a.bundle.T(lang, key) }
}

// reporter logs and counts feature rows that do not line up with the tiers.
func (a *app) reporter(ctx context.Context) matrix.Reporter {
	return observability.NewMatrixReporter(ctx)
}

func templateFuncs(bundle *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"t":   bundle.T,
		"now": time.Now,
		"jsonLD": func(s string) template.JS {
			return template.JS(s)
		},
		"inc": func(i int) int { return i + 1 },
	}
}

func parseTemplates(dir string, bundle *i18n.Bundle) (*template.Template, error) {
	// ParseGlob has no ** so walk the tree.
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}
	return template.New("_root").Funcs(templateFuncs(bundle)).ParseFiles(files...)
}
