package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vostra.ai/vostracode-web/internal/cms"
	"vostra.ai/vostracode-web/internal/matrix"
	"vostra.ai/vostracode-web/internal/observability"
	"vostra.ai/vostracode-web/internal/seo"
)

func newMatrixCmd(cfgFile *string) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the pricing feature matrix and its data-quality warnings",
		Long: `matrix fetches the tier cards and feature sections the pricing page uses and prints
the comparison table. Rows whose value count differs from the tier count are listed as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}
			ctx := observability.WithLogger(cmd.Context(), logger)
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := printMatrix(ctx, cmd.OutOrStdout(), a.content)
			if err != nil {
				return err
			}
			if strict && n > 0 {
				return fmt.Errorf("%d feature rows do not match the tier count", n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any row mismatches the tier count")
	return cmd
}

// contentSource is the subset of the CMS client the matrix report reads.
type contentSource interface {
	StartPage(ctx context.Context) (cms.StartPage, error)
	FeatureSections(ctx context.Context) ([]cms.FeatureSection, error)
}

// printMatrix writes the comparison table and returns the number of mismatched rows.
func printMatrix(ctx context.Context, w io.Writer, src contentSource) (int, error) {
	start, err := src.StartPage(ctx)
	if err != nil {
		return 0, fmt.Errorf("load start page: %w", err)
	}
	sections, err := src.FeatureSections(ctx)
	if err != nil {
		return 0, fmt.Errorf("load feature sections: %w", err)
	}

	var mismatches []matrix.Mismatch
	m := matrix.Build(start.Tiers(), cms.Groups(sections),
		matrix.WithReporter(matrix.ReporterFunc(func(mm matrix.Mismatch) { mismatches = append(mismatches, mm) })))
	if m.Empty() {
		fmt.Fprintln(w, "no feature sections")
		return 0, nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "FEATURE\t%s\n", strings.Join(m.TierNames(), "\t"))
	for _, g := range m.Groups {
		fmt.Fprintf(tw, "[%s]\n", g.Title)
		for _, row := range g.Rows {
			cells := make([]string, len(row.Cells))
			for i, c := range row.Cells {
				cells[i] = cellText(c)
			}
			fmt.Fprintf(tw, "  %s\t%s\n", row.Title, strings.Join(cells, "\t"))
		}
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}

	for _, mm := range mismatches {
		what := "missing values left blank"
		if mm.Extra() {
			what = "extra values dropped"
		}
		fmt.Fprintf(w, "warning: %s / %s: %d values for %d tiers (%s)\n", mm.Group, mm.Row, mm.Fields, mm.Tiers, what)
	}
	return len(mismatches), nil
}

func cellText(c matrix.Cell) string {
	switch c.Kind {
	case matrix.CellTrue:
		return "✓"
	case matrix.CellFalse:
		return "-"
	case matrix.CellText:
		return c.Text
	default:
		return ""
	}
}

func newSitemapCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Print sitemap.xml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}
			site := seo.Site{BaseURL: cfg.Site.BaseURL, Name: cfg.Site.Name}
			body, err := site.Sitemap(time.Now())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(body, '\n'))
			return err
		},
	}
}

func newContentCmd(cfgFile *string) *cobra.Command {
	content := &cobra.Command{
		Use:   "content",
		Short: "Local content tools",
	}
	var dir string
	lint := &cobra.Command{
		Use:   "lint",
		Short: "Validate the local content files against their schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, logger, err := loadConfig(*cfgFile)
				if err != nil {
					return err
				}
				dir = cfg.CMS.ContentDir
				logger.Debug("linting content", zap.String("dir", dir))
			}
			issues := cms.Lint(dir)
			for _, issue := range issues {
				fmt.Fprintln(cmd.ErrOrStderr(), issue.String())
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d content issue(s) in %s", len(issues), dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", dir)
			return nil
		},
	}
	lint.Flags().StringVar(&dir, "dir", "", "content directory (default cms.content_dir)")
	content.AddCommand(lint)
	return content
}
