// Command web serves the VostraCode marketing site and ships the content tooling used by editors.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vostra.ai/vostracode-web/internal/config"
	"vostra.ai/vostracode-web/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "web",
		Short: "VostraCode marketing site",
		Long: `web serves the VostraCode marketing site (home, pricing, product suite).

Content comes from the headless CMS when cms.base_url is set, with a SQLite snapshot
and the YAML files under cms.content_dir as fallbacks. Without a subcommand, web serves.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, cfgFile)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (env VOSTRA_WEB_* overrides it)")

	root.AddCommand(
		newServeCmd(&cfgFile),
		newMatrixCmd(&cfgFile),
		newSitemapCmd(&cfgFile),
		newContentCmd(&cfgFile),
	)
	return root
}

func newServeCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *cfgFile)
		},
	}
}

// loadConfig resolves configuration and builds the process logger.
func loadConfig(cfgFile string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.WithFile(cfgFile))
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}
