// Package cmd implements the CLI commands for new-item-notifier.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/new-item-notifier/internal/config"
	"github.com/donaldgifford/new-item-notifier/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "new-item-notifier",
	Short: "Announce new marketplace listings",
	Long: "Scrapes a newest-first marketplace listing, detects items not seen on\n" +
		"previous runs, and posts one notification per new item, oldest first.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCommand())
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}
