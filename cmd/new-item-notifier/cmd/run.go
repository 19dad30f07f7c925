package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/new-item-notifier/internal/config"
	"github.com/donaldgifford/new-item-notifier/internal/telemetry"
)

func runCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline once and exit",
		Long: "Scrapes the listing, diffs it against stored state, posts one\n" +
			"notification per new item and writes the run log. The result is\n" +
			"printed as JSON on stdout.",
		Example: `  new-item-notifier run --config config.yaml
  new-item-notifier run --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context(), dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"log notifications instead of posting and keep state in memory")

	return cmd
}

func runOnce(parent context.Context, dryRun bool) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Init(ctx, log, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	if dryRun {
		cfg.Storage.Backend = config.BackendMemory
		cfg.Notifications.AllowPost = false
		log.Info("dry run, state is discarded on exit")
	}

	s, err := openStore(ctx, cfg.Storage, false)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	n, err := newNotifier(cfg.Notifications, log)
	if err != nil {
		return err
	}

	eng, err := newEngine(cfg, s, n, log)
	if err != nil {
		return err
	}

	res, err := eng.Run(ctx)
	if res != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			log.Warn("writing run result", "error", encErr)
		}
	}
	if err != nil {
		log.Error("run failed", "error", err)
		return err
	}
	return nil
}
