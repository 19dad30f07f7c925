package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/new-item-notifier/internal/config"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: "Applies pending schema migrations for the postgres and sqlite\n" +
			"backends. Badger and memory backends have no schema.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMigrate()
		},
	}
}

func runMigrate() error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	switch cfg.Storage.Backend {
	case config.BackendBadger, config.BackendMemory:
		log.Info("backend has no schema, nothing to migrate", "backend", cfg.Storage.Backend)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	log.Info("running migrations", "backend", cfg.Storage.Backend)

	s, err := openStore(ctx, cfg.Storage, true)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	defer s.Close()

	log.Info("migrations complete")
	return nil
}
