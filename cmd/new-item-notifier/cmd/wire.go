package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/donaldgifford/new-item-notifier/internal/config"
	"github.com/donaldgifford/new-item-notifier/internal/diff"
	"github.com/donaldgifford/new-item-notifier/internal/engine"
	"github.com/donaldgifford/new-item-notifier/internal/notify"
	"github.com/donaldgifford/new-item-notifier/internal/scrape"
	"github.com/donaldgifford/new-item-notifier/internal/store"
)

// openStore opens the configured storage backend. SQLite migrates on open;
// Postgres migrates only through the migrate command unless migrate is set.
func openStore(ctx context.Context, cfg config.StorageConfig, migrate bool) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pg, err := store.NewPostgresStore(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := pg.Migrate(ctx); err != nil {
				_ = pg.Close()
				return nil, fmt.Errorf("running migrations: %w", err)
			}
		}
		return pg, nil
	case config.BackendSQLite:
		sq, err := store.NewSQLiteStore(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return sq, nil
	case config.BackendBadger:
		bs, err := store.NewBadgerStore(cfg.Badger.Dir)
		if err != nil {
			return nil, err
		}
		return bs, nil
	case config.BackendMemory:
		bs, err := store.NewInMemoryBadgerStore()
		if err != nil {
			return nil, err
		}
		return bs, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// newNotifier builds the configured notification target. Posting is
// disabled unless allow_post is set, in which case exactly one target must
// be enabled.
func newNotifier(cfg config.NotificationsConfig, log *slog.Logger) (notify.Notifier, error) {
	if !cfg.AllowPost {
		log.Info("posting disabled, notifications will only be logged")
		return notify.NewNoOpNotifier(log), nil
	}

	var n notify.Notifier
	switch {
	case cfg.Twitter.Enabled:
		n = notify.NewTwitterNotifier(cfg.Twitter.AccessToken,
			notify.WithTwitterAPIURL(cfg.Twitter.APIURL),
			notify.WithTwitterTimeout(cfg.Twitter.Timeout),
		)
	case cfg.Discord.Enabled:
		n = notify.NewDiscordNotifier(cfg.Discord.WebhookURL)
	default:
		return nil, fmt.Errorf("notifications.allow_post is set but no notification target is enabled")
	}

	rl := notify.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, cfg.RateLimit.DailyLimit)
	return notify.Limited(n, rl), nil
}

func newScraper(cfg config.MarketplaceConfig, log *slog.Logger) *scrape.BoothScraper {
	return scrape.NewBoothScraper(cfg.Category,
		scrape.WithBaseURL(cfg.BaseURL),
		scrape.WithParams(cfg.Params),
		scrape.WithUserAgent(cfg.UserAgent),
		scrape.WithTimeout(cfg.Timeout),
		scrape.WithLogger(log),
	)
}

// newEngine wires a pipeline from configuration.
func newEngine(cfg *config.Config, s store.Store, n notify.Notifier, log *slog.Logger) (*engine.Engine, error) {
	strategy, err := diff.New(cfg.Diff.Strategy, s, diff.WithWindow(cfg.Diff.WindowSize()))
	if err != nil {
		return nil, err
	}

	opts := []engine.EngineOption{
		engine.WithLogger(log),
		engine.WithHashtags(cfg.Run.Hashtags...),
		engine.WithItemBaseURL(cfg.Marketplace.BaseURL),
		engine.WithSnapshotOrdering(cfg.Run.SnapshotOrdering),
		engine.WithConcurrency(cfg.Notifications.Concurrency),
		engine.WithTracer(otel.Tracer("github.com/donaldgifford/new-item-notifier/internal/engine")),
	}
	if p := engine.BlockShops(cfg.Marketplace.BlockedShops...); p != nil {
		opts = append(opts, engine.WithExclude(p))
	}

	return engine.NewEngine(newScraper(cfg.Marketplace, log), strategy, s, n, opts...), nil
}
