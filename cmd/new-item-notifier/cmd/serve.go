package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/new-item-notifier/internal/api/handlers"
	"github.com/donaldgifford/new-item-notifier/internal/api/middleware"
	"github.com/donaldgifford/new-item-notifier/internal/engine"
	"github.com/donaldgifford/new-item-notifier/internal/telemetry"
)

func serveCmd() *cobra.Command {
	var noSchedule bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and scheduler",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(noSchedule)
		},
	}

	cmd.Flags().BoolVar(&noSchedule, "no-schedule", false,
		"serve the API without scheduled runs")

	return cmd
}

func runServe(noSchedule bool) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, log, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	s, err := openStore(ctx, cfg.Storage, true)
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

	sched, err := engine.NewScheduler(eng, cfg.Schedule.Interval, log)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Use(middleware.RequestLog(log), middleware.Recovery(log), middleware.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(s))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("new-item-notifier", Version))
	handlers.RegisterRunRoutes(api, handlers.NewRunHandler(sched, s))
	handlers.RegisterStateRoutes(api, handlers.NewStateHandler(s))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "strategy", cfg.Diff.Strategy, "backend", cfg.Storage.Backend)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if !noSchedule {
		sched.Start()
		log.Info("scheduled runs enabled", "interval", cfg.Schedule.Interval, "next_run", sched.NextRun())
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	if !noSchedule {
		select {
		case <-sched.Stop().Done():
		case <-shutdownCtx.Done():
			log.Warn("scheduled run still in progress at shutdown")
		}
	}

	log.Info("server stopped")
	return nil
}
