package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"PivotBoard/internal/api"
	"PivotBoard/internal/scheduler"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	log.Info().Msg("PivotBoard starting...")

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	sched := scheduler.NewScheduler(ctx, a.collector, cfg.Schedule.Watchlist, cfg.DataSource.DefaultPeriod)
	if cfg.Schedule.RefreshCron != "" {
		if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
			return fmt.Errorf("register refresh cron: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Schedule.RefreshOnStart {
		log.Info().Int("symbols", len(cfg.Schedule.Watchlist)).Msg("refresh_on_start enabled, refreshing watchlist now")
		go sched.RunNow()
	}

	handler := api.NewHandler(a.collector, cfg.DataSource.DefaultPeriod)
	srv := api.NewServer(handler, a.metrics, a.registry, api.ServerConfig{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	srv.Start()

	log.Info().Str("addr", cfg.Server.Addr).Msg("PivotBoard is running. Press Ctrl+C to stop.")
	<-ctx.Done()

	log.Info().Msg("shutdown signal received, stopping...")
	if err := srv.Stop(context.Background()); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	log.Info().Msg("PivotBoard stopped")
	return nil
}
