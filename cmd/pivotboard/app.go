package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"PivotBoard/internal/cache"
	"PivotBoard/internal/calculator"
	"PivotBoard/internal/collector"
	"PivotBoard/internal/config"
	"PivotBoard/internal/logger"
	"PivotBoard/internal/metrics"
	"PivotBoard/internal/recorder"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg       *config.Config
	collector *collector.Collector
	registry  *prometheus.Registry
	metrics   *metrics.Recorder

	closers []func() error
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(a.registry)

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")

	col := collector.NewCollector(fetcher)
	col.Metrics = a.metrics
	col.CacheTTL = cfg.Cache.TTL
	col.Params = calculator.Params{
		MAPeriod:             cfg.Indicators.MAPeriod,
		RSIPeriod:            cfg.Indicators.RSIPeriod,
		SupertrendPeriod:     cfg.Indicators.SupertrendPeriod,
		SupertrendMultiplier: cfg.Indicators.SupertrendMultiplier,
	}

	col.Recorder = newRecorder(ctx, cfg)
	a.closers = append(a.closers, col.Recorder.Close)

	svc, err := newCache(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	col.Cache = svc
	a.closers = append(a.closers, svc.Close)

	a.collector = col
	return a, nil
}

// Close releases components in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("close component")
		}
	}
	a.closers = nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(ds.Proxy, ds.Timeout), nil
	case "rest":
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, ds.Proxy, ds.Timeout), nil
	case "mock":
		return &collector.MockFetcher{}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", ds.Provider)
	}
}

// newRecorder falls back to the noop store when SQLite cannot be opened.
func newRecorder(ctx context.Context, cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	if err := sr.InitStorage(ctx); err != nil {
		log.Warn().Err(err).Msg("init sqlite schema failed, using noop")
		sr.Close()
		return recorder.NewNoopRecorder()
	}
	return sr
}

func newCache(ctx context.Context, cfg *config.Config) (cache.Service, error) {
	c := cfg.Cache
	switch c.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(ctx,
			cache.WithRedisAddr(c.Redis.Addr),
			cache.WithRedisPassword(c.Redis.Password),
			cache.WithRedisDB(c.Redis.DB),
			cache.WithRedisPrefix(c.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("init redis cache: %w", err)
		}
		return rc, nil
	case "none":
		return cache.NewNoopCache(), nil
	default:
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(c.MaxSize),
			cache.WithMemoryDefaultTTL(c.TTL),
		), nil
	}
}
