package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/zenakhane/api-creation-workshop/internal/api"
	"github.com/zenakhane/api-creation-workshop/internal/auth"
	"github.com/zenakhane/api-creation-workshop/internal/catalog"
	"github.com/zenakhane/api-creation-workshop/internal/config"
	"github.com/zenakhane/api-creation-workshop/pkg/kit"
)

const service = "garments"

func main() {
	cfg, cfgErr := config.Load()

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		log, _ = kit.NewLogger(service, "")
		log.Warn("falling back to info level", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if cfgErr != nil {
		log.Fatal("load config failed", zap.Error(cfgErr))
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET not set, using development secret")
	}
	if cfg.MetricsEnabled && cfg.MetricsToken == "" {
		log.Warn("metrics enabled without METRICS_TOKEN, /metrics will refuse every scrape")
	}

	ctx := context.Background()

	src, closeSrc, err := seedSource(ctx, cfg)
	if err != nil {
		log.Fatal("open dataset source failed", zap.Error(err))
	}
	defer closeSrc()

	store := catalog.NewMemStore()
	n, err := catalog.LoadSeed(ctx, src, store)
	if err != nil {
		log.Fatal("load dataset failed", zap.Error(err))
	}
	log.Info("catalog seeded", zap.Int("garments", n))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := api.NewHandler(
		api.Deps{
			Catalog: catalog.NewService(store, log, catalog.NewMetrics(reg)),
			Auth: &auth.Server{
				Log:        log,
				JWT:        auth.NewTokenMaker(cfg.JWTSecret),
				TTL:        cfg.TokenTTL,
				LoginLimit: cfg.LoginLimitPerMin,
			},
			PublicDir: cfg.PublicDir,
		},
		api.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
		},
	)

	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func seedSource(ctx context.Context, cfg config.Config) (catalog.Source, func(), error) {
	if cfg.DatasetDSN == "" {
		return catalog.FileSource{Path: cfg.DatasetPath}, func() {}, nil
	}

	pool, err := catalog.OpenPostgres(ctx, cfg.DatasetDSN)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewPostgresSource(pool), pool.Close, nil
}
