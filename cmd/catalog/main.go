package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/catalog"
	"Storefront/internal/config"
	"Storefront/pkg/kit"
)

func main() {
	const service = "catalog"

	cfg, err := config.LoadCatalog(config.Source{})
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := kit.SignalContext()
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer closeStore()

	s := &catalog.Server{Store: store, Log: log}
	if cfg.JWTSecret != "" {
		s.JWT = auth.NewTokenMaker(cfg.JWTSecret)
	} else {
		log.Warn("no jwt secret configured, catalog mutations are unauthenticated")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(ctx, cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Catalog, log *zap.Logger) (catalog.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		var seed []catalog.Product
		if cfg.Seed {
			seed = catalog.Seed()
		}
		log.Info("serving catalog from memory", zap.Int("products", len(seed)))
		return catalog.NewMemStore(seed...), func() {}, nil
	}

	db, err := catalog.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = db.Close() }

	store := catalog.NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	if cfg.Seed {
		seeded, err := store.SeedIfEmpty(ctx, catalog.Seed())
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		log.Info("postgres catalog ready", zap.Bool("seeded", seeded))
	}
	return store, closeDB, nil
}
