package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/config"
	"Storefront/internal/localstore"
	"Storefront/internal/products"
	"Storefront/internal/storefront"
	"Storefront/internal/toast"
	"Storefront/pkg/kit"
)

func main() {
	const service = "storefront"

	cfg, err := config.LoadStorefront(config.Source{})
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := kit.SignalContext()
	defer stop()

	cache, closeCache, err := localstore.Open(ctx, cfg.LocalStore())
	if err != nil {
		log.Fatal("open local cache", zap.Error(err), zap.String("driver", cfg.CacheDriver))
	}
	defer func() { _ = closeCache() }()

	client := products.NewClient(cfg.CatalogURL, cfg.CatalogToken)
	client.Client.Timeout = cfg.CatalogTimeout

	store := products.NewStore(client, cache,
		products.WithLogger(log.Named("products")),
		products.WithFetchDelay(cfg.FetchDelay),
		products.WithCacheKey(cfg.CacheKey),
	)

	queue := toast.NewQueue(
		toast.WithDefaultDuration(cfg.ToastDuration),
		toast.WithLogger(log.Named("toast")),
	)

	s := storefront.NewServer(store, queue, log, cfg.SearchDebounce)
	s.Limiter = kit.NewIPRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	s.SummaryLength = cfg.SummaryLength
	defer s.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	log.Info("storefront configured",
		zap.String("catalog_url", cfg.CatalogURL),
		zap.String("cache_driver", cfg.CacheDriver),
	)

	if err := kit.RunHTTPServer(ctx, cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
