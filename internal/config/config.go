// Package config loads service configuration from defaults, an optional
// .env file, YAML files, environment variables and flags, in that order of
// increasing precedence.
package config

import (
	"io/fs"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"

	"Storefront/internal/localstore"
)

// Storefront configures cmd/storefront. Environment variables use the
// STOREFRONT_ prefix, e.g. STOREFRONT_CATALOG_URL.
type Storefront struct {
	Addr     string `default:":8080" env:"ADDR" flag:"addr" usage:"HTTP listen address"`
	LogLevel string `default:"info" env:"LOG_LEVEL" flag:"log-level" usage:"zap log level"`

	CatalogURL     string        `default:"http://localhost:8082" env:"CATALOG_URL" flag:"catalog-url" usage:"Base URL of the remote catalog API"`
	CatalogToken   string        `env:"CATALOG_TOKEN" flag:"catalog-token" usage:"Bearer token sent with catalog mutations"`
	CatalogTimeout time.Duration `default:"5s" env:"CATALOG_TIMEOUT" flag:"catalog-timeout" usage:"Timeout for one catalog request"`

	FetchDelay     time.Duration `default:"2s" env:"FETCH_DELAY" flag:"fetch-delay" usage:"Pause after a remote product fetch before loading clears"`
	CacheKey       string        `default:"products" env:"CACHE_KEY" flag:"cache-key" usage:"Local cache key for the product list"`
	CacheDriver    string        `default:"memory" env:"CACHE_DRIVER" flag:"cache-driver" usage:"Local cache backend: memory, file or redis"`
	CacheDir       string        `default:".storefront-cache" env:"CACHE_DIR" flag:"cache-dir" usage:"Directory for the file cache backend"`
	RedisAddr      string        `default:"localhost:6379" env:"REDIS_ADDR" flag:"redis-addr" usage:"Redis address for the redis cache backend"`
	RedisDB        int           `default:"0" env:"REDIS_DB" flag:"redis-db" usage:"Redis database number"`
	RedisKeyPrefix string        `default:"storefront:" env:"REDIS_KEY_PREFIX" flag:"redis-key-prefix" usage:"Prefix for redis cache keys"`

	ToastDuration  time.Duration `default:"5s" env:"TOAST_DURATION" flag:"toast-duration" usage:"Default toast display time"`
	SearchDebounce time.Duration `default:"300ms" env:"SEARCH_DEBOUNCE" flag:"search-debounce" usage:"Quiet period before a search query is logged"`
	SummaryLength  int           `default:"100" env:"SUMMARY_LENGTH" flag:"summary-length" usage:"Description excerpt length in listings"`

	RateLimitMax    int           `default:"60" env:"RATE_LIMIT_MAX" flag:"rate-limit-max" usage:"Mutations per client IP per window, 0 disables"`
	RateLimitWindow time.Duration `default:"1m" env:"RATE_LIMIT_WINDOW" flag:"rate-limit-window" usage:"Rate limit window"`

	MetricsEnabled bool   `default:"true" env:"METRICS_ENABLED" flag:"metrics-enabled" usage:"Expose /metrics"`
	MetricsToken   string `env:"METRICS_TOKEN" flag:"metrics-token" usage:"Bearer token required by /metrics"`
}

func (c *Storefront) LocalStore() localstore.Config {
	return localstore.Config{
		Driver:    c.CacheDriver,
		Dir:       c.CacheDir,
		RedisAddr: c.RedisAddr,
		RedisDB:   c.RedisDB,
		Prefix:    c.RedisKeyPrefix,
	}
}

func (c *Storefront) validate() error {
	switch c.CacheDriver {
	case localstore.DriverMemory, localstore.DriverFile, localstore.DriverRedis:
	default:
		return errors.Wrapf(localstore.ErrUnknownDriver, "cache driver %q", c.CacheDriver)
	}
	if c.CatalogURL == "" {
		return errors.New("catalog URL is required")
	}
	return nil
}

// Catalog configures cmd/catalog and cmd/catalogtoken. Environment
// variables use the CATALOG_ prefix.
type Catalog struct {
	Addr     string `default:":8082" env:"ADDR" flag:"addr" usage:"HTTP listen address"`
	LogLevel string `default:"info" env:"LOG_LEVEL" flag:"log-level" usage:"zap log level"`

	DatabaseURL string `env:"DATABASE_URL" flag:"database-url" usage:"PostgreSQL URL; empty serves from memory"`
	Seed        bool   `default:"true" env:"SEED" flag:"seed" usage:"Load the sample catalog into an empty store"`
	JWTSecret   string `env:"JWT_SECRET" flag:"jwt-secret" usage:"HMAC secret for mutation tokens; empty leaves mutations open"`

	MetricsEnabled bool   `default:"true" env:"METRICS_ENABLED" flag:"metrics-enabled" usage:"Expose /metrics"`
	MetricsToken   string `env:"METRICS_TOKEN" flag:"metrics-token" usage:"Bearer token required by /metrics"`
}

// Source says where Load reads from. The zero value reads ".env", the
// default YAML file and process flags.
type Source struct {
	EnvFile   string
	Files     []string
	Args      []string
	SkipFlags bool
}

func LoadStorefront(src Source) (*Storefront, error) {
	var cfg Storefront
	if err := load(&cfg, "STOREFRONT", "storefront.yaml", src); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "storefront config")
	}
	return &cfg, nil
}

func LoadCatalog(src Source) (*Catalog, error) {
	var cfg Catalog
	if err := load(&cfg, "CATALOG", "catalog.yaml", src); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func load(dst any, prefix, defaultFile string, src Source) error {
	envFile := src.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "load %s", envFile)
	}

	files := src.Files
	if files == nil {
		files = []string{defaultFile}
	}

	loader := aconfig.LoaderFor(dst, aconfig.Config{
		EnvPrefix: prefix,
		SkipFlags: src.SkipFlags,
		Args:      src.Args,
		Files:     files,
		SkipFiles: len(files) == 0,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
			".yml":  aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return errors.Wrap(err, "load config")
	}
	return nil
}
