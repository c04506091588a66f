// Package localstore is the client-local key/value text store the product
// store persists its cache into.
package localstore

import (
	"context"

	"github.com/go-faster/errors"
)

// KV stores text values by key.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

var ErrUnknownDriver = errors.New("unknown localstore driver")

type Config struct {
	Driver    string
	Dir       string
	RedisAddr string
	RedisDB   int
	Prefix    string
}

// Open builds the backend named by cfg.Driver. The returned close func is
// never nil.
func Open(ctx context.Context, cfg Config) (KV, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemStore(), noop, nil
	case DriverFile:
		s, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case DriverRedis:
		s, err := DialRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.Prefix)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, errors.Wrap(ErrUnknownDriver, cfg.Driver)
	}
}
