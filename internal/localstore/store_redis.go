package localstore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-redis/redis/v8"
)

const dialTimeout = 5 * time.Second

// RedisStore keeps values in redis without expiry; the product cache is
// trusted until it is explicitly cleared.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis connects and pings before returning.
func DialRedis(ctx context.Context, addr string, db int, prefix string) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("redis store: empty addr")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	pctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis store: ping")
	}
	return NewRedisStore(client, prefix), nil
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "redis get %q", key)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %q", key)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Wrapf(err, "redis del %q", key)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
