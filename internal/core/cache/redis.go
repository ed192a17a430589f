package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"hospital-api/internal/core/config"
)

// Store is a byte cache with load-through semantics plus write generations.
// Callers put the generation into their keys and Bump it after every write, so
// a load that started before the write lands under a key nobody reads again.
type Store interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error)
	// Gen returns the current generation of key, 0 when it was never bumped.
	Gen(ctx context.Context, key string) (int64, error)
	Bump(ctx context.Context, key string) error
}

type Redis struct {
	RDB *redis.Client
	sf  singleflight.Group
}

func New(c config.Redis) *Redis {
	return &Redis{
		RDB: redis.NewClient(&redis.Options{
			Addr:         c.Addr,
			Password:     c.Password,
			DB:           c.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		}),
	}
}

func (c *Redis) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Redis) Close() error { return c.RDB.Close() }

// GetOrLoad serves key from Redis, otherwise runs load once per key across
// concurrent callers and stores the result for ttl. Redis errors fall through to load.
func (c *Redis) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Redis) Gen(ctx context.Context, key string) (int64, error) {
	n, err := c.RDB.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *Redis) Bump(ctx context.Context, key string) error {
	return c.RDB.Incr(ctx, key).Err()
}

const MemoryAddr = "memory"

// FromConfig returns nil when caching is disabled.
func FromConfig(c config.Redis) Store {
	switch c.Addr {
	case "":
		return nil
	case MemoryAddr:
		return NewMemory()
	default:
		return New(c)
	}
}
