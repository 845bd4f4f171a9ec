package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache is a read-through store for upstream response bodies, keyed by the
// full request URL. A nil *Cache is a valid no-op, so callers never branch
// on whether caching is configured.
type Cache struct {
	rdb *redis.Client
}

// New connects to redis at addr. An empty addr disables caching.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	body, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Str("key", key).Err(err).Msg("cache read failed")
		}
		return nil, false
	}
	return body, true
}

// Set stores body under key for ttl. Failures are logged and swallowed;
// the cache is best-effort.
func (c *Cache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, body, ttl).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache write failed")
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
