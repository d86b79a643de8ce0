package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/config"
)

// Cache wraps the Redis client used to memoize fetched pages and
// payloads between runs. A nil *Cache is a valid no-op cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// New creates a cache from config. Returns nil when caching is disabled.
func New(cfg config.CacheConfig, prefix string) *Cache {
	if !cfg.Enabled {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return &Cache{
		client: rdb,
		ttl:    time.Duration(cfg.TTL) * time.Second,
		prefix: prefix,
	}
}

// NewWithClient wires an existing client, used by tests.
func NewWithClient(client *redis.Client, ttl time.Duration, prefix string) *Cache {
	return &Cache{client: client, ttl: ttl, prefix: prefix}
}

// Ping tests the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get retrieves a cached value. The second return is false on miss,
// on a nil cache, and on any Redis error; callers fall through to the
// live fetch in all three cases.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value with the configured TTL. Errors are dropped since
// the cache is best-effort.
func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil {
		return
	}
	_ = c.client.Set(ctx, c.prefix+key, value, c.ttl).Err()
}

// Del removes keys, mainly for test cleanup.
func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.prefix + k
	}
	return c.client.Del(ctx, prefixed...).Err()
}
