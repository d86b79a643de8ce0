package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, time.Hour, "dqda:"), mr
}

func TestCacheSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "page:example.com")
	assert.False(t, ok, "miss expected before set")

	c.Set(ctx, "page:example.com", "<html>hello</html>")

	got, ok := c.Get(ctx, "page:example.com")
	require.True(t, ok)
	assert.Equal(t, "<html>hello</html>", got)
}

func TestCacheKeyPrefix(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "page:example.com", "body")

	// Keys are namespaced so multiple tools can share one Redis.
	assert.True(t, mr.Exists("dqda:page:example.com"))
	assert.False(t, mr.Exists("page:example.com"))
}

func TestCacheTTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "page:example.com", "body")
	mr.FastForward(2 * time.Hour)

	_, ok := c.Get(ctx, "page:example.com")
	assert.False(t, ok, "value should expire after TTL")
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.Set(ctx, "k", "v")
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Del(ctx, "k"))
}

func TestCacheGetRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "page:example.com", "body")
	mr.Close()

	_, ok := c.Get(ctx, "page:example.com")
	assert.False(t, ok, "redis errors degrade to cache miss")
}
