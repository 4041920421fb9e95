package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a live server: REDIS_ADDR=localhost:6379 go test ./internal/cache
func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rc, err := NewRedisCache(ctx, WithRedisAddr(addr), WithRedisPrefix("pivotboard-test"))
	require.NoError(t, err)
	defer rc.Close()

	require.NoError(t, rc.Set(ctx, "k", map[string]float64{"close": 1.5}, time.Minute))
	var got map[string]float64
	require.NoError(t, rc.Get(ctx, "k", &got))
	assert.Equal(t, 1.5, got["close"])

	require.NoError(t, rc.Delete(ctx, "k"))
	assert.ErrorIs(t, rc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestRedisCache_WrapKey(t *testing.T) {
	assert.Equal(t, "p:bars:X:1y", (&RedisCache{prefix: "p"}).wrapKey("bars:X:1y"))
	assert.Equal(t, "k", (&RedisCache{}).wrapKey("k"))
}
