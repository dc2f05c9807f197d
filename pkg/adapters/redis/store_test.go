package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lobster/pkg/adapters/redis"
	"github.com/aretw0/lobster/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := newClient(t)

	cache := redis.NewFromClient(client)
	ports.RunCacheContract(t, cache)
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, cache.SetString(ctx, "session:ttl", "value"))

	val, err := cache.GetString(ctx, "session:ttl")
	require.NoError(t, err)
	assert.Equal(t, "value", val)

	// Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	_, err = cache.GetString(ctx, "session:ttl")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestRedisCache_Prefix(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, cache.SetString(ctx, "AdventureArray", "{}"))

	// Verify keys in Redis directly
	assert.True(t, mr.Exists("custom:app:AdventureArray"), "Expected key with custom prefix to exist")
	assert.False(t, mr.Exists("AdventureArray"))
}

func TestRedisCache_Keys(t *testing.T) {
	_, client := newClient(t)

	cache := redis.NewFromClient(client)
	ctx := context.Background()
	require.NoError(t, cache.SetString(ctx, "session:alice", "{}"))
	require.NoError(t, cache.SetString(ctx, "session:bob", "{}"))
	require.NoError(t, cache.SetString(ctx, "AdventureArray", "{}"))

	keys, err := cache.Keys(ctx, "session:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"session:alice", "session:bob"}, keys)
}

func TestRedisCache_KeysLiteralPrefix(t *testing.T) {
	_, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithPrefix("app[1]:"))
	ctx := context.Background()
	require.NoError(t, cache.SetString(ctx, "s?:alice", "{}"))
	require.NoError(t, cache.SetString(ctx, "sX:mallory", "{}"))
	require.NoError(t, cache.SetString(ctx, "s*:bob", "{}"))

	keys, err := cache.Keys(ctx, "s?:")
	require.NoError(t, err)
	assert.Equal(t, []string{"s?:alice"}, keys)

	keys, err = cache.Keys(ctx, "s*")
	require.NoError(t, err)
	assert.Equal(t, []string{"s*:bob"}, keys)
}

func TestRedisCache_BackendDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := backend.NewClient(&backend.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	defer client.Close()

	cache := redis.NewFromClient(client)
	mr.Close()

	ctx := context.Background()
	_, err = cache.GetString(ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrCacheMiss, "connection errors must not look like a miss")

	assert.Error(t, cache.SetString(ctx, "k", "v"))
}
