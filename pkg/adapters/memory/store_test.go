package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/lobster/pkg/adapters/memory"
	"github.com/aretw0/lobster/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Contract(t *testing.T) {
	cache := memory.NewCache()
	ports.RunCacheContract(t, cache)
}

func TestMemoryCache_CanceledContext(t *testing.T) {
	cache := memory.NewCache()
	require.NoError(t, cache.SetString(context.Background(), "k", "v"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, cache.SetString(ctx, "k", "other"), context.Canceled)
	assert.ErrorIs(t, cache.Remove(ctx, "k"), context.Canceled)

	val, err := cache.GetString(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val, "canceled writes must not reach the cache")
}

func TestMemoryCache_Keys(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()
	require.NoError(t, cache.SetString(ctx, "session:a", "1"))
	require.NoError(t, cache.SetString(ctx, "session:b", "2"))
	require.NoError(t, cache.SetString(ctx, "AdventureArray", "3"))

	keys, err := cache.Keys(ctx, "session:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"session:a", "session:b"}, keys)
}
