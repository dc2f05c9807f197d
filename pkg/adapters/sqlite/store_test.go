package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/lobster/pkg/adapters/sqlite"
	"github.com/aretw0/lobster/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCache(t *testing.T, path string) *sqlite.Cache {
	t.Helper()
	cache, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestSQLiteCache_Contract(t *testing.T) {
	cache := openCache(t, filepath.Join(t.TempDir(), "lobster.db"))
	ports.RunCacheContract(t, cache)
}

func TestSQLiteCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "lobster.db")
	ctx := context.Background()

	first, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.SetString(ctx, "AdventureArray", `{"id":0,"text":"A"}`))
	require.NoError(t, first.Close())

	second := openCache(t, path)
	val, err := second.GetString(ctx, "AdventureArray")
	require.NoError(t, err)
	assert.Equal(t, `{"id":0,"text":"A"}`, val)
}

func TestSQLiteCache_KeysEscapesWildcards(t *testing.T) {
	cache := openCache(t, filepath.Join(t.TempDir(), "lobster.db"))
	ctx := context.Background()

	require.NoError(t, cache.SetString(ctx, "session:a_1", "{}"))
	require.NoError(t, cache.SetString(ctx, "session:ab1", "{}"))
	require.NoError(t, cache.SetString(ctx, "other", "{}"))

	keys, err := cache.Keys(ctx, "session:a_")
	require.NoError(t, err)
	assert.Equal(t, []string{"session:a_1"}, keys)

	keys, err = cache.Keys(ctx, "session:")
	require.NoError(t, err)
	assert.Equal(t, []string{"session:a_1", "session:ab1"}, keys)
}
