package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCacheContract runs a suite of tests to verify that a Cache implementation
// adheres to the defined interface contract.
func RunCacheContract(t *testing.T, cache Cache) {
	ctx := context.Background()
	key := "contract-test-key-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		err := cache.SetString(ctx, key, `{"id":0,"text":"A"}`)
		require.NoError(t, err, "SetString should not return error")

		val, err := cache.GetString(ctx, key)
		require.NoError(t, err, "GetString should not return error")
		assert.Equal(t, `{"id":0,"text":"A"}`, val)
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		require.NoError(t, cache.SetString(ctx, key, "first"))
		require.NoError(t, cache.SetString(ctx, key, "second"))

		val, err := cache.GetString(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", val)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.GetString(ctx, "missing-"+key)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, cache.SetString(ctx, key, "value"))

		err := cache.Remove(ctx, key)
		require.NoError(t, err, "Remove should not return error")

		_, err = cache.GetString(ctx, key)
		assert.ErrorIs(t, err, ErrCacheMiss, "GetString after Remove should return ErrCacheMiss")
	})

	t.Run("Remove Missing", func(t *testing.T) {
		assert.NoError(t, cache.Remove(ctx, "never-set-"+key))
	})

	t.Run("Keys Are Isolated", func(t *testing.T) {
		require.NoError(t, cache.SetString(ctx, key+"-1", "one"))
		require.NoError(t, cache.SetString(ctx, key+"-2", "two"))
		defer func() {
			_ = cache.Remove(ctx, key+"-1")
			_ = cache.Remove(ctx, key+"-2")
		}()

		require.NoError(t, cache.Remove(ctx, key+"-1"))
		val, err := cache.GetString(ctx, key+"-2")
		require.NoError(t, err)
		assert.Equal(t, "two", val)
	})
}

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	userID := "contract-test-user-" + time.Now().Format("20060102150405")

	newTree := func(t *testing.T) *domain.Tree {
		tree, err := domain.Build(domain.Labels("A", "B", "C"))
		require.NoError(t, err)
		return tree
	}

	t.Run("Save and Load", func(t *testing.T) {
		tree := newTree(t)
		_, err := tree.Start()
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, userID, tree))

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tree.Root(), loaded.Root())
	})

	t.Run("Loaded Tree Is Owned By Caller", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, userID, newTree(t)))

		first, err := store.Load(ctx, userID)
		require.NoError(t, err)
		_, err = first.Start()
		require.NoError(t, err)

		second, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.False(t, second.IsSelected(0), "mutating a loaded tree must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+userID)
		assert.ErrorIs(t, err, domain.ErrNoSession)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, userID, newTree(t)))

		require.NoError(t, store.Delete(ctx, userID))

		_, err := store.Load(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrNoSession, "Load after Delete should return ErrNoSession")
	})
}
