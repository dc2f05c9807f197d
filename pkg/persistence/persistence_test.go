package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/lobster/pkg/adapters/memory"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/persistence"
	"github.com/aretw0/lobster/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenCache fails every call.
type brokenCache struct{}

var errBackend = errors.New("backend down")

func (brokenCache) GetString(context.Context, string) (string, error) { return "", errBackend }
func (brokenCache) SetString(context.Context, string, string) error   { return errBackend }
func (brokenCache) Remove(context.Context, string) error              { return errBackend }

func buildTree(t *testing.T, labels ...string) *domain.Tree {
	t.Helper()
	tree, err := domain.Build(domain.Labels(labels...))
	require.NoError(t, err)
	return tree
}

func TestSessionStore_Contract(t *testing.T) {
	store := persistence.NewSessionStore(memory.NewCache(), "")
	ports.RunSessionStoreContract(t, store)
}

func TestAdventureStore_PutReplaces(t *testing.T) {
	cache := memory.NewCache()
	store := persistence.NewAdventureStore(cache, "")
	ctx := context.Background()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNoAdventure)

	require.NoError(t, store.Put(ctx, buildTree(t, "A", "B")))
	require.NoError(t, store.Put(ctx, buildTree(t, "X", "Y", "Z")))

	tree, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "X", tree.Text(0))
	assert.Equal(t, 3, tree.Len())

	raw, err := cache.GetString(ctx, persistence.DefaultTemplateKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":0,"text":"X","selected":false,
		"left":{"id":1,"text":"Y","selected":false},
		"right":{"id":2,"text":"Z","selected":false}}`, raw)
}

func TestAdventureStore_Remove(t *testing.T) {
	store := persistence.NewAdventureStore(memory.NewCache(), "custom")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, buildTree(t, "A")))
	require.NoError(t, store.Remove(ctx))

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNoAdventure)
	assert.Equal(t, "custom", store.Key())
}

func TestStores_BlankValueIsMissing(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()
	require.NoError(t, cache.SetString(ctx, persistence.DefaultTemplateKey, "   "))
	require.NoError(t, cache.SetString(ctx, persistence.DefaultSessionPrefix+"alice", ""))

	_, err := persistence.NewAdventureStore(cache, "").Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNoAdventure)

	_, err = persistence.NewSessionStore(cache, "").Load(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestStores_CorruptValueIsPersistenceFailure(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()
	require.NoError(t, cache.SetString(ctx, persistence.DefaultTemplateKey, "{not json"))
	require.NoError(t, cache.SetString(ctx, persistence.DefaultSessionPrefix+"alice", `{"id":3,"text":"A"}`))

	_, err := persistence.NewAdventureStore(cache, "").Get(ctx)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	_, err = persistence.NewSessionStore(cache, "").Load(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, domain.ErrMalformedTree)
}

func TestStores_BackendFailure(t *testing.T) {
	ctx := context.Background()
	adventures := persistence.NewAdventureStore(brokenCache{}, "")
	sessions := persistence.NewSessionStore(brokenCache{}, "")
	tree := buildTree(t, "A")

	for name, err := range map[string]error{
		"put":    adventures.Put(ctx, tree),
		"remove": adventures.Remove(ctx),
		"save":   sessions.Save(ctx, "alice", tree),
		"delete": sessions.Delete(ctx, "alice"),
	} {
		assert.ErrorIs(t, err, domain.ErrPersistence, name)
		assert.ErrorIs(t, err, errBackend, name)
	}

	_, err := adventures.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	_, err = sessions.Load(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestSessionStore_KeysDoNotCollideWithTemplate(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()
	adventures := persistence.NewAdventureStore(cache, "")
	sessions := persistence.NewSessionStore(cache, "")

	require.NoError(t, adventures.Put(ctx, buildTree(t, "Template")))
	require.NoError(t, sessions.Save(ctx, persistence.DefaultTemplateKey, buildTree(t, "User")))

	tree, err := adventures.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Template", tree.Text(0))
}

func TestSessionStore_List(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()
	sessions := persistence.NewSessionStore(cache, "")

	require.NoError(t, persistence.NewAdventureStore(cache, "").Put(ctx, buildTree(t, "A")))
	require.NoError(t, sessions.Save(ctx, "bob", buildTree(t, "A")))
	require.NoError(t, sessions.Save(ctx, "alice", buildTree(t, "A")))

	users, err := sessions.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)

	_, err = persistence.NewSessionStore(brokenCache{}, "").List(ctx)
	assert.ErrorIs(t, err, ports.ErrKeysUnsupported)
}
