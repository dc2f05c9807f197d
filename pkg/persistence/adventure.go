package persistence

import (
	"context"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/ports"
)

// DefaultTemplateKey is the fixed key holding the adventure template.
const DefaultTemplateKey = "AdventureArray"

// AdventureStore keeps the single adventure template.
type AdventureStore struct {
	cache ports.Cache
	key   string
}

// NewAdventureStore creates a template store on cache. An empty key selects
// DefaultTemplateKey.
func NewAdventureStore(cache ports.Cache, key string) *AdventureStore {
	if key == "" {
		key = DefaultTemplateKey
	}
	return &AdventureStore{cache: cache, key: key}
}

// Put replaces the template with a single overwrite.
func (s *AdventureStore) Put(ctx context.Context, tree *domain.Tree) error {
	return writeTree(ctx, s.cache, s.key, tree)
}

// Get returns the current template.
// Returns domain.ErrNoAdventure if none was created.
func (s *AdventureStore) Get(ctx context.Context) (*domain.Tree, error) {
	return readTree(ctx, s.cache, s.key, domain.ErrNoAdventure)
}

// Remove deletes the template.
func (s *AdventureStore) Remove(ctx context.Context) error {
	return removeKey(ctx, s.cache, s.key)
}

// Key returns the cache key of the template.
func (s *AdventureStore) Key() string {
	return s.key
}
