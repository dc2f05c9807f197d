package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/ports"
)

// DefaultSessionPrefix keeps user keys apart from the template key.
const DefaultSessionPrefix = "session:"

// SessionStore implements ports.SessionStore on a cache, one key per user.
type SessionStore struct {
	cache  ports.Cache
	prefix string
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a session store on cache. An empty prefix selects
// DefaultSessionPrefix.
func NewSessionStore(cache ports.Cache, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &SessionStore{cache: cache, prefix: prefix}
}

func (s *SessionStore) key(userID string) string {
	return s.prefix + userID
}

// Save persists the user's tree with a single overwrite.
func (s *SessionStore) Save(ctx context.Context, userID string, tree *domain.Tree) error {
	return writeTree(ctx, s.cache, s.key(userID), tree)
}

// Load returns a fresh copy of the user's tree.
func (s *SessionStore) Load(ctx context.Context, userID string) (*domain.Tree, error) {
	return readTree(ctx, s.cache, s.key(userID), domain.ErrNoSession)
}

// Delete removes the user's tree.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return removeKey(ctx, s.cache, s.key(userID))
}

// List returns the ids of users holding a session, sorted.
func (s *SessionStore) List(ctx context.Context) ([]string, error) {
	lister, ok := s.cache.(ports.KeyLister)
	if !ok {
		return nil, ports.ErrKeysUnsupported
	}

	keys, err := lister.Keys(ctx, s.prefix)
	if err != nil {
		if errors.Is(err, ports.ErrKeysUnsupported) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: list sessions: %w", domain.ErrPersistence, err)
	}

	users := make([]string, 0, len(keys))
	for _, k := range keys {
		users = append(users, strings.TrimPrefix(k, s.prefix))
	}
	sort.Strings(users)
	return users, nil
}
