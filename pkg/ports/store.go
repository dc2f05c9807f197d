package ports

import (
	"context"

	"github.com/aretw0/lobster/pkg/domain"
)

// SessionStore defines the interface for persisting per-user adventure trees.
type SessionStore interface {
	// Save persists the tree for a given user, replacing any previous one.
	Save(ctx context.Context, userID string, tree *domain.Tree) error

	// Load retrieves the tree for a given user.
	// Returns domain.ErrNoSession if the user has no session.
	Load(ctx context.Context, userID string) (*domain.Tree, error)

	// Delete removes the tree for a given user.
	Delete(ctx context.Context, userID string) error
}
