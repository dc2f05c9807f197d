package testutils

import (
	"context"
	"testing"

	"github.com/aretw0/lobster"
	"github.com/aretw0/lobster/pkg/adapters/memory"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/stretchr/testify/require"
)

// MustTree builds a tree from plain labels ("" leaves a slot empty).
// It fails the test immediately on error.
func MustTree(t *testing.T, labels ...string) *domain.Tree {
	t.Helper()

	tree, err := domain.Build(domain.Labels(labels...))
	require.NoError(t, err, "Failed to build tree")
	return tree
}

// NewEngine returns an engine on a fresh memory cache with an adventure
// created from labels.
func NewEngine(t *testing.T, labels ...string) *lobster.Engine {
	t.Helper()

	eng, err := lobster.New(memory.NewCache())
	require.NoError(t, err, "Failed to create engine")

	_, err = eng.CreateAdventure(context.Background(), domain.Labels(labels...))
	require.NoError(t, err, "Failed to create adventure")
	return eng
}
