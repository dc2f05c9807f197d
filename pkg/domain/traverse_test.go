package domain_test

import (
	"testing"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedTree(t *testing.T, labels ...string) *domain.Tree {
	t.Helper()
	tree, err := domain.Build(domain.Labels(labels...))
	require.NoError(t, err)
	_, err = tree.Start()
	require.NoError(t, err)
	return tree
}

func TestTree_Start(t *testing.T) {
	tree, err := domain.Build(domain.Labels("A", "B", "C", "D"))
	require.NoError(t, err)

	step, err := tree.Start()
	require.NoError(t, err)

	assert.Equal(t, &domain.Node{
		ID: 0, Text: "A", Selected: true,
		Left:  &domain.Node{ID: 1, Text: "B"},
		Right: &domain.Node{ID: 2, Text: "C"},
	}, step)
	assert.Equal(t, []int{0}, tree.SelectedIDs())
	assert.Equal(t, []int{1, 2}, tree.Frontier())
}

func TestTree_Start_EmptyTree(t *testing.T) {
	var tree domain.Tree
	_, err := tree.Start()
	assert.ErrorIs(t, err, domain.ErrNoAdventure)
}

func TestTree_Advance_FrontierRestriction(t *testing.T) {
	tree := startedTree(t, "A", "B", "C", "D", "E")

	// E is a grandchild whose parent B has not been chosen yet.
	_, err := tree.Advance(4)
	assert.ErrorIs(t, err, domain.ErrNodeUnreachable)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []int{0}, tree.SelectedIDs(), "rejected move must not change the tree")

	step, err := tree.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, 1, step.ID)
	assert.Equal(t, 3, step.Left.ID)
	assert.Equal(t, 4, step.Right.ID)

	step, err = tree.Advance(4)
	require.NoError(t, err)
	assert.Equal(t, &domain.Node{ID: 4, Text: "E", Selected: true}, step)
	assert.Equal(t, []int{0, 1, 4}, tree.SelectedIDs())
}

func TestTree_Advance_UnknownId(t *testing.T) {
	tree := startedTree(t, "A", "B", "C")

	for _, id := range []int{-1, 3, 99} {
		_, err := tree.Advance(id)
		assert.ErrorIs(t, err, domain.ErrNodeUnreachable, "id %d", id)
	}
}

func TestTree_Advance_BeforeStart(t *testing.T) {
	tree, err := domain.Build(domain.Labels("A", "B", "C"))
	require.NoError(t, err)

	// The root is always reachable; its children are not until it is selected.
	_, err = tree.Advance(1)
	assert.ErrorIs(t, err, domain.ErrNodeUnreachable)

	_, err = tree.Advance(0)
	require.NoError(t, err)
	assert.True(t, tree.IsSelected(0))
}

func TestTree_Advance_IsIdempotent(t *testing.T) {
	tree := startedTree(t, "A", "B", "C")

	first, err := tree.Advance(1)
	require.NoError(t, err)
	second, err := tree.Advance(1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, tree.IsSelected(1))
	assert.False(t, tree.IsSelected(2), "sibling selection must not change")
}

func TestTree_Advance_BothSiblingsMayBeSelected(t *testing.T) {
	tree := startedTree(t, "A", "B", "C")

	_, err := tree.Advance(1)
	require.NoError(t, err)
	_, err = tree.Advance(2)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, tree.SelectedIDs())
	assert.Empty(t, tree.Frontier())
}

func TestTree_Frontier(t *testing.T) {
	tree := startedTree(t, "A", "B", "C", "D", "E", "F", "G")

	_, err := tree.Advance(2)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 5, 6}, tree.Frontier())
}
