package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/lobster/internal/testutils"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepMarkdown(t *testing.T) {
	step := &domain.Node{
		ID: 1, Text: "A dark corridor", Selected: true,
		Left:  &domain.Node{ID: 3, Text: "Light a torch"},
		Right: &domain.Node{ID: 4, Text: "Walk blind"},
	}

	assert.Equal(t, "A dark corridor\n\n- **[3]** Light a torch\n- **[4]** Walk blind\n", StepMarkdown(step))
	assert.Equal(t, "Home\n\n*The End.*\n", StepMarkdown(&domain.Node{ID: 9, Text: "Home"}))
}

func TestPathMarkdown(t *testing.T) {
	tree := testutils.MustTree(t, "A", "B", "C")
	_, err := tree.Start()
	require.NoError(t, err)
	_, err = tree.Advance(2)
	require.NoError(t, err)

	assert.Equal(t, "- [x] A\n  - [ ] B\n  - [x] C\n", PathMarkdown(tree.Path()))
	assert.Empty(t, PathMarkdown(nil))
}

func TestRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Title\n\nbody")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}

func TestPromptAndBanner(t *testing.T) {
	assert.Contains(t, Prompt([]int{3, 4}), "choose [3/4] > ")

	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|____")
}
