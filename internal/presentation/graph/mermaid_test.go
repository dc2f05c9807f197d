package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/lobster/internal/presentation/graph"
	"github.com/aretw0/lobster/internal/testutils"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		contains []string
		excludes []string
	}{
		{
			name:   "Shapes",
			labels: []string{"Start", "Middle", "End", "Leaf"},
			contains: []string{
				`n0(("Start"))`,
				`n1["Middle"]`,
				`n2(["End"])`,
				`n3(["Leaf"])`,
			},
		},
		{
			name:   "Edges",
			labels: []string{"A", "B", "C"},
			contains: []string{
				"n0 -- left --> n1",
				"n0 -- right --> n2",
			},
		},
		{
			name:   "Pruned Branch",
			labels: []string{"A", "", "C", "orphan"},
			contains: []string{
				"n0 -- right --> n2",
			},
			excludes: []string{"n1", "orphan"},
		},
		{
			name:   "Label Escaping",
			labels: []string{"Say \"hi\"\nthen go"},
			contains: []string{
				`n0(("Say #quot;hi#quot;<br/>then go"))`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(testutils.MustTree(t, tt.labels...).Root(), nil)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("missing header:\n%s", got)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("expected output not to contain %q, got:\n%s", s, got)
				}
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	tree := testutils.MustTree(t, "A", "B", "C", "D", "E")
	if _, err := tree.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Advance(1); err != nil {
		t.Fatal(err)
	}

	got := graph.GenerateMermaid(tree.Root(), graph.OverlayFromTree(tree))

	for _, s := range []string{
		"classDef selected",
		"classDef frontier",
		"class n0 selected;",
		"class n1 selected;",
		"class n2 frontier;",
		"class n3 frontier;",
		"class n4 frontier;",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("expected output to contain %q, got:\n%s", s, got)
		}
	}
	if strings.Contains(got, "class n1 frontier;") {
		t.Errorf("selected node styled as frontier:\n%s", got)
	}
}

func TestGenerateMermaid_Empty(t *testing.T) {
	if got := graph.GenerateMermaid(nil, nil); got != "graph TD\n" {
		t.Errorf("unexpected output for empty tree: %q", got)
	}
}
