package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/lobster/pkg/domain"
)

// GraphOverlay contains session progress to visualize on the graph.
type GraphOverlay struct {
	SelectedNodes []int
	FrontierNodes []int
}

// OverlayFromTree builds the overlay of a session tree.
func OverlayFromTree(tree *domain.Tree) *GraphOverlay {
	return &GraphOverlay{
		SelectedNodes: tree.SelectedIDs(),
		FrontierNodes: tree.Frontier(),
	}
}

// GenerateMermaid produces a Mermaid flowchart of an adventure rooted at root.
// The root is drawn as a circle and leaves as stadiums; edges are labeled with
// the side of the choice. Overlay styles are applied if provided.
func GenerateMermaid(root *domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	queue := []*domain.Node{}
	if root != nil {
		queue = append(queue, root)
	}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		opener, closer := "[", "]"
		switch {
		case node.ID == 0:
			opener, closer = "((", "))"
		case node.IsLeaf():
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", mermaidID(node.ID), opener, escapeLabel(node.Text), closer))

		if node.Left != nil {
			sb.WriteString(fmt.Sprintf("    %s -- left --> %s\n", mermaidID(node.ID), mermaidID(node.Left.ID)))
			queue = append(queue, node.Left)
		}
		if node.Right != nil {
			sb.WriteString(fmt.Sprintf("    %s -- right --> %s\n", mermaidID(node.ID), mermaidID(node.Right.ID)))
			queue = append(queue, node.Right)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef selected fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef frontier fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		writeClass(&sb, overlay.SelectedNodes, "selected")
		writeClass(&sb, overlay.FrontierNodes, "frontier")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, ids []int, class string) {
	seen := make(map[int]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", mermaidID(id), class))
	}
}

func mermaidID(id int) string {
	return fmt.Sprintf("n%d", id)
}

// escapeLabel keeps node text from breaking out of the quoted label.
func escapeLabel(text string) string {
	s := strings.ReplaceAll(text, "\"", "#quot;")
	s = strings.ReplaceAll(s, "\r\n", "<br/>")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
