package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders markdown using glamour.
// If the terminal renderer cannot be built the markdown is returned as is.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// StepMarkdown formats a next-step view: the node text followed by the
// numbered choices, or an end marker on a leaf.
func StepMarkdown(step *domain.Node) string {
	var sb strings.Builder
	sb.WriteString(step.Text)
	sb.WriteString("\n\n")

	if step.IsLeaf() {
		sb.WriteString("*The End.*\n")
		return sb.String()
	}
	for _, c := range step.Children() {
		sb.WriteString(fmt.Sprintf("- **[%d]** %s\n", c.ID, c.Text))
	}
	return sb.String()
}

// PathMarkdown formats a result as a nested list, marking taken steps.
func PathMarkdown(root *domain.Node) string {
	var sb strings.Builder
	var walk func(n *domain.Node, depth int)
	walk = func(n *domain.Node, depth int) {
		mark := " "
		if n.Selected {
			mark = "x"
		}
		sb.WriteString(fmt.Sprintf("%s- [%s] %s\n", strings.Repeat("  ", depth), mark, n.Text))
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	if root != nil {
		walk(root, 0)
	}
	return sb.String()
}

// Prompt returns the styled input prompt listing the valid choices.
func Prompt(choices []int) string {
	p := termenv.ColorProfile()
	ids := make([]string, len(choices))
	for i, c := range choices {
		ids[i] = fmt.Sprint(c)
	}
	return termenv.String(fmt.Sprintf("choose [%s] > ", strings.Join(ids, "/"))).
		Foreground(p.Color("#f97316")).
		Bold().
		String()
}
