package domain

// NextStep returns node id marked selected together with its immediate
// choices. The choices carry only id and text; nothing deeper is revealed.
func (t *Tree) NextStep(id int) *Node {
	if !t.Has(id) {
		return nil
	}
	step := &Node{ID: id, Text: t.slots[id].text, Selected: true}
	if l := leftOf(id); t.Has(l) {
		step.Left = &Node{ID: l, Text: t.slots[l].text}
	}
	if r := rightOf(id); t.Has(r) {
		step.Right = &Node{ID: r, Text: t.slots[r].text}
	}
	return step
}

// Path returns the branches the user actually took. Children of every
// unselected node are cut off. If the root was never selected only the
// root's id and text are returned.
func (t *Tree) Path() *Node {
	root := t.Root()
	if root == nil {
		return nil
	}
	if !root.Selected {
		return &Node{ID: root.ID, Text: root.Text}
	}

	visited := make(map[int]struct{})
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visited[n.ID] = struct{}{}

		if !n.Selected {
			n.Left = nil
			n.Right = nil
		}
		for _, child := range n.Children() {
			if _, seen := visited[child.ID]; !seen {
				queue = append(queue, child)
			}
		}
	}
	return root
}
