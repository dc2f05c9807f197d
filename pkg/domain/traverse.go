package domain

import "fmt"

// Start selects the root unconditionally and returns the first step.
func (t *Tree) Start() (*Node, error) {
	if !t.Has(0) {
		return nil, ErrNoAdventure
	}
	t.slots[0].selected = true
	return t.NextStep(0), nil
}

// Advance selects node id if it lies on or directly below the explored path
// and returns the next step from it. Selecting an already selected node is a
// no-op that still succeeds. On failure the tree is left untouched.
func (t *Tree) Advance(id int) (*Node, error) {
	match, ok := t.locate(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeUnreachable, id)
	}
	t.slots[match].selected = true
	return t.NextStep(match), nil
}

// locate searches breadth-first from the root, only descending through
// selected nodes.
func (t *Tree) locate(id int) (int, bool) {
	if !t.Has(0) {
		return 0, false
	}

	visited := make(map[int]struct{})
	queue := []int{0}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visited[current] = struct{}{}

		if current == id {
			return current, true
		}
		if !t.slots[current].selected {
			continue
		}
		for _, child := range t.children(current) {
			if _, seen := visited[child]; !seen {
				queue = append(queue, child)
			}
		}
	}
	return 0, false
}

// Frontier returns the ids that Advance would accept and that are not yet
// selected, in breadth-first order.
func (t *Tree) Frontier() []int {
	var frontier []int
	t.walkSelected(func(id int) {
		for _, child := range t.children(id) {
			if !t.slots[child].selected {
				frontier = append(frontier, child)
			}
		}
	})
	return frontier
}

// SelectedIDs returns the explored path in breadth-first order.
func (t *Tree) SelectedIDs() []int {
	var ids []int
	t.walkSelected(func(id int) {
		ids = append(ids, id)
	})
	return ids
}

func (t *Tree) walkSelected(fn func(id int)) {
	if !t.IsSelected(0) {
		return
	}
	queue := []int{0}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		fn(id)
		for _, child := range t.children(id) {
			if t.slots[child].selected {
				queue = append(queue, child)
			}
		}
	}
}
