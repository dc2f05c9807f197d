package domain

import (
	"encoding/json"
	"fmt"
)

// MaxNodes bounds the arena size of a single tree.
const MaxNodes = 1 << 20

type slot struct {
	text     string
	present  bool
	selected bool
}

// Tree is an adventure laid out as an arena indexed by node id.
// The children of node i live at 2i+1 and 2i+2. The shape is fixed at
// construction; the only mutation is marking nodes selected.
type Tree struct {
	slots []slot
}

// Labels is a helper that turns plain strings into builder input.
// Empty strings become absent slots.
func Labels(texts ...string) []*string {
	labels := make([]*string, len(texts))
	for i := range texts {
		if texts[i] != "" {
			labels[i] = &texts[i]
		}
	}
	return labels
}

// Build converts a flat list of labels into a tree using heap indexing.
// A missing or empty label prunes its whole branch.
func Build(labels []*string) (*Tree, error) {
	if !hasLabel(labels, 0) {
		return nil, ErrEmptyAdventure
	}
	if len(labels) > MaxNodes {
		return nil, fmt.Errorf("%w: adventure exceeds %d steps", ErrInvalidInput, MaxNodes)
	}

	t := &Tree{slots: make([]slot, len(labels))}
	t.place(labels, 0)
	t.trim()
	return t, nil
}

func hasLabel(labels []*string, id int) bool {
	return id < len(labels) && labels[id] != nil && *labels[id] != ""
}

func (t *Tree) place(labels []*string, id int) {
	if !hasLabel(labels, id) {
		return
	}
	t.slots[id] = slot{text: *labels[id], present: true}
	t.place(labels, leftOf(id))
	t.place(labels, rightOf(id))
}

// trim drops trailing slots that hold no node.
func (t *Tree) trim() {
	end := len(t.slots)
	for end > 0 && !t.slots[end-1].present {
		end--
	}
	t.slots = t.slots[:end]
}

// Has reports whether a node with the given id exists.
func (t *Tree) Has(id int) bool {
	return id >= 0 && id < len(t.slots) && t.slots[id].present
}

// Text returns the label of node id, or "" if it does not exist.
func (t *Tree) Text(id int) string {
	if !t.Has(id) {
		return ""
	}
	return t.slots[id].text
}

// IsSelected reports whether node id exists and has been selected.
func (t *Tree) IsSelected(id int) bool {
	return t.Has(id) && t.slots[id].selected
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	n := 0
	for _, s := range t.slots {
		if s.present {
			n++
		}
	}
	return n
}

func (t *Tree) children(id int) []int {
	children := make([]int, 0, 2)
	if t.Has(leftOf(id)) {
		children = append(children, leftOf(id))
	}
	if t.Has(rightOf(id)) {
		children = append(children, rightOf(id))
	}
	return children
}

// Clone returns an independent copy of the tree.
func (t *Tree) Clone() *Tree {
	slots := make([]slot, len(t.slots))
	copy(slots, t.slots)
	return &Tree{slots: slots}
}

// IDs returns every node id in breadth-first order, left before right.
func (t *Tree) IDs() []int {
	if !t.Has(0) {
		return nil
	}
	ids := make([]int, 0, t.Len())
	queue := []int{0}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ids = append(ids, id)
		queue = append(queue, t.children(id)...)
	}
	return ids
}

// Root materializes the whole tree as a recursive record.
func (t *Tree) Root() *Node {
	return t.node(0)
}

func (t *Tree) node(id int) *Node {
	if !t.Has(id) {
		return nil
	}
	s := t.slots[id]
	return &Node{
		ID:       id,
		Text:     s.text,
		Selected: s.selected,
		Left:     t.node(leftOf(id)),
		Right:    t.node(rightOf(id)),
	}
}

// FromNode rebuilds a tree from its recursive record.
// Node ids must follow the heap indexing rule starting at 0.
func FromNode(root *Node) (*Tree, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: missing root", ErrMalformedTree)
	}
	t := &Tree{}
	if err := t.load(root, 0); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) load(n *Node, want int) error {
	if want >= MaxNodes {
		return fmt.Errorf("%w: node %d exceeds %d slots", ErrMalformedTree, want, MaxNodes)
	}
	if n.ID != want {
		return fmt.Errorf("%w: expected id %d, got %d", ErrMalformedTree, want, n.ID)
	}
	if n.Text == "" {
		return fmt.Errorf("%w: node %d has no text", ErrMalformedTree, n.ID)
	}
	if want >= len(t.slots) {
		t.slots = append(t.slots, make([]slot, want+1-len(t.slots))...)
	}
	t.slots[want] = slot{text: n.Text, present: true, selected: n.Selected}

	if n.Left != nil {
		if err := t.load(n.Left, leftOf(want)); err != nil {
			return err
		}
	}
	if n.Right != nil {
		if err := t.load(n.Right, rightOf(want)); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the tree as its recursive record.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Root())
}

// UnmarshalJSON decodes a recursive record and validates its indexing.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var root *Node
	if err := json.Unmarshal(data, &root); err != nil {
		return err
	}
	parsed, err := FromNode(root)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
