package domain

// Node is the recursive record of an adventure step.
// It is both the persisted value of a tree and the shape returned to callers.
type Node struct {
	ID       int    `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Selected bool   `json:"selected" yaml:"selected"`

	Left  *Node `json:"left,omitempty" yaml:"left,omitempty"`
	Right *Node `json:"right,omitempty" yaml:"right,omitempty"`
}

// Children returns the present children, left first.
func (n *Node) Children() []*Node {
	children := make([]*Node, 0, 2)
	if n.Left != nil {
		children = append(children, n.Left)
	}
	if n.Right != nil {
		children = append(children, n.Right)
	}
	return children
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// leftOf and rightOf implement the heap-array convention used for node ids.
func leftOf(id int) int  { return 2*id + 1 }
func rightOf(id int) int { return 2*id + 2 }
