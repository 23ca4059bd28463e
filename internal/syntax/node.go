package syntax

import "github.com/bethropolis/jsrefactor/internal/types"

// Node is an immutable syntax tree node. Spans are half-open byte ranges;
// every child lies within its parent and siblings never overlap.
type Node struct {
	Kind     Kind
	Field    string // field name under the parent, "" when unnamed
	Named    bool   // false for anonymous tokens such as "{" or ";"
	Start    int
	End      int
	Parent   *Node
	Children []*Node
}

// Range returns the node's span.
func (n *Node) Range() types.Range {
	return types.Range{Start: n.Start, End: n.End}
}

// Text returns the node's source text.
func (n *Node) Text(src []byte) string {
	return string(src[n.Start:n.End])
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// ChildByField returns the first child stored under field, or nil.
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildOfKind returns the first direct child of kind k, or nil.
func (n *Node) ChildOfKind(k Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}

// Elements returns the named, non-comment children: the entries of a
// list-like node such as a statement block, an object or a parameter list.
func (n *Node) Elements() []*Node {
	elems := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named && c.Kind != KindComment {
			elems = append(elems, c)
		}
	}
	return elems
}

// NextSibling returns the next child of the parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	siblings := n.Parent.Children
	for i, c := range siblings {
		if c == n && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return nil
}

// LastChild returns the final child, or nil for a leaf.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Walk visits n and its descendants in document order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
