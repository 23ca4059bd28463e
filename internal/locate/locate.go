package locate

import (
	"errors"

	"github.com/bethropolis/jsrefactor/internal/syntax"
)

// ErrNotFound is returned when no node around the offset satisfies the query.
var ErrNotFound = errors.New("locate: no matching node")

// childAt picks the child of n whose span contains offset. A child ending
// exactly at offset is the fallback, so a cursor right after a node still
// resolves to it.
func childAt(n *syntax.Node, offset int) *syntax.Node {
	var touching *syntax.Node
	for _, c := range n.Children {
		if c.Start == c.End {
			continue
		}
		if c.Start <= offset && offset < c.End {
			return c
		}
		if c.End == offset {
			touching = c
		}
	}
	return touching
}

// descend walks from root towards offset, calling visit on every node on the path.
func descend(root *syntax.Node, offset int, visit func(*syntax.Node)) {
	for n := root; n != nil; n = childAt(n, offset) {
		visit(n)
	}
}

// FindSurroundingNode returns the innermost node on the path from root to
// offset that matches one of categories.
func FindSurroundingNode(root *syntax.Node, offset int, categories ...Category) (*syntax.Node, error) {
	var found *syntax.Node
	descend(root, offset, func(n *syntax.Node) {
		for _, c := range categories {
			if c.Matches(n) {
				found = n
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// NodeAt returns the deepest node on the path from root to offset.
func NodeAt(root *syntax.Node, offset int) *syntax.Node {
	var last *syntax.Node
	descend(root, offset, func(n *syntax.Node) { last = n })
	return last
}

// FindEnclosingPropertyContainer returns the nearest object literal around offset.
func FindEnclosingPropertyContainer(root *syntax.Node, offset int) (*syntax.Node, error) {
	return FindSurroundingNode(root, offset, PropertyContainer)
}

// ListElement climbs from n to the ancestor (or n itself) that is a direct
// element of an ordered property or statement list.
func ListElement(n *syntax.Node) *syntax.Node {
	for ; n != nil && n.Parent != nil; n = n.Parent {
		if isOrderedList(n.Parent.Kind) && n.Named && n.Kind != syntax.KindComment {
			return n
		}
	}
	return nil
}

// IsLastSiblingInScope reports whether the list element at offset is the
// last element of its enclosing property or statement list.
func IsLastSiblingInScope(root *syntax.Node, offset int) (bool, error) {
	elem := ListElement(NodeAt(root, offset))
	if elem == nil {
		return false, ErrNotFound
	}
	elems := elem.Parent.Elements()
	return elems[len(elems)-1] == elem, nil
}

// leafContaining returns the deepest node whose span strictly contains offset.
func leafContaining(root *syntax.Node, offset int) *syntax.Node {
	n := root
	if offset < n.Start || offset >= n.End {
		return nil
	}
	for {
		var next *syntax.Node
		for _, c := range n.Children {
			if c.Start <= offset && offset < c.End {
				next = c
				break
			}
		}
		if next == nil {
			return n
		}
		n = next
	}
}

// TokenAt returns the leaf under offset, falling back to the leaf just
// before it when prefer rejects the first one.
func TokenAt(root *syntax.Node, offset int, prefer func(*syntax.Node) bool) *syntax.Node {
	under := leafContaining(root, offset)
	if under != nil && prefer(under) {
		return under
	}
	if offset > 0 {
		if before := leafContaining(root, offset-1); before != nil && prefer(before) {
			return before
		}
	}
	return under
}

// IsPropertyKeyToken reports whether n is lexically a property name token.
func IsPropertyKeyToken(n *syntax.Node) bool {
	return n != nil && (n.Kind == syntax.KindPropertyIdentifier || n.Kind == syntax.KindShorthandPropertyIdentifier)
}

// PropertyEntry returns the object entry that key names, or nil when key is
// not the key of a direct entry of an object literal.
func PropertyEntry(key *syntax.Node) *syntax.Node {
	if key == nil || key.Parent == nil {
		return nil
	}
	switch key.Kind {
	case syntax.KindShorthandPropertyIdentifier:
		if key.Parent.Kind == syntax.KindObject {
			return key
		}
	case syntax.KindPropertyIdentifier:
		pair := key.Parent
		if pair.Kind == syntax.KindPair && key.Field == syntax.FieldKey &&
			pair.Parent != nil && pair.Parent.Kind == syntax.KindObject {
			return pair
		}
	}
	return nil
}
