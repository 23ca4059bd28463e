package selection

import (
	"github.com/bethropolis/jsrefactor/internal/locate"
	"github.com/bethropolis/jsrefactor/internal/syntax"
	"github.com/bethropolis/jsrefactor/internal/types"
)

// IsCompleteStatementRange reports whether r covers one or more complete
// sibling statements: r.Start must be the first byte of a statement and r.End
// the end of a later statement in the same list, with or without that
// statement's own terminator.
func IsCompleteStatementRange(root *syntax.Node, text []byte, r types.Range) bool {
	_, ok := CompleteStatements(root, text, r)
	return ok
}

// CompleteStatements validates r like IsCompleteStatementRange and returns
// the range extended over the last statement's terminator.
func CompleteStatements(root *syntax.Node, text []byte, r types.Range) (types.Range, bool) {
	if root == nil || r.Start < 0 || r.End > len(text) || r.Start >= r.End {
		return types.Range{}, false
	}

	var first []*syntax.Node
	var last []*syntax.Node
	root.Walk(func(n *syntax.Node) bool {
		if locate.Statement.Matches(n) {
			if n.Start == r.Start {
				first = append(first, n)
			}
			if n.End == r.End || endBeforeTerminator(n) == r.End {
				last = append(last, n)
			}
		}
		return true
	})

	for _, s := range first {
		for _, e := range last {
			if s.Parent == e.Parent && s.Start <= e.Start {
				return types.Range{Start: s.Start, End: e.End}, true
			}
		}
	}
	return types.Range{}, false
}

// endBeforeTerminator returns the offset where n's own trailing terminator
// token starts, or n.End when it has none.
func endBeforeTerminator(n *syntax.Node) int {
	last := n.LastChild()
	if last != nil && !last.Named && last.Kind == syntax.Kind(string(Terminator)) {
		return last.Start
	}
	return n.End
}
