// Package history provides undo/redo functionality via a change history stack.
package history

import "github.com/bethropolis/jsrefactor/internal/types"

// Change is one committed edit batch and the batch that reverts it.
type Change struct {
	Label           string           // command that produced the change
	Edits           []types.TextEdit // against the text before the change
	Inverse         []types.TextEdit // against the text after the change
	SelectionBefore types.Selection
	SelectionAfter  types.Selection
}

// NewChange builds a change from committed edits and the ranges their new
// text occupies afterwards, indexed like edits.
func NewChange(label string, edits []types.TextEdit, ranges []types.Range, before, after types.Selection) Change {
	inverse := make([]types.TextEdit, len(edits))
	for i, e := range edits {
		inverse[i] = types.TextEdit{
			Range:   ranges[i],
			NewText: e.OldText,
			OldText: e.NewText,
		}
	}
	return Change{
		Label:           label,
		Edits:           edits,
		Inverse:         inverse,
		SelectionBefore: before,
		SelectionAfter:  after,
	}
}
