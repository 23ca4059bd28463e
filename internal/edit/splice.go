// Package edit applies batches of non-overlapping text edits as one step.
package edit

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bethropolis/jsrefactor/internal/types"
)

var (
	// ErrOverlap is returned when two edits in one batch touch the same bytes.
	ErrOverlap = errors.New("overlapping edits")
	// ErrOutOfRange is returned when an edit range falls outside the text.
	ErrOutOfRange = errors.New("edit range out of bounds")
	// ErrStale is returned when the document changed after the edits were computed.
	ErrStale = errors.New("stale edit")
)

// spansConflict reports whether two edits overlap.
// Ranges are half-open. Two insertions never conflict; an insertion conflicts
// with a replacement only when it lies strictly inside it or at its start.
func spansConflict(a, b types.TextEdit) bool {
	aStart, aEnd := a.Range.Start, a.Range.End
	bStart, bEnd := b.Range.Start, b.Range.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// Validate checks that every edit lies within a text of length size and
// that no two edits conflict.
func Validate(size int, edits []types.TextEdit) error {
	for i, e := range edits {
		if e.Range.Start < 0 || e.Range.End < e.Range.Start || e.Range.End > size {
			return fmt.Errorf("edit %d [%d,%d) in %d bytes: %w", i, e.Range.Start, e.Range.End, size, ErrOutOfRange)
		}
	}
	for i := range edits {
		for j := i + 1; j < len(edits); j++ {
			if spansConflict(edits[i], edits[j]) {
				return fmt.Errorf("edits %d and %d: %w", i, j, ErrOverlap)
			}
		}
	}
	return nil
}

// Splice applies edits to text and returns the new text together with the
// range each edit's NewText occupies in it, indexed like edits. Edits are
// interpreted against the original text; insertions at the same offset land
// in the order they were given. text is not modified.
func Splice(text []byte, edits []types.TextEdit) ([]byte, []types.Range, error) {
	if err := Validate(len(text), edits); err != nil {
		return nil, nil, err
	}

	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return edits[order[i]].Range.Start < edits[order[j]].Range.Start
	})

	growth := 0
	for _, e := range edits {
		growth += len(e.NewText) - e.Range.Len()
	}
	out := make([]byte, 0, len(text)+max(growth, 0))
	ranges := make([]types.Range, len(edits))

	pos := 0
	for _, idx := range order {
		e := edits[idx]
		out = append(out, text[pos:e.Range.Start]...)
		start := len(out)
		out = append(out, e.NewText...)
		ranges[idx] = types.Range{Start: start, End: len(out)}
		pos = e.Range.End
	}
	out = append(out, text[pos:]...)
	return out, ranges, nil
}
