// internal/types/position.go
package types

// Position represents a cursor or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based column within the line, counted in grapheme clusters
// so that a combining sequence occupies a single column.
type Position struct {
	Line int
	Col  int
}

// Range is a half-open byte interval [Start, End) into a text.
// Start == End denotes an insertion point.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range is an insertion point.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset lies inside the half-open range.
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Selection is an (anchor, head) pair of byte offsets. The anchor stays put
// while the head follows the cursor, so Head may precede Anchor.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns a collapsed selection at offset.
func Cursor(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty reports whether the selection is a bare cursor.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Range returns the normalized range (start <= end) covered by the selection.
func (s Selection) Range() Range {
	if s.Anchor > s.Head {
		return Range{Start: s.Head, End: s.Anchor}
	}
	return Range{Start: s.Anchor, End: s.Head}
}
