// Package selection turns a raw user selection into a clean statement range.
package selection

import (
	"strings"
	"unicode"

	"github.com/bethropolis/jsrefactor/internal/types"
)

// Terminator ends a JavaScript statement.
const Terminator = ';'

// Normalized is a selection after exterior trimming.
type Normalized struct {
	Text  string
	Start int
	End   int
}

// Range returns the normalized span.
func (n Normalized) Range() types.Range {
	return types.Range{Start: n.Start, End: n.End}
}

// Normalize trims leading and trailing whitespace and the trailing statement
// terminator from text, which occupies [start, end) in its document, and
// shifts the offsets to match. A trailing run of several terminators mixed
// with whitespace ("a; ;\n") is trimmed as a whole. Interior content is
// never touched, and applying Normalize to its own result changes nothing.
func Normalize(text string, start, end int) Normalized {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	start += len(text) - len(trimmed)
	text = trimmed

	trimmed = strings.TrimRightFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == Terminator
	})
	end -= len(text) - len(trimmed)

	return Normalized{Text: trimmed, Start: start, End: end}
}
