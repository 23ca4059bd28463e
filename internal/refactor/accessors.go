package refactor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/locate"
	"github.com/bethropolis/jsrefactor/internal/selection"
	"github.com/bethropolis/jsrefactor/internal/syntax"
	"github.com/bethropolis/jsrefactor/internal/template"
	"github.com/bethropolis/jsrefactor/internal/types"
)

const separator = ","

// CreateGettersAndSetters adds a getter and a setter for the object literal
// property at the end of the selection, right after that property.
func (s *Session) CreateGettersAndSetters() (Result, error) {
	snap := s.snapshot
	sel := s.selection.Range()
	end := sel.End
	if !sel.IsEmpty() {
		end = selection.Normalize(snap.Slice(sel), sel.Start, sel.End).End
	}

	key := locate.TokenAt(snap.Root, end, locate.IsPropertyKeyToken)
	if !locate.IsPropertyKeyToken(key) {
		return Result{}, &Error{Command: CommandCreateGettersAndSetters, Offset: end, Err: ErrNotAProperty}
	}
	entry := locate.PropertyEntry(key)
	container, err := locate.FindEnclosingPropertyContainer(snap.Root, key.Start)
	if entry == nil || err != nil || entry.Parent != container {
		return Result{}, &Error{Command: CommandCreateGettersAndSetters, Offset: end, Err: ErrNotInPropertyContainer}
	}
	last, err := locate.IsLastSiblingInScope(snap.Root, key.Start)
	if err != nil {
		return Result{}, &Error{Command: CommandCreateGettersAndSetters, Offset: end, Err: ErrNotInPropertyContainer}
	}

	name := key.Text(snap.Text)
	var opts []template.Option
	if s.reindent {
		opts = append(opts, template.WithIndent(snap.Indentation(entry.Start)))
	}
	block, err := s.render(template.KeyGettersSetters, template.Params{
		"getName":   "get" + capitalize(name),
		"setName":   "set" + capitalize(name),
		"tokenName": name,
	}, opts...)
	if err != nil {
		return Result{}, err
	}

	anchor, hasSeparator := entry.End, false
	if next := entry.NextSibling(); next != nil && !next.Named && next.Kind == syntax.Kind(separator) {
		anchor, hasSeparator = next.End, true
	}
	at := insertionPoint(snap, anchor)

	// Insertions at one offset land in the order they are queued.
	b := s.builder()
	blockIndex := 0
	switch {
	case last && !hasSeparator:
		b.Insert(at, separator)
		b.Insert(at, block)
		blockIndex = 1
	case last:
		b.Insert(at, block)
	default:
		b.Insert(at, block)
		b.Insert(at, separator)
	}

	return s.commit(b, func(res edit.CommitResult) types.Selection {
		return types.Cursor(res.Ranges[blockIndex].End)
	})
}

// insertionPoint moves anchor to the end of its line when only whitespace
// follows it there.
func insertionPoint(snap *syntax.Snapshot, anchor int) int {
	lineEnd := snap.LineEnd(anchor)
	if lineEnd > anchor && snap.Text[lineEnd-1] == '\r' {
		lineEnd--
	}
	if strings.TrimSpace(string(snap.Text[anchor:lineEnd])) == "" {
		return lineEnd
	}
	return anchor
}

func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
