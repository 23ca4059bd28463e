package syntax

import (
	"github.com/bethropolis/jsrefactor/internal/syntax/lang"
	"github.com/bethropolis/jsrefactor/internal/types"
)

// Snapshot pairs buffer text with its syntax tree at one document version.
// Offsets derived from it are only meaningful against that version.
type Snapshot struct {
	Text      []byte
	Root      *Node
	Version   uint64
	Language  *lang.Language
	HasErrors bool // tree-sitter recovered from at least one syntax error
}

// Slice returns the text covered by r.
func (s *Snapshot) Slice(r types.Range) string {
	return string(s.Text[r.Start:r.End])
}

// LineStart returns the offset of the first byte of the line containing offset.
func (s *Snapshot) LineStart(offset int) int {
	for i := offset - 1; i >= 0; i-- {
		if s.Text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// LineEnd returns the offset of the newline ending the line containing offset,
// or len(Text) on the last line.
func (s *Snapshot) LineEnd(offset int) int {
	for i := offset; i < len(s.Text); i++ {
		if s.Text[i] == '\n' {
			return i
		}
	}
	return len(s.Text)
}

// Indentation returns the leading spaces and tabs of the line containing offset.
func (s *Snapshot) Indentation(offset int) string {
	start := s.LineStart(offset)
	end := start
	for end < len(s.Text) && (s.Text[end] == ' ' || s.Text[end] == '\t') {
		end++
	}
	return string(s.Text[start:end])
}
