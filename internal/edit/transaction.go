package edit

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bethropolis/jsrefactor/internal/types"
)

// ErrCommitted is returned when a transaction is committed twice.
var ErrCommitted = errors.New("transaction already committed")

// Document is the mutable text a transaction commits to. Apply must apply
// the whole batch as a single change or fail without modifying anything.
type Document interface {
	Bytes() []byte
	Version() uint64
	Apply(edits []types.TextEdit) (types.EditInfo, error)
}

// Builder collects edits against one frozen text. Discarding a builder
// discards its edits.
type Builder struct {
	text    []byte
	version uint64
	edits   []types.TextEdit
	err     error
}

// NewBuilder returns a builder for edits computed against text at version.
func NewBuilder(text []byte, version uint64) *Builder {
	return &Builder{text: text, version: version}
}

// Replace queues replacing r with newText.
func (b *Builder) Replace(r types.Range, newText string) *Builder {
	if b.err != nil {
		return b
	}
	if r.Start < 0 || r.End < r.Start || r.End > len(b.text) {
		b.err = fmt.Errorf("replace [%d,%d) in %d bytes: %w", r.Start, r.End, len(b.text), ErrOutOfRange)
		return b
	}
	b.edits = append(b.edits, types.TextEdit{
		Range:   r,
		NewText: newText,
		OldText: string(b.text[r.Start:r.End]),
	})
	return b
}

// Insert queues inserting text at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(types.Range{Start: offset, End: offset}, text)
}

// Len returns the number of queued edits.
func (b *Builder) Len() int {
	return len(b.edits)
}

// Build validates the queued edits and freezes them into a transaction.
func (b *Builder) Build() (*Transaction, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.edits) == 0 {
		return nil, errors.New("empty transaction")
	}
	if err := Validate(len(b.text), b.edits); err != nil {
		return nil, err
	}
	edits := make([]types.TextEdit, len(b.edits))
	copy(edits, b.edits)
	return &Transaction{base: b.version, edits: edits}, nil
}

// Transaction is a validated batch of edits bound to the version of the
// text they were computed against.
type Transaction struct {
	base      uint64
	edits     []types.TextEdit
	committed bool
}

// CommitResult describes a committed transaction.
type CommitResult struct {
	// Text is the document content after the commit.
	Text []byte
	// Ranges holds where each edit's NewText landed, in submission order.
	Ranges  []types.Range
	Version uint64
	Info    types.EditInfo
}

// Edits returns a copy of the transaction's edits in submission order.
func (t *Transaction) Edits() []types.TextEdit {
	out := make([]types.TextEdit, len(t.edits))
	copy(out, t.edits)
	return out
}

// BaseVersion returns the document version the edits were computed against.
func (t *Transaction) BaseVersion() uint64 {
	return t.base
}

// Commit applies every edit to doc as one change. Nothing is applied when
// doc moved past the base version or any edit's original text no longer
// matches.
func (t *Transaction) Commit(doc Document) (CommitResult, error) {
	if t.committed {
		return CommitResult{}, ErrCommitted
	}
	if v := doc.Version(); v != t.base {
		return CommitResult{}, fmt.Errorf("document at version %d, edits computed at %d: %w", v, t.base, ErrStale)
	}

	current := doc.Bytes()
	for i, e := range t.edits {
		if e.Range.End > len(current) || !bytes.Equal(current[e.Range.Start:e.Range.End], []byte(e.OldText)) {
			return CommitResult{}, fmt.Errorf("edit %d at [%d,%d): %w", i, e.Range.Start, e.Range.End, ErrStale)
		}
	}

	_, ranges, err := Splice(current, t.edits)
	if err != nil {
		return CommitResult{}, err
	}
	info, err := doc.Apply(t.Edits())
	if err != nil {
		return CommitResult{}, fmt.Errorf("applying edits: %w", err)
	}
	t.committed = true

	return CommitResult{
		Text:    doc.Bytes(),
		Ranges:  ranges,
		Version: doc.Version(),
		Info:    info,
	}, nil
}
