package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/rivo/uniseg"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/types"
)

// TextBuffer keeps the document as one contiguous byte slice plus an index
// of line starts. Every successful Apply bumps the version by one.
type TextBuffer struct {
	text       []byte
	lineStarts []int
	version    uint64
	filePath   string
	modified   bool
}

// New creates a buffer holding text.
func New(text []byte) *TextBuffer {
	tb := &TextBuffer{}
	tb.set(append([]byte(nil), text...))
	return tb
}

func (tb *TextBuffer) set(text []byte) {
	tb.text = text
	tb.lineStarts = tb.lineStarts[:0]
	tb.lineStarts = append(tb.lineStarts, 0)
	for i, b := range text {
		if b == '\n' {
			tb.lineStarts = append(tb.lineStarts, i+1)
		}
	}
}

// Load reads a file into the buffer. Replaces existing content.
// A missing file yields an empty buffer bound to filePath.
func (tb *TextBuffer) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to open file '%s': %w", filePath, err)
		}
		data = nil
	}
	tb.set(data)
	tb.filePath = filePath
	tb.modified = false
	tb.version++
	logger.Debugf("buffer: loaded %s (%d bytes, %d lines)", filePath, len(data), tb.LineCount())
	return nil
}

// Save writes the buffer content to filePath, or to the stored path when empty.
func (tb *TextBuffer) Save(filePath string) error {
	path := tb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, tb.text, mode); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	tb.filePath = path
	tb.modified = false
	return nil
}

// Bytes returns the current content. Callers must not modify it.
func (tb *TextBuffer) Bytes() []byte {
	return tb.text
}

func (tb *TextBuffer) Version() uint64 {
	return tb.version
}

func (tb *TextBuffer) FilePath() string {
	return tb.filePath
}

// IsModified returns true if the buffer has unsaved changes.
func (tb *TextBuffer) IsModified() bool {
	return tb.modified
}

func (tb *TextBuffer) LineCount() int {
	return len(tb.lineStarts)
}

// Line returns the content of line index without its newline.
func (tb *TextBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(tb.lineStarts) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(tb.lineStarts)-1)
	}
	start, end := tb.lineBounds(index)
	return tb.text[start:end], nil
}

func (tb *TextBuffer) lineBounds(index int) (int, int) {
	start := tb.lineStarts[index]
	end := len(tb.text)
	if index+1 < len(tb.lineStarts) {
		end = tb.lineStarts[index+1] - 1
	}
	return start, end
}

func (tb *TextBuffer) lineOf(offset int) int {
	lo, hi := 0, len(tb.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if tb.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// OffsetToPosition converts a byte offset to a line and grapheme column.
// Offsets are clamped to the buffer; an offset inside a grapheme cluster
// reports the cluster's column.
func (tb *TextBuffer) OffsetToPosition(offset int) types.Position {
	offset = min(max(offset, 0), len(tb.text))
	line := tb.lineOf(offset)
	start := tb.lineStarts[line]

	col := 0
	state := -1
	rest := tb.text[start:offset]
	for len(rest) > 0 {
		var cluster []byte
		cluster, rest, _, state = uniseg.Step(rest, state)
		if len(cluster) == 0 {
			break
		}
		col++
	}
	return types.Position{Line: line, Col: col}
}

// PositionToOffset converts a line and grapheme column to a byte offset,
// clamping both to the buffer.
func (tb *TextBuffer) PositionToOffset(pos types.Position) int {
	line := min(max(pos.Line, 0), len(tb.lineStarts)-1)
	start, end := tb.lineBounds(line)

	offset := start
	state := -1
	rest := tb.text[start:end]
	for col := 0; col < pos.Col && len(rest) > 0; col++ {
		var cluster []byte
		cluster, rest, _, state = uniseg.Step(rest, state)
		offset += len(cluster)
	}
	return offset
}

// Apply replaces every edit range in one step. Edits are interpreted against
// the current content and must not overlap.
func (tb *TextBuffer) Apply(edits []types.TextEdit) (types.EditInfo, error) {
	if len(edits) == 0 {
		return types.EditInfo{}, nil
	}
	out, _, err := edit.Splice(tb.text, edits)
	if err != nil {
		return types.EditInfo{}, err
	}

	lo, hi, delta := len(tb.text), 0, 0
	for _, e := range edits {
		lo = min(lo, e.Range.Start)
		hi = max(hi, e.Range.End)
		delta += len(e.NewText) - e.Range.Len()
	}

	info, err := editInfo(tb.text, out, lo, hi, hi+delta)
	if err != nil {
		return types.EditInfo{}, err
	}

	tb.set(out)
	tb.version++
	tb.modified = true

	logger.DebugTagf("buffer", "applied %d edits [%d,%d) -> version %d", len(edits), lo, hi, tb.version)
	return info, nil
}

func editInfo(oldText, newText []byte, start, oldEnd, newEnd int) (types.EditInfo, error) {
	var info types.EditInfo
	var err error
	if info.StartIndex, err = safecast.Conv[uint32](start); err != nil {
		return info, err
	}
	if info.OldEndIndex, err = safecast.Conv[uint32](oldEnd); err != nil {
		return info, err
	}
	if info.NewEndIndex, err = safecast.Conv[uint32](newEnd); err != nil {
		return info, err
	}
	if info.StartPosition, err = point(oldText, start); err != nil {
		return info, err
	}
	if info.OldEndPosition, err = point(oldText, oldEnd); err != nil {
		return info, err
	}
	info.NewEndPosition, err = point(newText, newEnd)
	return info, err
}

// point converts an offset to a tree-sitter row and byte column.
func point(text []byte, offset int) (sitter.Point, error) {
	lineStart := bytes.LastIndexByte(text[:offset], '\n') + 1
	row, err := safecast.Conv[uint32](bytes.Count(text[:offset], []byte{'\n'}))
	if err != nil {
		return sitter.Point{}, err
	}
	col, err := safecast.Conv[uint32](offset - lineStart)
	if err != nil {
		return sitter.Point{}, err
	}
	return sitter.Point{Row: row, Column: col}, nil
}

var _ Buffer = (*TextBuffer)(nil)
var _ edit.Document = (*TextBuffer)(nil)
