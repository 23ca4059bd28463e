// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/jsrefactor/internal/types"

// Buffer defines the interface for text buffer operations.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Bytes() []byte
	Version() uint64
	LineCount() int
	Line(index int) ([]byte, error)
	OffsetToPosition(offset int) types.Position
	PositionToOffset(pos types.Position) int
	// Apply replaces several ranges as one change and reports the
	// enclosing span for incremental reparsing.
	Apply(edits []types.TextEdit) (types.EditInfo, error)
	FilePath() string
	IsModified() bool
}
