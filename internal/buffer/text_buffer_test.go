package buffer

import (
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/jsrefactor/internal/types"
)

func TestLines(t *testing.T) {
	tb := New([]byte("a\nbc\n"))

	assert.Equal(t, 3, tb.LineCount())
	line, err := tb.Line(1)
	require.NoError(t, err)
	assert.Equal(t, "bc", string(line))

	line, err = tb.Line(2)
	require.NoError(t, err)
	assert.Empty(t, line)

	_, err = tb.Line(3)
	assert.Error(t, err)
}

func TestPositionConversion(t *testing.T) {
	// "é" written as e + combining acute is one column.
	tb := New([]byte("ab\nxe\u0301y\n"))

	tests := []struct {
		offset int
		pos    types.Position
	}{
		{0, types.Position{Line: 0, Col: 0}},
		{2, types.Position{Line: 0, Col: 2}},
		{3, types.Position{Line: 1, Col: 0}},
		{4, types.Position{Line: 1, Col: 1}},
		{7, types.Position{Line: 1, Col: 2}},
		{9, types.Position{Line: 2, Col: 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.pos, tb.OffsetToPosition(tt.offset), "offset %d", tt.offset)
		assert.Equal(t, tt.offset, tb.PositionToOffset(tt.pos), "pos %+v", tt.pos)
	}

	assert.Equal(t, 2, tb.PositionToOffset(types.Position{Line: 0, Col: 10}), "column clamps to line end")
	assert.Equal(t, types.Position{Line: 2, Col: 0}, tb.OffsetToPosition(100))
}

func TestApplyIsOneVersion(t *testing.T) {
	tb := New([]byte("foo();\nbar();"))
	v := tb.Version()

	info, err := tb.Apply([]types.TextEdit{
		{Range: types.Range{Start: 7, End: 7}, NewText: "// x\n"},
		{Range: types.Range{Start: 0, End: 3}, NewText: "baz"},
	})
	require.NoError(t, err)

	assert.Equal(t, "baz();\n// x\nbar();", string(tb.Bytes()))
	assert.Equal(t, v+1, tb.Version())
	assert.True(t, tb.IsModified())
	assert.Equal(t, 3, tb.LineCount())

	assert.Equal(t, uint32(0), info.StartIndex)
	assert.Equal(t, uint32(7), info.OldEndIndex)
	assert.Equal(t, uint32(12), info.NewEndIndex)
	assert.Equal(t, sitter.Point{Row: 1, Column: 0}, info.OldEndPosition)
	assert.Equal(t, sitter.Point{Row: 2, Column: 0}, info.NewEndPosition)
}

func TestApplyRejectsOverlapWithoutChange(t *testing.T) {
	tb := New([]byte("abcdef"))
	v := tb.Version()

	_, err := tb.Apply([]types.TextEdit{
		{Range: types.Range{Start: 0, End: 3}, NewText: "x"},
		{Range: types.Range{Start: 2, End: 4}, NewText: "y"},
	})
	require.Error(t, err)
	assert.Equal(t, "abcdef", string(tb.Bytes()))
	assert.Equal(t, v, tb.Version())
	assert.False(t, tb.IsModified())
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte("x();\n"), 0o600))

	tb := New(nil)
	require.NoError(t, tb.Load(path))
	assert.Equal(t, "x();\n", string(tb.Bytes()))
	assert.Equal(t, path, tb.FilePath())

	_, err := tb.Apply([]types.TextEdit{{Range: types.Range{Start: 0, End: 0}, NewText: "y();"}})
	require.NoError(t, err)
	require.NoError(t, tb.Save(""))
	assert.False(t, tb.IsModified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "y();x();\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	missing := filepath.Join(dir, "new.js")
	require.NoError(t, tb.Load(missing))
	assert.Empty(t, tb.Bytes())
	assert.Equal(t, 1, tb.LineCount())
}
