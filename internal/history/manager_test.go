package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/jsrefactor/internal/buffer"
	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/event"
	"github.com/bethropolis/jsrefactor/internal/types"
)

type fakeEditor struct {
	buf    *buffer.TextBuffer
	sel    types.Selection
	events *event.Manager
}

func (f *fakeEditor) GetBuffer() buffer.Buffer        { return f.buf }
func (f *fakeEditor) SetSelection(s types.Selection)  { f.sel = s }
func (f *fakeEditor) GetEventManager() *event.Manager { return f.events }

func commit(t *testing.T, ed *fakeEditor, m *Manager, build func(*edit.Builder)) {
	t.Helper()
	before := ed.sel
	b := edit.NewBuilder(ed.buf.Bytes(), ed.buf.Version())
	build(b)
	tx, err := b.Build()
	require.NoError(t, err)
	res, err := tx.Commit(ed.buf)
	require.NoError(t, err)
	after := types.Cursor(res.Ranges[0].End)
	ed.sel = after
	m.RecordChange(NewChange("test", tx.Edits(), res.Ranges, before, after))
}

func TestUndoRedoBatch(t *testing.T) {
	ed := &fakeEditor{buf: buffer.New([]byte("{a: 1, b: 2}")), sel: types.Cursor(8), events: event.NewManager()}
	m := NewManager(ed, 0)

	modified := 0
	ed.events.Subscribe(event.TypeBufferModified, func(event.Event) bool {
		modified++
		return false
	})

	commit(t, ed, m, func(b *edit.Builder) {
		b.Insert(11, ",")
		b.Insert(11, "\ngetB")
		b.Replace(types.Range{Start: 1, End: 2}, "alpha")
	})
	require.Equal(t, "{alpha: 1, b: 2,\ngetB}", string(ed.buf.Bytes()))

	ok, err := m.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{a: 1, b: 2}", string(ed.buf.Bytes()))
	assert.Equal(t, types.Cursor(8), ed.sel)
	assert.True(t, m.CanRedo())

	ok, err = m.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{alpha: 1, b: 2,\ngetB}", string(ed.buf.Bytes()))
	assert.Equal(t, 2, modified)

	ok, err = m.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUndoRejectsDivergedBuffer(t *testing.T) {
	ed := &fakeEditor{buf: buffer.New([]byte("x")), events: event.NewManager()}
	m := NewManager(ed, 0)

	commit(t, ed, m, func(b *edit.Builder) { b.Insert(1, "y") })
	_, err := ed.buf.Apply([]types.TextEdit{{Range: types.Range{Start: 0, End: 2}, NewText: "z"}})
	require.NoError(t, err)

	_, err = m.Undo()
	assert.Error(t, err)
	assert.True(t, m.CanUndo())
	assert.Equal(t, "z", string(ed.buf.Bytes()))
}

func TestHistoryLimitAndClear(t *testing.T) {
	ed := &fakeEditor{buf: buffer.New(nil), events: event.NewManager()}
	m := NewManager(ed, 2)

	for i := 0; i < 3; i++ {
		commit(t, ed, m, func(b *edit.Builder) { b.Insert(0, "a") })
	}
	for i := 0; i < 2; i++ {
		ok, err := m.Undo()
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.False(t, m.CanUndo())
	assert.Equal(t, "a", string(ed.buf.Bytes()))

	m.Clear()
	assert.False(t, m.CanRedo())
}
