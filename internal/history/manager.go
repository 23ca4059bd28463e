package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/jsrefactor/internal/buffer"
	"github.com/bethropolis/jsrefactor/internal/event"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines the methods the history manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	SetSelection(types.Selection)
	GetEventManager() *event.Manager
}

// Manager handles the undo/redo stack.
type Manager struct {
	editor       EditorInterface
	changes      []Change
	currentIndex int // index of the next change to redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a new change, clearing any redo history.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}
	m.changes = append(m.changes, change)
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)

	logger.Debugf("History: Recorded %q (%d edits). Index: %d, Count: %d",
		change.Label, len(change.Edits), m.currentIndex, len(m.changes))
}

// SetLastSelectionAfter updates the selection restored when the most recent
// change is redone.
func (m *Manager) SetLastSelectionAfter(sel types.Selection) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.currentIndex > 0 && m.currentIndex == len(m.changes) {
		m.changes[m.currentIndex-1].SelectionAfter = sel
	}
}

// Undo reverts the last recorded change as one buffer step.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		logger.Debugf("History: Nothing to undo.")
		return false, nil
	}

	change := m.changes[m.currentIndex-1]
	if err := m.apply(change.Inverse, change.SelectionBefore); err != nil {
		logger.Errorf("History: Error undoing %q: %v", change.Label, err)
		return false, fmt.Errorf("undo failed: %w", err)
	}
	m.currentIndex--
	logger.Debugf("History: Undid %q. Index: %d", change.Label, m.currentIndex)
	return true, nil
}

// Redo reapplies the last undone change as one buffer step.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.changes) {
		logger.Debugf("History: Nothing to redo. currentIndex=%d, len(changes)=%d", m.currentIndex, len(m.changes))
		return false, nil
	}

	change := m.changes[m.currentIndex]
	if err := m.apply(change.Edits, change.SelectionAfter); err != nil {
		logger.Errorf("History: Error redoing %q: %v", change.Label, err)
		return false, fmt.Errorf("redo failed: %w", err)
	}
	m.currentIndex++
	logger.Debugf("History: Redid %q. Index: %d", change.Label, m.currentIndex)
	return true, nil
}

func (m *Manager) apply(edits []types.TextEdit, sel types.Selection) error {
	buf := m.editor.GetBuffer()
	text := buf.Bytes()
	for _, e := range edits {
		if e.Range.End > len(text) || string(text[e.Range.Start:e.Range.End]) != e.OldText {
			return fmt.Errorf("buffer no longer matches recorded change at [%d,%d)", e.Range.Start, e.Range.End)
		}
	}

	info, err := buf.Apply(edits)
	if err != nil {
		return err
	}
	m.editor.SetSelection(sel)

	if eventMgr := m.editor.GetEventManager(); eventMgr != nil {
		eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: info, Version: buf.Version()})
	}
	return nil
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0]
	m.currentIndex = 0
	logger.Debugf("History: Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
