// internal/event/event.go
package event

import "github.com/bethropolis/jsrefactor/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified // buffer content changed through one edit batch
	TypeBufferLoaded
	TypeBufferSaved
	TypeSelectionChanged

	TypeRefactorApplied // a refactoring committed its edit
	TypeRefactorFailed  // a refactoring stopped before touching the buffer
)

func (t Type) String() string {
	switch t {
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeBufferSaved:
		return "BufferSaved"
	case TypeSelectionChanged:
		return "SelectionChanged"
	case TypeRefactorApplied:
		return "RefactorApplied"
	case TypeRefactorFailed:
		return "RefactorFailed"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data any
}

// BufferModifiedData describes one applied edit batch.
type BufferModifiedData struct {
	Edit    types.EditInfo
	Version uint64
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// SelectionChangedData carries the new selection as byte offsets.
type SelectionChangedData struct {
	Selection types.Selection
}

// RefactorData describes the outcome of one refactoring command.
type RefactorData struct {
	Command   string
	SessionID string
	Reason    string // set when the refactoring was rejected or failed
}
