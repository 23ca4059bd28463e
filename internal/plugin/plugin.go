// internal/plugin/plugin.go
package plugin

import (
	"context"

	"github.com/bethropolis/jsrefactor/internal/event"
	"github.com/bethropolis/jsrefactor/internal/types"
)

// CommandFunc is a named action on the focused document.
type CommandFunc func(ctx context.Context) error

// EditorAPI is the controlled surface plugins use to reach the editor core.
type EditorAPI interface {
	// --- Document ---
	Bytes() []byte
	Version() uint64
	FilePath() string
	IsModified() bool
	// Apply replaces several ranges as one undoable change.
	Apply(edits []types.TextEdit) (types.EditInfo, error)
	Save() error

	// --- Cursor ---
	Selection() types.Selection
	SetSelection(sel types.Selection)
	// ShowInlineMessage displays msg anchored at offset.
	ShowInlineMessage(offset int, msg string)

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data any)
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (any, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string
	// Initialize is called once when the plugin is loaded. Plugins register
	// commands and subscribe to events here.
	Initialize(api EditorAPI) error
	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
