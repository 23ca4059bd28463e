// Package host is a minimal headless editor: one buffer, one selection,
// an undo history and the plugin surface refactorings run against.
package host

import (
	"context"
	"fmt"
	"sort"

	"github.com/bethropolis/jsrefactor/internal/buffer"
	"github.com/bethropolis/jsrefactor/internal/clipboard"
	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/event"
	"github.com/bethropolis/jsrefactor/internal/history"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/plugin"
	"github.com/bethropolis/jsrefactor/internal/types"
)

var _ plugin.EditorAPI = (*Editor)(nil)
var _ history.EditorInterface = (*Editor)(nil)

// InlineMessage is a message anchored at a document position.
type InlineMessage struct {
	Offset   int
	Position types.Position
	Text     string
}

// Editor holds the focused document and everything commands act on.
// It is not safe for concurrent use.
type Editor struct {
	buf          *buffer.TextBuffer
	selection    types.Selection
	events       *event.Manager
	history      *history.Manager
	plugins      *plugin.Manager
	clipboard    *clipboard.Manager
	commands     map[string]plugin.CommandFunc
	pluginConfig map[string]map[string]any

	running     string // command being executed
	awaitingSel bool   // last recorded change has no final selection yet
	inline      *InlineMessage
}

// Option configures an Editor.
type Option func(*Editor)

// WithPluginConfig sets the per-plugin configuration tables.
func WithPluginConfig(cfg map[string]map[string]any) Option {
	return func(e *Editor) { e.pluginConfig = cfg }
}

// WithClipboard sets the clipboard used by edit.copy and edit.paste.
func WithClipboard(m *clipboard.Manager) Option {
	return func(e *Editor) { e.clipboard = m }
}

// WithMaxHistory bounds the undo stack.
func WithMaxHistory(n int) Option {
	return func(e *Editor) { e.history = history.NewManager(e, n) }
}

// New creates an editor over buf with the cursor at the start.
func New(buf *buffer.TextBuffer, opts ...Option) *Editor {
	e := &Editor{
		buf:       buf,
		events:    event.NewManager(),
		plugins:   plugin.NewManager(),
		clipboard: clipboard.NewManager(false),
		commands:  make(map[string]plugin.CommandFunc),
	}
	e.history = history.NewManager(e, history.DefaultMaxHistory)
	for _, opt := range opts {
		opt(e)
	}
	e.registerBuiltinCommands()
	return e
}

// Open loads path into a new editor.
func Open(path string, opts ...Option) (*Editor, error) {
	buf := buffer.New(nil)
	if err := buf.Load(path); err != nil {
		return nil, err
	}
	e := New(buf, opts...)
	e.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	return e, nil
}

// LoadPlugins registers and initializes plugins in order.
func (e *Editor) LoadPlugins(plugins ...plugin.Plugin) error {
	for _, p := range plugins {
		if err := e.plugins.Register(p); err != nil {
			return err
		}
	}
	return e.plugins.InitializePlugins(e)
}

// Close shuts down every plugin.
func (e *Editor) Close() {
	e.plugins.ShutdownPlugins()
}

// --- Document ---

func (e *Editor) Bytes() []byte    { return e.buf.Bytes() }
func (e *Editor) Version() uint64  { return e.buf.Version() }
func (e *Editor) FilePath() string { return e.buf.FilePath() }
func (e *Editor) IsModified() bool { return e.buf.IsModified() }

// GetBuffer returns the underlying buffer.
func (e *Editor) GetBuffer() buffer.Buffer { return e.buf }

// Apply replaces the edit ranges as one buffer change and records it as a
// single undo step. The selection set right after becomes the step's
// redo selection.
func (e *Editor) Apply(edits []types.TextEdit) (types.EditInfo, error) {
	_, ranges, err := edit.Splice(e.buf.Bytes(), edits)
	if err != nil {
		return types.EditInfo{}, err
	}
	info, err := e.buf.Apply(edits)
	if err != nil {
		return types.EditInfo{}, err
	}

	label := e.running
	if label == "" {
		label = "edit"
	}
	e.history.RecordChange(history.NewChange(label, edits, ranges, e.selection, e.selection))
	e.awaitingSel = true

	e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: info, Version: e.buf.Version()})
	return info, nil
}

// Save writes the buffer to its file.
func (e *Editor) Save() error {
	if err := e.buf.Save(""); err != nil {
		return err
	}
	e.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buf.FilePath()})
	return nil
}

// --- Cursor ---

func (e *Editor) Selection() types.Selection { return e.selection }

// SetSelection moves the selection, clamped to the document.
func (e *Editor) SetSelection(sel types.Selection) {
	size := len(e.buf.Bytes())
	sel.Anchor = min(max(sel.Anchor, 0), size)
	sel.Head = min(max(sel.Head, 0), size)
	e.selection = sel

	if e.awaitingSel {
		e.history.SetLastSelectionAfter(sel)
		e.awaitingSel = false
	}
	e.events.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Selection: sel})
}

// SetCursorPosition moves the cursor to a line and grapheme column.
func (e *Editor) SetCursorPosition(pos types.Position) {
	e.SetSelection(types.Cursor(e.buf.PositionToOffset(pos)))
}

// CursorPosition returns the line and column of the selection head.
func (e *Editor) CursorPosition() types.Position {
	return e.buf.OffsetToPosition(e.selection.Head)
}

// ShowInlineMessage records msg at offset; the latest one is kept.
func (e *Editor) ShowInlineMessage(offset int, msg string) {
	e.inline = &InlineMessage{Offset: offset, Position: e.buf.OffsetToPosition(offset), Text: msg}
	logger.Debugf("host: inline message at %v: %s", e.inline.Position, msg)
}

// InlineMessage returns the last inline message, if any.
func (e *Editor) InlineMessage() (InlineMessage, bool) {
	if e.inline == nil {
		return InlineMessage{}, false
	}
	return *e.inline, true
}

// ClearInlineMessage removes the current inline message.
func (e *Editor) ClearInlineMessage() {
	e.inline = nil
}

// --- Events ---

func (e *Editor) DispatchEvent(eventType event.Type, data any) {
	e.events.Dispatch(eventType, data)
}

func (e *Editor) SubscribeEvent(eventType event.Type, handler event.Handler) {
	e.events.Subscribe(eventType, handler)
}

// GetEventManager returns the editor's event bus.
func (e *Editor) GetEventManager() *event.Manager { return e.events }

// --- Commands ---

// RegisterCommand makes cmdFunc available under name.
func (e *Editor) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := e.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	e.commands[name] = cmdFunc
	logger.DebugTagf("host", "Registered command '%s'", name)
	return nil
}

// ExecuteCommand runs the command registered under name.
func (e *Editor) ExecuteCommand(ctx context.Context, name string) error {
	cmd, ok := e.commands[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	e.inline = nil
	e.running = name
	defer func() { e.running = "" }()
	return cmd(ctx)
}

// Commands returns the registered command names, sorted.
func (e *Editor) Commands() []string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPluginConfigValue returns a value from the [plugins.<name>] table.
func (e *Editor) GetPluginConfigValue(pluginName, key string) (any, bool) {
	v, ok := e.pluginConfig[pluginName][key]
	return v, ok
}

// Copy puts the selected text on the clipboard. An empty selection
// copies nothing.
func (e *Editor) Copy() (bool, error) {
	r := e.selection.Range()
	if r.IsEmpty() {
		return false, nil
	}
	if err := e.clipboard.Write(string(e.buf.Bytes()[r.Start:r.End])); err != nil {
		return false, fmt.Errorf("copy: %w", err)
	}
	return true, nil
}

// Paste replaces the selection with the clipboard text as one undo step
// and puts the cursor after it.
func (e *Editor) Paste() (bool, error) {
	text, err := e.clipboard.Read()
	if err != nil {
		return false, fmt.Errorf("paste: %w", err)
	}
	if text == "" {
		return false, nil
	}

	r := e.selection.Range()
	old := string(e.buf.Bytes()[r.Start:r.End])
	if _, err := e.Apply([]types.TextEdit{{Range: r, NewText: text, OldText: old}}); err != nil {
		return false, fmt.Errorf("paste: %w", err)
	}
	e.SetSelection(types.Cursor(r.Start + len(text)))
	return true, nil
}

// Undo reverts the last change.
func (e *Editor) Undo() (bool, error) {
	e.awaitingSel = false
	return e.history.Undo()
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() (bool, error) {
	e.awaitingSel = false
	return e.history.Redo()
}

func (e *Editor) registerBuiltinCommands() {
	builtins := map[string]plugin.CommandFunc{
		"edit.undo":  func(context.Context) error { _, err := e.Undo(); return err },
		"edit.redo":  func(context.Context) error { _, err := e.Redo(); return err },
		"edit.copy":  func(context.Context) error { _, err := e.Copy(); return err },
		"edit.paste": func(context.Context) error { _, err := e.Paste(); return err },
		"file.save":  func(context.Context) error { return e.Save() },
	}
	for name, fn := range builtins {
		if err := e.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", name, err)
		}
	}
}
