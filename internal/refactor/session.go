package refactor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/syntax"
	"github.com/bethropolis/jsrefactor/internal/syntax/lang"
	"github.com/bethropolis/jsrefactor/internal/template"
	"github.com/bethropolis/jsrefactor/internal/types"
)

// Editor is the part of the host editor a refactoring works against.
type Editor interface {
	edit.Document
	FilePath() string
	Selection() types.Selection
	SetSelection(types.Selection)
	ShowInlineMessage(offset int, msg string)
}

// Result describes a committed refactoring.
type Result struct {
	SessionID string
	Edits     []types.TextEdit
	Selection types.Selection
	Version   uint64
}

// Session is the context of one command invocation: the text and tree at
// invocation time and the selection the user made. Every offset a pipeline
// computes comes from this snapshot. A session commits at most once.
type Session struct {
	ID        string
	snapshot  *syntax.Snapshot
	selection types.Selection
	editor    Editor
	templates *template.Registry
	reindent  bool
	consumed  bool
}

// NewSession snapshots ed and parses it. Files without a registered
// extension are parsed with the engine's default language.
func (e *Engine) NewSession(ctx context.Context, ed Editor) (*Session, error) {
	l := lang.GetForFile(ed.FilePath())
	if l == nil {
		l = e.language
	}
	snap, err := e.parser.Parse(ctx, l, ed.Bytes(), ed.Version())
	if err != nil {
		return nil, err
	}

	sel := ed.Selection()
	sel.Anchor = min(max(sel.Anchor, 0), len(snap.Text))
	sel.Head = min(max(sel.Head, 0), len(snap.Text))

	s := &Session{
		ID:        uuid.NewString(),
		snapshot:  snap,
		selection: sel,
		editor:    ed,
		templates: e.templates,
		reindent:  e.reindent,
	}
	logger.DebugTagf("session", "%s: version %d, selection %+v, parse errors %v",
		s.ID, snap.Version, s.selection, snap.HasErrors)
	return s, nil
}

// Snapshot returns the frozen text and tree the session works on.
func (s *Session) Snapshot() *syntax.Snapshot {
	return s.snapshot
}

func (s *Session) builder() *edit.Builder {
	return edit.NewBuilder(s.snapshot.Text, s.snapshot.Version)
}

// commit applies b to the editor as one step and moves the selection to
// what place returns for the committed result.
func (s *Session) commit(b *edit.Builder, place func(edit.CommitResult) types.Selection) (Result, error) {
	if s.consumed {
		return Result{}, ErrSessionConsumed
	}
	tx, err := b.Build()
	if err != nil {
		return Result{}, err
	}
	res, err := tx.Commit(s.editor)
	if err != nil {
		return Result{}, err
	}
	s.consumed = true

	sel := place(res)
	s.editor.SetSelection(sel)
	logger.DebugTagf("session", "%s: committed %d edits, version %d", s.ID, len(tx.Edits()), res.Version)

	return Result{SessionID: s.ID, Edits: tx.Edits(), Selection: sel, Version: res.Version}, nil
}

func (s *Session) render(key string, params template.Params, opts ...template.Option) (string, error) {
	text, err := s.templates.Render(key, params, opts...)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", key, err)
	}
	return text, nil
}
