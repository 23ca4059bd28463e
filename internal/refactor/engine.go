// Package refactor implements the JavaScript refactoring commands on top of
// a syntax snapshot of the focused document.
package refactor

import (
	"context"
	"errors"

	"github.com/bethropolis/jsrefactor/internal/edit"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/messages"
	"github.com/bethropolis/jsrefactor/internal/syntax"
	"github.com/bethropolis/jsrefactor/internal/syntax/lang"
	"github.com/bethropolis/jsrefactor/internal/template"
)

// Engine runs refactoring commands. It holds only read-only state, so one
// engine serves every invocation.
type Engine struct {
	parser    *syntax.Parser
	templates *template.Registry
	messages  *messages.Catalog
	language  *lang.Language
	reindent  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithReindent controls whether generated multi-line code takes the
// indentation of the line it is inserted on.
func WithReindent(on bool) Option {
	return func(e *Engine) { e.reindent = on }
}

// WithLanguage sets the language used for files without a registered extension.
func WithLanguage(l *lang.Language) Option {
	return func(e *Engine) { e.language = l }
}

// New returns an engine rendering from templates and reporting failures
// with msgs. The registry must carry every template the commands use.
func New(templates *template.Registry, msgs *messages.Catalog, opts ...Option) (*Engine, error) {
	if err := templates.Check(template.Required); err != nil {
		return nil, err
	}

	e := &Engine{
		parser:    syntax.NewParser(),
		templates: templates,
		messages:  msgs,
		language:  lang.JavaScript,
		reindent:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Command is one refactoring the engine offers.
type Command struct {
	ID    string
	Title messages.Key
	Error messages.Key
	run   func(*Session) (Result, error)
}

// Command IDs as registered with the host.
const (
	CommandWrapInTryCatch          = "refactoring.wrapintrycatch"
	CommandWrapInCondition         = "refactoring.wrapincondition"
	CommandConvertToArrowFunction  = "refactoring.converttoarrowfunction"
	CommandCreateGettersAndSetters = "refactoring.creategettersandsetters"
)

// Commands lists every refactoring in menu order.
var Commands = []Command{
	{ID: CommandWrapInTryCatch, Title: messages.CmdTryCatch, Error: messages.ErrTryCatch, run: (*Session).WrapInTryCatch},
	{ID: CommandWrapInCondition, Title: messages.CmdWrapCondition, Error: messages.ErrWrapCondition, run: (*Session).WrapInCondition},
	{ID: CommandConvertToArrowFunction, Title: messages.CmdArrowFunction, Error: messages.ErrArrowFunction, run: (*Session).ConvertToArrowFunction},
	{ID: CommandCreateGettersAndSetters, Title: messages.CmdGettersSetters, Error: messages.ErrGettersSetters, run: (*Session).CreateGettersAndSetters},
}

// Lookup returns the command registered under id.
func Lookup(id string) (Command, bool) {
	for _, c := range Commands {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// Title returns the localized command title.
func (e *Engine) Title(c Command) string {
	return e.messages.Text(c.Title)
}

// Run executes c against ed in a fresh session. Precondition failures and
// stale documents are shown inline at the cursor and returned; the
// document is untouched in both cases.
func (e *Engine) Run(ctx context.Context, c Command, ed Editor) (Result, error) {
	s, err := e.NewSession(ctx, ed)
	if err != nil {
		return Result{}, err
	}

	res, err := c.run(s)
	switch {
	case err == nil:
		logger.InfoTagf("refactor", "%s: %s applied (%d edits)", s.ID, c.ID, len(res.Edits))
		return res, nil
	case IsUserError(err):
		logger.InfoTagf("refactor", "%s: %s rejected: %v", s.ID, c.ID, err)
		ed.ShowInlineMessage(s.selection.Head, e.messages.Text(c.Error))
	case errors.Is(err, edit.ErrStale):
		logger.Warnf("refactor: %s: %s: %v", s.ID, c.ID, err)
		ed.ShowInlineMessage(s.selection.Head, e.messages.Text(messages.ErrApply))
	default:
		logger.Errorf("refactor: %s: %s: %v", s.ID, c.ID, err)
	}
	return Result{SessionID: s.ID}, err
}

// WrapInTryCatch runs the try/catch wrap against ed.
func (e *Engine) WrapInTryCatch(ctx context.Context, ed Editor) (Result, error) {
	return e.Run(ctx, Commands[0], ed)
}

// WrapInCondition runs the condition wrap against ed.
func (e *Engine) WrapInCondition(ctx context.Context, ed Editor) (Result, error) {
	return e.Run(ctx, Commands[1], ed)
}

// ConvertToArrowFunction runs the arrow conversion against ed.
func (e *Engine) ConvertToArrowFunction(ctx context.Context, ed Editor) (Result, error) {
	return e.Run(ctx, Commands[2], ed)
}

// CreateGettersAndSetters runs accessor generation against ed.
func (e *Engine) CreateGettersAndSetters(ctx context.Context, ed Editor) (Result, error) {
	return e.Run(ctx, Commands[3], ed)
}
