// Package refactoring exposes the JavaScript refactorings as editor commands.
package refactoring

import (
	"context"

	"github.com/bethropolis/jsrefactor/internal/event"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/plugin"
	"github.com/bethropolis/jsrefactor/internal/refactor"
)

var _ plugin.Plugin = (*Refactoring)(nil)

// Refactoring registers one command per refactoring.
type Refactoring struct {
	engine *refactor.Engine
	api    plugin.EditorAPI
}

// New creates the plugin around engine.
func New(engine *refactor.Engine) *Refactoring {
	return &Refactoring{engine: engine}
}

// Name returns the unique name of the plugin.
func (p *Refactoring) Name() string {
	return "refactoring"
}

// Initialize registers the refactoring commands.
func (p *Refactoring) Initialize(api plugin.EditorAPI) error {
	p.api = api
	for _, c := range refactor.Commands {
		if err := api.RegisterCommand(c.ID, p.command(c)); err != nil {
			return err
		}
		logger.DebugTagf("plugin", "%s: registered %s (%s)", p.Name(), c.ID, p.engine.Title(c))
	}
	return nil
}

// Shutdown is a no-op.
func (p *Refactoring) Shutdown() error {
	return nil
}

// command adapts c to a host command. Failures the user can fix are
// reported inline by the engine and do not fail the command.
func (p *Refactoring) command(c refactor.Command) plugin.CommandFunc {
	return func(ctx context.Context) error {
		res, err := p.engine.Run(ctx, c, p.api)
		if err != nil {
			p.api.DispatchEvent(event.TypeRefactorFailed, event.RefactorData{
				Command:   c.ID,
				SessionID: res.SessionID,
				Reason:    err.Error(),
			})
			if refactor.IsUserError(err) {
				return nil
			}
			return err
		}
		p.api.DispatchEvent(event.TypeRefactorApplied, event.RefactorData{Command: c.ID, SessionID: res.SessionID})
		return nil
	}
}
