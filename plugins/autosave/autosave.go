// Package autosave writes the document back to disk after every applied
// refactoring.
package autosave

import (
	"github.com/bethropolis/jsrefactor/internal/event"
	"github.com/bethropolis/jsrefactor/internal/logger"
	"github.com/bethropolis/jsrefactor/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const defaultEnabled = false

// AutoSave saves the buffer whenever a refactoring commits.
type AutoSave struct {
	api     plugin.EditorAPI
	enabled bool
	saves   int
	lastErr error
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{enabled: defaultEnabled}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads the "enabled" setting and subscribes to refactoring results.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	} else {
		logger.Debugf("%s: Config 'enabled' not found, using default (%v)", pluginName, p.enabled)
	}

	api.SubscribeEvent(event.TypeRefactorApplied, p.handleRefactorApplied)
	logger.Debugf("%s initialized. Enabled: %v", pluginName, p.enabled)
	return nil
}

// Shutdown is a no-op.
func (p *AutoSave) Shutdown() error {
	return nil
}

// Saves returns how many times the plugin saved the buffer.
func (p *AutoSave) Saves() int {
	return p.saves
}

// Err returns the error of the last failed save.
func (p *AutoSave) Err() error {
	return p.lastErr
}

func (p *AutoSave) handleRefactorApplied(e event.Event) bool {
	if !p.enabled || !p.api.IsModified() {
		return false
	}

	filePath := p.api.FilePath()
	if filePath == "" {
		logger.Debugf("%s: Buffer is modified but has no name, skipping auto-save.", p.Name())
		return false
	}

	data, _ := e.Data.(event.RefactorData)
	if err := p.api.Save(); err != nil {
		p.lastErr = err
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
		return false
	}
	p.saves++
	logger.Infof("%s: Saved '%s' after %s", p.Name(), filePath, data.Command)
	return false
}
