// Package clipboard holds copied text, in the system clipboard when one is
// reachable and in an in-memory register otherwise.
package clipboard

import (
	sysclip "github.com/atotto/clipboard"

	"github.com/bethropolis/jsrefactor/internal/logger"
)

// Manager handles clipboard operations.
type Manager struct {
	useSystem bool
	register  string

	read  func() (string, error)
	write func(string) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackend replaces the system clipboard calls.
func WithBackend(read func() (string, error), write func(string) error) Option {
	return func(m *Manager) {
		m.read = read
		m.write = write
	}
}

// NewManager creates a clipboard manager. With useSystem false only the
// in-memory register is used.
func NewManager(useSystem bool, opts ...Option) *Manager {
	m := &Manager{
		useSystem: useSystem && !sysclip.Unsupported,
		read:      sysclip.ReadAll,
		write:     sysclip.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Read returns the clipboard text. A failing system clipboard falls back
// to the register.
func (m *Manager) Read() (string, error) {
	if !m.useSystem {
		return m.register, nil
	}
	text, err := m.read()
	if err != nil {
		logger.Warnf("ClipboardManager: system clipboard read failed, using register: %v", err)
		return m.register, nil
	}
	m.register = text
	return text, nil
}

// Write stores text in the register and, when enabled, the system clipboard.
func (m *Manager) Write(text string) error {
	m.register = text
	logger.Debugf("ClipboardManager: stored %d bytes", len(text))
	if !m.useSystem {
		return nil
	}
	return m.write(text)
}
