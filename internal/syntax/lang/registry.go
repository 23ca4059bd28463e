package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/jsrefactor/internal/logger"
)

// ErrExtensionClaimed is returned when a language registers an extension
// another language already owns.
var ErrExtensionClaimed = errors.New("extension already claimed")

// builtins are registered the first time the registry is used.
var builtins = []*Language{JavaScript}

// Registry maps file extensions onto languages.
type Registry struct {
	mu        sync.RWMutex
	languages []*Language
	byExt     map[string]*Language
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, seeded with the built-in
// languages.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, l := range builtins {
			if err := defaultRegistry.Register(l); err != nil {
				logger.Errorf("syntax: registering built-in %s: %v", l.Name, err)
			}
		}
	})
	return defaultRegistry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]*Language)}
}

// Register adds l. Extensions are matched case-insensitively, and
// registering the same language twice is a no-op. Nothing is registered
// when one of l's extensions belongs to another language.
func (r *Registry) Register(l *Language) error {
	if l == nil || l.TreeSitterLang == nil {
		return errors.New("language without a grammar")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	exts := make([]string, 0, len(l.Extensions))
	for _, ext := range l.Extensions {
		ext = strings.ToLower(ext)
		if owner, ok := r.byExt[ext]; ok && owner != l {
			return fmt.Errorf("%s: %s is registered to %s: %w", l.Name, ext, owner.Name, ErrExtensionClaimed)
		}
		exts = append(exts, ext)
	}

	for _, known := range r.languages {
		if known == l {
			return nil
		}
	}
	r.languages = append(r.languages, l)
	for _, ext := range exts {
		r.byExt[ext] = l
	}
	logger.DebugTagf("syntax", "Registered language: %s with extensions: %v", l.Name, exts)
	return nil
}

// ForFile returns the language for filePath's extension, or nil.
func (r *Registry) ForFile(filePath string) *Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byExt[strings.ToLower(filepath.Ext(filePath))]
}

// All returns the registered languages in registration order.
func (r *Registry) All() []*Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Language(nil), r.languages...)
}

// Register adds l to the default registry.
func Register(l *Language) error { return Default().Register(l) }

// GetForFile returns the language for a given file path from the default
// registry, or nil if the extension is unknown.
func GetForFile(filePath string) *Language { return Default().ForFile(filePath) }

// GetAll returns all languages of the default registry.
func GetAll() []*Language { return Default().All() }
