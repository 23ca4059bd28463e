package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to drop records by tag, package or file.
type filteringHandler struct {
	base    slog.Handler
	filters filterSets
}

func newFilteringHandler(base slog.Handler, filters filterSets) *filteringHandler {
	return &filteringHandler{base: base, filters: filters}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if pkg, file, ok := recordSource(r); ok {
		if !allows(h.filters.enabledPackages, h.filters.disabledPackages, pkg) {
			return nil
		}
		if !allows(h.filters.enabledFiles, h.filters.disabledFiles, file) {
			return nil
		}
	}

	tag, tagged := recordTag(r)
	if tagged {
		if !allows(h.filters.enabledTags, h.filters.disabledTags, tag) {
			return nil
		}
	} else if h.filters.enabledTags != nil {
		// Filtering for specific tags drops untagged messages
		return nil
	}

	return h.base.Handle(ctx, r)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.filters)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.filters)
}

// recordSource resolves the lowercase package directory and file name of the call site.
func recordSource(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", "", false
	}
	file = strings.ToLower(filepath.Base(frame.File))
	pkg = strings.ToLower(filepath.Base(filepath.Dir(frame.File)))
	return pkg, file, true
}

func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}
