// Package template renders the named code templates the refactorings
// produce. Placeholders are written {{name}} and are substituted literally.
package template

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrUnknownTemplate is returned when no template is registered for a key and variant.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrMissingParameter is returned when a slot used by a body has no value.
	ErrMissingParameter = errors.New("missing template parameter")
	// ErrUndeclaredParameter is returned at load time when a body uses a slot
	// its definition does not declare.
	ErrUndeclaredParameter = errors.New("undeclared template parameter")
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Params maps slot names to their replacement text.
type Params map[string]string

// Definition is the serialized form of one registry entry: a single body,
// or a set of named variant bodies sharing one parameter list.
type Definition struct {
	Params   []string          `toml:"params" yaml:"params"`
	Body     string            `toml:"body" yaml:"body"`
	Variants map[string]string `toml:"variants" yaml:"variants"`
}

// Template is one parsed body.
type Template struct {
	Key     string
	Variant string
	Body    string
	Slots   []string // distinct slot names in order of first use
}

// Registry holds every template by key and variant. It is read-only once built.
type Registry struct {
	templates map[string]map[string]*Template
}

// NewRegistry validates defs and builds a registry. Every slot a body
// references must appear in its definition's Params.
func NewRegistry(defs map[string]Definition) (*Registry, error) {
	r := &Registry{templates: make(map[string]map[string]*Template, len(defs))}

	for key, def := range defs {
		declared := make(map[string]struct{}, len(def.Params))
		for _, p := range def.Params {
			declared[p] = struct{}{}
		}

		bodies := make(map[string]string, len(def.Variants)+1)
		if def.Body != "" {
			bodies[""] = def.Body
		}
		for name, body := range def.Variants {
			bodies[name] = body
		}
		if len(bodies) == 0 {
			return nil, fmt.Errorf("template %q: no body or variants", key)
		}

		variants := make(map[string]*Template, len(bodies))
		for variant, body := range bodies {
			t := parse(key, variant, body)
			for _, slot := range t.Slots {
				if _, ok := declared[slot]; !ok {
					return nil, fmt.Errorf("template %s: slot %q: %w", t.id(), slot, ErrUndeclaredParameter)
				}
			}
			variants[variant] = t
		}
		r.templates[key] = variants
	}
	return r, nil
}

func parse(key, variant, body string) *Template {
	t := &Template{Key: key, Variant: variant, Body: body}
	seen := make(map[string]struct{})
	for _, m := range placeholder.FindAllStringSubmatch(body, -1) {
		if _, dup := seen[m[1]]; !dup {
			seen[m[1]] = struct{}{}
			t.Slots = append(t.Slots, m[1])
		}
	}
	return t
}

func (t *Template) id() string {
	if t.Variant == "" {
		return t.Key
	}
	return t.Key + "." + t.Variant
}

// Lookup returns the template for key and variant ("" for the plain body).
func (r *Registry) Lookup(key, variant string) (*Template, error) {
	if t, ok := r.templates[key][variant]; ok {
		return t, nil
	}
	if variant == "" {
		return nil, fmt.Errorf("%q: %w", key, ErrUnknownTemplate)
	}
	return nil, fmt.Errorf("%q variant %q: %w", key, variant, ErrUnknownTemplate)
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Variants returns the variant names registered under key, sorted. The
// plain body appears as "".
func (r *Registry) Variants(key string) []string {
	names := make([]string, 0, len(r.templates[key]))
	for v := range r.templates[key] {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

type renderOptions struct {
	variant string
	indent  string
}

// Option adjusts a single Render call.
type Option func(*renderOptions)

// WithVariant selects a variant body.
func WithVariant(name string) Option {
	return func(o *renderOptions) { o.variant = name }
}

// WithIndent prefixes every non-empty body line after the first with indent
// before substitution, so substituted values are left exactly as given.
func WithIndent(indent string) Option {
	return func(o *renderOptions) { o.indent = indent }
}

// Render substitutes params into the template registered for key.
func (r *Registry) Render(key string, params Params, opts ...Option) (string, error) {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}

	t, err := r.Lookup(key, o.variant)
	if err != nil {
		return "", err
	}
	for _, slot := range t.Slots {
		if _, ok := params[slot]; !ok {
			return "", fmt.Errorf("template %s: slot %q: %w", t.id(), slot, ErrMissingParameter)
		}
	}

	body := t.Body
	if o.indent != "" {
		body = indentLines(body, o.indent)
	}
	return placeholder.ReplaceAllStringFunc(body, func(m string) string {
		return params[placeholder.FindStringSubmatch(m)[1]]
	}), nil
}

func indentLines(body, indent string) string {
	lines := strings.Split(body, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
