package template

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for template files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported template file format")

//go:embed defaults.toml
var defaultTemplates string

// Default returns the built-in registry.
func Default() (*Registry, error) {
	return ParseTOML(defaultTemplates)
}

// Load reads a registry from path. The format follows the extension:
// .toml, .yaml/.yml, or .json in the flat key-to-body layout.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	var reg *Registry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		reg, err = ParseTOML(string(data))
	case ".yaml", ".yml":
		reg, err = ParseYAML(data)
	case ".json":
		reg, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// ParseTOML builds a registry from one TOML table per key.
func ParseTOML(data string) (*Registry, error) {
	var defs map[string]Definition
	if _, err := toml.Decode(data, &defs); err != nil {
		return nil, fmt.Errorf("decoding TOML templates: %w", err)
	}
	return NewRegistry(defs)
}

// ParseYAML builds a registry from one mapping per key.
func ParseYAML(data []byte) (*Registry, error) {
	var defs map[string]Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("decoding YAML templates: %w", err)
	}
	return NewRegistry(defs)
}

// ParseJSON reads the flat layout where each key maps to either a body
// string or an object of variant bodies. Parameters are taken from the
// slots the bodies use.
func ParseJSON(data []byte) (*Registry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding JSON templates: %w", err)
	}

	defs := make(map[string]Definition, len(raw))
	for key, msg := range raw {
		var def Definition
		var body string
		if err := json.Unmarshal(msg, &body); err == nil {
			def.Body = body
		} else if err := json.Unmarshal(msg, &def.Variants); err != nil {
			return nil, fmt.Errorf("template %q: expected string or object of strings", key)
		}
		def.Params = inferParams(def)
		defs[key] = def
	}
	return NewRegistry(defs)
}

func inferParams(def Definition) []string {
	seen := make(map[string]struct{})
	var params []string
	add := func(body string) {
		for _, slot := range parse("", "", body).Slots {
			if _, ok := seen[slot]; !ok {
				seen[slot] = struct{}{}
				params = append(params, slot)
			}
		}
	}
	add(def.Body)
	for _, body := range def.Variants {
		add(body)
	}
	return params
}
