package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for settings files that are neither
	// YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported settings format")

	// ErrKeyConflict is returned when two keys of a settings document
	// describe the same setting differently.
	ErrKeyConflict = errors.New("conflicting settings keys")
)

// FromFile loads settings from a file, detecting the format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read settings: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// FromYAML parses a YAML settings document.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml settings: %w", err)
	}
	return fromDocument(m)
}

// FromJSON parses a JSON settings document. Numbers are kept as float64.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json settings: %w", err)
	}
	return fromDocument(m)
}

// fromDocument accepts both nested documents and the host's flat export.
// Keys are trimmed, and a flat "<key>.<part>" key becomes the part of the
// compound value under key, so
//
//	Dims_Attribute.Unformatted: 10
//
// reads the same as
//
//	Dims_Attribute:
//	  Unformatted: 10
func fromDocument(doc map[string]any) (Config, error) {
	data := make(map[string]any, len(doc))
	var errs []error

	var flat []string
	for _, raw := range sortedKeys(doc) {
		key := strings.TrimSpace(raw)
		if base, part, ok := strings.Cut(key, "."); ok && base != "" && part != "" {
			flat = append(flat, raw)
			continue
		}
		if _, dup := data[key]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrKeyConflict, key))
			continue
		}
		data[key] = doc[raw]
	}

	for _, raw := range flat {
		base, part, _ := strings.Cut(strings.TrimSpace(raw), ".")
		base, part = strings.TrimSpace(base), strings.TrimSpace(part)

		parts, err := compound(data, base)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := parts[part]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrKeyConflict, base+"."+part))
			continue
		}
		parts[part] = doc[raw]
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return New(data), nil
}

// compound returns the parts map stored under key, creating it when key
// is unset. A scalar under key conflicts with flat parts.
func compound(data map[string]any, key string) (map[string]any, error) {
	switch v := data[key].(type) {
	case nil:
		m := make(map[string]any)
		data[key] = m
		return m, nil
	case map[string]any:
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q has a value and flat parts", ErrKeyConflict, key)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
