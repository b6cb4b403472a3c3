// Package config persists form values between sessions as a flat
// string-keyed record.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is wrapped by LoadError when no config file exists yet.
var ErrNotFound = errors.New("config: file not found")

// LoadError reports a config file that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a config file that could not be written.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save config %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Store reads and writes the record at Path. Files ending in .yaml or .yml
// are YAML, everything else is JSON.
type Store struct {
	Path string
}

// DefaultPath returns ~/.berichtsheft_generator/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locate home directory")
	}
	return filepath.Join(home, ".berichtsheft_generator", "config.json"), nil
}

// Load returns the stored record.
func (s Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Path: s.Path, Err: ErrNotFound}
	}
	if err != nil {
		return nil, &LoadError{Path: s.Path, Err: err}
	}

	values := map[string]string{}
	if s.isYAML() {
		err = yaml.Unmarshal(data, &values)
	} else {
		err = json.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, &LoadError{Path: s.Path, Err: errors.Wrap(err, "decode")}
	}
	return values, nil
}

// Save replaces the stored record with values.
func (s Store) Save(values map[string]string) error {
	data, err := s.encode(values)
	if err != nil {
		return &SaveError{Path: s.Path, Err: errors.Wrap(err, "encode")}
	}
	if err = os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return &SaveError{Path: s.Path, Err: err}
	}
	if err = atomic.WriteFile(s.Path, bytes.NewReader(data)); err != nil {
		return &SaveError{Path: s.Path, Err: err}
	}
	return nil
}

func (s Store) encode(values map[string]string) ([]byte, error) {
	if values == nil {
		values = map[string]string{}
	}
	if s.isYAML() {
		return yaml.Marshal(values)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s Store) isYAML() bool {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
