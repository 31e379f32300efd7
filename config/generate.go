// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by Generate when the target file exists.
var ErrConfigExists = errors.New("config: file already exists")

const header = `# metatwin configuration.
# Precedence: CLI flags > METATWIN_* env vars > this file > defaults.
# Durations use Go syntax (e.g. 90s, 2m).
`

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}

	return append([]byte(header), b...), nil
}

// Generate writes the default configuration to path, creating parent
// directories. An existing file is never overwritten.
func Generate(path string) error {
	if fileExists(path) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	b, err := New().Marshal()
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

// Validate parses the YAML at path and reports whether it decodes into a
// Config.
func Validate(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var c Config
	if err = yaml.Unmarshal(b, &c); err != nil {
		return fmt.Errorf("config: invalid YAML: %w", err)
	}

	return nil
}
