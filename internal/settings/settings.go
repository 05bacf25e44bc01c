// Package settings holds the single persisted user-preferences record.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ThemeColor is the accent color choice for the UI.
type ThemeColor string

const (
	ThemeTeal   ThemeColor = "teal"
	ThemeBlue   ThemeColor = "blue"
	ThemeViolet ThemeColor = "violet"
)

// Valid reports whether t is one of the known theme colors.
func (t ThemeColor) Valid() bool {
	switch t {
	case ThemeTeal, ThemeBlue, ThemeViolet:
		return true
	}
	return false
}

// Settings is the per-profile configuration record. Exactly one instance
// exists; it is mutated in place and never deleted.
type Settings struct {
	EnableAIImages bool       `yaml:"enable_ai_images"`
	UserName       string     `yaml:"user_name"`
	ThemeColor     ThemeColor `yaml:"theme_color"`
}

// Default returns the settings used when no persisted copy exists.
func Default() Settings {
	return Settings{
		EnableAIImages: true,
		UserName:       "Reader",
		ThemeColor:     ThemeTeal,
	}
}

// LoadOrDefault reads the settings snapshot at path, falling back to the
// defaults when the file is missing.
func LoadOrDefault(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings YAML: %w", err)
	}
	if !s.ThemeColor.Valid() {
		s.ThemeColor = ThemeTeal
	}
	return s, nil
}

// Save rewrites the settings snapshot at path.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
