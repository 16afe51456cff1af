// Package config handles configuration loading, validation, and hot reload
// for keyline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"keyline/internal/timeline"
)

// Config holds the complete overlay configuration.
type Config struct {
	// Width and Height are the canvas size in pixels.
	Width  int `toml:"width" json:"width" yaml:"width"`
	Height int `toml:"height" json:"height" yaml:"height"`

	// BgColor is the background color as "#rrggbb".
	BgColor string `toml:"bg_color" json:"bg_color" yaml:"bg_color"`

	// BgAlpha is the background opacity in [0,1]. Out-of-range values
	// are clamped during validation.
	BgAlpha float64 `toml:"bg_alpha" json:"bg_alpha" yaml:"bg_alpha"`

	// Rows configures the monitored rows, top to bottom. At most
	// timeline.RowCount entries; missing entries default to disabled.
	Rows []RowConfig `toml:"rows" json:"rows" yaml:"rows"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// RowConfig configures one monitored row.
type RowConfig struct {
	// Key is the monitored key by display name ("W", "SPACE", "F1", ...).
	Key string `toml:"key" json:"key" yaml:"key"`

	// Color is the row color as "#rrggbb".
	Color string `toml:"color" json:"color" yaml:"color"`

	// Enabled determines whether the row occupies vertical space.
	// Disabled rows are reclaimed by the remaining rows.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is "debug", "info", "warn", or "error".
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is "stderr", "stdout", or a file path.
	Output string `toml:"output" json:"output" yaml:"output"`
}

// RowArray returns the rows padded to exactly RowCount entries.
func (c *Config) RowArray() [timeline.RowCount]RowConfig {
	var rows [timeline.RowCount]RowConfig
	for i := 0; i < len(c.Rows) && i < timeline.RowCount; i++ {
		rows[i] = c.Rows[i]
	}
	return rows
}

// ConfigPath returns the platform-specific default config file path.
func ConfigPath() string {
	switch runtime.GOOS {
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "Library", "Application Support", "keyline", "keyline.toml")
	case "windows":
		appData := os.Getenv("APPDATA")
		return filepath.Join(appData, "keyline", "keyline.toml")
	default: // Linux and other Unix
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			homeDir, _ := os.UserHomeDir()
			configHome = filepath.Join(homeDir, ".config")
		}
		return filepath.Join(configHome, "keyline", "keyline.toml")
	}
}

// SaveConfig writes the configuration to path as TOML.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
