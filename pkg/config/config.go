// Package config handles loading and saving cv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/cv/config.yaml
//   - State:   ~/.local/state/cv/ (aggregation cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChartConfig holds chart geometry and animation preferences.
type ChartConfig struct {
	Width       int     `yaml:"width,omitempty"`
	Height      int     `yaml:"height,omitempty"`
	Padding     float64 `yaml:"padding,omitempty"`      // band padding fraction
	InitialMS   int     `yaml:"initial_ms,omitempty"`   // initial render transition
	SwitchMS    int     `yaml:"switch_ms,omitempty"`    // view switch transition
	StaggerMS   int     `yaml:"stagger_ms,omitempty"`   // per-month initial stagger
	DefaultView string  `yaml:"default_view,omitempty"` // categories, tags, count
}

// ExportConfig holds static export preferences.
type ExportConfig struct {
	Format string `yaml:"format,omitempty"` // svg, png, html
	Dir    string `yaml:"dir,omitempty"`
}

// DataConfig points at the calendar source.
type DataConfig struct {
	Path  string `yaml:"path,omitempty"`  // ICS or JSON file
	Owner string `yaml:"owner,omitempty"` // calendar owner email
	Watch bool   `yaml:"watch,omitempty"` // reload on file change
}

// Config is the top-level configuration for cv.
type Config struct {
	Chart  ChartConfig  `yaml:"chart,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
	Data   DataConfig   `yaml:"data,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Chart: ChartConfig{
			Width:       960,
			Height:      440,
			Padding:     0.2,
			InitialMS:   800,
			SwitchMS:    400,
			StaggerMS:   60,
			DefaultView: "categories",
		},
		Export: ExportConfig{
			Format: "svg",
		},
	}
}

// ConfigDir returns the XDG config directory for cv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cv")
}

// StateDir returns the XDG state directory for cv.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "cv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "cv")
}

// CachePath returns the path of the aggregation cache database.
func CachePath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "cache.db")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Data.Path = expandHome(cfg.Data.Path)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
