// Package config loads console settings: built-in defaults, then an optional
// YAML file, then CONSOLE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"console-shell/internal/layout"
	"console-shell/internal/store"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	envPrefix    = "CONSOLE_"
	envConfig    = "CONSOLE_CONFIG"
	dirName      = ".console"
	fileName     = "config.yaml"
	minCellWidth = 1
)

type Config struct {
	StateDir      string        `yaml:"state_dir" koanf:"state_dir"`
	Store         StoreConfig   `yaml:"store" koanf:"store"`
	Sidebar       SidebarConfig `yaml:"sidebar" koanf:"sidebar"`
	NavCloseDelay time.Duration `yaml:"nav_close_delay" koanf:"nav_close_delay"`
	CellWidthPx   float64       `yaml:"cell_width_px" koanf:"cell_width_px"`
	Log           LogConfig     `yaml:"log" koanf:"log"`
}

type StoreConfig struct {
	// Backend is one of sqlite|json|memory.
	Backend string `yaml:"backend" koanf:"backend"`
}

// SidebarConfig is the sidebar geometry in px.
type SidebarConfig struct {
	Width          float64 `yaml:"width" koanf:"width"`
	CollapsedWidth float64 `yaml:"collapsed_width" koanf:"collapsed_width"`
	TabletWidth    float64 `yaml:"tablet_width" koanf:"tablet_width"`
	TabletMax      float64 `yaml:"tablet_max" koanf:"tablet_max"`
}

type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	// File receives logs while the terminal UI owns the screen. Empty disables them.
	File string `yaml:"file" koanf:"file"`
}

// Dir is the per-user console directory (~/.console).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath is $CONSOLE_CONFIG, or ~/.console/config.yaml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(envConfig)); p != "" {
		return p, nil
	}
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, fileName), nil
}

func Default() *Config {
	m := layout.DefaultMetrics()
	stateDir, _ := Dir()
	return &Config{
		StateDir: stateDir,
		Store:    StoreConfig{Backend: string(store.BackendSQLite)},
		Sidebar: SidebarConfig{
			Width:          m.SidebarWidth,
			CollapsedWidth: m.CollapsedWidth,
			TabletWidth:    m.TabletWidth,
			TabletMax:      m.TabletMax,
		},
		NavCloseDelay: layout.DefaultNavCloseDelay,
		CellWidthPx:   8,
		Log:           LogConfig{Level: "info"},
	}
}

// Load reads path (if it exists) over the defaults, then applies environment
// overrides. Nested keys use a double underscore: CONSOLE_STORE__BACKEND=json.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	if _, err := store.ParseBackend(c.Store.Backend); err != nil {
		return err
	}
	if c.Store.Backend != string(store.BackendMemory) && strings.TrimSpace(c.StateDir) == "" {
		return errors.New("state_dir is required unless store.backend is memory")
	}
	if c.Sidebar.Width <= 0 || c.Sidebar.CollapsedWidth <= 0 {
		return errors.New("sidebar widths must be positive")
	}
	if c.Sidebar.CollapsedWidth > c.Sidebar.Width {
		return errors.New("sidebar.collapsed_width must not exceed sidebar.width")
	}
	if c.Sidebar.TabletWidth < 0 {
		return errors.New("sidebar.tablet_width must be non-negative")
	}
	if c.Sidebar.TabletWidth > 0 && c.Sidebar.TabletMax <= layout.Breakpoint {
		return fmt.Errorf("sidebar.tablet_max must exceed the %v px breakpoint", layout.Breakpoint)
	}
	if c.NavCloseDelay < 0 {
		return errors.New("nav_close_delay must be non-negative")
	}
	if c.CellWidthPx < minCellWidth {
		return fmt.Errorf("cell_width_px must be at least %d", minCellWidth)
	}
	return nil
}

func (c *Config) Metrics() layout.Metrics {
	return layout.Metrics{
		SidebarWidth:   c.Sidebar.Width,
		CollapsedWidth: c.Sidebar.CollapsedWidth,
		TabletWidth:    c.Sidebar.TabletWidth,
		TabletMax:      c.Sidebar.TabletMax,
	}
}

// Backend returns the parsed store backend. Call Validate first.
func (c *Config) Backend() store.Backend {
	b, _ := store.ParseBackend(c.Store.Backend)
	return b
}

// Save writes the configuration as YAML. Durations are written in their
// human form ("100ms") so the file round-trips through Load.
func (c *Config) Save(path string) error {
	doc := map[string]any{
		"state_dir":       c.StateDir,
		"store":           c.Store,
		"sidebar":         c.Sidebar,
		"nav_close_delay": c.NavCloseDelay.String(),
		"cell_width_px":   c.CellWidthPx,
		"log":             c.Log,
	}
	data, err := yamlv3.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
