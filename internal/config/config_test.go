package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Backend != "sqlite" {
		t.Fatalf("backend=%q", cfg.Store.Backend)
	}
	if cfg.Sidebar.Width != 280 || cfg.Sidebar.CollapsedWidth != 60 || cfg.Sidebar.TabletWidth != 220 {
		t.Fatalf("unexpected sidebar defaults: %+v", cfg.Sidebar)
	}
	if cfg.NavCloseDelay != 100*time.Millisecond {
		t.Fatalf("nav_close_delay=%v", cfg.NavCloseDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
state_dir: /tmp/console-state
store:
  backend: json
sidebar:
  width: 300
nav_close_delay: 250ms
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONSOLE_STORE__BACKEND", "memory")
	t.Setenv("CONSOLE_CELL_WIDTH_PX", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StateDir != "/tmp/console-state" {
		t.Fatalf("state_dir=%q", cfg.StateDir)
	}
	if cfg.Store.Backend != "memory" {
		t.Fatalf("env should override file; backend=%q", cfg.Store.Backend)
	}
	if cfg.Sidebar.Width != 300 || cfg.Sidebar.CollapsedWidth != 60 {
		t.Fatalf("file should override only what it names; got %+v", cfg.Sidebar)
	}
	if cfg.NavCloseDelay != 250*time.Millisecond {
		t.Fatalf("nav_close_delay=%v", cfg.NavCloseDelay)
	}
	if cfg.CellWidthPx != 10 {
		t.Fatalf("cell_width_px=%v", cfg.CellWidthPx)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.StateDir = "/var/lib/console"
	want.Store.Backend = "json"
	want.NavCloseDelay = 175 * time.Millisecond

	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.StateDir != want.StateDir || got.Store != want.Store || got.Sidebar != want.Sidebar || got.NavCloseDelay != want.NavCloseDelay {
		t.Fatalf("roundtrip mismatch:\nwant: %+v\ngot:  %+v", want, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"zero width", func(c *Config) { c.Sidebar.Width = 0 }},
		{"collapsed wider than sidebar", func(c *Config) { c.Sidebar.CollapsedWidth = 400 }},
		{"tablet max below breakpoint", func(c *Config) { c.Sidebar.TabletMax = 700 }},
		{"negative delay", func(c *Config) { c.NavCloseDelay = -time.Millisecond }},
		{"tiny cell width", func(c *Config) { c.CellWidthPx = 0 }},
		{"missing state dir", func(c *Config) { c.StateDir = "" }},
	}
	for _, tc := range tests {
		cfg := Default()
		cfg.StateDir = "/tmp/x"
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	cfg := Default()
	cfg.StateDir = ""
	cfg.Store.Backend = "memory"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory backend needs no state dir: %v", err)
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("CONSOLE_CONFIG", "/etc/console.yaml")
	p, err := DefaultPath()
	if err != nil || p != "/etc/console.yaml" {
		t.Fatalf("DefaultPath=%q err=%v", p, err)
	}
}
