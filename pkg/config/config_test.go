package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chart.Width != 960 || cfg.Chart.Height != 440 {
		t.Errorf("default size = %dx%d, want 960x440", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.Padding != 0.2 {
		t.Errorf("default padding = %v, want 0.2", cfg.Chart.Padding)
	}
	if cfg.Chart.InitialMS != 800 || cfg.Chart.SwitchMS != 400 || cfg.Chart.StaggerMS != 60 {
		t.Errorf("default timings = %d/%d/%d, want 800/400/60",
			cfg.Chart.InitialMS, cfg.Chart.SwitchMS, cfg.Chart.StaggerMS)
	}
	if cfg.Chart.DefaultView != "categories" {
		t.Errorf("default view = %q, want categories", cfg.Chart.DefaultView)
	}
	if cfg.Export.Format != "svg" {
		t.Errorf("default export format = %q, want svg", cfg.Export.Format)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom on missing file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadFromPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "chart:\n  width: 1280\n  default_view: tags\ndata:\n  watch: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Chart.Width != 1280 {
		t.Errorf("width = %d, want the file's 1280", cfg.Chart.Width)
	}
	if cfg.Chart.DefaultView != "tags" {
		t.Errorf("default view = %q, want tags", cfg.Chart.DefaultView)
	}
	if !cfg.Data.Watch {
		t.Error("watch should be true")
	}
	// Fields the file omits keep their defaults.
	if cfg.Chart.Height != 440 || cfg.Chart.StaggerMS != 60 {
		t.Errorf("unset fields lost defaults: height %d stagger %d", cfg.Chart.Height, cfg.Chart.StaggerMS)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("chart: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom should fail on malformed yaml")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Chart.Width = 700
	cfg.Export.Format = "png"
	cfg.Data.Path = "/tmp/cal.ics"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip changed config:\nsaved  %+v\nloaded %+v", cfg, loaded)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/cal.ics"); got != filepath.Join(home, "cal.ics") {
		t.Errorf("expandHome(~/cal.ics) = %q", got)
	}
	if got := expandHome("/abs/cal.ics"); got != "/abs/cal.ics" {
		t.Errorf("absolute path should pass through, got %q", got)
	}
}

func TestXDGOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")

	if got := ConfigPath(); got != "/tmp/xdg-config/cv/config.yaml" {
		t.Errorf("ConfigPath = %q", got)
	}
	if got := CachePath(); got != "/tmp/xdg-state/cv/cache.db" {
		t.Errorf("CachePath = %q", got)
	}
}
