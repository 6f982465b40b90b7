package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esm.yaml")
	body := "dataset_path: /data/countries.xlsx\ndefault_metric: Gazelle\nlog_level: debug\nwindow_width: 1400\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatasetPath != "/data/countries.xlsx" {
		t.Fatalf("dataset_path: got %q", cfg.DatasetPath)
	}
	if cfg.DefaultMetric != "Gazelle" || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.WindowWidth != 1400 {
		t.Fatalf("window_width: got %d", cfg.WindowWidth)
	}
	if cfg.WindowHeight != Default().WindowHeight {
		t.Fatalf("unset fields keep defaults: %+v", cfg)
	}
}

func TestLoadBadYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esm.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
