package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCallDepth != 1024 {
		t.Errorf("MaxCallDepth = %d, want 1024", cfg.MaxCallDepth)
	}
	if !cfg.InputAllowed() {
		t.Error("InputAllowed() should default to true")
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCallDepth != 1024 {
		t.Errorf("MaxCallDepth = %d, want 1024", cfg.MaxCallDepth)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thistle.yaml")
	contents := "maxCallDepth: 64\nallowInput: false\ntraceJSON: trace.json\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCallDepth != 64 {
		t.Errorf("MaxCallDepth = %d, want 64", cfg.MaxCallDepth)
	}
	if cfg.InputAllowed() {
		t.Error("InputAllowed() should be false")
	}
	if cfg.TraceJSON != "trace.json" {
		t.Errorf("TraceJSON = %q, want trace.json", cfg.TraceJSON)
	}
}
