package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Title != "Pendulum" {
		t.Errorf("expected title Pendulum, got %s", cfg.Title)
	}
	if cfg.Width != 800 || cfg.Height != 480 {
		t.Errorf("expected 800x480, got %dx%d", cfg.Width, cfg.Height)
	}
	if len(cfg.Pendulums) != 2 {
		t.Fatalf("expected 2 pendulums, got %d", len(cfg.Pendulums))
	}
	if cfg.Pendulums[0] != (PendulumConfig{X: 400, Y: 0, Length: 200}) {
		t.Errorf("unexpected first pendulum: %+v", cfg.Pendulums[0])
	}
	if cfg.Pendulums[1] != (PendulumConfig{X: 400, Y: 0, Length: 400}) {
		t.Errorf("unexpected second pendulum: %+v", cfg.Pendulums[1])
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte("title: Swing\npendulums:\n  - {x: 100, y: 10, length: 50}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Title != "Swing" {
		t.Errorf("expected title Swing, got %s", cfg.Title)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("expected default width, got %d", cfg.Width)
	}
	if len(cfg.Pendulums) != 1 || cfg.Pendulums[0].Length != 50 {
		t.Errorf("unexpected pendulums: %+v", cfg.Pendulums)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("cradle")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Pendulums) != 5 {
		t.Errorf("expected 5 pendulums, got %d", len(loaded.Pendulums))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero length", func(c *Config) { c.Pendulums[1].Length = 0 }, ErrArmLength},
		{"negative length", func(c *Config) { c.Pendulums[0].Length = -5 }, ErrArmLength},
		{"no pendulums", func(c *Config) { c.Pendulums = nil }, ErrNoPendulums},
		{"no width", func(c *Config) { c.Width = 0 }, ErrWindowSize},
		{"no fps", func(c *Config) { c.FPS = 0 }, ErrFPS},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("nested")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Pendulums) != 3 {
		t.Errorf("expected 3 pendulums, got %d", len(cfg.Pendulums))
	}

	cfg.Pendulums[0].Length = 1
	if Presets["nested"].Pendulums[0].Length == 1 {
		t.Error("expected GetPreset to return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
