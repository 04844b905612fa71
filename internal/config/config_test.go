package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Bloom.Enabled {
		t.Error("expected bloom enabled by default")
	}
	if cfg.Bloom.BlurIterations != 4 {
		t.Errorf("expected 4 blur iterations, got %d", cfg.Bloom.BlurIterations)
	}
	if cfg.Particles.Workers != 2 {
		t.Errorf("expected 2 particle workers, got %d", cfg.Particles.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
}

func TestSaveToLoadRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "ember.yaml")

	cfg := Default()
	cfg.Graphics.Width = 1920
	cfg.Graphics.Height = 1080
	cfg.Bloom.Threshold = 0.75
	cfg.Particles.Workers = 4

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", loaded.Graphics.Width)
	}
	if loaded.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", loaded.Graphics.Height)
	}
	if loaded.Bloom.Threshold != 0.75 {
		t.Errorf("expected threshold 0.75, got %v", loaded.Bloom.Threshold)
	}
	if loaded.Particles.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", loaded.Particles.Workers)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_partial_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "ember.yaml")
	partial := []byte("graphics:\n  width: 800\nbloom:\n  enabled: false\n")
	if err := os.WriteFile(path, partial, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Bloom.Enabled {
		t.Error("expected bloom disabled")
	}
	// Untouched sections keep their defaults
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected default height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Bloom.BlurIterations != 4 {
		t.Errorf("expected default 4 blur iterations, got %d", cfg.Bloom.BlurIterations)
	}
}
