package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Physics.Backend != BackendChipmunk {
		t.Fatalf("expected chipmunk backend, got %q", cfg.Physics.Backend)
	}
	if cfg.Camera.InitialZoom != 30 || cfg.Camera.MinZoom != 10 || cfg.Camera.MaxZoom != 100 {
		t.Fatalf("unexpected zoom defaults %+v", cfg.Camera)
	}
	if cfg.Particles.SpawnInterval != 20*time.Millisecond {
		t.Fatalf("expected 20ms spawn interval, got %v", cfg.Particles.SpawnInterval)
	}
	if cfg.Reset.Delay != 1500*time.Millisecond {
		t.Fatalf("expected 1500ms reset delay, got %v", cfg.Reset.Delay)
	}
	if got := color.NRGBAModel.Convert(cfg.Colors.Background.Color); got != (color.NRGBA{0x1a, 0x1a, 0x1a, 0xff}) {
		t.Fatalf("unexpected background %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted_zoom_bounds", func(c *Config) { c.Camera.MinZoom, c.Camera.MaxZoom = 100, 10 }},
		{"zero_min_zoom", func(c *Config) { c.Camera.MinZoom = 0 }},
		{"initial_zoom_outside", func(c *Config) { c.Camera.InitialZoom = 500 }},
		{"negative_move_speed", func(c *Config) { c.Camera.MoveSpeed = -1 }},
		{"min_size_zero", func(c *Config) { c.Particles.MinSize = 0 }},
		{"initial_below_min", func(c *Config) { c.Particles.InitialSize = 0.01 }},
		{"zero_spawn_interval", func(c *Config) { c.Particles.SpawnInterval = 0 }},
		{"inverted_force", func(c *Config) { c.Reset.MinForce, c.Reset.MaxForce = 700, 200 }},
		{"unknown_backend", func(c *Config) { c.Physics.Backend = "verlet" }},
		{"missing_color", func(c *Config) { c.Colors.Terrain = YAMLColor{} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sandpit.yaml")
	override := "physics:\n  backend: box2d\ncamera:\n  max_zoom: 80\ncolors:\n  terrain: \"#ff000080\"\n"
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Physics.Backend != BackendBox2D || cfg.Camera.MaxZoom != 80 {
		t.Fatalf("override not applied: %+v %+v", cfg.Physics, cfg.Camera)
	}
	if cfg.Camera.MinZoom != 10 || cfg.Particles.Density != 4 {
		t.Fatalf("defaults lost: %+v %+v", cfg.Camera, cfg.Particles)
	}
	if got := cfg.Colors.Terrain.Color; got != (color.NRGBA{0xff, 0, 0, 0x80}) {
		t.Fatalf("unexpected terrain color %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("camera:\n  min_zoom: 50\n  max_zoom: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	garbled := filepath.Join(dir, "garbled.yaml")
	if err := os.WriteFile(garbled, []byte("colors:\n  background: \"#zz\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(garbled); err == nil {
		t.Fatal("expected color parse error")
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if back.Camera != cfg.Camera || back.Particles != cfg.Particles || back.Reset != cfg.Reset {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", cfg, back)
	}
	if back.Colors.Background.Color != cfg.Colors.Background.Color {
		t.Fatalf("color round trip mismatch: %v vs %v", back.Colors.Background, cfg.Colors.Background)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sandpit.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  move_speed: 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("camera:\n  move_speed: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		if cfg.Camera.MoveSpeed != 0.5 {
			t.Fatalf("expected reloaded move speed 0.5, got %v", cfg.Camera.MoveSpeed)
		}
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
