// Package config holds the sandbox tunables. The embedded sandpit.yaml is the
// baseline; an optional file on disk overrides any subset of it.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed sandpit.yaml
var defaultYAML []byte

var ErrInvalid = errors.New("config: invalid")

const (
	BackendChipmunk = "chipmunk"
	BackendBox2D    = "box2d"
)

type Config struct {
	Window    WindowConfig   `yaml:"window"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Camera    CameraConfig   `yaml:"camera"`
	Particles ParticleConfig `yaml:"particles"`
	Reset     ResetConfig    `yaml:"reset"`
	Colors    ColorConfig    `yaml:"colors"`
	Level     LevelConfig    `yaml:"level"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PhysicsConfig struct {
	Backend    string  `yaml:"backend"`
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	Iterations int     `yaml:"iterations"`
}

// CameraConfig speeds are per frame; WheelZoomSpeed is per wheel notch.
type CameraConfig struct {
	InitialZoom    float64 `yaml:"initial_zoom"`
	MinZoom        float64 `yaml:"min_zoom"`
	MaxZoom        float64 `yaml:"max_zoom"`
	ZoomSpeed      float64 `yaml:"zoom_speed"`
	WheelZoomSpeed float64 `yaml:"wheel_zoom_speed"`
	MoveSpeed      float64 `yaml:"move_speed"`
}

// ParticleConfig sizes are half-extents in world units. ShrinkRate is world
// units per millisecond of hold time.
type ParticleConfig struct {
	InitialSize   float64       `yaml:"initial_size"`
	MinSize       float64       `yaml:"min_size"`
	ShrinkRate    float64       `yaml:"shrink_rate"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	Density       float64       `yaml:"density"`
	Friction      float64       `yaml:"friction"`
	Restitution   float64       `yaml:"restitution"`
	Saturation    float64       `yaml:"saturation"`
	Lightness     float64       `yaml:"lightness"`
	KillPlaneY    float64       `yaml:"kill_plane_y"`
}

type ResetConfig struct {
	Delay    time.Duration `yaml:"delay"`
	MinForce float64       `yaml:"min_force"`
	MaxForce float64       `yaml:"max_force"`
}

type ColorConfig struct {
	Background       YAMLColor `yaml:"background"`
	Terrain          YAMLColor `yaml:"terrain"`
	TerrainLineWidth float64   `yaml:"terrain_line_width"`
}

type LevelConfig struct {
	// Script is an optional tengo level layout. Empty uses the random layout.
	Script string `yaml:"script"`
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic("config: embedded default: " + err.Error())
	}
	return cfg
}

// Parse decodes data over the zero config and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load returns the embedded defaults overridden by the file at path. An
// empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}

	switch c.Physics.Backend {
	case BackendChipmunk, BackendBox2D:
	default:
		return invalid("physics.backend %q", c.Physics.Backend)
	}
	if c.Physics.Iterations < 0 {
		return invalid("physics.iterations %d", c.Physics.Iterations)
	}

	cam := c.Camera
	if cam.MinZoom <= 0 || cam.MinZoom > cam.MaxZoom {
		return invalid("camera zoom bounds [%g, %g]", cam.MinZoom, cam.MaxZoom)
	}
	if cam.InitialZoom < cam.MinZoom || cam.InitialZoom > cam.MaxZoom {
		return invalid("camera.initial_zoom %g outside [%g, %g]", cam.InitialZoom, cam.MinZoom, cam.MaxZoom)
	}
	if cam.ZoomSpeed < 0 || cam.WheelZoomSpeed < 0 || cam.MoveSpeed < 0 {
		return invalid("camera speeds must not be negative")
	}

	p := c.Particles
	if p.MinSize <= 0 || p.InitialSize < p.MinSize {
		return invalid("particle sizes initial=%g min=%g", p.InitialSize, p.MinSize)
	}
	if p.ShrinkRate < 0 {
		return invalid("particles.shrink_rate %g", p.ShrinkRate)
	}
	if p.SpawnInterval <= 0 {
		return invalid("particles.spawn_interval %v", p.SpawnInterval)
	}
	if p.Density <= 0 {
		return invalid("particles.density %g", p.Density)
	}

	r := c.Reset
	if r.Delay < 0 {
		return invalid("reset.delay %v", r.Delay)
	}
	if r.MinForce < 0 || r.MinForce > r.MaxForce {
		return invalid("reset force range [%g, %g]", r.MinForce, r.MaxForce)
	}

	if c.Colors.Background.Color == nil || c.Colors.Terrain.Color == nil {
		return invalid("colors.background and colors.terrain are required")
	}
	return nil
}
