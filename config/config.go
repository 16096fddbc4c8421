// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Shape     ShapeConfig     `yaml:"shape"`
	Motion    MotionConfig    `yaml:"motion"`
	Noise     NoiseConfig     `yaml:"noise"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Capture   CaptureConfig   `yaml:"capture"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// ParticlesConfig holds the particle count. Changing it regenerates the field.
type ParticlesConfig struct {
	Count int `yaml:"count"`
}

// ShapeConfig holds the structural shape parameters.
// Any change here regenerates the field.
type ShapeConfig struct {
	Knot            bool    `yaml:"knot"`             // false = ring, true = torus knot
	RingRadius      float64 `yaml:"ring_radius"`      // outer radius of the ring
	CircleThickness float64 `yaml:"circle_thickness"` // inner radius as a fraction of ring_radius
	P               int     `yaml:"p"`                // knot winding around the tube
	Q               int     `yaml:"q"`                // knot winding around the axis
	SpreadScale     float64 `yaml:"spread_scale"`     // jitter amplitude around the knot curve
	KnotOuterRadius float64 `yaml:"knot_outer_radius"`
	KnotInnerRadius float64 `yaml:"knot_inner_radius"`
}

// MotionConfig holds per-frame update parameters. Takes effect on the next frame.
type MotionConfig struct {
	GlobalNoiseScale float64 `yaml:"global_noise_scale"`
	NoiseScaleX      float64 `yaml:"noise_scale_x"`
	NoiseScaleY      float64 `yaml:"noise_scale_y"`
	NoiseScaleZ      float64 `yaml:"noise_scale_z"`
	SpeedFactor      float64 `yaml:"speed_factor"`
	ZNoiseFactor     float64 `yaml:"z_noise_factor"`
	PhaseStep        float64 `yaml:"phase_step"` // knot phase advance per frame (radians)
}

// NoiseConfig selects the coherent noise backend.
type NoiseConfig struct {
	Backend string `yaml:"backend"` // "opensimplex" or "perlin"
	Seed    int64  `yaml:"seed"`    // 0 = time-based
}

// RenderConfig holds sprite drawing parameters.
type RenderConfig struct {
	ParticleSize float64  `yaml:"particle_size"`
	DepthWrite   bool     `yaml:"depth_write"`
	Texture      string   `yaml:"texture"` // sprite alpha map; empty = generated radial sprite
	Background   [3]uint8 `yaml:"background"`
	RingColor    [3]uint8 `yaml:"ring_color"` // tint used for ring particles (no per-vertex color)
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Position        [3]float64 `yaml:"position"`
	Target          [3]float64 `yaml:"target"`
	Fovy            float64    `yaml:"fovy"`
	AutoRotate      bool       `yaml:"auto_rotate"`
	AutoRotateSpeed float64    `yaml:"auto_rotate_speed"`
	Damping         bool       `yaml:"damping"`
	DampingFactor   float64    `yaml:"damping_factor"`
	MinDistance     float64    `yaml:"min_distance"`
	MaxDistance     float64    `yaml:"max_distance"`
}

// CaptureConfig holds frame/video capture parameters.
type CaptureConfig struct {
	Mode      string  `yaml:"mode"`   // "toggle" (one key) or "split" (start/stop keys)
	Format    string  `yaml:"format"` // "png" or "gif"
	Dir       string  `yaml:"dir"`
	Name      string  `yaml:"name"`
	FPS       int     `yaml:"fps"`
	QueueSize int     `yaml:"queue_size"`
	GIFScale  float64 `yaml:"gif_scale"` // frame scale applied before GIF quantization
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // frames averaged by the perf collector
	LogInterval float64 `yaml:"log_interval"` // seconds between stats logs and CSV rows (0 = off)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Clamped values are logged. Must be called before Cfg().
func Init(path string) error {
	cfg, adj, err := Load(path)
	if err != nil {
		return err
	}
	for _, a := range adj {
		slog.Warn("config value clamped", "adjustment", a)
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The returned adjustments
// describe every value Sanitize had to clamp.
func Load(path string) (*Config, []Adjustment, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	adj := cfg.Sanitize()
	return cfg, adj, nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
