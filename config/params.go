package config

import (
	"fmt"
	"math"
)

// Param describes one numeric parameter exposed on the live panel.
// Get and Set read and write the underlying field so the panel never hard-codes
// config field names.
type Param struct {
	ID      string
	Label   string
	Min     float64
	Max     float64
	Integer  bool
	Decimals int // display and edit precision
	Format   string
	Get     func(*Config) float64
	Set     func(*Config, float64)
}

// Toggle describes one boolean parameter exposed on the live panel.
type Toggle struct {
	ID    string
	Label string
	Get   func(*Config) bool
	Set   func(*Config, bool)
}

// Params returns the slider parameters in panel order.
func Params() []Param {
	return []Param{
		intParam("particles.count", "Particles", 100, 200000, func(c *Config) *int { return &c.Particles.Count }),
		floatParam("shape.ring_radius", "Ring radius", 1, 10, 2, func(c *Config) *float64 { return &c.Shape.RingRadius }),
		floatParam("render.particle_size", "Particle size", 0.005, 0.1, 3, func(c *Config) *float64 { return &c.Render.ParticleSize }),
		floatParam("motion.global_noise_scale", "Global noise", 0.0001, 1, 4, func(c *Config) *float64 { return &c.Motion.GlobalNoiseScale }),
		floatParam("shape.circle_thickness", "Circle thickness", 0.1, 1, 2, func(c *Config) *float64 { return &c.Shape.CircleThickness }),
		floatParam("motion.noise_scale_x", "Noise scale X", 0.1, 10, 2, func(c *Config) *float64 { return &c.Motion.NoiseScaleX }),
		floatParam("motion.noise_scale_y", "Noise scale Y", 0.1, 10, 2, func(c *Config) *float64 { return &c.Motion.NoiseScaleY }),
		floatParam("motion.noise_scale_z", "Noise scale Z", 0.1, 10, 2, func(c *Config) *float64 { return &c.Motion.NoiseScaleZ }),
		floatParam("camera.auto_rotate_speed", "Rotation speed", 0, 10, 1, func(c *Config) *float64 { return &c.Camera.AutoRotateSpeed }),
		floatParam("motion.speed_factor", "Speed factor", 0.1, 10, 2, func(c *Config) *float64 { return &c.Motion.SpeedFactor }),
		floatParam("motion.z_noise_factor", "Z noise factor", 0.1, 10, 2, func(c *Config) *float64 { return &c.Motion.ZNoiseFactor }),
		intParam("shape.q", "q", 1, 10, func(c *Config) *int { return &c.Shape.Q }),
		intParam("shape.p", "p", 1, 10, func(c *Config) *int { return &c.Shape.P }),
		floatParam("shape.spread_scale", "Spread", 0.1, 2, 2, func(c *Config) *float64 { return &c.Shape.SpreadScale }),
		floatParam("shape.knot_outer_radius", "Knot outer radius", 1, 3, 2, func(c *Config) *float64 { return &c.Shape.KnotOuterRadius }),
		floatParam("shape.knot_inner_radius", "Knot inner radius", 0.1, 2, 2, func(c *Config) *float64 { return &c.Shape.KnotInnerRadius }),
	}
}

// Toggles returns the checkbox parameters in panel order.
func Toggles() []Toggle {
	return []Toggle{
		boolParam("shape.knot", "Torus knot", func(c *Config) *bool { return &c.Shape.Knot }),
		boolParam("render.depth_write", "Depth write", func(c *Config) *bool { return &c.Render.DepthWrite }),
		boolParam("camera.auto_rotate", "Auto rotate", func(c *Config) *bool { return &c.Camera.AutoRotate }),
	}
}

// Clamp limits v to the parameter range, rounding integer parameters.
func (p Param) Clamp(v float64) float64 {
	if p.Integer {
		v = math.Round(v)
	}
	return math.Max(p.Min, math.Min(p.Max, v))
}

// Quantize rounds v to the parameter's display precision.
func (p Param) Quantize(v float64) float64 {
	scale := math.Pow(10, float64(p.Decimals))
	return math.Round(v*scale) / scale
}

// Edit applies a slider reading to cfg and reports whether cfg changed.
// Sliders clamp their value into the range on every draw, so a reading equal to
// the clamped current value is not an edit and leaves out-of-range values alone.
func (p Param) Edit(cfg *Config, slider float32) bool {
	cur := p.Get(cfg)
	if slider == float32(p.Clamp(cur)) {
		return false
	}
	p.Set(cfg, p.Quantize(float64(slider)))
	return p.Get(cfg) != cur
}

func floatParam(id, label string, lo, hi float64, decimals int, field func(*Config) *float64) Param {
	p := Param{ID: id, Label: label, Min: lo, Max: hi, Decimals: decimals, Format: fmt.Sprintf("%%.%df", decimals)}
	p.Get = func(c *Config) float64 { return *field(c) }
	p.Set = func(c *Config, v float64) { *field(c) = p.Clamp(v) }
	return p
}

func intParam(id, label string, lo, hi int, field func(*Config) *int) Param {
	p := Param{ID: id, Label: label, Min: float64(lo), Max: float64(hi), Integer: true, Format: "%.0f"}
	p.Get = func(c *Config) float64 { return float64(*field(c)) }
	p.Set = func(c *Config, v float64) { *field(c) = int(p.Clamp(v)) }
	return p
}

func boolParam(id, label string, field func(*Config) *bool) Toggle {
	return Toggle{
		ID:    id,
		Label: label,
		Get:   func(c *Config) bool { return *field(c) },
		Set:   func(c *Config, v bool) { *field(c) = v },
	}
}
