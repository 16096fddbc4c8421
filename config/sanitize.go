package config

import "log/slog"

// Limits applied at the configuration boundary so the numeric core never sees
// values it cannot handle.
const (
	MaxParticles     = 2_000_000
	MinNoiseAxis     = 0.1
	MinKnotWinding   = 1
	DefaultPhaseStep = 0.002
)

// Adjustment records a value that Sanitize replaced.
type Adjustment struct {
	Field string
	From  any
	To    any
}

// LogValue implements slog.LogValuer for structured logging.
func (a Adjustment) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("field", a.Field),
		slog.Any("from", a.From),
		slog.Any("to", a.To),
	)
}

// Sanitize clamps invalid values in place and reports every change.
func (c *Config) Sanitize() []Adjustment {
	var adj []Adjustment

	clampInt := func(name string, v *int, lo, hi int) {
		old := *v
		if *v < lo {
			*v = lo
		}
		if *v > hi {
			*v = hi
		}
		if *v != old {
			adj = append(adj, Adjustment{Field: name, From: old, To: *v})
		}
	}
	clampFloat := func(name string, v *float64, lo, hi float64) {
		old := *v
		if *v < lo || *v != *v {
			*v = lo
		}
		if *v > hi {
			*v = hi
		}
		if *v != old {
			adj = append(adj, Adjustment{Field: name, From: old, To: *v})
		}
	}
	oneOf := func(name string, v *string, def string, allowed ...string) {
		for _, a := range allowed {
			if *v == a {
				return
			}
		}
		adj = append(adj, Adjustment{Field: name, From: *v, To: def})
		*v = def
	}

	clampInt("particles.count", &c.Particles.Count, 0, MaxParticles)

	s := &c.Shape
	clampFloat("shape.ring_radius", &s.RingRadius, 0, 1e6)
	clampFloat("shape.circle_thickness", &s.CircleThickness, 0, 1)
	clampInt("shape.p", &s.P, MinKnotWinding, 1000)
	clampInt("shape.q", &s.Q, MinKnotWinding, 1000)
	clampFloat("shape.spread_scale", &s.SpreadScale, 0, 1e6)
	clampFloat("shape.knot_outer_radius", &s.KnotOuterRadius, 0, 1e6)
	clampFloat("shape.knot_inner_radius", &s.KnotInnerRadius, 0, 1e6)

	m := &c.Motion
	clampFloat("motion.global_noise_scale", &m.GlobalNoiseScale, 0, 1e6)
	clampFloat("motion.noise_scale_x", &m.NoiseScaleX, MinNoiseAxis, 1e6)
	clampFloat("motion.noise_scale_y", &m.NoiseScaleY, MinNoiseAxis, 1e6)
	clampFloat("motion.noise_scale_z", &m.NoiseScaleZ, MinNoiseAxis, 1e6)
	clampFloat("motion.speed_factor", &m.SpeedFactor, 0, 1e6)
	clampFloat("motion.z_noise_factor", &m.ZNoiseFactor, 0, 1e6)
	if m.PhaseStep <= 0 {
		adj = append(adj, Adjustment{Field: "motion.phase_step", From: m.PhaseStep, To: DefaultPhaseStep})
		m.PhaseStep = DefaultPhaseStep
	}

	oneOf("noise.backend", &c.Noise.Backend, "opensimplex", "opensimplex", "perlin")

	clampFloat("render.particle_size", &c.Render.ParticleSize, 0.0001, 100)

	cam := &c.Camera
	clampFloat("camera.fovy", &cam.Fovy, 1, 179)
	clampFloat("camera.auto_rotate_speed", &cam.AutoRotateSpeed, 0, 100)
	clampFloat("camera.damping_factor", &cam.DampingFactor, 0.001, 1)
	clampFloat("camera.min_distance", &cam.MinDistance, 0.01, 1e6)
	clampFloat("camera.max_distance", &cam.MaxDistance, cam.MinDistance, 1e6)

	oneOf("capture.mode", &c.Capture.Mode, "toggle", "toggle", "split")
	oneOf("capture.format", &c.Capture.Format, "png", "png", "gif")
	clampInt("capture.fps", &c.Capture.FPS, 1, 240)
	clampInt("capture.queue_size", &c.Capture.QueueSize, 1, 1024)
	clampFloat("capture.gif_scale", &c.Capture.GIFScale, 0.05, 1)
	if c.Capture.Name == "" {
		adj = append(adj, Adjustment{Field: "capture.name", From: "", To: "myVideo"})
		c.Capture.Name = "myVideo"
	}

	clampInt("screen.width", &c.Screen.Width, 64, 16384)
	clampInt("screen.height", &c.Screen.Height, 64, 16384)
	clampInt("screen.target_fps", &c.Screen.TargetFPS, 1, 1000)
	clampInt("telemetry.perf_window", &c.Telemetry.PerfWindow, 1, 100000)
	clampFloat("telemetry.log_interval", &c.Telemetry.LogInterval, 0, 1e6)

	return adj
}

// Change classifies the difference between two configurations.
type Change struct {
	Structural bool // field must be regenerated
	Cosmetic   bool // takes effect on the next frame or render pass
	ShapeFlip  bool // ring <-> knot transition
}

// Diff compares prev with next. Structural parameters are the particle count and
// everything in ShapeConfig; motion, render and camera parameters are cosmetic.
func Diff(prev, next *Config) Change {
	var ch Change
	if prev.Particles != next.Particles || prev.Shape != next.Shape {
		ch.Structural = true
	}
	ch.ShapeFlip = prev.Shape.Knot != next.Shape.Knot
	if prev.Motion != next.Motion || prev.Render != next.Render || prev.Camera != next.Camera {
		ch.Cosmetic = true
	}
	return ch
}
