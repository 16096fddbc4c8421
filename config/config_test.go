package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, adj, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(adj) != 0 {
		t.Errorf("embedded defaults needed adjustments: %v", adj)
	}
	if cfg.Particles.Count != 70000 {
		t.Errorf("expected 70000 particles, got %d", cfg.Particles.Count)
	}
	if !cfg.Shape.Knot || cfg.Shape.P != 3 || cfg.Shape.Q != 2 {
		t.Errorf("unexpected shape defaults: %+v", cfg.Shape)
	}
	if cfg.Motion.PhaseStep != 0.002 {
		t.Errorf("expected phase step 0.002, got %v", cfg.Motion.PhaseStep)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("particles:\n  count: 500\nshape:\n  knot: false\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Count != 500 {
		t.Errorf("expected 500 particles, got %d", cfg.Particles.Count)
	}
	if cfg.Shape.Knot {
		t.Error("expected ring shape from user file")
	}
	// Untouched fields keep their defaults
	if cfg.Shape.RingRadius != 1 {
		t.Errorf("expected default ring radius 1, got %v", cfg.Shape.RingRadius)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSanitizeClamps(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(c *Config)
		check func(c *Config) bool
	}{
		{"negative count", func(c *Config) { c.Particles.Count = -5 }, func(c *Config) bool { return c.Particles.Count == 0 }},
		{"huge count", func(c *Config) { c.Particles.Count = 1 << 30 }, func(c *Config) bool { return c.Particles.Count == MaxParticles }},
		{"zero p", func(c *Config) { c.Shape.P = 0 }, func(c *Config) bool { return c.Shape.P == 1 }},
		{"negative q", func(c *Config) { c.Shape.Q = -3 }, func(c *Config) bool { return c.Shape.Q == 1 }},
		{"zero axis scale", func(c *Config) { c.Motion.NoiseScaleY = 0 }, func(c *Config) bool { return c.Motion.NoiseScaleY == MinNoiseAxis }},
		{"thickness above one", func(c *Config) { c.Shape.CircleThickness = 1.5 }, func(c *Config) bool { return c.Shape.CircleThickness == 1 }},
		{"negative spread", func(c *Config) { c.Shape.SpreadScale = -1 }, func(c *Config) bool { return c.Shape.SpreadScale == 0 }},
		{"unknown backend", func(c *Config) { c.Noise.Backend = "value" }, func(c *Config) bool { return c.Noise.Backend == "opensimplex" }},
		{"unknown capture mode", func(c *Config) { c.Capture.Mode = "hold" }, func(c *Config) bool { return c.Capture.Mode == "toggle" }},
		{"zero phase step", func(c *Config) { c.Motion.PhaseStep = 0 }, func(c *Config) bool { return c.Motion.PhaseStep == DefaultPhaseStep }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)
			adj := cfg.Sanitize()
			if len(adj) != 1 {
				t.Errorf("expected exactly one adjustment, got %v", adj)
			}
			if !tt.check(cfg) {
				t.Errorf("value not clamped: %+v", adj)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name       string
		edit       func(c *Config)
		structural bool
		cosmetic   bool
		flip       bool
	}{
		{"no change", func(c *Config) {}, false, false, false},
		{"count", func(c *Config) { c.Particles.Count = 10 }, true, false, false},
		{"knot toggle", func(c *Config) { c.Shape.Knot = !c.Shape.Knot }, true, false, true},
		{"p", func(c *Config) { c.Shape.P = 5 }, true, false, false},
		{"spread", func(c *Config) { c.Shape.SpreadScale = 0.3 }, true, false, false},
		{"knot radius", func(c *Config) { c.Shape.KnotInnerRadius = 0.4 }, true, false, false},
		{"noise scale", func(c *Config) { c.Motion.GlobalNoiseScale = 0.5 }, false, true, false},
		{"speed factor", func(c *Config) { c.Motion.SpeedFactor = 3 }, false, true, false},
		{"particle size", func(c *Config) { c.Render.ParticleSize = 0.02 }, false, true, false},
		{"depth write", func(c *Config) { c.Render.DepthWrite = !c.Render.DepthWrite }, false, true, false},
		{"rotation speed", func(c *Config) { c.Camera.AutoRotateSpeed = 8 }, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Default()
			next := prev.Clone()
			tt.edit(next)
			ch := Diff(prev, next)
			if ch.Structural != tt.structural || ch.Cosmetic != tt.cosmetic || ch.ShapeFlip != tt.flip {
				t.Errorf("Diff = %+v, want structural=%v cosmetic=%v flip=%v",
					ch, tt.structural, tt.cosmetic, tt.flip)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Particles.Count = 1234
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Particles.Count != 1234 {
		t.Errorf("expected 1234 particles after reload, got %d", loaded.Particles.Count)
	}
}

func TestInitSetsGlobal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	if err := os.WriteFile(path, []byte("particles:\n  count: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := Cfg().Particles.Count; got != 0 {
		t.Errorf("expected clamped count 0, got %d", got)
	}
	if err := Init(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
