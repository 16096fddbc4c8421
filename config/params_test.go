package config

import "testing"

func TestParamsDefaultsInRange(t *testing.T) {
	cfg := Default()
	for _, p := range Params() {
		v := p.Get(cfg)
		if v < p.Min || v > p.Max {
			t.Errorf("%s: default %v outside [%v, %v]", p.ID, v, p.Min, p.Max)
		}
	}
}

func TestParamsUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Params() {
		if seen[p.ID] {
			t.Errorf("duplicate param %s", p.ID)
		}
		seen[p.ID] = true
	}
	for _, tg := range Toggles() {
		if seen[tg.ID] {
			t.Errorf("duplicate toggle %s", tg.ID)
		}
		seen[tg.ID] = true
	}
}

func TestParamSetClamps(t *testing.T) {
	byID := make(map[string]Param)
	for _, p := range Params() {
		byID[p.ID] = p
	}

	tests := []struct {
		id   string
		set  float64
		want float64
	}{
		{"particles.count", 1e9, 200000},
		{"particles.count", 1234.6, 1235},
		{"shape.p", 0, 1},
		{"render.particle_size", 0.05, 0.05},
		{"motion.global_noise_scale", -1, 0.0001},
		{"shape.knot_outer_radius", 5, 3},
	}

	for _, tt := range tests {
		p, ok := byID[tt.id]
		if !ok {
			t.Fatalf("missing param %s", tt.id)
		}
		cfg := Default()
		p.Set(cfg, tt.set)
		if got := p.Get(cfg); got != tt.want {
			t.Errorf("%s: Set(%v) gave %v, want %v", tt.id, tt.set, got, tt.want)
		}
	}
}

func TestParamsEditStructuralAndCosmetic(t *testing.T) {
	byID := make(map[string]Param)
	for _, p := range Params() {
		byID[p.ID] = p
	}

	prev := Default()
	next := prev.Clone()
	byID["motion.speed_factor"].Set(next, 2)
	if ch := Diff(prev, next); ch.Structural || !ch.Cosmetic {
		t.Errorf("speed factor edit: got %+v, want cosmetic only", ch)
	}

	next = prev.Clone()
	byID["shape.q"].Set(next, 5)
	if ch := Diff(prev, next); !ch.Structural {
		t.Errorf("q edit: got %+v, want structural", ch)
	}
}

func TestToggleShape(t *testing.T) {
	cfg := Default()
	for _, tg := range Toggles() {
		if tg.ID != "shape.knot" {
			continue
		}
		prev := cfg.Clone()
		tg.Set(cfg, !tg.Get(cfg))
		ch := Diff(prev, cfg)
		if !ch.Structural || !ch.ShapeFlip {
			t.Errorf("knot toggle: got %+v, want structural shape flip", ch)
		}
		return
	}
	t.Fatal("knot toggle missing")
}

func paramByID(t *testing.T, id string) Param {
	t.Helper()
	for _, p := range Params() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("missing param %s", id)
	return Param{}
}

// sliderReading is what a range-clamping slider reports for cur without input.
func sliderReading(p Param, cur float64) float32 {
	v := float32(cur)
	if v < float32(p.Min) {
		v = float32(p.Min)
	}
	if v > float32(p.Max) {
		v = float32(p.Max)
	}
	return v
}

func TestParamEditIgnoresRangeClamp(t *testing.T) {
	cfg := Default()
	cfg.Particles.Count = 500000
	cfg.Motion.GlobalNoiseScale = 0
	cfg.Shape.SpreadScale = 0
	cfg.Motion.SpeedFactor = 0.123456
	if adj := cfg.Sanitize(); len(adj) != 0 {
		t.Fatalf("test config should be valid, got adjustments %v", adj)
	}
	want := cfg.Clone()

	for _, p := range Params() {
		if p.Edit(cfg, sliderReading(p, p.Get(cfg))) {
			t.Errorf("%s: untouched slider reported an edit", p.ID)
		}
	}
	if *cfg != *want {
		t.Errorf("untouched panel rewrote the config:\n got %+v\nwant %+v", cfg, want)
	}
}

func TestParamEditQuantizes(t *testing.T) {
	cfg := Default()
	spread := paramByID(t, "shape.spread_scale")
	if !spread.Edit(cfg, float32(0.1)) {
		t.Fatal("expected an edit")
	}
	if cfg.Shape.SpreadScale != 0.1 {
		t.Errorf("spread = %v, want exactly 0.1", cfg.Shape.SpreadScale)
	}

	noise := paramByID(t, "motion.global_noise_scale")
	noise.Edit(cfg, float32(0.00234567))
	if cfg.Motion.GlobalNoiseScale != 0.0023 {
		t.Errorf("global noise = %v, want 0.0023", cfg.Motion.GlobalNoiseScale)
	}

	count := paramByID(t, "particles.count")
	count.Edit(cfg, 12345.6)
	if cfg.Particles.Count != 12346 {
		t.Errorf("count = %d, want 12346", cfg.Particles.Count)
	}
}
