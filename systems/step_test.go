package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/GabrielZirk/Magic-ring/config"
)

func TestStepPreservesLength(t *testing.T) {
	src := NewSimplexNoise(1)
	for _, shape := range []Shape{ShapeRing, ShapeKnot} {
		f := Generate(500, shape, testShape(), rand.New(rand.NewSource(2)))
		for frame := 0; frame < 20; frame++ {
			Step(f, src, testMotion(), testShape())
			if f.Len() != 500 || len(f.Positions) != 1500 {
				t.Fatalf("%s frame %d: Len()=%d positions=%d", shape, frame, f.Len(), len(f.Positions))
			}
		}
	}
}

func TestStepEmptyField(t *testing.T) {
	for _, shape := range []Shape{ShapeRing, ShapeKnot} {
		f := Generate(0, shape, testShape(), rand.New(rand.NewSource(1)))
		for i := 0; i < 3; i++ {
			Step(f, NewPerlinNoise(1), testMotion(), testShape())
		}
		if f.Len() != 0 {
			t.Errorf("%s: expected empty field, got %d", shape, f.Len())
		}
	}
}

func TestStepReleasedFieldIsNoop(t *testing.T) {
	f := Generate(10, ShapeRing, testShape(), rand.New(rand.NewSource(1)))
	f.Release()
	Step(f, constNoise(0), testMotion(), testShape())
	if f.Positions != nil {
		t.Error("released field should stay empty")
	}
}

func TestRingRadiusInvariantWithoutNoise(t *testing.T) {
	f := Generate(2000, ShapeRing, testShape(), rand.New(rand.NewSource(4)))
	m := testMotion()
	m.GlobalNoiseScale = 0
	m.SpeedFactor = 3

	before := make([]float64, f.Len())
	for i := range before {
		x, y, _ := f.Position(i)
		before[i] = math.Hypot(float64(x), float64(y))
	}

	Step(f, NewSimplexNoise(8), m, testShape())

	for i := range before {
		x, y, _ := f.Position(i)
		after := math.Hypot(float64(x), float64(y))
		if !near(after, before[i], 1e-5) {
			t.Fatalf("particle %d radius changed %v -> %v", i, before[i], after)
		}
	}
}

func TestRingStepRotatesBySpeed(t *testing.T) {
	f := newField(ShapeRing, 1)
	f.Positions[0], f.Positions[1], f.Positions[2] = 0, 1, 0.25
	f.Speeds[0] = 0.01

	m := testMotion()
	m.GlobalNoiseScale = 0
	m.SpeedFactor = 2

	Step(f, constNoise(1), m, testShape())

	x, y, z := f.Position(0)
	if !near(float64(x), math.Sin(0.02), 1e-6) || !near(float64(y), math.Cos(0.02), 1e-6) {
		t.Errorf("got (%v,%v), want (sin 0.02, cos 0.02)", x, y)
	}
	if z != 0.25 {
		t.Errorf("z should not move without noise, got %v", z)
	}
}

func TestRingStepAppliesNoise(t *testing.T) {
	f := newField(ShapeRing, 1)
	f.Positions[0], f.Positions[1], f.Positions[2] = 0, 1, 0
	m := testMotion()
	m.GlobalNoiseScale = 0.5
	m.ZNoiseFactor = 2

	Step(f, constNoise(0.1), m, testShape())

	x, y, z := f.Position(0)
	if !near(float64(x), 0.05, 1e-6) || !near(float64(y), 1.05, 1e-6) || !near(float64(z), 0.1, 1e-6) {
		t.Errorf("got (%v,%v,%v), want (0.05,1.05,0.1)", x, y, z)
	}
}

func TestRingStepAtOrigin(t *testing.T) {
	f := newField(ShapeRing, 1)
	f.Speeds[0] = 0.01
	m := testMotion()
	m.GlobalNoiseScale = 0

	Step(f, constNoise(0), m, testShape())

	x, y, z := f.Position(0)
	if x != 0 || y != 0 || z != 0 {
		t.Errorf("particle at origin moved to (%v,%v,%v)", x, y, z)
	}
	if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
		t.Error("NaN at origin")
	}
}

func TestStepDoesNotAliasBuffers(t *testing.T) {
	f := Generate(10, ShapeRing, testShape(), rand.New(rand.NewSource(1)))
	prev := f.Positions
	Step(f, constNoise(0), testMotion(), testShape())
	if &prev[0] == &f.Positions[0] {
		t.Error("step wrote into the buffer it was reading")
	}
	Step(f, constNoise(0), testMotion(), testShape())
	if &prev[0] != &f.Positions[0] {
		t.Error("expected buffers to swap back after two steps")
	}
}

func TestKnotStepAtPhaseZero(t *testing.T) {
	sc := config.ShapeConfig{Knot: true, P: 3, Q: 2, KnotOuterRadius: 2, KnotInnerRadius: 1}
	m := testMotion()
	m.GlobalNoiseScale = 0

	f := newField(ShapeKnot, 1)
	f.Knot.Phases[0] = 2*math.Pi - m.PhaseStep

	Step(f, constNoise(1), m, sc)

	x, y, z := f.Position(0)
	if !near(float64(x), 3, 1e-5) || !near(float64(y), 0, 1e-5) || !near(float64(z), 0, 1e-5) {
		t.Errorf("got (%v,%v,%v), want (3,0,0)", x, y, z)
	}
	if p := f.Knot.Phases[0]; p < 0 || p >= 2*math.Pi {
		t.Errorf("phase %v not wrapped into [0, 2π)", p)
	}
}

func TestKnotStepUsesJitterNoiseAndSpread(t *testing.T) {
	sc := config.ShapeConfig{Knot: true, P: 3, Q: 2, SpreadScale: 2, KnotOuterRadius: 2, KnotInnerRadius: 1}
	m := testMotion()
	m.GlobalNoiseScale = 0.5
	m.PhaseStep = 0

	f := newField(ShapeKnot, 1)
	f.Knot.Jitter[0], f.Knot.Jitter[1], f.Knot.Jitter[2] = 0.1, 0.2, 0.3

	var seen [3]float64
	src := recordingNoise{seen: &seen, value: 0.2}
	Step(f, src, m, sc)

	if seen != [3]float64{float64(float32(0.1)), float64(float32(0.2)), float64(float32(0.3))} {
		t.Errorf("noise sampled at %v, want the jitter vector", seen)
	}
	x, y, z := f.Position(0)
	// phase 0: r = 3, noise = 0.1, jitter doubled by spread
	if !near(float64(x), 3+0.2+0.1, 1e-5) || !near(float64(y), 0.4+0.1, 1e-5) || !near(float64(z), 0.6+0.1, 1e-5) {
		t.Errorf("got (%v,%v,%v)", x, y, z)
	}
}

func TestKnotStepWritesColors(t *testing.T) {
	f := Generate(100, ShapeKnot, testShape(), rand.New(rand.NewSource(6)))
	Step(f, NewPerlinNoise(2), testMotion(), testShape())
	for i := 0; i < f.Len(); i++ {
		r, g, b, ok := f.Color(i)
		if !ok {
			t.Fatal("knot field should have colors")
		}
		wr, wg, wb := PhaseColor(f.Knot.Phases[i])
		if r != wr || g != wg || b != wb {
			t.Fatalf("particle %d color (%v,%v,%v), want (%v,%v,%v)", i, r, g, b, wr, wg, wb)
		}
	}
}

func TestAdvancePhaseFullTurn(t *testing.T) {
	step := 0.002
	turns := int(2 * math.Pi / step) // 3141
	for _, start := range []float64{0, 1, 3, 6.2} {
		p := start
		for i := 0; i < turns; i++ {
			p = AdvancePhase(p, step)
			if p < 0 || p >= 2*math.Pi {
				t.Fatalf("phase %v escaped [0, 2π)", p)
			}
		}
		d := math.Abs(p - start)
		d = math.Min(d, 2*math.Pi-d)
		if d > step {
			t.Errorf("start %v: after %d steps phase is %v (off by %v)", start, turns, p, d)
		}
	}
}

// recordingNoise remembers the last 3D sample point.
type recordingNoise struct {
	seen  *[3]float64
	value float64
}

func (r recordingNoise) Sample3(x, y, z float64) float64 {
	*r.seen = [3]float64{x, y, z}
	return r.value
}

func (r recordingNoise) Sample4(x, y, z, w float64) float64 { return r.value }
