package systems

import (
	"math"
	"testing"
)

func TestNoiseSourcesDeterministic(t *testing.T) {
	for _, backend := range []string{"opensimplex", "perlin"} {
		t.Run(backend, func(t *testing.T) {
			a, err := NewSource(backend, 42)
			if err != nil {
				t.Fatalf("NewSource: %v", err)
			}
			b, _ := NewSource(backend, 42)

			for i := 0; i < 100; i++ {
				x, y, z := float64(i)*0.37, float64(i)*-0.21, float64(i)*0.13+0.5
				if va, vb := a.Sample3(x, y, z), b.Sample3(x, y, z); va != vb {
					t.Fatalf("same seed gave %v and %v at (%v,%v,%v)", va, vb, x, y, z)
				}
				// Call order must not matter
				if va := a.Sample3(x, y, z); va != b.Sample3(x, y, z) {
					t.Fatalf("repeated sample differs at (%v,%v,%v)", x, y, z)
				}
			}
		})
	}
}

func TestNoiseRange(t *testing.T) {
	for _, backend := range []string{"opensimplex", "perlin"} {
		t.Run(backend, func(t *testing.T) {
			src, _ := NewSource(backend, 7)
			var nonZero bool
			for ix := -10; ix <= 10; ix++ {
				for iy := -10; iy <= 10; iy++ {
					for iz := -5; iz <= 5; iz++ {
						v := src.Sample3(float64(ix)*0.173, float64(iy)*0.291, float64(iz)*0.417)
						if math.IsNaN(v) || math.Abs(v) > 1.1 {
							t.Fatalf("sample %v outside approx [-1,1]", v)
						}
						if v != 0 {
							nonZero = true
						}
						w := src.Sample4(float64(ix)*0.173, float64(iy)*0.291, float64(iz)*0.417, 0.3)
						if math.IsNaN(w) || math.Abs(w) > 1.1 {
							t.Fatalf("4D sample %v outside approx [-1,1]", w)
						}
					}
				}
			}
			if !nonZero {
				t.Error("expected some non-zero noise values")
			}
		})
	}
}

func TestNoiseSeedsDiffer(t *testing.T) {
	a := NewPerlinNoise(1)
	b := NewPerlinNoise(2)
	same := true
	for i := 0; i < 50; i++ {
		x := float64(i)*0.31 + 0.1
		if a.Sample3(x, x*0.5, x*0.25) != b.Sample3(x, x*0.5, x*0.25) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical noise")
	}
}

func TestNewSourceUnknownBackend(t *testing.T) {
	if _, err := NewSource("worley", 1); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestRingDisplacementSliceMatchesStep(t *testing.T) {
	src := NewSimplexNoise(3)
	m := testMotion()
	const size, extent, z = 4, 2.0, 0.3

	grid := make([]float64, size*size)
	RingDisplacementSlice(grid, size, extent, z, src, m)

	// Cell (row 1, col 2) is centred on x=0.5, y=0.5
	f := newField(ShapeRing, 1)
	f.Positions[0], f.Positions[1], f.Positions[2] = 0.5, 0.5, z
	Step(f, src, m, testShape())

	want := grid[1*size+2]
	if got := float64(f.Positions[0]) - 0.5; math.Abs(got-want) > 1e-5 {
		t.Errorf("x displacement %v, slice says %v", got, want)
	}
	if got := float64(f.Positions[2]) - z; math.Abs(got-want*m.ZNoiseFactor) > 1e-5 {
		t.Errorf("z displacement %v, want %v", got, want*m.ZNoiseFactor)
	}
}
