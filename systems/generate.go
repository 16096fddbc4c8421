package systems

import (
	"math"

	"github.com/GabrielZirk/Magic-ring/config"
)

// Sampler draws uniform values in [0, 1). *rand.Rand satisfies it.
type Sampler interface {
	Float64() float64
}

// MaxSpeed is the upper bound of the per-particle angular speed draw.
const MaxSpeed = 0.01

// uniform maps a unit draw linearly onto [lo, hi].
func uniform(rng Sampler, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Generate builds a new field of n particles using the rule for shape.
// n <= 0 yields an empty field.
func Generate(n int, shape Shape, sc config.ShapeConfig, rng Sampler) *Field {
	if n < 0 {
		n = 0
	}
	f := newField(shape, n)
	switch shape {
	case ShapeKnot:
		generateKnot(f, sc, rng)
	default:
		generateRing(f, sc, rng)
	}
	return f
}

// generateRing places particles in an annulus in XY with a random depth.
// Draw order per particle: angle, radius, z, speed.
func generateRing(f *Field, sc config.ShapeConfig, rng Sampler) {
	pos := f.Positions
	for i := range f.Speeds {
		i3 := i * 3
		angle := uniform(rng, 0, 2*math.Pi)
		radius := sc.RingRadius * uniform(rng, sc.CircleThickness, 1)
		s, c := math.Sincos(angle)

		pos[i3] = float32(radius * s)
		pos[i3+1] = float32(radius * c)
		pos[i3+2] = float32(rng.Float64())
		f.Speeds[i] = float32(rng.Float64() * MaxSpeed)
	}
}

// generateKnot places particles along a (p,q) torus knot with jitter.
// Draw order per particle: angle, jx, jy, jz, speed.
func generateKnot(f *Field, sc config.ShapeConfig, rng Sampler) {
	pos := f.Positions
	k := f.Knot
	p, q := float64(sc.P), float64(sc.Q)
	for i := range f.Speeds {
		i3 := i * 3
		angle := uniform(rng, 0, 2*math.Pi)
		k.Phases[i] = angle

		jx := rng.Float64() * sc.SpreadScale
		jy := rng.Float64() * sc.SpreadScale
		jz := rng.Float64() * sc.SpreadScale
		k.Jitter[i3] = float32(jx)
		k.Jitter[i3+1] = float32(jy)
		k.Jitter[i3+2] = float32(jz)

		r := 2 + math.Cos(p*angle)
		pos[i3] = float32(r*math.Cos(q*angle) + jx)
		pos[i3+1] = float32(r*math.Sin(q*angle) + jy)
		pos[i3+2] = float32(math.Sin(p*angle) + jz)
		f.Speeds[i] = float32(rng.Float64() * MaxSpeed)

		k.Colors[i3], k.Colors[i3+1], k.Colors[i3+2] = PhaseColor(angle)
	}
}
