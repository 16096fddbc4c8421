package systems

import (
	"math"

	"github.com/GabrielZirk/Magic-ring/config"
)

const twoPi = 2 * math.Pi

// AdvancePhase moves a knot phase forward by step and wraps it into [0, 2π).
func AdvancePhase(phase, step float64) float64 {
	p := math.Mod(phase+step, twoPi)
	if p < 0 {
		p += twoPi
	}
	return p
}

// Step advances the field by one frame. Every particle reads only the previous
// frame's state; new positions go to a separate buffer that is swapped in at the
// end, so the pass has no order-dependent feedback.
func Step(f *Field, src Source, m config.MotionConfig, sc config.ShapeConfig) {
	if f.released || f.Len() == 0 {
		return
	}
	switch f.Shape {
	case ShapeKnot:
		stepKnot(f, src, m, sc)
	default:
		stepRing(f, src, m)
	}
	f.Positions, f.next = f.next, f.Positions
}

func stepRing(f *Field, src Source, m config.MotionConfig) {
	prev, out := f.Positions, f.next
	for i, speed := range f.Speeds {
		i3 := i * 3
		x := float64(prev[i3])
		y := float64(prev[i3+1])
		z := float64(prev[i3+2])

		noise := src.Sample3(x/m.NoiseScaleX, y/m.NoiseScaleY, z/m.NoiseScaleZ) * m.GlobalNoiseScale

		// atan2(0, 0) = 0, so a particle on the axis stays put
		angle := math.Atan2(x, y) + float64(speed)*m.SpeedFactor
		r := math.Hypot(x, y)
		s, c := math.Sincos(angle)

		out[i3] = float32(r*s + noise)
		out[i3+1] = float32(r*c + noise)
		out[i3+2] = float32(z + noise*m.ZNoiseFactor)
	}
}

func stepKnot(f *Field, src Source, m config.MotionConfig, sc config.ShapeConfig) {
	out := f.next
	k := f.Knot
	p, q := float64(sc.P), float64(sc.Q)
	for i := range f.Speeds {
		i3 := i * 3
		jx := float64(k.Jitter[i3])
		jy := float64(k.Jitter[i3+1])
		jz := float64(k.Jitter[i3+2])

		// Sampled at the fixed jitter, not the live position
		noise := src.Sample3(jx, jy, jz) * m.GlobalNoiseScale

		phase := AdvancePhase(k.Phases[i], m.PhaseStep)
		k.Phases[i] = phase

		r := sc.KnotOuterRadius + sc.KnotInnerRadius*math.Cos(p*phase)
		out[i3] = float32(r*math.Cos(q*phase) + jx*sc.SpreadScale + noise)
		out[i3+1] = float32(r*math.Sin(q*phase) + jy*sc.SpreadScale + noise)
		out[i3+2] = float32(math.Sin(p*phase) + jz*sc.SpreadScale + noise)

		k.Colors[i3], k.Colors[i3+1], k.Colors[i3+2] = PhaseColor(phase)
	}
}
