package systems

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Hue range swept by the knot phase.
const (
	HueMin = 0.3
	HueMax = 0.9
)

// mapLinear maps x from [a1, a2] onto [b1, b2] without clamping.
func mapLinear(x, a1, a2, b1, b2 float64) float64 {
	return b1 + (x-a1)*(b2-b1)/(a2-a1)
}

// PhaseHue maps a phase in [0, 2π] onto a hue in [HueMin, HueMax] (unit turns).
func PhaseHue(phase float64) float64 {
	return mapLinear(phase, 0, 2*math.Pi, HueMin, HueMax)
}

// PhaseColor returns the linear RGB color of HSL(PhaseHue(phase), 1, 0.5).
func PhaseColor(phase float64) (r, g, b float32) {
	c := colorful.Hsl(PhaseHue(phase)*360, 1, 0.5)
	lr, lg, lb := c.LinearRgb()
	return float32(lr), float32(lg), float32(lb)
}
