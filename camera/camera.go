// Package camera provides a damped orbit camera for viewport control.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// polarEps keeps the polar angle away from the poles so the up vector stays valid.
const polarEps = 1e-6

// Camera orbits a target point. Input accumulates rotation, pan and zoom deltas;
// Update applies them once per frame, easing them out when damping is enabled.
type Camera struct {
	// Target is the orbit center in world coordinates
	Target r3.Vec

	// Spherical coordinates of the eye relative to Target (y up)
	Distance float64
	Azimuth  float64 // around +y, 0 = looking down -z
	Polar    float64 // from +y

	// Fovy is the vertical field of view in degrees
	Fovy float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Distance constraints
	MinDistance, MaxDistance float64

	Damping         bool
	DampingFactor   float64
	AutoRotate      bool
	AutoRotateSpeed float64 // 4.0 = one turn every 15s at 60fps

	// Pending deltas
	dAzimuth, dPolar float64
	scale            float64
	panOffset        r3.Vec

	home struct {
		target   r3.Vec
		distance float64
		azimuth  float64
		polar    float64
	}
}

// New creates a camera at eye looking at target.
func New(eye, target r3.Vec, fovy, viewportW, viewportH float64) *Camera {
	c := &Camera{
		Target:        target,
		Fovy:          fovy,
		ViewportW:     viewportW,
		ViewportH:     viewportH,
		MinDistance:   0,
		MaxDistance:   math.Inf(1),
		DampingFactor: 0.05,
		scale:         1,
	}
	c.setEye(eye)
	c.home.target = c.Target
	c.home.distance = c.Distance
	c.home.azimuth = c.Azimuth
	c.home.polar = c.Polar
	return c
}

// setEye derives the spherical coordinates of eye around Target.
func (c *Camera) setEye(eye r3.Vec) {
	off := r3.Sub(eye, c.Target)
	c.Distance = r3.Norm(off)
	if c.Distance == 0 {
		c.Azimuth, c.Polar = 0, math.Pi/2
		return
	}
	c.Azimuth = math.Atan2(off.X, off.Z)
	c.Polar = math.Acos(clamp(off.Y/c.Distance, -1, 1))
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() r3.Vec {
	sinP, cosP := math.Sincos(c.Polar)
	sinA, cosA := math.Sincos(c.Azimuth)
	off := r3.Vec{
		X: c.Distance * sinP * sinA,
		Y: c.Distance * cosP,
		Z: c.Distance * sinP * cosA,
	}
	return r3.Add(c.Target, off)
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float64 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Rotate queues an orbit by the given angles in radians.
func (c *Camera) Rotate(dAzimuth, dPolar float64) {
	c.dAzimuth += dAzimuth
	c.dPolar += dPolar
}

// Drag orbits by a mouse drag in screen pixels; a full viewport height is one turn.
func (c *Camera) Drag(dx, dy float64) {
	if c.ViewportH == 0 {
		return
	}
	c.Rotate(-2*math.Pi*dx/c.ViewportH, -2*math.Pi*dy/c.ViewportH)
}

// Pan moves the target by the given delta in screen pixels, in the view plane.
func (c *Camera) Pan(dx, dy float64) {
	if c.ViewportH == 0 {
		return
	}
	// World units per pixel at the target distance
	perPixel := 2 * c.Distance * math.Tan(c.Fovy*math.Pi/360) / c.ViewportH

	sinA, cosA := math.Sincos(c.Azimuth)
	right := r3.Vec{X: cosA, Y: 0, Z: -sinA}
	forward := r3.Unit(r3.Sub(c.Target, c.Position()))
	up := r3.Cross(right, forward)

	move := r3.Add(r3.Scale(-dx*perPixel, right), r3.Scale(dy*perPixel, up))
	c.panOffset = r3.Add(c.panOffset, move)
}

// ZoomBy multiplies the orbit distance by factor on the next Update.
// factor < 1 moves closer.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.scale *= factor
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// AutoRotationAngle returns the azimuth change auto-rotate applies per frame.
func (c *Camera) AutoRotationAngle() float64 {
	return 2 * math.Pi / 60 / 60 * c.AutoRotateSpeed
}

// Update applies pending input and auto-rotation. Call once per frame.
func (c *Camera) Update() {
	if c.AutoRotate {
		c.dAzimuth -= c.AutoRotationAngle()
	}

	if c.Damping {
		c.Azimuth += c.dAzimuth * c.DampingFactor
		c.Polar += c.dPolar * c.DampingFactor
		c.Target = r3.Add(c.Target, r3.Scale(c.DampingFactor, c.panOffset))
	} else {
		c.Azimuth += c.dAzimuth
		c.Polar += c.dPolar
		c.Target = r3.Add(c.Target, c.panOffset)
	}
	c.Azimuth = math.Remainder(c.Azimuth, 2*math.Pi)
	c.Polar = clamp(c.Polar, polarEps, math.Pi-polarEps)
	c.SetDistance(c.Distance * c.scale)

	if c.Damping {
		keep := 1 - c.DampingFactor
		c.dAzimuth *= keep
		c.dPolar *= keep
		c.panOffset = r3.Scale(keep, c.panOffset)
	} else {
		c.dAzimuth, c.dPolar = 0, 0
		c.panOffset = r3.Vec{}
	}
	c.scale = 1
}

// Resize updates viewport dimensions. The projection is re-fitted from the new
// aspect ratio on the next draw.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns the camera to the position it was created with.
func (c *Camera) Reset() {
	c.Target = c.home.target
	c.Distance = c.home.distance
	c.Azimuth = c.home.azimuth
	c.Polar = c.home.polar
	c.dAzimuth, c.dPolar = 0, 0
	c.panOffset = r3.Vec{}
	c.scale = 1
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
