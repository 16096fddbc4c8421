// Package renderer draws the particle field with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/GabrielZirk/Magic-ring/camera"
)

// Camera3D converts the orbit camera into a raylib perspective camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position()),
		Target:     vec3(c.Target),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       float32(c.Fovy),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// Background clears the frame to the configured color.
func Background(c [3]uint8) {
	rl.ClearBackground(rl.Color{R: c[0], G: c[1], B: c[2], A: 255})
}
