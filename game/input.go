package game

import (
	"errors"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/GabrielZirk/Magic-ring/capture"
)

// wheelZoomStep is the distance factor applied per wheel notch.
const wheelZoomStep = 0.95

// controlsText returns the key legend shown at the bottom of the screen.
func (g *Game) controlsText() string {
	rec := "[V] record"
	if g.recorder != nil && g.recorder.Mode() == "split" {
		rec = "[R] record [S] save"
	}
	return "[Tab] panel  [K] ring/knot  [A] auto rotate  [C] reset view  [P] perf  " + rec + "  [F11] fullscreen"
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyK) {
		g.toggleShape()
	}
	if rl.IsKeyPressed(rl.KeyA) {
		next := g.scene.Config()
		next.Camera.AutoRotate = !next.Camera.AutoRotate
		g.applyConfig(next)
	}

	g.handleCaptureKeys()
	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(float64(w), float64(h))
	g.perfPanel.SetPosition(10, int32(h)-140)
	slog.Debug("window resized", "width", w, "height", h)
}

// handleCaptureKeys drives the recorder from the configured key mode.
func (g *Game) handleCaptureKeys() {
	var err error
	if g.recorder.Mode() == "split" {
		if rl.IsKeyPressed(rl.KeyR) {
			err = g.recorder.Start()
		}
		if rl.IsKeyPressed(rl.KeyS) {
			_, err = g.recorder.Stop()
		}
	} else if rl.IsKeyPressed(rl.KeyV) {
		err = g.recorder.Toggle()
	}

	switch {
	case err == nil:
	case errors.Is(err, capture.ErrRecording), errors.Is(err, capture.ErrIdle):
		slog.Debug("capture key ignored", "state", g.recorder.State().String())
	default:
		slog.Error("capture failed", "error", err)
	}
}

// handleCameraInput maps mouse drag and wheel to the orbit camera.
// Input over the parameter panel belongs to the panel.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	if g.panel.Contains(mouse.X, mouse.Y) {
		return
	}

	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.camera.Drag(float64(delta.X), float64(delta.Y))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		g.camera.Pan(float64(delta.X), float64(delta.Y))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(math.Pow(wheelZoomStep, float64(wheel)))
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.camera.Reset()
	}
}
