package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/GabrielZirk/Magic-ring/renderer"
	"github.com/GabrielZirk/Magic-ring/telemetry"
	"github.com/GabrielZirk/Magic-ring/ui"
)

// Update handles input and moves the camera. Call once per frame before Draw.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()
	g.camera.Update()
}

// Draw renders the field, records it when capturing, draws the panel and HUD,
// then advances the field to the next frame.
func (g *Game) Draw() {
	rl.BeginDrawing()

	g.perfCollector.StartPhase(telemetry.PhaseDraw)
	cfg := g.scene.Config()
	renderer.Background(cfg.Render.Background)
	g.particles.Draw(g.scene.Field(), renderer.Camera3D(g.camera))

	// Capture the scene before any UI is drawn over it
	if g.recorder.IsRecording() {
		g.perfCollector.StartPhase(telemetry.PhaseCapture)
		g.captureFrame()
		g.perfCollector.StartPhase(telemetry.PhaseDraw)
	}

	g.drawUI()

	g.perfCollector.StartPhase(telemetry.PhaseStep)
	g.scene.Advance()

	g.perfCollector.EndFrame()
	rl.EndDrawing()
	g.perfCollector.RecordPresent()

	g.flushTelemetry()
}

// drawUI draws the parameter panel and HUD. Panel edits are applied after the
// panel is drawn and take effect on the next frame; structural edits made by
// dragging wait until the mouse button is released.
func (g *Game) drawUI() {
	live := g.scene.Config()
	view := g.edits.View(live)
	changed := g.panel.Draw(view)
	dragging := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if next := g.edits.Submit(live, view, changed, dragging); next != nil {
		g.perfCollector.StartPhase(telemetry.PhaseRegenerate)
		g.applyConfig(next)
		g.perfCollector.StartPhase(telemetry.PhaseDraw)
	}

	field := g.scene.Field()
	g.hud.Draw(ui.HUDData{
		FPS:          rl.GetFPS(),
		Particles:    field.Len(),
		Shape:        field.Shape.String(),
		Frame:        g.scene.Frame(),
		AutoRotate:   g.camera.AutoRotate,
		Recording:    g.recorder.IsRecording(),
		Captured:     g.recorder.Accepted(),
		Dropped:      g.recorder.Dropped(),
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})
	g.hud.DrawControls(int32(g.screenHeight), g.controlsText())

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
}
