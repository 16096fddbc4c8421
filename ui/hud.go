package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/GabrielZirk/Magic-ring/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	FPS          int32
	Particles    int
	Shape        string
	Frame        int64
	AutoRotate   bool
	Recording    bool
	Captured     int
	Dropped      int
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top-right corner.
func (h *HUD) Draw(data HUDData) {
	lines := []string{
		fmt.Sprintf("FPS: %d", data.FPS),
		fmt.Sprintf("%s | %d particles", data.Shape, data.Particles),
		fmt.Sprintf("Frame: %d", data.Frame),
	}
	if data.AutoRotate {
		lines = append(lines, "Auto rotate")
	}

	y := int32(10)
	for _, line := range lines {
		w := rl.MeasureText(line, 16)
		rl.DrawText(line, data.ScreenWidth-w-10, y, 16, rl.LightGray)
		y += 20
	}

	if data.Recording {
		text := fmt.Sprintf("REC %d", data.Captured)
		if data.Dropped > 0 {
			text += fmt.Sprintf(" (%d dropped)", data.Dropped)
		}
		w := rl.MeasureText(text, 16)
		rl.DrawCircle(data.ScreenWidth-w-24, y+8, 6, h.renderer.Theme.RecordColor)
		rl.DrawText(text, data.ScreenWidth-w-10, y, 16, h.renderer.Theme.RecordColor)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20

	y = p.renderer.DrawLabelValue(x, y, "Avg frame", stats.AvgFrameTime.Round(time.Microsecond).String())

	for _, phase := range telemetry.Phases() {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
