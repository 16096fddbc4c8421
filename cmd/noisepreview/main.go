// Noise field preview tool - shows a horizontal slice of the ring displacement
// field with sliders for the motion parameters.
//
// Usage: go run ./cmd/noisepreview [-config file.yaml]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/GabrielZirk/Magic-ring/config"
	"github.com/GabrielZirk/Magic-ring/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 512
	gridSize     = 192
	panelWidth   = windowWidth - previewSize - 30
)

// Diverging gradient: negative displacement blue, zero dark, positive orange.
var (
	colorNeg  = colorful.Color{R: 0.15, G: 0.35, B: 0.95}
	colorZero = colorful.Color{R: 0.05, G: 0.05, B: 0.08}
	colorPos  = colorful.Color{R: 1.0, G: 0.6, B: 0.1}
)

// slider describes one motion parameter on the panel.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(*previewState) *float64
}

type previewState struct {
	motion  config.MotionConfig
	extent  float64
	z       float64
	seed    int64
	backend string
}

var sliders = []slider{
	{"Extent", 0.5, 10, "%.2f", func(s *previewState) *float64 { return &s.extent }},
	{"Depth (z)", -3, 3, "%.2f", func(s *previewState) *float64 { return &s.z }},
	{"Global noise scale", 0.0001, 1, "%.4f", func(s *previewState) *float64 { return &s.motion.GlobalNoiseScale }},
	{"Noise scale X", 0.1, 10, "%.2f", func(s *previewState) *float64 { return &s.motion.NoiseScaleX }},
	{"Noise scale Y", 0.1, 10, "%.2f", func(s *previewState) *float64 { return &s.motion.NoiseScaleY }},
	{"Noise scale Z", 0.1, 10, "%.2f", func(s *previewState) *float64 { return &s.motion.NoiseScaleZ }},
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	initial := previewState{
		motion:  cfg.Motion,
		extent:  cfg.Shape.RingRadius * 1.5,
		z:       0,
		seed:    cfg.Noise.Seed,
		backend: cfg.Noise.Backend,
	}
	if initial.seed == 0 {
		initial.seed = time.Now().UnixNano() % 100000
	}
	state := initial

	rl.InitWindow(windowWidth, windowHeight, "Noise Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	grid := make([]float64, gridSize*gridSize)
	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var src systems.Source
	needsSource := true
	needsRegen := true
	var minVal, maxVal float64

	for !rl.WindowShouldClose() {
		if needsSource {
			s, err := systems.NewSource(state.backend, state.seed)
			if err != nil {
				log.Fatalf("creating noise source: %v", err)
			}
			src = s
			needsSource = false
			needsRegen = true
		}

		if needsRegen {
			systems.RingDisplacementSlice(grid, gridSize, state.extent, state.z, src, state.motion)
			minVal, maxVal = updateTexture(texture, grid, pixels, state.motion.GlobalNoiseScale)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Ring outline at the configured radius
		center := float32(10 + previewSize/2)
		ringPx := float32(cfg.Shape.RingRadius / state.extent * previewSize / 2)
		rl.DrawCircleLines(int32(center), int32(center), ringPx, rl.Fade(rl.White, 0.5))

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.4f  Max: %.4f", minVal, maxVal), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Backend: %s  Seed: %d", state.backend, state.seed), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Ring Displacement", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			v := s.value(&state)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*v), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *v), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != float32(*v) {
				*v = float64(next)
				needsRegen = true
			}
			panelY += 35
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			state.seed = int64(rl.GetRandomValue(0, 99999))
			needsSource = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(state.backend == "perlin", "Use Simplex", "Use Perlin")) {
			if state.backend == "perlin" {
				state.backend = "opensimplex"
			} else {
				state.backend = "perlin"
			}
			needsSource = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			state = initial
			needsSource = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(state) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(state) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

func yamlLines(s previewState) []string {
	return []string{
		"motion:",
		fmt.Sprintf("  global_noise_scale: %.4f", s.motion.GlobalNoiseScale),
		fmt.Sprintf("  noise_scale_x: %.2f", s.motion.NoiseScaleX),
		fmt.Sprintf("  noise_scale_y: %.2f", s.motion.NoiseScaleY),
		fmt.Sprintf("  noise_scale_z: %.2f", s.motion.NoiseScaleZ),
		"noise:",
		fmt.Sprintf("  backend: %s", s.backend),
		fmt.Sprintf("  seed: %d", s.seed),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// updateTexture maps displacements to the diverging gradient, normalized by
// the global noise scale, and uploads them. Returns the observed range.
func updateTexture(texture rl.Texture2D, grid []float64, pixels []color.RGBA, amplitude float64) (minVal, maxVal float64) {
	minVal, maxVal = math.Inf(1), math.Inf(-1)
	for i, v := range grid {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)

		t := 0.0
		if amplitude > 0 {
			t = math.Max(-1, math.Min(1, v/amplitude))
		}
		var c colorful.Color
		if t < 0 {
			c = colorZero.BlendLab(colorNeg, -t)
		} else {
			c = colorZero.BlendLab(colorPos, t)
		}
		r, g, b := c.Clamped().RGB255()
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
	return minVal, maxVal
}
