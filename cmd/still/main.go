// Still render tool - advances a field offscreen and writes one frame to a PNG.
//
// Usage: go run ./cmd/still -frames 300 -seed 7 -out still.png
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/GabrielZirk/Magic-ring/camera"
	"github.com/GabrielZirk/Magic-ring/config"
	"github.com/GabrielZirk/Magic-ring/renderer"
	"github.com/GabrielZirk/Magic-ring/systems"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outPath := flag.String("out", "still.png", "Output PNG path")
	frames := flag.Int("frames", 120, "Frames to advance before rendering")
	seed := flag.Int64("seed", 1, "Noise and generation seed")
	knot := flag.Bool("knot", false, "Render the torus knot instead of the ring")
	width := flag.Int("width", 1024, "Render width")
	height := flag.Int("height", 1024, "Render height")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg().Clone()
	if *knot {
		cfg.Shape.Knot = true
	}

	noise, err := systems.NewSource(cfg.Noise.Backend, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create noise source: %v\n", err)
		os.Exit(1)
	}
	scene := systems.NewScene(cfg, noise, rand.New(rand.NewSource(*seed)))
	defer scene.Close()
	for i := 0; i < *frames; i++ {
		scene.Advance()
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Still Render")
	defer rl.CloseWindow()

	cc := cfg.Camera
	cam := camera.New(
		r3.Vec{X: cc.Position[0], Y: cc.Position[1], Z: cc.Position[2]},
		r3.Vec{X: cc.Target[0], Y: cc.Target[1], Z: cc.Target[2]},
		cc.Fovy,
		float64(*width), float64(*height),
	)

	particles := renderer.NewParticleRenderer(cfg.Render)
	particles.Init()
	defer particles.Unload()

	// Create render texture
	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	renderer.Background(cfg.Render.Background)
	particles.Draw(scene.Field(), renderer.Camera3D(cam))
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("%s after %d frames rendered to: %s (%dx%d)\n",
			scene.Field().Shape, scene.Frame(), *outPath, *width, *height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
