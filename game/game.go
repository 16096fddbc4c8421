// Package game runs the visualizer frame loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/GabrielZirk/Magic-ring/camera"
	"github.com/GabrielZirk/Magic-ring/capture"
	"github.com/GabrielZirk/Magic-ring/config"
	"github.com/GabrielZirk/Magic-ring/renderer"
	"github.com/GabrielZirk/Magic-ring/systems"
	"github.com/GabrielZirk/Magic-ring/telemetry"
	"github.com/GabrielZirk/Magic-ring/ui"
)

// Options holds run options that come from the command line.
type Options struct {
	Seed        int64
	OutputDir   string
	Headless    bool
	LogInterval float64 // seconds between stats logs; 0 = use config
}

// Game holds the complete visualizer state.
type Game struct {
	cfg   *config.Config // startup configuration; live parameters belong to scene
	scene *systems.Scene

	// Rendering (nil in headless mode)
	camera    *camera.Camera
	particles *renderer.ParticleRenderer
	panel     *ui.ParamPanel
	edits     config.PendingEdit
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	recorder *capture.Recorder

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	showPerf bool

	screenWidth, screenHeight float32
}

// NewGame creates a visualizer from cfg. In graphical mode the raylib window
// must already be open.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	noise, err := systems.NewSource(cfg.Noise.Backend, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating noise source: %w", err)
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	logInterval := cfg.Telemetry.LogInterval
	if opts.LogInterval > 0 {
		logInterval = opts.LogInterval
	}

	g := &Game{
		cfg:           cfg.Clone(),
		scene:         systems.NewScene(cfg, noise, rng),
		collector:     telemetry.NewCollector(logInterval, cfg.Screen.TargetFPS),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:      logInterval > 0,
		screenWidth:   float32(cfg.Screen.Width),
		screenHeight:  float32(cfg.Screen.Height),
	}
	g.collector.RecordRegeneration(false)

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := g.outputManager.WriteConfig(g.scene.Config()); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if !opts.Headless {
		g.initGraphics()
	}

	slog.Info("visualizer ready",
		"particles", g.scene.Field().Len(),
		"shape", g.scene.Field().Shape.String(),
		"noise", cfg.Noise.Backend,
		"seed", opts.Seed,
		"headless", opts.Headless,
		"output_dir", g.outputManager.Dir(),
	)
	return g, nil
}

// initGraphics creates the camera, renderers, panels and recorder.
func (g *Game) initGraphics() {
	cfg := g.scene.Config()
	cc := cfg.Camera

	g.camera = camera.New(
		r3.Vec{X: cc.Position[0], Y: cc.Position[1], Z: cc.Position[2]},
		r3.Vec{X: cc.Target[0], Y: cc.Target[1], Z: cc.Target[2]},
		cc.Fovy,
		float64(g.screenWidth), float64(g.screenHeight),
	)
	g.camera.MinDistance = cc.MinDistance
	g.camera.MaxDistance = cc.MaxDistance
	g.camera.Damping = cc.Damping
	g.camera.DampingFactor = cc.DampingFactor
	g.syncCosmetic(cfg)

	g.particles = renderer.NewParticleRenderer(cfg.Render)
	g.particles.Init()
	g.scene.Store().OnRelease(g.particles.Release)

	g.panel = ui.NewParamPanel(10, 10, 340)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, int32(g.screenHeight)-140)

	g.recorder = capture.NewRecorder(g.cfg.Capture)
}

// applyConfig installs an edited configuration on the scene.
func (g *Game) applyConfig(next *config.Config) {
	g.edits.Discard()
	ch := g.scene.Apply(next)
	if ch.Structural {
		g.collector.RecordRegeneration(ch.ShapeFlip)
	}
	if ch.Cosmetic {
		g.syncCosmetic(g.scene.Config())
	}
}

// syncCosmetic pushes cosmetic parameters to the camera and renderer.
func (g *Game) syncCosmetic(cfg *config.Config) {
	if g.camera != nil {
		g.camera.AutoRotate = cfg.Camera.AutoRotate
		g.camera.AutoRotateSpeed = cfg.Camera.AutoRotateSpeed
	}
	if g.particles != nil {
		g.particles.Configure(cfg.Render)
	}
}

// toggleShape flips between ring and knot.
func (g *Game) toggleShape() {
	g.perfCollector.StartPhase(telemetry.PhaseRegenerate)
	g.edits.Discard()
	ch := g.scene.ToggleShape()
	g.collector.RecordRegeneration(ch.ShapeFlip)
	g.perfCollector.StartPhase(telemetry.PhaseInput)
}

// UpdateHeadless advances one frame without graphics.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseStep)
	g.scene.Advance()
	g.perfCollector.EndFrame()

	g.flushTelemetry()
}

// Scene returns the live scene.
func (g *Game) Scene() *systems.Scene {
	return g.scene
}

// Frame returns the number of frames advanced.
func (g *Game) Frame() int64 {
	return g.scene.Frame()
}

// Unload stops capture, releases the field and frees resources.
func (g *Game) Unload() {
	if g.recorder != nil && g.recorder.IsRecording() {
		if _, err := g.recorder.Stop(); err != nil {
			slog.Error("failed to finish capture", "error", err)
		}
	}
	g.scene.Close()
	if g.particles != nil {
		g.particles.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
