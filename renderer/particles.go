package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/GabrielZirk/Magic-ring/config"
	"github.com/GabrielZirk/Magic-ring/systems"
)

// spriteSize is the edge length of the generated sprite texture in pixels.
const spriteSize = 64

// ParticleRenderer draws a field as additively blended camera-facing sprites.
type ParticleRenderer struct {
	sprite      rl.Texture2D
	texturePath string
	initialized bool

	size       float32
	depthWrite bool
	ringTint   rl.Color

	// Per-particle display colors derived from the field's linear colors.
	// Dropped when the field is released.
	tints []rl.Color
	owner *systems.Field
}

// NewParticleRenderer creates a renderer with the given drawing parameters.
func NewParticleRenderer(rc config.RenderConfig) *ParticleRenderer {
	r := &ParticleRenderer{texturePath: rc.Texture}
	r.Configure(rc)
	return r
}

// Init loads the sprite texture (must be called after the raylib window is created).
// A configured texture path is used as the sprite; otherwise a soft radial disc
// is generated.
func (r *ParticleRenderer) Init() {
	if r.initialized {
		return
	}
	if r.texturePath != "" {
		r.sprite = rl.LoadTexture(r.texturePath)
		if r.sprite.ID == 0 {
			slog.Warn("sprite texture not loaded, using generated sprite", "path", r.texturePath)
		}
	}
	if r.sprite.ID == 0 {
		img := rl.GenImageGradientRadial(spriteSize, spriteSize, 0.2, rl.White, rl.Blank)
		r.sprite = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	}
	rl.SetTextureFilter(r.sprite, rl.FilterBilinear)
	r.initialized = true
}

// Configure applies cosmetic render parameters. Takes effect on the next Draw.
func (r *ParticleRenderer) Configure(rc config.RenderConfig) {
	r.size = float32(rc.ParticleSize)
	r.depthWrite = rc.DepthWrite
	r.ringTint = rl.Color{R: rc.RingColor[0], G: rc.RingColor[1], B: rc.RingColor[2], A: 255}
}

// Release drops render buffers derived from f. Registered as a field release hook.
func (r *ParticleRenderer) Release(f *systems.Field) {
	if r.owner != f {
		return
	}
	r.tints = nil
	r.owner = nil
}

// Draw renders f from the viewpoint of cam.
func (r *ParticleRenderer) Draw(f *systems.Field, cam rl.Camera3D) {
	if !r.initialized {
		r.Init()
	}
	if f == nil || f.Released() || f.Len() == 0 {
		return
	}
	r.updateTints(f)

	rl.BeginMode3D(cam)
	rl.BeginBlendMode(rl.BlendAdditive)
	if !r.depthWrite {
		rl.DrawRenderBatchActive()
		rl.DisableDepthMask()
	}

	n := f.Len()
	pos := f.Positions
	for i := 0; i < n; i++ {
		p := rl.Vector3{X: pos[3*i], Y: pos[3*i+1], Z: pos[3*i+2]}
		tint := r.ringTint
		if r.tints != nil {
			tint = r.tints[i]
		}
		rl.DrawBillboard(cam, r.sprite, p, r.size, tint)
	}

	if !r.depthWrite {
		rl.DrawRenderBatchActive()
		rl.EnableDepthMask()
	}
	rl.EndBlendMode()
	rl.EndMode3D()
}

// updateTints converts the field's linear colors to display colors.
// Ring fields carry no per-particle color and use the ring tint.
func (r *ParticleRenderer) updateTints(f *systems.Field) {
	if f.Knot == nil {
		r.tints = nil
		r.owner = f
		return
	}
	n := f.Len()
	if r.owner != f || len(r.tints) != n {
		r.tints = make([]rl.Color, n)
		r.owner = f
	}
	cols := f.Knot.Colors
	for i := 0; i < n; i++ {
		c := colorful.LinearRgb(float64(cols[3*i]), float64(cols[3*i+1]), float64(cols[3*i+2])).Clamped()
		cr, cg, cb := c.RGB255()
		r.tints[i] = rl.Color{R: cr, G: cg, B: cb, A: 255}
	}
}

// Unload frees GPU resources.
func (r *ParticleRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.sprite)
		r.initialized = false
	}
	r.tints = nil
	r.owner = nil
}
