package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/GabrielZirk/Magic-ring/config"
)

// ParamPanel renders the live parameter sliders and checkboxes.
type ParamPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	params  []config.Param
	toggles []config.Toggle
}

// NewParamPanel creates a visible parameter panel.
func NewParamPanel(x, y, width int32) *ParamPanel {
	return &ParamPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		params:   config.Params(),
		toggles:  config.Toggles(),
	}
}

// Toggle switches panel visibility.
func (p *ParamPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// rowHeight is the vertical space of one slider or checkbox row.
func (p *ParamPanel) rowHeight() int32 {
	return p.renderer.Theme.LineHeight + 4
}

// Height returns the panel height in pixels.
func (p *ParamPanel) Height() int32 {
	t := p.renderer.Theme
	rows := int32(len(p.params) + len(p.toggles))
	return t.Padding*2 + t.LineHeight + 2 + rows*p.rowHeight()
}

// Contains reports whether the screen point lies on the visible panel.
// Mouse input over the panel is not forwarded to the camera.
func (p *ParamPanel) Contains(x, y float32) bool {
	if !p.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, rl.Rectangle{
		X:      float32(p.x),
		Y:      float32(p.y),
		Width:  float32(p.width),
		Height: float32(p.Height()),
	})
}

// Draw renders the panel and writes edits into cfg.
// Returns true when any value changed.
func (p *ParamPanel) Draw(cfg *config.Config) bool {
	if !p.visible {
		return false
	}

	r := p.renderer
	t := r.Theme
	r.DrawPanel(p.x, p.y, p.width, p.Height())

	x := p.x + t.Padding
	y := r.DrawSectionHeader(x, p.y+t.Padding, "Parameters")

	sliderX := float32(x + t.LabelWidth)
	sliderW := float32(p.width - t.Padding*2 - t.LabelWidth - 56)

	changed := false
	for _, prm := range p.params {
		r.DrawLabel(x, y, prm.Label)
		cur := prm.Get(cfg)
		v := gui.SliderBar(
			rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: float32(t.SliderHeight)},
			"", "",
			float32(cur), float32(prm.Min), float32(prm.Max),
		)
		rl.DrawText(fmt.Sprintf(prm.Format, cur), int32(sliderX+sliderW)+6, y, t.FontSize, t.ValueColor)
		if prm.Edit(cfg, v) {
			changed = true
		}
		y += p.rowHeight()
	}

	for _, tg := range p.toggles {
		cur := tg.Get(cfg)
		v := gui.CheckBox(
			rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(t.SliderHeight), Height: float32(t.SliderHeight)},
			tg.Label,
			cur,
		)
		if v != cur {
			tg.Set(cfg, v)
			changed = true
		}
		y += p.rowHeight()
	}

	return changed
}
