package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// captureFrame reads the rendered scene back and offers it to the recorder.
// The frame is dropped, not waited for, when the writer is behind.
func (g *Game) captureFrame() {
	img := rl.LoadImageFromScreen()
	frame := img.ToImage()
	rl.UnloadImage(img)

	accepted := g.recorder.Offer(frame)
	g.collector.RecordCapture(accepted)
}
