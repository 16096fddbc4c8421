package game

import (
	"log/slog"

	"github.com/GabrielZirk/Magic-ring/telemetry"
)

// flushTelemetry logs and writes statistics when the current window is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.Enabled() {
		return
	}
	frame := g.scene.Frame()
	if !g.collector.ShouldFlush(frame) {
		return
	}

	events := g.collector.Flush(frame)
	perfStats := g.perfCollector.Stats()
	fieldStats := g.sampleField(frame)

	// Log stats if enabled (console output)
	if g.logStats {
		slog.Info("field", "stats", fieldStats, "events", events)
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteField(fieldStats); err != nil {
			slog.Error("failed to write field stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if err := g.outputManager.WriteEvents(events); err != nil {
			slog.Error("failed to write events", "error", err)
		}
	}
}

// sampleField computes distribution statistics of the live field.
func (g *Game) sampleField(frame int64) telemetry.FieldStats {
	f := g.scene.Field()
	var colors []float32
	if f.Knot != nil {
		colors = f.Knot.Colors
	}
	return telemetry.ComputeFieldStats(frame, f.Shape.String(), f.Positions, colors)
}
