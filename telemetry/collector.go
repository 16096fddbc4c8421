package telemetry

import "log/slog"

// Collector counts frame-loop events within fixed windows of frames.
type Collector struct {
	windowFrames int64
	windowStart  int64

	regenerations  int
	shapeFlips     int
	capturedFrames int
	droppedFrames  int
}

// WindowEvents holds the event counts of one window.
type WindowEvents struct {
	WindowStart    int64 `csv:"window_start"`
	WindowEnd      int64 `csv:"window_end"`
	Regenerations  int   `csv:"regenerations"`
	ShapeFlips     int   `csv:"shape_flips"`
	CapturedFrames int   `csv:"captured_frames"`
	DroppedFrames  int   `csv:"dropped_frames"`
}

// NewCollector creates a collector whose windows last intervalSec seconds at fps
// frames per second. An interval of zero or less disables flushing; a positive
// interval shorter than one frame gets a one-frame window.
func NewCollector(intervalSec float64, fps int) *Collector {
	if intervalSec <= 0 {
		return &Collector{}
	}
	frames := int64(intervalSec * float64(fps))
	if frames < 1 {
		frames = 1
	}
	return &Collector{windowFrames: frames}
}

// Enabled reports whether the collector ever flushes.
func (c *Collector) Enabled() bool {
	return c.windowFrames > 0
}

// RecordRegeneration records a field regeneration; flip marks a ring/knot change.
func (c *Collector) RecordRegeneration(flip bool) {
	c.regenerations++
	if flip {
		c.shapeFlips++
	}
}

// RecordCapture records a frame offered to the recorder.
func (c *Collector) RecordCapture(accepted bool) {
	if accepted {
		c.capturedFrames++
	} else {
		c.droppedFrames++
	}
}

// ShouldFlush reports whether the window ending at frame is complete.
func (c *Collector) ShouldFlush(frame int64) bool {
	return c.Enabled() && frame-c.windowStart >= c.windowFrames
}

// Flush returns the counts of the current window and starts a new one at frame.
func (c *Collector) Flush(frame int64) WindowEvents {
	ev := WindowEvents{
		WindowStart:    c.windowStart,
		WindowEnd:      frame,
		Regenerations:  c.regenerations,
		ShapeFlips:     c.shapeFlips,
		CapturedFrames: c.capturedFrames,
		DroppedFrames:  c.droppedFrames,
	}
	c.windowStart = frame
	c.regenerations = 0
	c.shapeFlips = 0
	c.capturedFrames = 0
	c.droppedFrames = 0
	return ev
}

// WindowFrames returns the window length in frames, 0 when disabled.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}

// LogValue implements slog.LogValuer for structured logging.
func (ev WindowEvents) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", ev.WindowEnd),
		slog.Int("regenerations", ev.Regenerations),
		slog.Int("shape_flips", ev.ShapeFlips),
		slog.Int("captured_frames", ev.CapturedFrames),
		slog.Int("dropped_frames", ev.DroppedFrames),
	)
}
