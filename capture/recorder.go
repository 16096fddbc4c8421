// Package capture records rendered frames to disk without stalling the frame loop.
package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/GabrielZirk/Magic-ring/config"
)

// State is the recording state.
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	if s == Recording {
		return "recording"
	}
	return "idle"
}

var (
	ErrRecording = errors.New("capture: already recording")
	ErrIdle      = errors.New("capture: not recording")
)

// Sink receives accepted frames in order on the writer goroutine.
type Sink interface {
	WriteFrame(index int, img image.Image) error
	Close() error
	Path() string
}

// SinkFactory opens the sink for one recording session.
type SinkFactory func(cfg config.CaptureConfig, session int) (Sink, error)

// Result summarizes a finished recording.
type Result struct {
	Path    string // empty when no frame was written
	Frames  int // frames written
	Dropped int // frames rejected because the queue was full
	Failed  int // frames the sink failed to write
}

// LogValue implements slog.LogValuer for structured logging.
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", r.Path),
		slog.Int("frames", r.Frames),
		slog.Int("dropped", r.Dropped),
		slog.Int("failed", r.Failed),
	)
}

type frame struct {
	index int
	img   image.Image
}

// Recorder is the Idle/Recording state machine. Its methods are called from the
// frame loop; a single writer goroutine per session drains the queue.
type Recorder struct {
	cfg     config.CaptureConfig
	newSink SinkFactory

	state   State
	session int
	sink    Sink
	queue   chan frame
	done    chan struct{}

	accepted int
	dropped  int
	written  atomic.Int64
	failed   atomic.Int64
}

// NewRecorder creates an idle recorder writing with the default sinks.
func NewRecorder(cfg config.CaptureConfig) *Recorder {
	return NewRecorderWithSink(cfg, NewSink)
}

// NewRecorderWithSink creates an idle recorder using the given sink factory.
func NewRecorderWithSink(cfg config.CaptureConfig, factory SinkFactory) *Recorder {
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	return &Recorder{cfg: cfg, newSink: factory}
}

// State returns the current state.
func (r *Recorder) State() State { return r.state }

// IsRecording reports whether a session is active.
func (r *Recorder) IsRecording() bool { return r.state == Recording }

// Mode returns the configured key mode ("toggle" or "split").
func (r *Recorder) Mode() string { return r.cfg.Mode }

// Accepted returns the number of frames queued in the current session.
func (r *Recorder) Accepted() int { return r.accepted }

// Dropped returns the number of frames dropped in the current session.
func (r *Recorder) Dropped() int { return r.dropped }

// Start opens a new session. Fails with ErrRecording if one is active.
func (r *Recorder) Start() error {
	if r.state == Recording {
		return ErrRecording
	}
	sink, err := r.newSink(r.cfg, r.session+1)
	if err != nil {
		return fmt.Errorf("starting capture: %w", err)
	}
	r.session++
	r.sink = sink
	r.queue = make(chan frame, r.cfg.QueueSize)
	r.done = make(chan struct{})
	r.accepted = 0
	r.dropped = 0
	r.written.Store(0)
	r.failed.Store(0)
	r.state = Recording

	go r.run(sink, r.queue, r.done)

	slog.Info("capture started", "path", sink.Path(), "format", r.cfg.Format, "session", r.session)
	return nil
}

func (r *Recorder) run(sink Sink, queue <-chan frame, done chan<- struct{}) {
	defer close(done)
	for f := range queue {
		if err := sink.WriteFrame(f.index, f.img); err != nil {
			r.failed.Add(1)
			slog.Error("capture write failed", "frame", f.index, "error", err)
			continue
		}
		r.written.Add(1)
	}
}

// Offer hands a frame to the writer without blocking. It returns false when idle
// or when the queue is full, in which case the frame is dropped and counted.
// The recorder keeps img; callers must not reuse it.
func (r *Recorder) Offer(img image.Image) bool {
	if r.state != Recording {
		return false
	}
	select {
	case r.queue <- frame{index: r.accepted, img: img}:
		r.accepted++
		return true
	default:
		r.dropped++
		return false
	}
}

// Stop ends the session, waits for queued frames and finalizes the output.
// Fails with ErrIdle if no session is active.
func (r *Recorder) Stop() (Result, error) {
	if r.state != Recording {
		return Result{}, ErrIdle
	}
	close(r.queue)
	<-r.done

	closeErr := r.sink.Close()
	res := Result{
		Path:    r.sink.Path(),
		Frames:  int(r.written.Load()),
		Dropped: r.dropped,
		Failed:  int(r.failed.Load()),
	}
	r.state = Idle
	r.sink = nil
	r.queue = nil
	r.done = nil

	if closeErr != nil {
		return res, fmt.Errorf("finishing capture: %w", closeErr)
	}
	if res.Frames == 0 {
		// Sinks write nothing for an empty session
		res.Path = ""
		slog.Info("capture stopped with no frames written", "dropped", res.Dropped, "failed", res.Failed)
		return res, nil
	}
	slog.Info("capture saved", "result", res)
	return res, nil
}

// Toggle starts an idle recorder or stops an active one.
func (r *Recorder) Toggle() error {
	if r.state == Recording {
		_, err := r.Stop()
		return err
	}
	return r.Start()
}
