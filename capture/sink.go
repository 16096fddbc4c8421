package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	xdraw "golang.org/x/image/draw"

	"github.com/GabrielZirk/Magic-ring/config"
)

// NewSink opens the sink for cfg.Format under cfg.Dir. Each session gets its own
// timestamped name so runs never overwrite each other.
func NewSink(cfg config.CaptureConfig, session int) (Sink, error) {
	name := fmt.Sprintf("%s-%s-%03d", cfg.Name, time.Now().Format("20060102-150405"), session)
	switch cfg.Format {
	case "", "png":
		return NewPNGSink(filepath.Join(cfg.Dir, name), cfg.FPS)
	case "gif":
		return NewGIFSink(filepath.Join(cfg.Dir, name+".gif"), cfg.FPS, cfg.GIFScale)
	default:
		return nil, fmt.Errorf("unknown capture format %q", cfg.Format)
	}
}

// FrameRecord is one row of a PNG sequence manifest.
type FrameRecord struct {
	Index   int     `csv:"index"`
	File    string  `csv:"file"`
	TimeSec float64 `csv:"time_sec"`
	Width   int     `csv:"width"`
	Height  int     `csv:"height"`
}

// PNGSink writes numbered PNG files and a frames.csv manifest into a directory.
type PNGSink struct {
	dir     string
	fps     int
	enc     png.Encoder
	records []FrameRecord
}

// NewPNGSink creates dir and returns a sink writing into it.
func NewPNGSink(dir string, fps int) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating capture directory: %w", err)
	}
	if fps < 1 {
		fps = 1
	}
	return &PNGSink{
		dir: dir,
		fps: fps,
		enc: png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// Path returns the sequence directory.
func (s *PNGSink) Path() string { return s.dir }

// WriteFrame encodes img as frame_<index>.png.
func (s *PNGSink) WriteFrame(index int, img image.Image) error {
	name := fmt.Sprintf("frame_%05d.png", index)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := s.enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}

	b := img.Bounds()
	s.records = append(s.records, FrameRecord{
		Index:   index,
		File:    name,
		TimeSec: float64(index) / float64(s.fps),
		Width:   b.Dx(),
		Height:  b.Dy(),
	})
	return nil
}

// Close writes the manifest. An empty recording removes the directory instead.
func (s *PNGSink) Close() error {
	if len(s.records) == 0 {
		if err := os.Remove(s.dir); err != nil {
			return fmt.Errorf("removing empty capture directory: %w", err)
		}
		return nil
	}
	f, err := os.Create(filepath.Join(s.dir, "frames.csv"))
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	if err := gocsv.MarshalFile(&s.records, f); err != nil {
		f.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	return f.Close()
}

// GIFSink collects scaled, quantized frames and encodes one animated GIF on Close.
type GIFSink struct {
	path  string
	delay int // hundredths of a second
	scale float64
	anim  gif.GIF
}

// NewGIFSink returns a sink that will write path at fps frames per second.
// Frames are scaled by scale (0,1] before quantization to the Plan9 palette.
func NewGIFSink(path string, fps int, scale float64) (*GIFSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating capture directory: %w", err)
	}
	if fps < 1 {
		fps = 1
	}
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	delay := int(math.Round(100 / float64(fps)))
	if delay < 1 {
		delay = 1
	}
	return &GIFSink{path: path, delay: delay, scale: scale}, nil
}

// Path returns the output file.
func (s *GIFSink) Path() string { return s.path }

// WriteFrame appends one frame to the animation.
func (s *GIFSink) WriteFrame(_ int, img image.Image) error {
	src := img.Bounds()
	w := max(1, int(float64(src.Dx())*s.scale))
	h := max(1, int(float64(src.Dy())*s.scale))

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, src, xdraw.Src, nil)

	pal := image.NewPaletted(scaled.Bounds(), palette.Plan9)
	xdraw.FloydSteinberg.Draw(pal, pal.Bounds(), scaled, image.Point{})

	s.anim.Image = append(s.anim.Image, pal)
	s.anim.Delay = append(s.anim.Delay, s.delay)
	return nil
}

// Frames returns the number of collected frames.
func (s *GIFSink) Frames() int { return len(s.anim.Image) }

// Close encodes the animation. An empty recording writes nothing.
func (s *GIFSink) Close() error {
	if len(s.anim.Image) == 0 {
		return nil
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.path, err)
	}
	encErr := gif.EncodeAll(f, &s.anim)
	if encErr != nil {
		encErr = fmt.Errorf("encoding gif: %w", encErr)
	}
	return errors.Join(encErr, f.Close())
}
