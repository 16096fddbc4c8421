package systems

import (
	"log/slog"

	"github.com/GabrielZirk/Magic-ring/config"
)

// Scene ties the live field to the configuration and noise source. It is the
// window-free half of the frame loop: the host draws Field(), then calls Advance
// to compute the next frame, once per displayed frame.
type Scene struct {
	cfg   *config.Config
	store *Store
	noise Source
	frame int64
}

// NewScene builds the first field from cfg. cfg is copied; later edits go
// through Apply.
func NewScene(cfg *config.Config, noise Source, rng Sampler) *Scene {
	s := &Scene{
		cfg:   cfg.Clone(),
		store: NewStore(rng),
		noise: noise,
	}
	s.regenerate()
	return s
}

// Config returns a copy of the active configuration.
func (s *Scene) Config() *config.Config {
	return s.cfg.Clone()
}

// Field returns the live field.
func (s *Scene) Field() *Field {
	return s.store.Live()
}

// Store exposes the field store, e.g. to register release hooks.
func (s *Scene) Store() *Store {
	return s.store
}

// Frame returns the number of frames advanced since the scene was created.
func (s *Scene) Frame() int64 {
	return s.frame
}

// Advance computes the next frame from the current one.
func (s *Scene) Advance() {
	Step(s.store.Live(), s.noise, s.cfg.Motion, s.cfg.Shape)
	s.frame++
}

// Apply installs next as the active configuration after sanitizing it.
// Structural changes regenerate the field; cosmetic ones apply on the next frame.
func (s *Scene) Apply(next *config.Config) config.Change {
	next = next.Clone()
	for _, a := range next.Sanitize() {
		slog.Warn("config value clamped", "adjustment", a)
	}

	ch := config.Diff(s.cfg, next)
	s.cfg = next
	if ch.Structural {
		if ch.ShapeFlip {
			slog.Info("shape changed", "shape", ShapeOf(next.Shape.Knot).String())
		}
		s.regenerate()
	}
	return ch
}

// ToggleShape flips between ring and knot, regenerating with the same count.
func (s *Scene) ToggleShape() config.Change {
	next := s.cfg.Clone()
	next.Shape.Knot = !next.Shape.Knot
	return s.Apply(next)
}

// Regenerate rebuilds the field with the current configuration.
func (s *Scene) Regenerate() {
	s.regenerate()
}

// Close releases the live field.
func (s *Scene) Close() {
	s.store.Close()
}

func (s *Scene) regenerate() {
	s.store.Regenerate(s.cfg.Particles.Count, ShapeOf(s.cfg.Shape.Knot), s.cfg.Shape)
}
