package systems

import (
	"log/slog"
	"time"

	"github.com/GabrielZirk/Magic-ring/config"
)

// Store owns the single live field. Regeneration replaces it atomically: the old
// field and anything derived from it are released before the new one is built,
// and consumers only ever see a complete field through Live.
type Store struct {
	live  *Field
	rng   Sampler
	hooks []func(*Field)

	generations int
	releases    int
	lastGenTime time.Duration
}

// NewStore creates an empty store drawing from rng.
func NewStore(rng Sampler) *Store {
	return &Store{rng: rng}
}

// OnRelease registers fn to run whenever a field held by the store is released,
// e.g. to free render buffers derived from it.
func (s *Store) OnRelease(fn func(*Field)) {
	s.hooks = append(s.hooks, fn)
}

// Live returns the current field, or nil before the first Regenerate.
func (s *Store) Live() *Field {
	return s.live
}

// Regenerate releases the current field and installs a freshly generated one.
func (s *Store) Regenerate(n int, shape Shape, sc config.ShapeConfig) *Field {
	start := time.Now()

	if s.live != nil {
		s.live.Release()
		s.live = nil
	}

	f := Generate(n, shape, sc, s.rng)
	f.onRelease = func() {
		s.releases++
		for _, h := range s.hooks {
			h(f)
		}
	}

	s.live = f
	s.generations++
	s.lastGenTime = time.Since(start)

	slog.Debug("field regenerated",
		"shape", shape.String(),
		"particles", f.Len(),
		"generation", s.generations,
		"took_ms", s.lastGenTime.Milliseconds(),
	)
	return f
}

// Close releases the live field.
func (s *Store) Close() {
	if s.live != nil {
		s.live.Release()
		s.live = nil
	}
}

// Generations returns how many fields the store has built.
func (s *Store) Generations() int { return s.generations }

// Releases returns how many fields the store has released.
func (s *Store) Releases() int { return s.releases }
