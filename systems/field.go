package systems

// Shape selects the placement and update rule of a field.
type Shape uint8

const (
	ShapeRing Shape = iota
	ShapeKnot
)

// ShapeOf maps the config knot flag to a Shape.
func ShapeOf(knot bool) Shape {
	if knot {
		return ShapeKnot
	}
	return ShapeRing
}

func (s Shape) String() string {
	switch s {
	case ShapeRing:
		return "ring"
	case ShapeKnot:
		return "knot"
	default:
		return "unknown"
	}
}

// Field holds per-particle state as parallel arrays. The index is the only
// identity; fields are never resized, only replaced by regeneration.
//
// Positions and Colors are packed xyz/rgb triples so they can be handed to the
// renderer without conversion.
type Field struct {
	Shape     Shape
	Positions []float32 // 3 per particle
	Speeds    []float32 // angular speed, fixed at generation

	// Knot is nil for ring fields.
	Knot *KnotAttrs

	next     []float32 // write buffer for Step, swapped with Positions
	released bool
	onRelease func()
}

// KnotAttrs holds the per-particle state only the knot rule needs.
type KnotAttrs struct {
	Phases []float64 // kept in [0, 2π)
	Jitter []float32 // 3 per particle, fixed at generation
	Colors []float32 // 3 per particle, linear RGB, rewritten every step
}

// Len returns the particle count.
func (f *Field) Len() int {
	return len(f.Speeds)
}

// Position returns the position of particle i.
func (f *Field) Position(i int) (x, y, z float32) {
	i3 := i * 3
	return f.Positions[i3], f.Positions[i3+1], f.Positions[i3+2]
}

// Color returns the color of particle i, or ok=false for a ring field.
func (f *Field) Color(i int) (r, g, b float32, ok bool) {
	if f.Knot == nil {
		return 0, 0, 0, false
	}
	i3 := i * 3
	c := f.Knot.Colors
	return c[i3], c[i3+1], c[i3+2], true
}

// Released reports whether Release has been called.
func (f *Field) Released() bool {
	return f.released
}

// Release drops the field's storage. Only the first call has an effect.
// Returns true if this call released the field.
func (f *Field) Release() bool {
	if f.released {
		return false
	}
	f.released = true
	f.Positions = nil
	f.Speeds = nil
	f.next = nil
	f.Knot = nil
	if f.onRelease != nil {
		f.onRelease()
		f.onRelease = nil
	}
	return true
}

// newField allocates a field of n particles for the given shape.
func newField(shape Shape, n int) *Field {
	f := &Field{
		Shape:     shape,
		Positions: make([]float32, 3*n),
		Speeds:    make([]float32, n),
		next:      make([]float32, 3*n),
	}
	if shape == ShapeKnot {
		f.Knot = &KnotAttrs{
			Phases: make([]float64, n),
			Jitter: make([]float32, 3*n),
			Colors: make([]float32, 3*n),
		}
	}
	return f
}
