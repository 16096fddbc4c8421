package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/GabrielZirk/Magic-ring/config"
)

// Source is a coherent noise function. Implementations must be pure functions of
// their inputs so the same source can be sampled at generation and update time.
type Source interface {
	// Sample3 returns a value in approximately [-1, 1].
	Sample3(x, y, z float64) float64
	// Sample4 returns a value in approximately [-1, 1]. Not used by the default update.
	Sample4(x, y, z, w float64) float64
}

// NewSource builds the named noise backend with the given seed.
func NewSource(backend string, seed int64) (Source, error) {
	switch backend {
	case "", "opensimplex":
		return NewSimplexNoise(seed), nil
	case "perlin":
		return NewPerlinNoise(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}

// SimplexNoise wraps OpenSimplex noise.
type SimplexNoise struct {
	n opensimplex.Noise
}

// NewSimplexNoise creates an OpenSimplex noise source.
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{n: opensimplex.New(seed)}
}

func (s *SimplexNoise) Sample3(x, y, z float64) float64 { return s.n.Eval3(x, y, z) }

func (s *SimplexNoise) Sample4(x, y, z, w float64) float64 { return s.n.Eval4(x, y, z, w) }

// PerlinNoise generates improved Perlin noise.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

	// Duplicate so corner hashes never need a wrap
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}
	return p
}

// Sample3 returns a noise value for 3D coordinates.
func (p *PerlinNoise) Sample3(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255

	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	return lerp(w, lerp(v, lerp(u, grad3(p.perm[AA], x, y, z),
		grad3(p.perm[BA], x-1, y, z)),
		lerp(u, grad3(p.perm[AB], x, y-1, z),
			grad3(p.perm[BB], x-1, y-1, z))),
		lerp(v, lerp(u, grad3(p.perm[AA+1], x, y, z-1),
			grad3(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad3(p.perm[AB+1], x, y-1, z-1),
				grad3(p.perm[BB+1], x-1, y-1, z-1))))
}

// Sample4 folds the fourth coordinate into a z offset. Perlin 4D is not needed
// by any update rule; this keeps the backend interchangeable.
func (p *PerlinNoise) Sample4(x, y, z, w float64) float64 {
	return p.Sample3(x+w*0.5, y-w*0.25, z+w)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad3(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// RingDisplacementSlice fills grid (size*size, row-major) with the ring update's
// noise displacement over the square [-extent, extent]² at depth z.
func RingDisplacementSlice(grid []float64, size int, extent, z float64, src Source, m config.MotionConfig) {
	step := 2 * extent / float64(size)
	for row := 0; row < size; row++ {
		y := extent - (float64(row)+0.5)*step
		for col := 0; col < size; col++ {
			x := -extent + (float64(col)+0.5)*step
			grid[row*size+col] = src.Sample3(x/m.NoiseScaleX, y/m.NoiseScaleY, z/m.NoiseScaleZ) * m.GlobalNoiseScale
		}
	}
}
