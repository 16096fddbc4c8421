package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldStats summarizes the particle positions of one frame.
type FieldStats struct {
	Frame     int64  `csv:"frame"`
	Shape     string `csv:"shape"`
	Particles int    `csv:"particles"`

	// Radial distance from the z axis
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusMin  float64 `csv:"radius_min"`
	RadiusMax  float64 `csv:"radius_max"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	// Depth
	ZMean float64 `csv:"z_mean"`
	ZStd  float64 `csv:"z_std"`
	ZMin  float64 `csv:"z_min"`
	ZMax  float64 `csv:"z_max"`

	// Mean linear color (knot fields only)
	ColorR float64 `csv:"color_r"`
	ColorG float64 `csv:"color_g"`
	ColorB float64 `csv:"color_b"`

	// NaN or infinite coordinates; should always be zero
	NonFinite int `csv:"non_finite"`
}

// ComputeFieldStats summarizes packed xyz positions and optional packed rgb colors.
func ComputeFieldStats(frame int64, shape string, positions, colors []float32) FieldStats {
	n := len(positions) / 3
	fs := FieldStats{Frame: frame, Shape: shape, Particles: n}
	if n == 0 {
		return fs
	}

	radii := make([]float64, 0, n)
	zs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x := float64(positions[i*3])
		y := float64(positions[i*3+1])
		z := float64(positions[i*3+2])
		if !finite(x) || !finite(y) || !finite(z) {
			fs.NonFinite++
			continue
		}
		radii = append(radii, math.Hypot(x, y))
		zs = append(zs, z)
	}
	if len(radii) == 0 {
		return fs
	}

	fs.RadiusMean, fs.RadiusStd = meanStd(radii)
	fs.RadiusMin = floats.Min(radii)
	fs.RadiusMax = floats.Max(radii)
	sort.Float64s(radii)
	fs.RadiusP10 = stat.Quantile(0.1, stat.Empirical, radii, nil)
	fs.RadiusP50 = stat.Quantile(0.5, stat.Empirical, radii, nil)
	fs.RadiusP90 = stat.Quantile(0.9, stat.Empirical, radii, nil)

	fs.ZMean, fs.ZStd = meanStd(zs)
	fs.ZMin = floats.Min(zs)
	fs.ZMax = floats.Max(zs)

	if len(colors) == len(positions) {
		var r, g, b float64
		for i := 0; i < n; i++ {
			r += float64(colors[i*3])
			g += float64(colors[i*3+1])
			b += float64(colors[i*3+2])
		}
		fs.ColorR = r / float64(n)
		fs.ColorG = g / float64(n)
		fs.ColorB = b / float64(n)
	}
	return fs
}

// meanStd returns the mean and the standard deviation, which is zero for a
// single sample.
func meanStd(x []float64) (mean, std float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// LogValue implements slog.LogValuer for structured logging.
func (fs FieldStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("frame", fs.Frame),
		slog.String("shape", fs.Shape),
		slog.Int("particles", fs.Particles),
		slog.Float64("radius_mean", fs.RadiusMean),
		slog.Float64("radius_std", fs.RadiusStd),
		slog.Float64("z_mean", fs.ZMean),
		slog.Float64("z_std", fs.ZStd),
	}
	if fs.NonFinite > 0 {
		attrs = append(attrs, slog.Int("non_finite", fs.NonFinite))
	}
	return slog.GroupValue(attrs...)
}
