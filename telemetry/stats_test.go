package telemetry

import (
	"math"
	"testing"
)

func TestComputeFieldStatsEmpty(t *testing.T) {
	fs := ComputeFieldStats(3, "ring", nil, nil)
	if fs.Particles != 0 || fs.RadiusMean != 0 || fs.Frame != 3 {
		t.Errorf("unexpected stats for empty field: %+v", fs)
	}
}

func TestComputeFieldStatsRing(t *testing.T) {
	// Four particles on the unit circle at two depths
	pos := []float32{
		1, 0, 0,
		0, 1, 1,
		-1, 0, 0,
		0, -1, 1,
	}
	fs := ComputeFieldStats(0, "ring", pos, nil)

	if fs.Particles != 4 {
		t.Fatalf("expected 4 particles, got %d", fs.Particles)
	}
	if math.Abs(fs.RadiusMean-1) > 1e-9 || fs.RadiusStd > 1e-9 {
		t.Errorf("expected radius 1±0, got %v±%v", fs.RadiusMean, fs.RadiusStd)
	}
	if fs.RadiusMin != 1 || fs.RadiusMax != 1 || fs.RadiusP50 != 1 {
		t.Errorf("unexpected radius range: %+v", fs)
	}
	if math.Abs(fs.ZMean-0.5) > 1e-9 {
		t.Errorf("expected z mean 0.5, got %v", fs.ZMean)
	}
	if fs.ZMin != 0 || fs.ZMax != 1 {
		t.Errorf("expected z in [0,1], got [%v,%v]", fs.ZMin, fs.ZMax)
	}
	if fs.ColorR != 0 || fs.ColorG != 0 || fs.ColorB != 0 {
		t.Error("ring stats should have no color")
	}
}

func TestComputeFieldStatsQuantilesOrdered(t *testing.T) {
	pos := make([]float32, 0, 300)
	for i := 1; i <= 100; i++ {
		pos = append(pos, float32(i), 0, 0)
	}
	fs := ComputeFieldStats(0, "ring", pos, nil)
	if !(fs.RadiusMin <= fs.RadiusP10 && fs.RadiusP10 <= fs.RadiusP50 &&
		fs.RadiusP50 <= fs.RadiusP90 && fs.RadiusP90 <= fs.RadiusMax) {
		t.Errorf("quantiles out of order: %+v", fs)
	}
	if math.Abs(fs.RadiusMean-50.5) > 1e-9 {
		t.Errorf("expected mean 50.5, got %v", fs.RadiusMean)
	}
}

func TestComputeFieldStatsColors(t *testing.T) {
	pos := []float32{1, 0, 0, 2, 0, 0}
	col := []float32{1, 0, 0, 0, 0, 1}
	fs := ComputeFieldStats(0, "knot", pos, col)
	if fs.ColorR != 0.5 || fs.ColorG != 0 || fs.ColorB != 0.5 {
		t.Errorf("unexpected mean color (%v,%v,%v)", fs.ColorR, fs.ColorG, fs.ColorB)
	}
}

func TestComputeFieldStatsCountsNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	pos := []float32{1, 0, 0, nan, 0, 0}
	fs := ComputeFieldStats(0, "ring", pos, nil)
	if fs.NonFinite != 1 {
		t.Errorf("expected 1 non-finite particle, got %d", fs.NonFinite)
	}
	if fs.RadiusMean != 1 {
		t.Errorf("non-finite particle leaked into mean: %v", fs.RadiusMean)
	}
}
