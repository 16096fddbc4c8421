package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseStep)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameTime <= 0 {
		t.Error("expected positive average frame time")
	}
	if stats.MinFrameTime > stats.AvgFrameTime || stats.AvgFrameTime > stats.MaxFrameTime {
		t.Errorf("expected min <= avg <= max, got %v / %v / %v",
			stats.MinFrameTime, stats.AvgFrameTime, stats.MaxFrameTime)
	}
	if _, ok := stats.PhaseAvg[PhaseStep]; !ok {
		t.Error("expected step phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseDraw]; !ok {
		t.Error("expected draw phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseStep)
		time.Sleep(10 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrameTime <= 0 {
		t.Error("expected positive average frame time after window filled")
	}
	if stats.FramesPerSecond <= 0 {
		t.Error("expected positive frames per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseInput)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRegenerate)
		time.Sleep(2 * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseRegenerate] <= stats.PhasePct[PhaseInput] {
		t.Errorf("expected regenerate (%v%%) > input (%v%%)",
			stats.PhasePct[PhaseRegenerate], stats.PhasePct[PhaseInput])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgFrameTime != 0 {
		t.Error("expected zero avg frame time for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.PresentInterval < 15*time.Millisecond {
		t.Errorf("expected present interval >= 15ms, got %v", stats.PresentInterval)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70], got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgFrameTime: 2 * time.Millisecond,
		PhasePct:     map[string]float64{PhaseStep: 75, PhaseDraw: 25},
	}
	row := s.ToCSV(120)
	if row.Frame != 120 || row.AvgFrameUS != 2000 {
		t.Errorf("unexpected row header fields: %+v", row)
	}
	if row.StepPct != 75 || row.DrawPct != 25 || row.CapturePct != 0 {
		t.Errorf("unexpected phase percentages: %+v", row)
	}
}

func TestPerfCollector_PresentIncludesThrottle(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordPresent()
	if stats := pc.Stats(); stats.FPS != 0 || stats.PresentInterval != 0 {
		t.Errorf("first present should only set the reference, got fps=%v interval=%v", stats.FPS, stats.PresentInterval)
	}

	// A fast frame followed by a throttled wait before the next present
	pc.StartFrame()
	pc.StartPhase(PhaseStep)
	pc.EndFrame()
	time.Sleep(20 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.PresentInterval <= stats.AvgFrameTime {
		t.Errorf("present interval %v should include the wait beyond frame time %v", stats.PresentInterval, stats.AvgFrameTime)
	}
	if stats.FPS >= stats.FramesPerSecond {
		t.Errorf("displayed fps %v should be below unthrottled %v", stats.FPS, stats.FramesPerSecond)
	}
}
