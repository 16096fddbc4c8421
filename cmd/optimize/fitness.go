package main

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/GabrielZirk/Magic-ring/config"
	"github.com/GabrielZirk/Magic-ring/systems"
	"github.com/GabrielZirk/Magic-ring/telemetry"
)

// Target is the field spread the search aims for.
type Target struct {
	RadiusStd float64 // std of XY distance from the axis
	ZStd      float64 // std of depth
}

// FitnessEvaluator runs headless scenes and scores their final spread.
type FitnessEvaluator struct {
	params     *ParamVector
	frames     int
	seeds      []int64
	baseConfig *config.Config
	target     Target

	mu        sync.Mutex
	lastStats telemetry.FieldStats // first seed of the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames int, seeds []int64, baseCfg *config.Config, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		frames:     frames,
		seeds:      seeds,
		baseConfig: baseCfg.Clone(),
		target:     target,
	}
}

// LastStats returns the field statistics from the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() telemetry.FieldStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStats
}

// Evaluate computes fitness for raw parameter values (lower = better),
// averaged over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	stats := make([]telemetry.FieldStats, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			stats[idx], errs[idx] = fe.runScene(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for i := range stats {
		if errs[i] != nil {
			return math.Inf(1)
		}
		total += Score(stats[i], fe.target)
	}

	fe.mu.Lock()
	if len(stats) > 0 {
		fe.lastStats = stats[0]
	}
	fe.mu.Unlock()

	return total / float64(len(fe.seeds))
}

// runScene advances a fresh scene for the configured number of frames.
func (fe *FitnessEvaluator) runScene(cfg *config.Config, seed int64) (telemetry.FieldStats, error) {
	noise, err := systems.NewSource(cfg.Noise.Backend, seed)
	if err != nil {
		return telemetry.FieldStats{}, fmt.Errorf("creating noise source: %w", err)
	}
	scene := systems.NewScene(cfg, noise, rand.New(rand.NewSource(seed)))
	defer scene.Close()

	for i := 0; i < fe.frames; i++ {
		scene.Advance()
	}

	f := scene.Field()
	var colors []float32
	if f.Knot != nil {
		colors = f.Knot.Colors
	}
	return telemetry.ComputeFieldStats(scene.Frame(), f.Shape.String(), f.Positions, colors), nil
}

// nonFinitePenalty weighs the fraction of particles that left the finite range.
const nonFinitePenalty = 100

// Score is the squared relative error of the spread against target.
// Empty fields score +Inf.
func Score(fs telemetry.FieldStats, target Target) float64 {
	if fs.Particles == 0 {
		return math.Inf(1)
	}
	r := relErr(fs.RadiusStd, target.RadiusStd)
	z := relErr(fs.ZStd, target.ZStd)
	return r*r + z*z + nonFinitePenalty*float64(fs.NonFinite)/float64(fs.Particles)
}

func relErr(got, want float64) float64 {
	if want == 0 {
		return got
	}
	return (got - want) / want
}
