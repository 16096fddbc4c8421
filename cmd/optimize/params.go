// Package main tunes motion parameters with CMA-ES so the field settles into a
// target spread after a fixed number of frames.
package main

import (
	"fmt"

	"github.com/GabrielZirk/Magic-ring/config"
)

// DefaultTunable lists the parameters searched when none are given.
var DefaultTunable = []string{
	"motion.global_noise_scale",
	"motion.z_noise_factor",
	"motion.speed_factor",
	"motion.noise_scale_x",
	"motion.noise_scale_y",
	"motion.noise_scale_z",
}

// ParamVector holds the set of optimizable parameters, in search order.
type ParamVector struct {
	Specs []config.Param
}

// NewParamVector looks up the panel parameters with the given IDs.
func NewParamVector(ids ...string) (*ParamVector, error) {
	byID := make(map[string]config.Param)
	for _, p := range config.Params() {
		byID[p.ID] = p
	}
	pv := &ParamVector{}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown parameter %q", id)
		}
		pv.Specs = append(pv.Specs, p)
	}
	return pv, nil
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Names returns the parameter IDs.
func (pv *ParamVector) Names() []string {
	names := make([]string, len(pv.Specs))
	for i, spec := range pv.Specs {
		names[i] = spec.ID
	}
	return names
}

// DefaultVector returns the parameter values of cfg as a slice.
func (pv *ParamVector) DefaultVector(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Get(cfg)
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = spec.Clamp(v[i])
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg, clamped to their ranges.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, spec := range pv.Specs {
		spec.Set(cfg, values[i])
	}
}
