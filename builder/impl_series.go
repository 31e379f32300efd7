// SPDX-License-Identifier: MIT
// Package: metatwin/builder
//
// impl_series.go - measurement series across simulations.
//
// Target[i] = amplitude + trendK·i + N(0, noiseSigma²)
// Lower[i]  = Target[i] - spread, Upper[i] = Target[i] + spread
// Confidence[i] = confidence
//
// Contract: n >= 1, confidence in [0,1], rng required iff noiseSigma > 0.

package builder

import (
	"fmt"

	"github.com/katalvlaran/metatwin/measurement"
)

const (
	methodSeries  = "Series"
	minSimulation = 1
)

// Series builds a single-variable entry id over ref spanning n simulations.
func Series(id, ref string, n int, confidence float64, opts ...BuilderOption) (*measurement.Entry, error) {
	cfg := newBuilderConfig(opts...)
	if n < minSimulation {
		return nil, errorf(methodSeries, ErrTooFewCompounds, "n=%d < min=%d", n, minSimulation)
	}
	if cfg.noiseSigma > 0 && cfg.rng == nil {
		return nil, errorf(methodSeries, ErrNeedRandSource, "noise=%g", cfg.noiseSigma)
	}

	lower := make([]float64, n)
	upper := make([]float64, n)
	target := make([]float64, n)
	conf := make([]float64, n)
	for i := 0; i < n; i++ {
		t := cfg.amplitude + cfg.trendK*float64(i)
		if cfg.noiseSigma > 0 {
			t += cfg.rng.NormFloat64() * cfg.noiseSigma
		}
		target[i] = t
		lower[i], upper[i] = t-cfg.spread, t+cfg.spread
		conf[i] = confidence
	}

	e, err := measurement.NewEntry(id, []measurement.Variable{{Ref: ref, Coefficient: 1}}, lower, upper, target, conf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodSeries, err)
	}

	return e, nil
}
