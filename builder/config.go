// SPDX-License-Identifier: MIT
// Package: metatwin/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - idFn        = DefaultIDFn              ("M0","M1",...)
//   - reactionFn  = SymbolNumberIDFn("R")    ("R0","R1",...)
//   - rng         = nil                      (pure unless seeded)
//   - bound       = network.DefaultFluxBound
//   - genes       = false
//   - amplitude   = 1.0, trendK = 0.0, noiseSigma = 0.0, spread = 0.0

package builder

import (
	"math/rand"

	"github.com/katalvlaran/metatwin/network"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	idFn       IDFn
	reactionFn IDFn
	rng        *rand.Rand

	// Upper magnitude of every generated flux bound.
	bound float64
	// Attach "g<i>" gene rules to generated reactions.
	genes bool

	// Series controls.
	amplitude  float64
	trendK     float64
	noiseSigma float64
	spread     float64 // half-width of [target-spread, target+spread]
}

const (
	defaultCompoundPrefix = "M"
	defaultReactionPrefix = "R"
	defaultAmplitude      = 1.0
	defaultGenePrefix     = "g"
)

// newBuilderConfig applies options in order; later options win.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:       DefaultIDFn,
		reactionFn: SymbolNumberIDFn(defaultReactionPrefix),
		bound:      network.DefaultFluxBound,
		amplitude:  defaultAmplitude,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// geneID names the gene attached to the i-th generated reaction.
func (c builderConfig) geneID(i int) string {
	return SymbolNumberIDFn(defaultGenePrefix)(i)
}
