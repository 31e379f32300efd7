// SPDX-License-Identifier: MIT
// Package: metatwin/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Options are functional (type BuilderOption func(*builderConfig)).
//   - Option constructors validate and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   - Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/metatwin/network"
)

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the compound id generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithReactionIDScheme sets the reaction id generator. Panics on nil.
func WithReactionIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithReactionIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.reactionFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a seeded *rand.Rand (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithFluxBound sets the magnitude of generated reaction bounds.
// Panics unless 0 < b <= network.DefaultFluxBound.
func WithFluxBound(b float64) BuilderOption {
	if !(b > 0 && b <= network.DefaultFluxBound) {
		panic("builder: WithFluxBound(b) out of (0, DefaultFluxBound]")
	}
	return func(c *builderConfig) {
		c.bound = b
	}
}

// WithGenes attaches a single-gene rule "g<i>" to every generated
// non-exchange reaction.
func WithGenes() BuilderOption {
	return func(c *builderConfig) {
		c.genes = true
	}
}

// WithAmplitude sets the base target of Series. Panics on NaN or Inf.
func WithAmplitude(a float64) BuilderOption {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		panic("builder: WithAmplitude(non-finite)")
	}
	return func(c *builderConfig) {
		c.amplitude = a
	}
}

// WithTrend sets the per-simulation linear trend of Series.
func WithTrend(k float64) BuilderOption {
	if math.IsNaN(k) || math.IsInf(k, 0) {
		panic("builder: WithTrend(non-finite)")
	}
	return func(c *builderConfig) {
		c.trendK = k
	}
}

// WithNoise sets the Gaussian noise deviation of Series. Panics if
// sigma < 0. A positive sigma requires an RNG at build time.
func WithNoise(sigma float64) BuilderOption {
	if !(sigma >= 0) || math.IsInf(sigma, 0) {
		panic("builder: WithNoise(sigma<0)")
	}
	return func(c *builderConfig) {
		c.noiseSigma = sigma
	}
}

// WithSpread sets the half-width of the Series bounds around each target.
// Panics if s < 0.
func WithSpread(s float64) BuilderOption {
	if !(s >= 0) {
		panic("builder: WithSpread(s<0)")
	}
	return func(c *builderConfig) {
		c.spread = s
	}
}
