// SPDX-License-Identifier: MIT
// Package: metatwin/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Constructors attach context with %w ("Method: detail: %w").
//   - Validation panics are confined to option constructors (WithX...).

package builder

import "errors"

// ErrTooFewCompounds indicates a size parameter (n, k, compounds,
// reactions, simulations) below the constructor's minimum.
var ErrTooFewCompounds = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or a network mutation
// that the network package rejected.
var ErrConstructFailed = errors.New("builder: construction failed")
