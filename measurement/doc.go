// SPDX-License-Identifier: MIT

// Package measurement holds the Context: measured or assumed constraints
// over network variables, for one or more simulation conditions.
//
// Each Entry is a linear combination Σ coefficient·variable over reaction
// fluxes or compound pseudo-fluxes, plus four per-simulation vectors of
// equal length (lower, upper, target, confidence). Simulation i of an entry
// is read through Entry.At(i), which returns one Bound; solvers never index
// the raw vectors directly.
package measurement
