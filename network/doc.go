// SPDX-License-Identifier: MIT

// Package network defines the in-memory metabolic network: compartments,
// compounds and reactions, and derives stoichiometric matrices from them.
//
// What & Why:
//
//	A Network is an owned, keyed collection with deterministic insertion
//	order. Everything numeric downstream (flux balance, variability,
//	knockouts) consumes the Network read-only through the stoichiometric
//	matrices built here, so row/column order must be stable:
//
//	  S       rows = all compounds,     cols = all reactions
//	  S_int   rows = steady compounds   (compartment.IsSteady)
//	  S_ext   rows = non-steady compounds (the medium)
//
// Invariants:
//
//   - a compound's compartment exists when the compound is added;
//   - a reaction references only compounds of the same network;
//   - zero coefficients are never stored;
//   - removal helpers do not cascade; the matrix builders report any
//     dangling reference with ErrDanglingReference instead of dropping it.
//
// Concurrency:
//
//	All methods are safe for concurrent use; getters return copies so a
//	caller can never mutate the owned state behind the network's back.
package network
