// SPDX-License-Identifier: MIT

// Package twin binds networks to their contexts and flattens several
// (Network, Context) pairs into one solvable system.
//
// Flattening prefixes every compartment, compound, reaction, gene, entry
// and variable reference with "<networkID>:". The prefix is the only mapping
// kept; FlatID and SplitID build and invert it. Homonymous genes of two
// networks stay distinct genes.
package twin
