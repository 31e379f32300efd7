// SPDX-License-Identifier: MIT

// Package knockout simulates reaction and gene deletions.
//
// A Spec names a set of reactions or genes removed together. The solver
// prepares the (network, context) pair once, solves a baseline and then
// every spec with the affected reactions fixed at [0, 0] through a private
// bound overlay; the network itself is never mutated. Gene specs disable
// the reactions whose gene rule evaluates to false once the genes are
// gone.
//
// A spec that names an unknown reaction or gene marks only its own entry
// invalid; the batch continues.
package knockout
