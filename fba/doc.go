// SPDX-License-Identifier: MIT

// Package fba implements flux balance analysis over a network and its
// measurement context.
//
// For every simulation i the solver assembles one numeric problem:
//
//	columns  one flux per reaction, one demand per compound referenced by
//	         the context ("demand:<id>"), one slack per steady compound when
//	         relaxation is on, auxiliary |v| columns for L1 parsimony
//	rows     S_int·v − d (− s) = 0 for steady compounds,
//	         S_c·v − d_c = 0 for referenced medium compounds,
//	         lo ≤ Σ a·x ≤ hi for multi-variable entries
//	bounds   reaction bounds ∩ single-variable entry bounds
//
// and solves it with a Strategy picked once from the Mode:
//
//	Linear     maximise/minimise a weighted flux sum (LP); entries with
//	           confidence 1 are pinned to their target; an optional second
//	           stage minimises Σ|v| with the objective held at its optimum.
//	Quadratic  minimise Σ confidence·(a·x − target)² + parsimony
//	           + relaxation·‖s‖² (convex QP).
//
// Per-simulation failures (infeasible, unbounded, numerical_error) are
// recorded in the result and never abort the batch. Configuration and
// validation errors are returned before any solve.
//
// Zero flux: |v| < threshold, with threshold = mean(|sv|) + k·std(|sv|)
// over the steady residuals sv of that simulation, floored at the tolerance.
package fba
