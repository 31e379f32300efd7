// SPDX-License-Identifier: MIT

// Package numeric describes linear and quadratic programs and defines the
// Backend that solves them.
//
// Problem layout (column-oriented, as in HiGHS):
//
//	minimize (or maximize)  cᵀx + ½ xᵀHx + offset
//	subject to              rowLower ≤ A·x ≤ rowUpper
//	                        colLower ≤ x   ≤ colUpper
//
// A is stored as sparse Nonzero triplets; H is stored as its upper
// triangle. Bounds may be ±Inf.
//
// Solver outcomes are reported through Solution.Status; an error is only
// returned for a malformed Problem. The Gonum backend is a pure-Go
// reference implementation:
//
//   - linear programs go through gonum's simplex on a standard form that
//     always has full row rank (one slack per inequality);
//   - quadratic programs use an operator-splitting (ADMM) method with a
//     cached Cholesky factorisation, adaptive step size and infeasibility
//     certificates.
//
// Both respect context cancellation and a per-call time limit; the QP
// method additionally stops at an iteration limit. Hitting a limit yields
// StatusNumericalError.
package numeric
