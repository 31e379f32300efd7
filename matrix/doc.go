// SPDX-License-Identifier: MIT

// Package matrix offers the dense numeric containers used by metatwin.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked accessors, used
//     as the storage of stoichiometric matrices (compounds × reactions).
//   - Induced, a copy-based row/column restriction used to derive the
//     steady and non-steady sub-matrices from the full stoichiometry.
//   - MatVec, the kernel for residual computation (S·v).
//   - Vector statistics (MeanStd, AbsMeanStd) used by the zero-flux
//     threshold policy.
//
// All public functions return sentinel errors (see errors.go) instead of
// panicking, and every loop runs in a fixed i→j order so results are
// reproducible bit for bit.
package matrix
