// SPDX-License-Identifier: MIT

package numeric

import "errors"

var (
	// ErrNilProblem indicates a nil problem.
	ErrNilProblem = errors.New("numeric: nil problem")

	// ErrDimensionMismatch indicates cost/bound slices of inconsistent length.
	ErrDimensionMismatch = errors.New("numeric: dimension mismatch")

	// ErrIndexOutOfRange indicates a nonzero outside the problem shape.
	ErrIndexOutOfRange = errors.New("numeric: index out of range")

	// ErrNotFinite indicates a NaN or infinite coefficient or cost, or a NaN bound.
	ErrNotFinite = errors.New("numeric: non-finite value")

	// ErrHessianTriangle indicates a Hessian entry below the diagonal.
	ErrHessianTriangle = errors.New("numeric: Hessian entry below diagonal")

	// ErrQuadraticTerm indicates a Hessian passed to a linear solve.
	ErrQuadraticTerm = errors.New("numeric: Hessian in a linear problem")

	// ErrNotConvex indicates a maximisation with a quadratic term.
	ErrNotConvex = errors.New("numeric: maximising a quadratic objective")
)
