// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the vector statistics behind the zero-flux threshold policy
//     (mean + k·std of absolute residuals).
//
// Determinism & Performance:
//   - Two fixed passes (mean, then centred sum of squares); no allocation.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opMeanStd    = "MeanStd"
	opAbsMeanStd = "AbsMeanStd"
)

// MeanStd returns the mean and the population standard deviation of x.
//
// Errors:
//   - ErrEmptyVector when len(x) == 0.
//   - ErrNaNInf when x holds non-finite values.
//
// Complexity:
//   - Time O(n), Space O(1).
func MeanStd(x []float64) (mean, std float64, err error) {
	if len(x) == 0 {
		return 0, 0, matrixErrorf(opMeanStd, ErrEmptyVector)
	}
	if err = ValidateFinite(x); err != nil {
		return 0, 0, matrixErrorf(opMeanStd, err)
	}

	n := float64(len(x))
	for _, v := range x {
		mean += v
	}
	mean /= n

	var ss, d float64
	for _, v := range x {
		d = v - mean
		ss += d * d
	}

	return mean, math.Sqrt(ss / n), nil
}

// AbsMeanStd is MeanStd over |x|.
// Complexity: Time O(n), Space O(n).
func AbsMeanStd(x []float64) (mean, std float64, err error) {
	abs := make([]float64, len(x))
	for i, v := range x {
		abs[i] = math.Abs(v)
	}
	mean, std, err = MeanStd(abs)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", opAbsMeanStd, err)
	}

	return mean, std, nil
}
