// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math"
	"slices"
)

// Nonzero is one entry of a sparse matrix.
type Nonzero struct {
	Row int
	Col int
	Val float64
}

// Problem is a linear or convex quadratic program.
type Problem struct {
	ColCosts []float64
	ColLower []float64
	ColUpper []float64

	RowLower []float64
	RowUpper []float64

	ConstMatrix []Nonzero // constraint matrix A
	Hessian     []Nonzero // upper triangle of H; objective term ½xᵀHx

	Maximize bool
	Offset   float64
}

// NumCols returns the number of variables.
func (p *Problem) NumCols() int { return len(p.ColCosts) }

// NumRows returns the number of constraint rows.
func (p *Problem) NumRows() int { return len(p.RowLower) }

// AddCol appends a variable and returns its index.
func (p *Problem) AddCol(cost, lower, upper float64) int {
	p.ColCosts = append(p.ColCosts, cost)
	p.ColLower = append(p.ColLower, lower)
	p.ColUpper = append(p.ColUpper, upper)

	return len(p.ColCosts) - 1
}

// AddRow appends lower ≤ Σ vals[k]·x[cols[k]] ≤ upper and returns its index.
// Zero values are skipped.
func (p *Problem) AddRow(lower, upper float64, cols []int, vals []float64) int {
	r := len(p.RowLower)
	p.RowLower = append(p.RowLower, lower)
	p.RowUpper = append(p.RowUpper, upper)
	for k, c := range cols {
		if vals[k] != 0 {
			p.ConstMatrix = append(p.ConstMatrix, Nonzero{Row: r, Col: c, Val: vals[k]})
		}
	}

	return r
}

// AddHessian adds v to H[i][j] and H[j][i]; only the upper triangle is stored.
func (p *Problem) AddHessian(i, j int, v float64) {
	if v == 0 {
		return
	}
	if i > j {
		i, j = j, i
	}
	p.Hessian = append(p.Hessian, Nonzero{Row: i, Col: j, Val: v})
}

// Validate checks shapes and values.
func (p *Problem) Validate() error {
	if p == nil {
		return ErrNilProblem
	}
	n, m := p.NumCols(), p.NumRows()
	if len(p.ColLower) != n || len(p.ColUpper) != n {
		return fmt.Errorf("numeric: %d costs, %d lower, %d upper: %w", n, len(p.ColLower), len(p.ColUpper), ErrDimensionMismatch)
	}
	if len(p.RowUpper) != m {
		return fmt.Errorf("numeric: %d row lower, %d row upper: %w", m, len(p.RowUpper), ErrDimensionMismatch)
	}
	for j := 0; j < n; j++ {
		if !finite(p.ColCosts[j]) {
			return fmt.Errorf("numeric: cost[%d]=%g: %w", j, p.ColCosts[j], ErrNotFinite)
		}
		if math.IsNaN(p.ColLower[j]) || math.IsNaN(p.ColUpper[j]) ||
			math.IsInf(p.ColLower[j], 1) || math.IsInf(p.ColUpper[j], -1) {
			return fmt.Errorf("numeric: col %d bounds [%g, %g]: %w", j, p.ColLower[j], p.ColUpper[j], ErrNotFinite)
		}
	}
	for i := 0; i < m; i++ {
		if math.IsNaN(p.RowLower[i]) || math.IsNaN(p.RowUpper[i]) ||
			math.IsInf(p.RowLower[i], 1) || math.IsInf(p.RowUpper[i], -1) {
			return fmt.Errorf("numeric: row %d bounds [%g, %g]: %w", i, p.RowLower[i], p.RowUpper[i], ErrNotFinite)
		}
	}
	for _, nz := range p.ConstMatrix {
		if nz.Row < 0 || nz.Row >= m || nz.Col < 0 || nz.Col >= n {
			return fmt.Errorf("numeric: A(%d,%d) in %dx%d: %w", nz.Row, nz.Col, m, n, ErrIndexOutOfRange)
		}
		if !finite(nz.Val) {
			return fmt.Errorf("numeric: A(%d,%d)=%g: %w", nz.Row, nz.Col, nz.Val, ErrNotFinite)
		}
	}
	for _, nz := range p.Hessian {
		if nz.Row < 0 || nz.Col >= n || nz.Col < 0 || nz.Row >= n {
			return fmt.Errorf("numeric: H(%d,%d) in %dx%d: %w", nz.Row, nz.Col, n, n, ErrIndexOutOfRange)
		}
		if nz.Row > nz.Col {
			return fmt.Errorf("numeric: H(%d,%d): %w", nz.Row, nz.Col, ErrHessianTriangle)
		}
		if !finite(nz.Val) {
			return fmt.Errorf("numeric: H(%d,%d)=%g: %w", nz.Row, nz.Col, nz.Val, ErrNotFinite)
		}
	}

	return nil
}

// Objective evaluates cᵀx + ½xᵀHx + offset.
func (p *Problem) Objective(x []float64) float64 {
	v := p.Offset
	for j, c := range p.ColCosts {
		v += c * x[j]
	}
	for _, nz := range p.Hessian {
		if nz.Row == nz.Col {
			v += 0.5 * nz.Val * x[nz.Row] * x[nz.Col]
		} else {
			v += nz.Val * x[nz.Row] * x[nz.Col]
		}
	}

	return v
}

// RowActivity returns A·x.
func (p *Problem) RowActivity(x []float64) []float64 {
	ax := make([]float64, p.NumRows())
	for _, nz := range p.ConstMatrix {
		ax[nz.Row] += nz.Val * x[nz.Col]
	}

	return ax
}

// MaxViolation returns the largest bound or row violation of x, each
// scaled by 1+|bound|.
func (p *Problem) MaxViolation(x []float64) float64 {
	worst := 0.0
	check := func(v, lo, hi float64) {
		if v < lo {
			worst = math.Max(worst, (lo-v)/(1+math.Abs(lo)))
		}
		if v > hi {
			worst = math.Max(worst, (v-hi)/(1+math.Abs(hi)))
		}
	}
	for j := range p.ColCosts {
		check(x[j], p.ColLower[j], p.ColUpper[j])
	}
	for i, ax := range p.RowActivity(x) {
		check(ax, p.RowLower[i], p.RowUpper[i])
	}

	return worst
}

// Clone returns a deep copy of p.
func (p *Problem) Clone() *Problem {
	return &Problem{
		ColCosts:    slices.Clone(p.ColCosts),
		ColLower:    slices.Clone(p.ColLower),
		ColUpper:    slices.Clone(p.ColUpper),
		RowLower:    slices.Clone(p.RowLower),
		RowUpper:    slices.Clone(p.RowUpper),
		ConstMatrix: slices.Clone(p.ConstMatrix),
		Hessian:     slices.Clone(p.Hessian),
		Maximize:    p.Maximize,
		Offset:      p.Offset,
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
