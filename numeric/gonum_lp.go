// SPDX-License-Identifier: MIT

package numeric

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

type colKind int

const (
	colFixed colKind = iota // x = base
	colLower                // x = base + y
	colUpper                // x = base - y
	colSplit                // x = base + y⁺ - y⁻
)

// colMap records how an original variable is expressed in y ≥ 0.
type colMap struct {
	kind colKind
	base float64
	pos  int // index of y (or y⁺)
	neg  int // index of y⁻ for split columns
}

// standardForm is  minimize cᵀy  s.t.  G·y ≤ h,  y ≥ 0, written around an
// anchor point: y = 0 maps back to the anchor.
type standardForm struct {
	cols []colMap
	cost []float64
	g    [][]float64
	h    []float64
}

// simplex solves p through gonum's simplex.
//
// The standard form is first built around the origin clamped into the
// column bounds. When that point satisfies every row the slack columns are a
// feasible starting basis. Otherwise a phase one program with one artificial
// per violated row finds a feasible point and the form is rebuilt around it.
// Phase two always starts from the slack basis, so gonum never searches for
// a basis on its own.
//
// Each lp.Simplex call runs to completion; the context is only checked
// between phases.
func (g *Gonum) simplex(ctx context.Context, p *Problem) *Solution {
	sf, status := buildStandardForm(p, make([]float64, p.NumCols()), g.feasibility)
	if status != StatusOptimal {
		return &Solution{Status: status, Message: "presolve"}
	}
	if !sf.slackFeasible(g.feasibility) {
		y, sol := g.phaseOne(sf)
		if sol != nil {
			return sol
		}
		if err := ctx.Err(); err != nil {
			return &Solution{Status: StatusNumericalError, Message: err.Error()}
		}
		if sf, status = buildStandardForm(p, sf.point(y), g.feasibility); status != StatusOptimal {
			return &Solution{Status: status, Message: "presolve"}
		}
		if !sf.slackFeasible(g.feasibility) {
			return &Solution{Status: StatusNumericalError, Message: "phase one point violates constraints"}
		}
	}

	keep := sf.usedColumns()
	for k, used := range keep {
		if !used && sf.cost[k] < 0 {
			return &Solution{Status: StatusUnbounded, Message: "unconstrained column with improving cost"}
		}
	}

	y := make([]float64, len(sf.cost))
	if m := len(sf.g); m > 0 {
		cols := indices(keep)
		nk := len(cols)
		a := mat.NewDense(m, nk+m, nil)
		c := make([]float64, nk+m)
		basis := make([]int, m)
		for k, col := range cols {
			c[k] = sf.cost[col]
		}
		for i, row := range sf.g {
			for k, col := range cols {
				if row[col] != 0 {
					a.Set(i, k, row[col])
				}
			}
			a.Set(i, nk+i, 1)
			basis[i] = nk + i
		}
		sx, err := solveStandard(c, a, sf.h, g.tol, basis)
		switch {
		case errors.Is(err, lp.ErrUnbounded):
			return &Solution{Status: StatusUnbounded, Message: err.Error()}
		case err != nil:
			return &Solution{Status: StatusNumericalError, Message: err.Error()}
		}
		for k, col := range cols {
			y[col] = math.Max(sx[k], 0)
		}
	}

	x := sf.point(y)
	if v := p.MaxViolation(x); v > g.feasibility {
		return &Solution{Status: StatusNumericalError, Message: "simplex result violates constraints"}
	}

	return &Solution{Status: StatusOptimal, X: x, Objective: p.Objective(x)}
}

// phaseOne minimises the sum of artificial variables added to every row
// with h < 0. It returns a feasible y, or a terminal Solution.
func (g *Gonum) phaseOne(sf *standardForm) ([]float64, *Solution) {
	cols := indices(sf.usedColumns())
	m, nk := len(sf.g), len(cols)
	var short []int
	for i, h := range sf.h {
		if h < 0 {
			short = append(short, i)
		}
	}
	q := len(short)

	a := mat.NewDense(m, nk+m+q, nil)
	b := make([]float64, m)
	c := make([]float64, nk+m+q)
	basis := make([]int, m)
	art := 0
	for i, row := range sf.g {
		sign := 1.0
		if sf.h[i] < 0 {
			sign = -1
		}
		for k, col := range cols {
			if row[col] != 0 {
				a.Set(i, k, sign*row[col])
			}
		}
		a.Set(i, nk+i, sign)
		b[i] = sign * sf.h[i]
		basis[i] = nk + i
		if sign < 0 {
			j := nk + m + art
			a.Set(i, j, 1)
			c[j] = 1
			basis[i] = j
			art++
		}
	}

	sx, err := solveStandard(c, a, b, g.tol, basis)
	if sx == nil {
		return nil, &Solution{Status: StatusNumericalError, Message: fmt.Sprintf("phase one: %v", err)}
	}
	var excess, scale float64
	for _, v := range sx[nk+m:] {
		excess += math.Max(v, 0)
	}
	for _, v := range b {
		scale = math.Max(scale, v)
	}
	if excess > g.feasibility*(1+scale) {
		if err != nil {
			return nil, &Solution{Status: StatusNumericalError, Message: fmt.Sprintf("phase one: %v", err)}
		}

		return nil, &Solution{Status: StatusInfeasible, Message: "phase one: artificial variables remain positive"}
	}

	y := make([]float64, len(sf.cost))
	for k, col := range cols {
		y[col] = math.Max(sx[k], 0)
	}

	return y, nil
}

// solveStandard calls lp.Simplex with a feasible initial basis. gonum
// reports shape problems by panicking; they come back as errors. On a
// numerical failure the last feasible point is returned with the error.
func solveStandard(c []float64, a *mat.Dense, b []float64, tol float64, basis []int) (x []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			x, err = nil, fmt.Errorf("lp: %v", r)
		}
	}()
	_, x, err = lp.Simplex(c, a, b, tol, basis)

	return x, err
}

// slackFeasible reports whether y = 0 satisfies G·y ≤ h within tol; small
// negative right-hand sides are clamped to zero.
func (sf *standardForm) slackFeasible(tol float64) bool {
	for _, h := range sf.h {
		if h < -tol {
			return false
		}
	}
	for i, h := range sf.h {
		sf.h[i] = math.Max(h, 0)
	}

	return true
}

func (sf *standardForm) usedColumns() []bool {
	used := make([]bool, len(sf.cost))
	for _, row := range sf.g {
		for k, v := range row {
			if v != 0 {
				used[k] = true
			}
		}
	}

	return used
}

// point maps y back to the original variables.
func (sf *standardForm) point(y []float64) []float64 {
	x := make([]float64, len(sf.cols))
	for j, cm := range sf.cols {
		switch cm.kind {
		case colFixed:
			x[j] = cm.base
		case colLower:
			x[j] = cm.base + y[cm.pos]
		case colUpper:
			x[j] = cm.base - y[cm.pos]
		default:
			x[j] = cm.base + y[cm.pos] - y[cm.neg]
		}
	}

	return x
}

func indices(mask []bool) []int {
	var out []int
	for k, ok := range mask {
		if ok {
			out = append(out, k)
		}
	}

	return out
}

// buildStandardForm rewrites p around anchor, clamped into the column
// bounds; a non-optimal status means the presolve already decided the
// outcome.
func buildStandardForm(p *Problem, anchor []float64, feasTol float64) (*standardForm, Status) {
	sign := 1.0
	if p.Maximize {
		sign = -1
	}
	n := p.NumCols()
	sf := &standardForm{cols: make([]colMap, n)}
	type capRow struct {
		y   int
		cap float64
	}
	var caps []capRow
	capped := func(y int, c float64) {
		if !math.IsInf(c, 1) {
			caps = append(caps, capRow{y: y, cap: c})
		}
	}
	for j := 0; j < n; j++ {
		lo, hi, c := p.ColLower[j], p.ColUpper[j], sign*p.ColCosts[j]
		cm := colMap{pos: -1, neg: -1}
		at := math.Min(math.Max(anchor[j], lo), hi)
		switch {
		case lo > hi:
			return nil, StatusInfeasible
		case lo == hi:
			cm.kind, cm.base = colFixed, lo
		case at == lo:
			cm.kind, cm.base, cm.pos = colLower, lo, len(sf.cost)
			sf.cost = append(sf.cost, c)
			capped(cm.pos, hi-lo)
		case at == hi:
			cm.kind, cm.base, cm.pos = colUpper, hi, len(sf.cost)
			sf.cost = append(sf.cost, -c)
			capped(cm.pos, hi-lo)
		default:
			cm.kind, cm.base, cm.pos, cm.neg = colSplit, at, len(sf.cost), len(sf.cost)+1
			sf.cost = append(sf.cost, c, -c)
			capped(cm.pos, hi-at)
			capped(cm.neg, at-lo)
		}
		sf.cols[j] = cm
	}

	ny, m := len(sf.cost), p.NumRows()
	coef := make([][]float64, m)
	constant := make([]float64, m)
	for i := range coef {
		coef[i] = make([]float64, ny)
	}
	for _, nz := range p.ConstMatrix {
		cm := sf.cols[nz.Col]
		constant[nz.Row] += nz.Val * cm.base
		switch cm.kind {
		case colLower:
			coef[nz.Row][cm.pos] += nz.Val
		case colUpper:
			coef[nz.Row][cm.pos] -= nz.Val
		case colSplit:
			coef[nz.Row][cm.pos] += nz.Val
			coef[nz.Row][cm.neg] -= nz.Val
		}
	}

	for i := 0; i < m; i++ {
		lo, hi := p.RowLower[i]-constant[i], p.RowUpper[i]-constant[i]
		if p.RowLower[i] > p.RowUpper[i] {
			return nil, StatusInfeasible
		}
		empty := true
		for _, v := range coef[i] {
			if v != 0 {
				empty = false
				break
			}
		}
		if empty {
			if lo > feasTol*(1+math.Abs(p.RowLower[i])) || hi < -feasTol*(1+math.Abs(p.RowUpper[i])) {
				return nil, StatusInfeasible
			}
			continue
		}
		if !math.IsInf(hi, 0) {
			sf.g = append(sf.g, coef[i])
			sf.h = append(sf.h, hi)
		}
		if !math.IsInf(lo, 0) {
			neg := make([]float64, ny)
			for k, v := range coef[i] {
				neg[k] = -v
			}
			sf.g = append(sf.g, neg)
			sf.h = append(sf.h, -lo)
		}
	}
	for _, cr := range caps {
		row := make([]float64, ny)
		row[cr.y] = 1
		sf.g = append(sf.g, row)
		sf.h = append(sf.h, cr.cap)
	}

	return sf, StatusOptimal
}
