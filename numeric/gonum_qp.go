// SPDX-License-Identifier: MIT

package numeric

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type sparseEntry struct {
	col int
	val float64
}

// qpData is  minimize ½xᵀPx + qᵀx  s.t.  l ≤ Ãx ≤ u, where Ã stacks the
// constraint rows and one identity row per bounded column.
type qpData struct {
	n, m int
	p    *mat.SymDense
	q    []float64
	rows [][]sparseEntry
	l, u []float64
}

func newQPData(p *Problem) *qpData {
	n := p.NumCols()
	d := &qpData{n: n, p: mat.NewSymDense(n, nil), q: make([]float64, n)}
	sign := 1.0
	if p.Maximize {
		sign = -1
	}
	for j, c := range p.ColCosts {
		d.q[j] = sign * c
	}
	for _, nz := range p.Hessian {
		d.p.SetSym(nz.Row, nz.Col, d.p.At(nz.Row, nz.Col)+nz.Val)
	}

	d.rows = make([][]sparseEntry, p.NumRows())
	for _, nz := range p.ConstMatrix {
		d.rows[nz.Row] = addEntry(d.rows[nz.Row], nz.Col, nz.Val)
	}
	d.l = append([]float64(nil), p.RowLower...)
	d.u = append([]float64(nil), p.RowUpper...)
	for j := 0; j < n; j++ {
		lo, hi := p.ColLower[j], p.ColUpper[j]
		if math.IsInf(lo, -1) && math.IsInf(hi, 1) {
			continue
		}
		d.rows = append(d.rows, []sparseEntry{{col: j, val: 1}})
		d.l = append(d.l, lo)
		d.u = append(d.u, hi)
	}
	d.m = len(d.rows)

	return d
}

// addEntry sums duplicate columns so every row lists a column once.
func addEntry(row []sparseEntry, col int, val float64) []sparseEntry {
	for k := range row {
		if row[k].col == col {
			row[k].val += val
			return row
		}
	}

	return append(row, sparseEntry{col: col, val: val})
}

// mulA writes Ãx into dst.
func (d *qpData) mulA(dst, x []float64) {
	for i, row := range d.rows {
		var s float64
		for _, e := range row {
			s += e.val * x[e.col]
		}
		dst[i] = s
	}
}

// mulAT writes Ãᵀy into dst.
func (d *qpData) mulAT(dst, y []float64) {
	for j := range dst {
		dst[j] = 0
	}
	for i, row := range d.rows {
		for _, e := range row {
			dst[e.col] += e.val * y[i]
		}
	}
}

// mulP writes Px into dst.
func (d *qpData) mulP(dst, x []float64) {
	for i := 0; i < d.n; i++ {
		var s float64
		for j := 0; j < d.n; j++ {
			s += d.p.At(i, j) * x[j]
		}
		dst[i] = s
	}
}

// factor builds and factorises K = P + σI + Ãᵀdiag(ρ)Ã.
func (d *qpData) factor(rho []float64) (*mat.Cholesky, bool) {
	k := mat.NewSymDense(d.n, nil)
	k.CopySym(d.p)
	for j := 0; j < d.n; j++ {
		k.SetSym(j, j, k.At(j, j)+admmSigma)
	}
	for i, row := range d.rows {
		for a, ea := range row {
			for _, eb := range row[a:] {
				k.SetSym(ea.col, eb.col, k.At(ea.col, eb.col)+rho[i]*ea.val*eb.val)
			}
		}
	}
	var chol mat.Cholesky
	ok := chol.Factorize(k)

	return &chol, ok
}

func (d *qpData) rhoVector(rho float64) []float64 {
	out := make([]float64, d.m)
	for i := range out {
		switch {
		case math.IsInf(d.l[i], -1) && math.IsInf(d.u[i], 1):
			out[i] = admmRhoMin
		case d.l[i] == d.u[i]:
			out[i] = math.Min(admmRhoEqScale*rho, admmRhoMax)
		default:
			out[i] = rho
		}
	}

	return out
}

// admm solves a convex QP with the operator-splitting iteration
//
//	(P + σI + ÃᵀρÃ) x̃ = σx − q + Ãᵀ(ρz − y)
//	x ← αx̃ + (1−α)x
//	z ← Π[l,u](αÃx̃ + (1−α)z + y/ρ)
//	y ← y + ρ(αÃx̃ + (1−α)z_prev − z)
//
// Every admmCheckEvery iterations it tests the residuals, the primal and
// dual infeasibility certificates and rebalances ρ.
func (g *Gonum) admm(ctx context.Context, p *Problem) *Solution {
	if p.NumCols() == 0 {
		for i := range p.RowLower {
			if p.RowLower[i] > 0 || p.RowUpper[i] < 0 {
				return &Solution{Status: StatusInfeasible, Message: "empty row outside its bounds"}
			}
		}
		return &Solution{Status: StatusOptimal, X: []float64{}, Objective: p.Offset}
	}
	d := newQPData(p)
	n, m := d.n, d.m
	for i := 0; i < m; i++ {
		if d.l[i] > d.u[i] {
			return &Solution{Status: StatusInfeasible, Message: "empty bound interval"}
		}
	}

	rhoScalar := admmRho
	rho := d.rhoVector(rhoScalar)
	chol, ok := d.factor(rho)
	if !ok {
		return &Solution{Status: StatusNumericalError, Message: "KKT matrix not positive definite"}
	}

	x, z, y := make([]float64, n), make([]float64, m), make([]float64, m)
	xPrev, yPrev, zPrev := make([]float64, n), make([]float64, m), make([]float64, m)
	rhs, atv := make([]float64, n), make([]float64, n)
	ax, px, zt, tmp := make([]float64, m), make([]float64, n), make([]float64, m), make([]float64, m)
	xt := mat.NewVecDense(n, nil)

	for it := 1; it <= g.maxIter; it++ {
		copy(xPrev, x)
		copy(yPrev, y)
		copy(zPrev, z)

		for i := 0; i < m; i++ {
			tmp[i] = rho[i]*z[i] - y[i]
		}
		d.mulAT(atv, tmp)
		for j := 0; j < n; j++ {
			rhs[j] = admmSigma*x[j] - d.q[j] + atv[j]
		}
		if err := chol.SolveVecTo(xt, mat.NewVecDense(n, rhs)); err != nil {
			return &Solution{Status: StatusNumericalError, Iterations: it, Message: err.Error()}
		}
		xs := xt.RawVector().Data
		d.mulA(zt, xs)
		for j := 0; j < n; j++ {
			x[j] = admmAlpha*xs[j] + (1-admmAlpha)*xPrev[j]
		}
		for i := 0; i < m; i++ {
			relaxed := admmAlpha*zt[i] + (1-admmAlpha)*zPrev[i]
			z[i] = math.Min(math.Max(relaxed+y[i]/rho[i], d.l[i]), d.u[i])
			y[i] += rho[i] * (relaxed - z[i])
		}

		if it%admmCheckEvery != 0 && it != g.maxIter {
			continue
		}
		if ctx.Err() != nil {
			return &Solution{Status: StatusNumericalError, Iterations: it, Message: ctx.Err().Error()}
		}
		if hasNaN(x) || hasNaN(y) {
			return &Solution{Status: StatusNumericalError, Iterations: it, Message: "iterate diverged"}
		}

		d.mulA(ax, x)
		d.mulP(px, x)
		d.mulAT(atv, y)
		primRes, dualRes := 0.0, 0.0
		for i := 0; i < m; i++ {
			primRes = math.Max(primRes, math.Abs(ax[i]-z[i]))
		}
		for j := 0; j < n; j++ {
			dualRes = math.Max(dualRes, math.Abs(px[j]+d.q[j]+atv[j]))
		}
		primScale := math.Max(normInf(ax), normInf(z))
		dualScale := math.Max(math.Max(normInf(px), normInf(atv)), normInf(d.q))
		if primRes <= g.epsAbs+g.epsRel*primScale && dualRes <= g.epsAbs+g.epsRel*dualScale {
			sol := make([]float64, n)
			for j := range sol {
				sol[j] = math.Min(math.Max(x[j], p.ColLower[j]), p.ColUpper[j])
			}
			return &Solution{Status: StatusOptimal, X: sol, Objective: p.Objective(sol), Iterations: it}
		}
		if d.primalInfeasible(y, yPrev) {
			return &Solution{Status: StatusInfeasible, Iterations: it, Message: "primal infeasibility certificate"}
		}
		if d.dualInfeasible(x, xPrev) {
			return &Solution{Status: StatusUnbounded, Iterations: it, Message: "dual infeasibility certificate"}
		}

		// rebalance the step size
		pn := primRes / (primScale + divisionTol)
		dn := dualRes / (dualScale + divisionTol)
		next := rhoScalar * math.Sqrt(pn/(dn+divisionTol))
		next = math.Min(math.Max(next, admmRhoMin), admmRhoMax)
		if next > admmAdaptRatio*rhoScalar || next < rhoScalar/admmAdaptRatio {
			rhoScalar = next
			rho = d.rhoVector(rhoScalar)
			if chol, ok = d.factor(rho); !ok {
				return &Solution{Status: StatusNumericalError, Iterations: it, Message: "KKT matrix not positive definite"}
			}
		}
	}

	return &Solution{Status: StatusNumericalError, Iterations: g.maxIter, Message: "iteration limit"}
}

// primalInfeasible tests δy = y − yPrev as a certificate:
// ‖Ãᵀδy‖ ≤ ε‖δy‖ and uᵀmax(δy,0) + lᵀmin(δy,0) < −ε‖δy‖.
func (d *qpData) primalInfeasible(y, yPrev []float64) bool {
	dy := make([]float64, d.m)
	for i := range dy {
		dy[i] = y[i] - yPrev[i]
		if math.IsInf(d.u[i], 1) {
			dy[i] = math.Min(dy[i], 0)
		}
		if math.IsInf(d.l[i], -1) {
			dy[i] = math.Max(dy[i], 0)
		}
	}
	norm := normInf(dy)
	if norm < divisionTol {
		return false
	}
	var support float64
	for i, v := range dy {
		if v > 0 {
			support += d.u[i] * v
		} else if v < 0 {
			support += d.l[i] * v
		}
	}
	if support >= -admmInfeasTol*norm {
		return false
	}
	atdy := make([]float64, d.n)
	d.mulAT(atdy, dy)

	return normInf(atdy) < admmInfeasTol*norm
}

// dualInfeasible tests δx = x − xPrev as a recession direction:
// Pδx ≈ 0, qᵀδx < 0 and Ãδx inside the recession cone of [l,u].
func (d *qpData) dualInfeasible(x, xPrev []float64) bool {
	dx := make([]float64, d.n)
	floats.SubTo(dx, x, xPrev)
	norm := normInf(dx)
	if norm < divisionTol {
		return false
	}
	eps := admmInfeasTol * norm
	if floats.Dot(d.q, dx) >= -eps {
		return false
	}
	pdx := make([]float64, d.n)
	d.mulP(pdx, dx)
	if normInf(pdx) >= eps {
		return false
	}
	adx := make([]float64, d.m)
	d.mulA(adx, dx)
	for i, v := range adx {
		if (!math.IsInf(d.u[i], 1) && v > eps) || (!math.IsInf(d.l[i], -1) && v < -eps) {
			return false
		}
	}

	return true
}

func normInf(v []float64) float64 {
	var s float64
	for _, x := range v {
		s = math.Max(s, math.Abs(x))
	}

	return s
}

func hasNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}

	return false
}
