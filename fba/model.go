// SPDX-License-Identifier: MIT

package fba

import (
	"fmt"
	"math"

	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/numeric"
)

// FitTerm is one soft-fit term confidence·(Σ coefs·x[cols] − target)².
type FitTerm struct {
	Entry  string
	Cols   []int
	Coefs  []float64
	Target float64
	Weight float64
}

// Value evaluates Σ coefs·x[cols].
func (f FitTerm) Value(x []float64) float64 {
	var v float64
	for k, c := range f.Cols {
		v += f.Coefs[k] * x[c]
	}

	return v
}

// Model is the numeric problem of one simulation and its column layout.
type Model struct {
	Problem *numeric.Problem
	Flux    []int     // column per System.ReactionIDs
	Demand  []int     // column per System.DemandIDs
	Slack   []int     // column per System.SteadyIDs when relaxed, else nil
	Fits    []FitTerm // entries with confidence > 0

	// Infeasible explains an empty bound intersection found while
	// assembling; the problem must not be solved when it is set.
	Infeasible string
}

// Model assembles the constraints of simulation sim without any objective.
// Reactions in knocked are fixed at [0, 0].
//
// Complexity: O(|C|·|R| + Σ|entry variables|).
func (s *Solver) Model(sys *System, sim int, knocked map[string]bool) (*Model, error) {
	if sim < 0 || sim >= sys.NumSimulations() {
		return nil, fmt.Errorf("simulation %d of %d: %w", sim, sys.NumSimulations(), ErrSimulationCount)
	}
	relaxed := s.cfg.mode == Quadratic && s.cfg.relaxation > 0
	p := &numeric.Problem{}
	m := &Model{
		Problem: p,
		Flux:    make([]int, len(sys.ReactionIDs)),
		Demand:  make([]int, len(sys.DemandIDs)),
	}

	for j, rid := range sys.ReactionIDs {
		lo, hi := sys.lower[j], sys.upper[j]
		if knocked[rid] {
			lo, hi = 0, 0
		}
		m.Flux[j] = p.AddCol(0, lo, hi)
	}
	for k := range sys.DemandIDs {
		m.Demand[k] = p.AddCol(0, -network.DefaultFluxBound, network.DefaultFluxBound)
	}
	if relaxed {
		m.Slack = make([]int, len(sys.SteadyIDs))
		for k := range sys.SteadyIDs {
			m.Slack[k] = p.AddCol(0, math.Inf(-1), math.Inf(1))
		}
	}

	if err := s.addEntries(sys, m, sim); err != nil {
		return nil, err
	}
	if m.Infeasible != "" {
		return m, nil
	}
	s.addBalances(sys, m)

	return m, nil
}

// column maps an entry reference to its problem column.
func (sys *System) column(m *Model, ref string) int {
	if j, ok := sys.reactionCol[ref]; ok {
		return m.Flux[j]
	}

	return m.Demand[sys.demandIdx[ref]]
}

// addEntries turns context entries into column bounds (one variable) or
// rows (several variables). In linear mode an entry with confidence 1 is
// pinned to its target.
func (s *Solver) addEntries(sys *System, m *Model, sim int) error {
	p := m.Problem
	for _, e := range sys.Context.Entries() {
		b, err := e.At(sim)
		if err != nil {
			return err
		}
		cols := make([]int, len(e.Variables))
		coefs := make([]float64, len(e.Variables))
		for k, v := range e.Variables {
			cols[k] = sys.column(m, v.Ref)
			coefs[k] = v.Coefficient
		}
		if b.Confidence > 0 {
			m.Fits = append(m.Fits, FitTerm{Entry: e.ID, Cols: cols, Coefs: coefs, Target: b.Target, Weight: b.Confidence})
		}

		lo, hi := b.Lower, b.Upper
		if s.cfg.mode == Linear && b.Pinned() {
			lo, hi = math.Max(lo, b.Target), math.Min(hi, b.Target)
			if lo > hi {
				m.Infeasible = fmt.Sprintf("entry %s: target %g outside [%g, %g]", e.ID, b.Target, b.Lower, b.Upper)
				return nil
			}
		}

		if len(cols) > 1 {
			if !math.IsInf(lo, -1) || !math.IsInf(hi, 1) {
				p.AddRow(lo, hi, cols, coefs)
			}
			continue
		}
		a, col := coefs[0], cols[0]
		l, u := lo/a, hi/a
		if a < 0 {
			l, u = u, l
		}
		nl, nu := math.Max(p.ColLower[col], l), math.Min(p.ColUpper[col], u)
		if nl > nu {
			m.Infeasible = fmt.Sprintf("entry %s: [%g, %g] does not intersect %s bounds [%g, %g]",
				e.ID, l, u, e.Variables[0].Ref, p.ColLower[col], p.ColUpper[col])
			return nil
		}
		p.ColLower[col], p.ColUpper[col] = nl, nu
	}

	return nil
}

// addBalances adds S_int·v − d (− s) = 0 per steady compound and
// S_c·v − d_c = 0 per referenced non-steady compound. Rows without
// nonzeros are skipped.
func (s *Solver) addBalances(sys *System, m *Model) {
	p := m.Problem
	addRow := func(st *network.Stoichiometry, i int, cid string, slack int) {
		row, _ := st.Matrix.Row(i)
		var cols []int
		var vals []float64
		for j, v := range row {
			if v != 0 {
				cols = append(cols, m.Flux[j])
				vals = append(vals, v)
			}
		}
		if k, ok := sys.demandIdx[cid]; ok {
			cols = append(cols, m.Demand[k])
			vals = append(vals, -1)
		}
		if slack >= 0 {
			cols = append(cols, slack)
			vals = append(vals, -1)
		}
		if len(cols) > 0 {
			p.AddRow(0, 0, cols, vals)
		}
	}
	for k, cid := range sys.SteadyIDs {
		slack := -1
		if m.Slack != nil {
			slack = m.Slack[k]
		}
		addRow(sys.steady, k, cid, slack)
	}
	for _, cid := range sys.DemandIDs {
		if _, steady := sys.steadyIdx[cid]; steady {
			continue
		}
		i, _ := sys.full.RowIndex(cid)
		addRow(sys.full, i, cid, -1)
	}
}

// SetObjective replaces the costs with a linear objective over fluxes.
func (m *Model) SetObjective(sys *System, o Objective) {
	p := m.Problem
	for j := range p.ColCosts {
		p.ColCosts[j] = 0
	}
	for _, t := range o.Terms {
		p.ColCosts[m.Flux[sys.reactionCol[t.Reaction]]] += t.Weight
	}
	p.Maximize = o.Sense == Maximize
}

// HoldObjective constrains o to stay within tol of value on the optimal
// side: ≥ value−tol when maximising, ≤ value+tol when minimising.
func (m *Model) HoldObjective(sys *System, o Objective, value, tol float64) {
	cols := make([]int, 0, len(o.Terms))
	vals := make([]float64, 0, len(o.Terms))
	for _, t := range o.Terms {
		cols = append(cols, m.Flux[sys.reactionCol[t.Reaction]])
		vals = append(vals, t.Weight)
	}
	if o.Sense == Maximize {
		m.Problem.AddRow(value-tol, math.Inf(1), cols, vals)
	} else {
		m.Problem.AddRow(math.Inf(-1), value+tol, cols, vals)
	}
}

// HoldFits constrains every fit term to within tol(value) of its value at x.
func (m *Model) HoldFits(x []float64, tol func(float64) float64) {
	for _, f := range m.Fits {
		v := f.Value(x)
		d := tol(v)
		m.Problem.AddRow(v-d, v+d, f.Cols, f.Coefs)
	}
}

// AddL1 adds t_j ≥ |v_j| with cost strength·t_j for every flux column.
func (m *Model) AddL1(strength float64) {
	p := m.Problem
	for _, col := range m.Flux {
		t := p.AddCol(strength, 0, math.Inf(1))
		p.AddRow(0, math.Inf(1), []int{t, col}, []float64{1, -1})
		p.AddRow(0, math.Inf(1), []int{t, col}, []float64{1, 1})
	}
}

// AddL2 adds strength·Σv_j².
func (m *Model) AddL2(strength float64) {
	for _, col := range m.Flux {
		m.Problem.AddHessian(col, col, 2*strength)
	}
}

// AddFit adds Σ weight·(a·x − target)² over the fit terms.
func (m *Model) AddFit() {
	p := m.Problem
	for _, f := range m.Fits {
		w := f.Weight
		for a := range f.Cols {
			p.AddHessian(f.Cols[a], f.Cols[a], 2*w*f.Coefs[a]*f.Coefs[a])
			for b := a + 1; b < len(f.Cols); b++ {
				p.AddHessian(f.Cols[a], f.Cols[b], 2*w*f.Coefs[a]*f.Coefs[b])
			}
			p.ColCosts[f.Cols[a]] -= 2 * w * f.Target * f.Coefs[a]
		}
		p.Offset += w * f.Target * f.Target
	}
}

// AddRelaxation adds strength·‖s‖² over the slack columns.
func (m *Model) AddRelaxation(strength float64) {
	for _, col := range m.Slack {
		m.Problem.AddHessian(col, col, 2*strength)
	}
}
