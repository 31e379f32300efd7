// SPDX-License-Identifier: MIT

package fba

import (
	"context"
	"math"

	"github.com/katalvlaran/metatwin/numeric"
)

// Strategy builds the objective of a per-simulation model and solves it.
// The set is closed: linearStrategy and quadraticStrategy, chosen once
// from the Mode.
type Strategy interface {
	Mode() Mode
	solve(ctx context.Context, s *Solver, sys *System, m *Model) (sol *numeric.Solution, objective float64)
}

func newStrategy(m Mode) Strategy {
	if m == Quadratic {
		return quadraticStrategy{}
	}

	return linearStrategy{}
}

type linearStrategy struct{}

func (linearStrategy) Mode() Mode { return Linear }

// solve runs the LP on the configured objective; with parsimony it then
// minimises Σ|v| while holding the objective at its optimum. A failed
// second stage falls back to the first-stage point.
func (linearStrategy) solve(ctx context.Context, s *Solver, sys *System, m *Model) (*numeric.Solution, float64) {
	o := s.cfg.objective
	p := m.Problem
	if o == nil {
		if s.cfg.parsimony > 0 {
			m.AddL1(s.cfg.parsimony)
		}
		sol := s.callLinear(ctx, p)
		if !sol.OK() || s.cfg.parsimony == 0 {
			return sol, 0
		}
		return sol, sol.Objective
	}

	m.SetObjective(sys, *o)
	sol := s.callLinear(ctx, p)
	if !sol.OK() {
		return sol, math.NaN()
	}
	value := p.Objective(sol.X)
	if s.cfg.parsimony == 0 {
		return sol, value
	}

	m.clearObjective()
	m.HoldObjective(sys, *o, value, s.holdTolerance(value))
	m.AddL1(s.cfg.parsimony)
	second := s.callLinear(ctx, p)
	if !second.OK() {
		s.log.Warn("parsimonious stage failed, keeping first-stage fluxes",
			"status", second.Status.String(), "message", second.Message)
		return sol, value
	}
	flux := make([]float64, len(m.Flux))
	for j, col := range m.Flux {
		flux[j] = second.X[col]
	}

	return second, o.value(flux, sys.reactionCol)
}

type quadraticStrategy struct{}

func (quadraticStrategy) Mode() Mode { return Quadratic }

// solve minimises the soft fit plus parsimony and relaxation penalties.
func (quadraticStrategy) solve(ctx context.Context, s *Solver, _ *System, m *Model) (*numeric.Solution, float64) {
	m.AddFit()
	if s.cfg.parsimony > 0 {
		if s.cfg.norm == L2 {
			m.AddL2(s.cfg.parsimony)
		} else {
			m.AddL1(s.cfg.parsimony)
		}
	}
	if s.cfg.relaxation > 0 {
		m.AddRelaxation(s.cfg.relaxation)
	}
	sol := s.callQuadratic(ctx, m.Problem)
	if !sol.OK() {
		return sol, math.NaN()
	}

	return sol, sol.Objective
}

// clearObjective zeroes every cost and the offset.
func (m *Model) clearObjective() {
	p := m.Problem
	for j := range p.ColCosts {
		p.ColCosts[j] = 0
	}
	p.Offset = 0
	p.Maximize = false
}
