// SPDX-License-Identifier: MIT

package fva

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/numeric"
	"github.com/katalvlaran/metatwin/twin"
)

// DefaultFraction holds the objective at its full optimum.
const DefaultFraction = 1.0

// quadraticHoldScale widens the fitted-entry hold in quadratic mode, where
// the base point comes from an iterative solver.
const quadraticHoldScale = 10

type config struct {
	fraction float64
}

// Option configures the variability stage.
type Option func(*config)

// WithFraction keeps the objective within (1−f)·|optimum| of the optimum.
func WithFraction(f float64) Option { return func(c *config) { c.fraction = f } }

// Solver runs flux variability analysis on top of an fba.Solver.
type Solver struct {
	base     *fba.Solver
	fraction float64
}

// New builds the base fba.Solver from fbaOpts and applies opts.
//
// Errors: fba.ErrInvalidOption, fba.ErrIncompatibleOptions,
// ErrInvalidFraction, ErrRelaxationUnsupported.
func New(fbaOpts []fba.Option, opts ...Option) (*Solver, error) {
	base, err := fba.New(fbaOpts...)
	if err != nil {
		return nil, err
	}

	return NewWithBase(base, opts...)
}

// NewWithBase reuses an existing fba.Solver.
func NewWithBase(base *fba.Solver, opts ...Option) (*Solver, error) {
	cfg := config{fraction: DefaultFraction}
	for _, o := range opts {
		o(&cfg)
	}
	if !(cfg.fraction >= 0 && cfg.fraction <= 1) {
		return nil, fmt.Errorf("fraction %g: %w", cfg.fraction, ErrInvalidFraction)
	}
	if base.Relaxation() > 0 {
		return nil, fmt.Errorf("relaxation %g: %w", base.Relaxation(), ErrRelaxationUnsupported)
	}

	return &Solver{base: base, fraction: cfg.fraction}, nil
}

// Fraction returns the optimum fraction.
func (s *Solver) Fraction() float64 { return s.fraction }

// Base returns the underlying flux balance solver.
func (s *Solver) Base() *fba.Solver { return s.base }

// Solve flattens tw and computes the variability of reactionIDs (flat
// ids); an empty list means every reaction.
func (s *Solver) Solve(ctx context.Context, tw *twin.Twin, reactionIDs []string) (*Result, error) {
	if tw == nil {
		return nil, fmt.Errorf("fva.Solve: %w", fba.ErrNilInput)
	}
	net, data, err := tw.Flatten()
	if err != nil {
		return nil, err
	}

	return s.SolveNetwork(ctx, net, data, reactionIDs)
}

// SolveNetwork computes the variability of reactionIDs on one pair.
//
// Stage 1 (Validate): prepare the base system, resolve reaction ids.
// Stage 2 (Execute): base optimum per simulation, then two LPs per
// (simulation, reaction) on a bounded pool.
func (s *Solver) SolveNetwork(ctx context.Context, net *network.Network, data *measurement.Context, reactionIDs []string) (*Result, error) {
	sys, err := s.base.Prepare(net, data)
	if err != nil {
		return nil, err
	}
	if len(reactionIDs) == 0 {
		reactionIDs = sys.ReactionIDs
	}
	cols := make([]int, len(reactionIDs))
	for k, rid := range reactionIDs {
		j, ok := sys.ReactionIndex(rid)
		if !ok {
			return nil, fmt.Errorf("reaction %q: %w", rid, ErrUnknownReaction)
		}
		cols[k] = j
	}

	baseRes := s.base.SolveSystem(ctx, sys, nil)
	res := newResult(reactionIDs, baseRes)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.base.Concurrency())
	for i := range res.Simulations {
		b := baseRes.Simulations[i]
		if b.Status != numeric.StatusOptimal {
			for k := range res.Simulations[i].Ranges {
				res.Simulations[i].Ranges[k] = failed(b.Status)
			}
			continue
		}
		for k, j := range cols {
			for _, maximize := range []bool{false, true} {
				g.Go(func() error {
					v, st := s.bound(gctx, sys, i, j, maximize, b)
					r := &res.Simulations[i].Ranges[k]
					if maximize {
						r.Max, r.MaxStatus = v, st
					} else {
						r.Min, r.MinStatus = v, st
					}
					return nil
				})
			}
		}
	}
	_ = g.Wait() // units never fail; statuses live in the ranges

	return res, nil
}

// bound minimises or maximises flux column j in simulation sim with the
// base optimum held.
func (s *Solver) bound(ctx context.Context, sys *fba.System, sim, j int, maximize bool, b fba.SimulationResult) (float64, numeric.Status) {
	start := time.Now()
	v, st, msg := s.solveBound(ctx, sys, sim, j, maximize, b)
	s.base.Metrics().ObserveSolve("fva", st.String(), time.Since(start))
	if st != numeric.StatusOptimal {
		s.base.Logger().Warn("variability bound has no optimum",
			"condition", b.Condition, "reaction", sys.ReactionIDs[j], "maximize", maximize,
			"status", st.String(), "message", msg)
	}

	return v, st
}

func (s *Solver) solveBound(ctx context.Context, sys *fba.System, sim, j int, maximize bool, b fba.SimulationResult) (float64, numeric.Status, string) {
	m, err := s.base.Model(sys, sim, nil)
	if err != nil {
		return math.NaN(), numeric.StatusNumericalError, err.Error()
	}
	if m.Infeasible != "" {
		return math.NaN(), numeric.StatusInfeasible, m.Infeasible
	}

	if o, ok := s.base.Objective(); ok && s.base.Mode() == fba.Linear {
		m.HoldObjective(sys, o, b.Objective, s.holdTolerance(b.Objective, 1))
	} else if s.base.Mode() == fba.Quadratic {
		x := make([]float64, m.Problem.NumCols())
		for k, col := range m.Flux {
			x[col] = b.Flux[k]
		}
		for k, col := range m.Demand {
			x[col] = b.Demand[k]
		}
		m.HoldFits(x, func(v float64) float64 { return s.holdTolerance(v, quadraticHoldScale) })
	}

	p := m.Problem
	col := m.Flux[j]
	p.ColCosts[col] = 1
	p.Maximize = maximize

	sol, err := s.base.Backend().SolveLinear(ctx, p)
	if err != nil {
		return math.NaN(), numeric.StatusNumericalError, err.Error()
	}
	if !sol.OK() {
		return math.NaN(), sol.Status, sol.Message
	}

	return sol.X[col], sol.Status, ""
}

// holdTolerance is max(tol, (1−fraction)·|v|, scale·feasibility·(1+|v|)).
func (s *Solver) holdTolerance(v, scale float64) float64 {
	a := math.Abs(v)

	return math.Max(s.base.Tolerance(), math.Max((1-s.fraction)*a, scale*numeric.DefaultFeasibility*(1+a)))
}
