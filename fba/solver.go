// SPDX-License-Identifier: MIT

package fba

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/metatwin/matrix"
	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/metrics"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/numeric"
	"github.com/katalvlaran/metatwin/twin"
)

// Solver runs flux balance analysis. It is immutable and safe for
// concurrent use.
type Solver struct {
	cfg      config
	strategy Strategy
	backend  numeric.Backend
	log      *slog.Logger
}

// New validates the options and returns a Solver.
//
// Errors: ErrInvalidOption, ErrIncompatibleOptions.
func New(opts ...Option) (*Solver, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Solver{cfg: cfg, strategy: newStrategy(cfg.mode), backend: cfg.backend, log: cfg.logger}
	if s.backend == nil {
		s.backend = numeric.NewGonum()
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	return s, nil
}

// Mode returns the solving mode.
func (s *Solver) Mode() Mode { return s.strategy.Mode() }

// Objective returns the linear objective, if any.
func (s *Solver) Objective() (Objective, bool) {
	if s.cfg.objective == nil {
		return Objective{}, false
	}

	return *s.cfg.objective, true
}

// Relaxation returns the relaxation strength (0 when off).
func (s *Solver) Relaxation() float64 { return s.cfg.relaxation }

// Backend returns the numeric backend.
func (s *Solver) Backend() numeric.Backend { return s.backend }

// Logger returns the logger.
func (s *Solver) Logger() *slog.Logger { return s.log }

// Metrics returns the metrics collector, possibly nil.
func (s *Solver) Metrics() *metrics.Collector { return s.cfg.metrics }

// Concurrency returns the worker limit.
func (s *Solver) Concurrency() int { return s.cfg.concurrency }

// Tolerance returns the numeric tolerance.
func (s *Solver) Tolerance() float64 { return s.cfg.tolerance }

// Solve flattens tw and solves every simulation. Reaction ids in the
// result and in the objective are flattened ids ("<network>:<reaction>").
func (s *Solver) Solve(ctx context.Context, tw *twin.Twin) (*Result, error) {
	if tw == nil {
		return nil, ErrNilInput
	}
	net, data, err := tw.Flatten()
	if err != nil {
		return nil, err
	}

	return s.SolveNetwork(ctx, net, data)
}

// SolveNetwork solves a single (Network, Context) pair; data may be nil.
func (s *Solver) SolveNetwork(ctx context.Context, net *network.Network, data *measurement.Context) (*Result, error) {
	sys, err := s.Prepare(net, data)
	if err != nil {
		return nil, err
	}

	return s.SolveSystem(ctx, sys, nil), nil
}

// SolveSystem solves every simulation of sys with the reactions in knocked
// fixed at zero. Simulations run on a bounded pool; results keep
// condition order.
func (s *Solver) SolveSystem(ctx context.Context, sys *System, knocked map[string]bool) *Result {
	res := newResult(s.Mode(), sys)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.concurrency)
	for i := range res.Simulations {
		g.Go(func() error {
			res.Simulations[i] = s.SolveSimulation(gctx, sys, i, knocked)
			return nil
		})
	}
	_ = g.Wait() // units never fail; outcomes live in the results

	return res
}

// SolveSimulation solves one simulation. It never returns an error: every
// outcome is recorded in the SimulationResult.
func (s *Solver) SolveSimulation(ctx context.Context, sys *System, sim int, knocked map[string]bool) SimulationResult {
	start := time.Now()
	out := SimulationResult{Condition: sys.Conditions[sim], Objective: math.NaN()}

	m, err := s.Model(sys, sim, knocked)
	switch {
	case err != nil:
		out.Status, out.Message = numeric.StatusNumericalError, err.Error()
	case m.Infeasible != "":
		out.Status, out.Message = numeric.StatusInfeasible, m.Infeasible
	default:
		sol, obj := s.strategy.solve(ctx, s, sys, m)
		out = s.collect(sys, m, sol, obj, sim)
	}
	s.report(out, time.Since(start))

	return out
}

// collect turns a solution into a SimulationResult.
func (s *Solver) collect(sys *System, m *Model, sol *numeric.Solution, obj float64, sim int) SimulationResult {
	out := SimulationResult{
		Condition: sys.Conditions[sim],
		Status:    sol.Status,
		Objective: obj,
		Message:   sol.Message,
	}
	if !sol.OK() {
		out.Objective = math.NaN()
		return out
	}
	out.Flux = make([]float64, len(m.Flux))
	for j, col := range m.Flux {
		out.Flux[j] = sol.X[col]
	}
	out.Demand = make([]float64, len(m.Demand))
	for k, col := range m.Demand {
		out.Demand[k] = sol.X[col]
	}
	out.Residual = residuals(sys, out.Flux, out.Demand)
	out.Threshold = Threshold(out.Residual, s.cfg.thresholdK, s.cfg.tolerance)
	out.Zero = make([]bool, len(out.Flux))
	for j, v := range out.Flux {
		out.Zero[j] = math.Abs(v) < out.Threshold
	}

	return out
}

// residuals returns S_int·v − d per steady compound.
func residuals(sys *System, flux, demand []float64) []float64 {
	out, err := matrix.MatVec(sys.steady.Matrix, flux)
	if err != nil {
		return nil
	}
	for k, cid := range sys.SteadyIDs {
		if d, ok := sys.demandIdx[cid]; ok {
			out[k] -= demand[d]
		}
	}

	return out
}

func (s *Solver) report(r SimulationResult, d time.Duration) {
	s.cfg.metrics.ObserveSolve("fba_"+s.Mode().String(), r.Status.String(), d)
	switch r.Status {
	case numeric.StatusOptimal:
		s.log.Debug("simulation solved", "condition", r.Condition, "objective", r.Objective, "duration", d)
	case numeric.StatusNumericalError:
		s.log.Error("numerical error while solving simulation", "condition", r.Condition, "message", r.Message)
	default:
		s.log.Warn("simulation has no optimum", "condition", r.Condition, "status", r.Status.String(), "message", r.Message)
	}
}

// callLinear solves p as an LP; a backend error becomes a numerical error.
func (s *Solver) callLinear(ctx context.Context, p *numeric.Problem) *numeric.Solution {
	sol, err := s.backend.SolveLinear(ctx, p)
	if err != nil {
		return &numeric.Solution{Status: numeric.StatusNumericalError, Message: err.Error()}
	}

	return sol
}

// callQuadratic solves p as a QP; a backend error becomes a numerical error.
func (s *Solver) callQuadratic(ctx context.Context, p *numeric.Problem) *numeric.Solution {
	sol, err := s.backend.SolveQuadratic(ctx, p)
	if err != nil {
		return &numeric.Solution{Status: numeric.StatusNumericalError, Message: err.Error()}
	}

	return sol
}

// holdTolerance is the slack granted to an objective held at value.
func (s *Solver) holdTolerance(value float64) float64 {
	return math.Max(s.cfg.tolerance, s.cfg.tolerance*math.Abs(value))
}
