// SPDX-License-Identifier: MIT

package knockout

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/twin"
)

// Progress is called after every finished spec with the number of specs
// done so far and the total. Calls are serialised and done increases by one.
type Progress func(done, total int)

type config struct {
	progress Progress
}

// Option configures the knockout stage.
type Option func(*config)

// WithProgress reports progress after every spec.
func WithProgress(p Progress) Option { return func(c *config) { c.progress = p } }

// Solver runs knockout batches on top of an fba.Solver.
type Solver struct {
	base     *fba.Solver
	progress Progress
}

// New builds the base fba.Solver from fbaOpts and applies opts.
func New(fbaOpts []fba.Option, opts ...Option) (*Solver, error) {
	base, err := fba.New(fbaOpts...)
	if err != nil {
		return nil, err
	}

	return NewWithBase(base, opts...), nil
}

// NewWithBase reuses an existing fba.Solver.
func NewWithBase(base *fba.Solver, opts ...Option) *Solver {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	return &Solver{base: base, progress: cfg.progress}
}

// Base returns the underlying flux balance solver.
func (s *Solver) Base() *fba.Solver { return s.base }

// Solve flattens tw and runs specs. Targets are flat ids: "<network>:<reaction>"
// for reactions and "<network>:<gene>" for genes.
func (s *Solver) Solve(ctx context.Context, tw *twin.Twin, specs []Spec) (*Result, error) {
	if len(specs) == 0 {
		return &Result{}, nil
	}
	if tw == nil {
		return nil, fmt.Errorf("knockout.Solve: %w", fba.ErrNilInput)
	}
	net, data, err := tw.Flatten()
	if err != nil {
		return nil, err
	}

	return s.SolveNetwork(ctx, net, data, specs)
}

// SolveNetwork runs the baseline and every spec on one pair. An empty
// spec list returns an empty Result without solving anything; duplicate
// spec ids fail with ErrDuplicateSpec before any solve.
//
// Stage 1 (Validate): check spec ids and prepare the system once.
// Stage 2 (Execute): baseline, then one fba batch per spec on a bounded
// pool; entries keep spec order.
func (s *Solver) SolveNetwork(ctx context.Context, net *network.Network, data *measurement.Context, specs []Spec) (*Result, error) {
	if len(specs) == 0 {
		return &Result{}, nil
	}
	if err := CheckUnique(specs); err != nil {
		return nil, fmt.Errorf("knockout.SolveNetwork: %w", err)
	}
	sys, err := s.base.Prepare(net, data)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Baseline: s.base.SolveSystem(ctx, sys, nil),
		Entries:  make([]Entry, len(specs)),
	}

	var mu sync.Mutex
	done := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.base.Concurrency())
	for i, spec := range specs {
		g.Go(func() error {
			res.Entries[i] = s.run(gctx, sys, spec)
			if s.progress != nil {
				mu.Lock()
				done++
				s.progress(done, len(specs))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // entries carry their own errors

	return res, nil
}

// run resolves and solves one spec.
func (s *Solver) run(ctx context.Context, sys *fba.System, spec Spec) Entry {
	start := time.Now()
	e := Entry{Spec: spec}
	e.Disabled, e.Err = disabled(sys, spec)
	if e.Err != nil {
		s.base.Metrics().ObserveSolve("knockout", "invalid", time.Since(start))
		s.base.Logger().Warn("invalid knockout", "id", spec.ID, "kind", spec.Kind.String(), "error", e.Err)
		return e
	}

	knocked := make(map[string]bool, len(e.Disabled))
	for _, rid := range e.Disabled {
		knocked[rid] = true
	}
	e.Result = s.base.SolveSystem(ctx, sys, knocked)
	s.base.Metrics().ObserveSolve("knockout", "done", time.Since(start))
	s.base.Logger().Debug("knockout solved", "id", spec.ID, "disabled", len(e.Disabled))

	return e
}

// disabled maps a spec to the reactions it forces to zero.
func disabled(sys *fba.System, spec Spec) ([]string, error) {
	switch spec.Kind {
	case Reaction:
		for _, rid := range spec.Targets {
			if _, ok := sys.ReactionIndex(rid); !ok {
				return nil, fmt.Errorf("knockout %s: %q: %w", spec.ID, rid, ErrUnknownReaction)
			}
		}
		return append([]string(nil), spec.Targets...), nil
	case Gene:
		out, err := sys.Network.DisabledByGenes(spec.Targets)
		if err != nil {
			return nil, fmt.Errorf("knockout %s: %w", spec.ID, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("knockout %s: %w", spec.ID, ErrInvalidKind)
	}
}

// Entry is the outcome of one spec. Result is nil when Err is set.
type Entry struct {
	Spec     Spec
	Disabled []string // reactions fixed at [0, 0]
	Result   *fba.Result
	Err      error
}

// Invalid reports whether the spec could not be resolved.
func (e Entry) Invalid() bool { return e.Err != nil }

// Result is a baseline plus one Entry per spec, in spec order.
type Result struct {
	Baseline *fba.Result
	Entries  []Entry
}

// Delta returns entry k's objective minus the baseline objective in
// simulation sim; ok is false when either side has no optimum.
func (r *Result) Delta(k, sim int) (float64, bool) {
	if r.Baseline == nil || k < 0 || k >= len(r.Entries) || r.Entries[k].Result == nil {
		return 0, false
	}
	if sim < 0 || sim >= len(r.Baseline.Simulations) {
		return 0, false
	}
	d := r.Entries[k].Result.Simulations[sim].Objective - r.Baseline.Simulations[sim].Objective
	if math.IsNaN(d) {
		return 0, false
	}

	return d, true
}
