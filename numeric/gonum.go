// SPDX-License-Identifier: MIT

package numeric

import (
	"context"
	"fmt"
	"time"
)

// Default limits and tolerances of the Gonum backend.
const (
	DefaultTimeLimit     = 60 * time.Second
	DefaultMaxIterations = 50000
	DefaultTolerance     = 1e-9  // simplex reduced-cost tolerance
	DefaultFeasibility   = 1e-6  // accepted scaled bound/row violation
	DefaultADMMAbsTol    = 1e-6  // ADMM absolute residual tolerance
	DefaultADMMRelTol    = 1e-6  // ADMM relative residual tolerance
	admmInfeasTol        = 1e-5  // infeasibility certificate tolerance
	admmSigma            = 1e-6  // proximal regularisation
	admmAlpha            = 1.6   // over-relaxation
	admmRho              = 0.1   // initial step size
	admmRhoEqScale       = 1e3   // step size multiplier on equality rows
	admmRhoMin           = 1e-6  // lower bound of the adaptive step size
	admmRhoMax           = 1e6   // upper bound of the adaptive step size
	admmCheckEvery       = 25    // iterations between termination checks
	admmAdaptRatio       = 5.0   // refactor when rho moves by this factor
	divisionTol          = 1e-12 // guards divisions by residual norms
)

// Gonum is the pure-Go reference Backend.
type Gonum struct {
	timeLimit   time.Duration
	maxIter     int
	tol         float64
	feasibility float64
	epsAbs      float64
	epsRel      float64
}

// Option configures a Gonum backend.
type Option func(*Gonum)

// WithTimeLimit bounds the wall time of one solve; 0 disables the limit.
func WithTimeLimit(d time.Duration) Option {
	return func(g *Gonum) {
		if d >= 0 {
			g.timeLimit = d
		}
	}
}

// WithMaxIterations bounds the ADMM iterations of one quadratic solve.
func WithMaxIterations(n int) Option {
	return func(g *Gonum) {
		if n > 0 {
			g.maxIter = n
		}
	}
}

// WithTolerance sets the simplex optimality tolerance.
func WithTolerance(tol float64) Option {
	return func(g *Gonum) {
		if tol > 0 {
			g.tol = tol
		}
	}
}

// WithADMMTolerance sets the absolute and relative ADMM residual tolerances.
func WithADMMTolerance(abs, rel float64) Option {
	return func(g *Gonum) {
		if abs > 0 && rel >= 0 {
			g.epsAbs, g.epsRel = abs, rel
		}
	}
}

// NewGonum returns a Gonum backend; invalid option values are ignored.
func NewGonum(opts ...Option) *Gonum {
	g := &Gonum{
		timeLimit:   DefaultTimeLimit,
		maxIter:     DefaultMaxIterations,
		tol:         DefaultTolerance,
		feasibility: DefaultFeasibility,
		epsAbs:      DefaultADMMAbsTol,
		epsRel:      DefaultADMMRelTol,
	}
	for _, o := range opts {
		o(g)
	}

	return g
}

// SolveLinear solves the linear program p; a Hessian is rejected.
func (g *Gonum) SolveLinear(ctx context.Context, p *Problem) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(p.Hessian) > 0 {
		return nil, fmt.Errorf("numeric: SolveLinear with %d Hessian entries: %w", len(p.Hessian), ErrQuadraticTerm)
	}

	return g.run(ctx, func(ctx context.Context) *Solution { return g.simplex(ctx, p) }), nil
}

// SolveQuadratic solves the convex program p.
func (g *Gonum) SolveQuadratic(ctx context.Context, p *Problem) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Maximize && len(p.Hessian) > 0 {
		return nil, ErrNotConvex
	}

	return g.run(ctx, func(ctx context.Context) *Solution { return g.admm(ctx, p) }), nil
}

// run executes solve under the context and the time limit. A solve that
// outlives either is reported as StatusNumericalError at once. The solve
// goroutine itself only stops at its next context check: between simplex
// phases, or every admmCheckEvery ADMM iterations. Until then it keeps its
// CPU outside any caller-side concurrency limit.
func (g *Gonum) run(ctx context.Context, solve func(context.Context) *Solution) *Solution {
	if g.timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeLimit)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return &Solution{Status: StatusNumericalError, Message: err.Error()}
	}

	done := make(chan *Solution, 1) // buffered: the solver goroutine never blocks
	go func() { done <- solve(ctx) }()
	select {
	case s := <-done:
		return s
	case <-ctx.Done():
		return &Solution{Status: StatusNumericalError, Message: ctx.Err().Error()}
	}
}
