// SPDX-License-Identifier: MIT

package fba

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/metatwin/metrics"
	"github.com/katalvlaran/metatwin/numeric"
)

// Mode selects the solving strategy.
type Mode int

const (
	// Linear solves an LP on an explicit objective.
	Linear Mode = iota
	// Quadratic fits the context by least squares (QP).
	Quadratic
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Quadratic {
		return "quadratic"
	}

	return "linear"
}

// ParseMode converts "linear" or "quadratic".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lp":
		return Linear, nil
	case "quadratic", "qp":
		return Quadratic, nil
	default:
		return 0, fmt.Errorf("mode %q: %w", s, ErrInvalidOption)
	}
}

// Sense is the optimisation direction of a linear objective.
type Sense int

const (
	// Maximize the objective.
	Maximize Sense = iota
	// Minimize the objective.
	Minimize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	if s == Minimize {
		return "min"
	}

	return "max"
}

// ParseSense converts "max"/"maximize" or "min"/"minimize".
func ParseSense(s string) (Sense, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize", "maximise":
		return Maximize, nil
	case "min", "minimize", "minimise":
		return Minimize, nil
	default:
		return 0, fmt.Errorf("sense %q: %w", s, ErrInvalidOption)
	}
}

// Norm is the parsimony penalty.
type Norm int

const (
	// L1 penalises Σ|v|.
	L1 Norm = iota
	// L2 penalises Σv².
	L2
)

// Term is one weighted reaction of a linear objective.
type Term struct {
	Reaction string
	Weight   float64
}

// Objective is a weighted flux sum and its direction.
type Objective struct {
	Sense Sense
	Terms []Term
}

// MaximizeFlux is the objective "maximise the flux of rid".
func MaximizeFlux(rid string) Objective {
	return Objective{Sense: Maximize, Terms: []Term{{Reaction: rid, Weight: 1}}}
}

// MinimizeFlux is the objective "minimise the flux of rid".
func MinimizeFlux(rid string) Objective {
	return Objective{Sense: Minimize, Terms: []Term{{Reaction: rid, Weight: 1}}}
}

// value evaluates the objective on a flux vector keyed by column.
func (o Objective) value(flux []float64, col map[string]int) float64 {
	var v float64
	for _, t := range o.Terms {
		v += t.Weight * flux[col[t.Reaction]]
	}

	return v
}

// Bounds of the regularisation strengths.
const (
	MaxRelaxation = 1e6
	MaxParsimony  = 1e3

	DefaultThresholdK  = 3.0
	DefaultTolerance   = 1e-9
	DefaultConcurrency = 4
)

type config struct {
	mode        Mode
	objective   *Objective
	relaxation  float64
	parsimony   float64
	norm        Norm
	gapTolerant bool
	simulations int // 0: taken from the context
	simsSet     bool
	concurrency int
	thresholdK  float64
	tolerance   float64
	backend     numeric.Backend
	logger      *slog.Logger
	metrics     *metrics.Collector
}

// Option configures a Solver. Values are checked by New.
type Option func(*config)

// WithMode selects Linear or Quadratic.
func WithMode(m Mode) Option { return func(c *config) { c.mode = m } }

// WithObjective sets the linear objective.
func WithObjective(o Objective) Option {
	return func(c *config) {
		cp := Objective{Sense: o.Sense, Terms: append([]Term(nil), o.Terms...)}
		c.objective = &cp
	}
}

// WithRelaxation enables steady-state relaxation with penalty strength·‖s‖².
func WithRelaxation(strength float64) Option { return func(c *config) { c.relaxation = strength } }

// WithParsimony penalises total flux with the given strength and norm.
func WithParsimony(strength float64, norm Norm) Option {
	return func(c *config) { c.parsimony, c.norm = strength, norm }
}

// WithGapTolerance adds a sink reaction for every dead-end compound of a
// private copy of the network before solving.
func WithGapTolerance() Option { return func(c *config) { c.gapTolerant = true } }

// WithSimulations fixes the number of simulations; it must match the context.
func WithSimulations(n int) Option {
	return func(c *config) { c.simulations, c.simsSet = n, true }
}

// WithConcurrency bounds the number of simulations solved in parallel. A
// simulation abandoned on timeout may keep its backend busy until the
// backend's next context check.
func WithConcurrency(n int) Option { return func(c *config) { c.concurrency = n } }

// WithThresholdK sets k in mean(|sv|) + k·std(|sv|).
func WithThresholdK(k float64) Option { return func(c *config) { c.thresholdK = k } }

// WithTolerance sets the zero-threshold floor and the objective hold tolerance.
func WithTolerance(t float64) Option { return func(c *config) { c.tolerance = t } }

// WithBackend replaces the numeric backend.
func WithBackend(b numeric.Backend) Option { return func(c *config) { c.backend = b } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.logger = l } }

// WithMetrics records solve counts and durations.
func WithMetrics(m *metrics.Collector) Option { return func(c *config) { c.metrics = m } }

func defaultConfig() config {
	return config{
		mode:        Linear,
		norm:        L1,
		concurrency: DefaultConcurrency,
		thresholdK:  DefaultThresholdK,
		tolerance:   DefaultTolerance,
	}
}

// validate reports the first configuration error.
func (c *config) validate() error {
	if c.mode != Linear && c.mode != Quadratic {
		return fmt.Errorf("mode %d: %w", c.mode, ErrInvalidOption)
	}
	if bad(c.relaxation) || c.relaxation > MaxRelaxation {
		return fmt.Errorf("relaxation strength %g outside (0, %g]: %w", c.relaxation, MaxRelaxation, ErrInvalidOption)
	}
	if bad(c.parsimony) || c.parsimony > MaxParsimony {
		return fmt.Errorf("parsimony strength %g outside [0, %g]: %w", c.parsimony, MaxParsimony, ErrInvalidOption)
	}
	if c.norm != L1 && c.norm != L2 {
		return fmt.Errorf("parsimony norm %d: %w", c.norm, ErrInvalidOption)
	}
	if c.relaxation > 0 && c.mode == Linear {
		return fmt.Errorf("relaxation needs quadratic mode: %w", ErrIncompatibleOptions)
	}
	if c.relaxation > 0 && c.gapTolerant {
		return fmt.Errorf("relaxation together with gap tolerance: %w", ErrIncompatibleOptions)
	}
	if c.relaxation > 0 && c.parsimony >= c.relaxation {
		return fmt.Errorf("parsimony %g must stay below relaxation %g: %w", c.parsimony, c.relaxation, ErrIncompatibleOptions)
	}
	if c.objective != nil {
		if c.mode == Quadratic {
			return fmt.Errorf("objective in quadratic mode: %w", ErrIncompatibleOptions)
		}
		if c.objective.Sense != Maximize && c.objective.Sense != Minimize {
			return fmt.Errorf("objective sense %d: %w", c.objective.Sense, ErrInvalidOption)
		}
		if len(c.objective.Terms) == 0 {
			return fmt.Errorf("objective without terms: %w", ErrInvalidOption)
		}
		for _, t := range c.objective.Terms {
			if t.Reaction == "" || math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) || t.Weight == 0 {
				return fmt.Errorf("objective term %q weight %g: %w", t.Reaction, t.Weight, ErrInvalidOption)
			}
		}
	}
	if c.simsSet && c.simulations < 1 {
		return fmt.Errorf("simulations %d < 1: %w", c.simulations, ErrInvalidOption)
	}
	if c.concurrency < 1 {
		return fmt.Errorf("concurrency %d < 1: %w", c.concurrency, ErrInvalidOption)
	}
	if bad(c.thresholdK) {
		return fmt.Errorf("threshold k %g: %w", c.thresholdK, ErrInvalidOption)
	}
	if bad(c.tolerance) || c.tolerance == 0 {
		return fmt.Errorf("tolerance %g: %w", c.tolerance, ErrInvalidOption)
	}

	return nil
}

// bad reports NaN, infinite or negative values.
func bad(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) || v < 0 }
