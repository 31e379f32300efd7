// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/fva"
	"github.com/katalvlaran/metatwin/metrics"
	"github.com/katalvlaran/metatwin/numeric"
)

// Backend builds the reference numeric backend from the solver limits.
func (c *Config) Backend() *numeric.Gonum {
	return numeric.NewGonum(
		numeric.WithTimeLimit(c.Solver.TimeLimit),
		numeric.WithMaxIterations(c.Solver.MaxIterations),
	)
}

// FBAOptions translates the solver section into fba options. The result is
// not validated here; fba.New reports incompatible combinations.
func (c *Config) FBAOptions(log *slog.Logger, m *metrics.Collector) ([]fba.Option, error) {
	mode, err := fba.ParseMode(c.Solver.Mode)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	opts := []fba.Option{
		fba.WithMode(mode),
		fba.WithBackend(c.Backend()),
		fba.WithConcurrency(c.JobsNumber),
		fba.WithThresholdK(c.Solver.ThresholdK),
		fba.WithLogger(log),
		fba.WithMetrics(m),
	}

	if c.Solver.Objective != "" {
		sense, err := fba.ParseSense(c.Solver.Sense)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		o := fba.MaximizeFlux(c.Solver.Objective)
		o.Sense = sense
		opts = append(opts, fba.WithObjective(o))
	}
	if c.Solver.Relaxation > 0 {
		opts = append(opts, fba.WithRelaxation(c.Solver.Relaxation))
	}
	if c.Solver.Parsimony > 0 {
		norm := fba.L1
		if c.Solver.Norm == "l2" {
			norm = fba.L2
		}
		opts = append(opts, fba.WithParsimony(c.Solver.Parsimony, norm))
	}
	if c.Solver.GapTolerant {
		opts = append(opts, fba.WithGapTolerance())
	}

	return opts, nil
}

// FVAOptions returns the variability options of the solver section.
func (c *Config) FVAOptions() []fva.Option {
	return []fva.Option{fva.WithFraction(c.Solver.Fraction)}
}
