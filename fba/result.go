// SPDX-License-Identifier: MIT

package fba

import (
	"math"

	"github.com/katalvlaran/metatwin/matrix"
	"github.com/katalvlaran/metatwin/numeric"
)

// SimulationResult is the outcome of one simulation. Flux, Demand,
// Residual and Zero are nil unless Status is optimal.
type SimulationResult struct {
	Condition string
	Status    numeric.Status
	Objective float64   // NaN unless optimal
	Flux      []float64 // per Result.ReactionIDs
	Demand    []float64 // per Result.DemandIDs
	Residual  []float64 // sv per Result.CompoundIDs
	Threshold float64
	Zero      []bool // |flux| < Threshold
	Message   string
}

// Result holds one SimulationResult per condition, in condition order.
type Result struct {
	Mode        Mode
	ReactionIDs []string
	CompoundIDs []string // steady compounds, rows of the residual table
	DemandIDs   []string
	Conditions  []string
	Simulations []SimulationResult

	col map[string]int
}

func newResult(mode Mode, sys *System) *Result {
	return &Result{
		Mode:        mode,
		ReactionIDs: sys.ReactionIDs,
		CompoundIDs: sys.SteadyIDs,
		DemandIDs:   sys.DemandIDs,
		Conditions:  sys.Conditions,
		Simulations: make([]SimulationResult, len(sys.Conditions)),
		col:         sys.reactionCol,
	}
}

// Flux returns the flux of rid in simulation sim; ok is false for an
// unknown reaction, simulation, or a non-optimal simulation.
func (r *Result) Flux(rid string, sim int) (float64, bool) {
	j, ok := r.col[rid]
	if !ok || sim < 0 || sim >= len(r.Simulations) || r.Simulations[sim].Flux == nil {
		return 0, false
	}

	return r.Simulations[sim].Flux[j], true
}

// Statuses returns the status of every simulation.
func (r *Result) Statuses() []numeric.Status {
	out := make([]numeric.Status, len(r.Simulations))
	for i, s := range r.Simulations {
		out[i] = s.Status
	}

	return out
}

// FluxTable returns fluxes as [reaction][simulation]; NaN marks
// simulations without an optimum.
func (r *Result) FluxTable() [][]float64 {
	return table(len(r.ReactionIDs), r.Simulations, func(s SimulationResult) []float64 { return s.Flux })
}

// ResidualTable returns residuals as [compound][simulation].
func (r *Result) ResidualTable() [][]float64 {
	return table(len(r.CompoundIDs), r.Simulations, func(s SimulationResult) []float64 { return s.Residual })
}

func table(rows int, sims []SimulationResult, pick func(SimulationResult) []float64) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, len(sims))
		for k, s := range sims {
			if v := pick(s); v != nil {
				out[i][k] = v[i]
			} else {
				out[i][k] = math.NaN()
			}
		}
	}

	return out
}

// Threshold returns mean(|sv|) + k·std(|sv|), never below floor.
func Threshold(residual []float64, k, floor float64) float64 {
	mean, std, err := matrix.AbsMeanStd(residual)
	if err != nil {
		return floor
	}

	return math.Max(mean+k*std, floor)
}
