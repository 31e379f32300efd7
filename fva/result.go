// SPDX-License-Identifier: MIT

package fva

import (
	"math"

	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/numeric"
)

// Range is the feasible flux interval of one reaction. Min or Max is NaN
// when its status is not optimal.
type Range struct {
	Min       float64
	Max       float64
	MinStatus numeric.Status
	MaxStatus numeric.Status
}

// OK reports whether both bounds are optimal.
func (r Range) OK() bool {
	return r.MinStatus == numeric.StatusOptimal && r.MaxStatus == numeric.StatusOptimal
}

// SimulationResult pairs the base optimum of a simulation with one Range
// per Result.ReactionIDs.
type SimulationResult struct {
	Base   fba.SimulationResult
	Ranges []Range
}

// Result is the variability of every simulation, in condition order.
type Result struct {
	ReactionIDs []string
	Conditions  []string
	Base        *fba.Result
	Simulations []SimulationResult

	index map[string]int
}

func newResult(reactionIDs []string, base *fba.Result) *Result {
	r := &Result{
		ReactionIDs: reactionIDs,
		Conditions:  base.Conditions,
		Base:        base,
		Simulations: make([]SimulationResult, len(base.Simulations)),
		index:       make(map[string]int, len(reactionIDs)),
	}
	for k, rid := range reactionIDs {
		r.index[rid] = k
	}
	for i := range r.Simulations {
		r.Simulations[i] = SimulationResult{Base: base.Simulations[i], Ranges: make([]Range, len(reactionIDs))}
	}

	return r
}

// Range returns the interval of rid in simulation sim.
func (r *Result) Range(rid string, sim int) (Range, bool) {
	k, ok := r.index[rid]
	if !ok || sim < 0 || sim >= len(r.Simulations) {
		return Range{}, false
	}

	return r.Simulations[sim].Ranges[k], true
}

func failed(st numeric.Status) Range {
	return Range{Min: math.NaN(), Max: math.NaN(), MinStatus: st, MaxStatus: st}
}
