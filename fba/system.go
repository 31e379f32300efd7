// SPDX-License-Identifier: MIT

package fba

import (
	"fmt"

	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/twin"
)

// DemandPrefix names the synthetic demand column of a compound reference.
const DemandPrefix = "demand:"

// System is a validated (Network, Context) pair with its derived matrices
// and column layout. It is read-only once prepared and shared by every
// simulation, variability bound and knockout.
type System struct {
	Network     *network.Network
	Context     *measurement.Context
	Conditions  []string
	ReactionIDs []string // flux columns, network order
	SteadyIDs   []string // rows of S_int
	DemandIDs   []string // compounds referenced by the context, first-use order
	Sinks       []string // sink reactions added by gap tolerance

	steady      *network.Stoichiometry
	full        *network.Stoichiometry
	reactionCol map[string]int
	demandIdx   map[string]int
	steadyIdx   map[string]int
	lower       []float64
	upper       []float64
	fitted      bool // some entry has confidence > 0 in some simulation
}

// NumSimulations returns the number of simulations.
func (s *System) NumSimulations() int { return len(s.Conditions) }

// ReactionIndex returns the flux column of a reaction.
func (s *System) ReactionIndex(rid string) (int, bool) {
	j, ok := s.reactionCol[rid]

	return j, ok
}

// Bounds returns the network bounds of reaction column j.
func (s *System) Bounds(j int) (lower, upper float64) { return s.lower[j], s.upper[j] }

// Prepare validates net and data against the solver configuration and
// derives everything the per-simulation models need. data may be nil.
//
// Stage 1 (Validate): network and context invariants, variable references,
// simulation count, objective references, quadratic fit terms.
// Stage 2 (Execute): optional sink overlay on a private copy, stoichiometry,
// column maps.
func (s *Solver) Prepare(net *network.Network, data *measurement.Context) (*System, error) {
	if net == nil {
		return nil, fmt.Errorf("Prepare: %w", ErrNilInput)
	}
	if data == nil {
		data = measurement.New(net.ID)
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	sys := &System{Network: net, Context: data}
	if s.cfg.gapTolerant {
		dead, err := net.DeadEnds()
		if err != nil {
			return nil, err
		}
		if sys.Network, err = net.WithSinks(dead); err != nil {
			return nil, err
		}
		for _, cid := range dead {
			sys.Sinks = append(sys.Sinks, network.SinkPrefix+cid)
		}
	}
	net = sys.Network

	n := data.NumSimulations()
	switch {
	case data.Len() == 0 && len(data.Conditions) == 0 && s.cfg.simsSet:
		n = s.cfg.simulations
	case s.cfg.simsSet && s.cfg.simulations != n:
		return nil, fmt.Errorf("%d simulations requested, context %s has %d: %w",
			s.cfg.simulations, data.ID, n, ErrSimulationCount)
	}
	sys.Conditions = data.ConditionNames()
	if len(sys.Conditions) != n {
		sys.Conditions = make([]string, n)
		for i := range sys.Conditions {
			sys.Conditions[i] = fmt.Sprintf("sim_%d", i)
		}
	}

	var err error
	if sys.full, err = net.StoichiometricMatrix(); err != nil {
		return nil, err
	}
	if sys.steady, err = net.SteadyStoichiometricMatrix(); err != nil {
		return nil, err
	}
	sys.ReactionIDs = sys.full.ReactionIDs
	sys.SteadyIDs = sys.steady.CompoundIDs
	sys.reactionCol = make(map[string]int, len(sys.ReactionIDs))
	sys.lower = make([]float64, len(sys.ReactionIDs))
	sys.upper = make([]float64, len(sys.ReactionIDs))
	for j, rid := range sys.ReactionIDs {
		sys.reactionCol[rid] = j
		r, _ := net.Reaction(rid)
		sys.lower[j], sys.upper[j] = r.Lower, r.Upper
	}
	sys.steadyIdx = make(map[string]int, len(sys.SteadyIDs))
	for k, cid := range sys.SteadyIDs {
		sys.steadyIdx[cid] = k
	}

	sys.demandIdx = make(map[string]int)
	for _, e := range data.Entries() {
		for _, ref := range e.Refs() {
			if _, ok := sys.reactionCol[ref]; ok {
				continue
			}
			if !net.HasCompound(ref) {
				return nil, fmt.Errorf("entry %s: %q: %w", e.ID, ref, twin.ErrUnknownReference)
			}
			if _, ok := sys.demandIdx[ref]; !ok {
				sys.demandIdx[ref] = len(sys.DemandIDs)
				sys.DemandIDs = append(sys.DemandIDs, ref)
			}
		}
		for _, c := range e.Confidence {
			if c > 0 {
				sys.fitted = true
			}
		}
	}

	if o := s.cfg.objective; o != nil {
		for _, t := range o.Terms {
			if _, ok := sys.reactionCol[t.Reaction]; !ok {
				return nil, fmt.Errorf("objective %q: %w", t.Reaction, ErrUnknownObjective)
			}
		}
	}
	if s.cfg.mode == Quadratic && !sys.fitted && s.cfg.parsimony == 0 {
		return nil, fmt.Errorf("no entry with confidence > 0 and no parsimony: %w", ErrNothingToFit)
	}

	return sys, nil
}
