// SPDX-License-Identifier: MIT

package jsonio

import (
	"github.com/katalvlaran/metatwin/fba"
	"github.com/katalvlaran/metatwin/fva"
	"github.com/katalvlaran/metatwin/knockout"
)

// FluxResultDoc is the JSON form of an fba.Result.
type FluxResultDoc struct {
	Mode        string          `json:"mode"`
	Reactions   []string        `json:"reactions"`
	Compounds   []string        `json:"compounds"`
	Demands     []string        `json:"demands,omitempty"`
	Simulations []SimulationDoc `json:"simulations"`
}

// SimulationDoc is one simulation of a flux result.
type SimulationDoc struct {
	Condition string     `json:"condition"`
	Status    string     `json:"status"`
	Objective *float64   `json:"objective"`
	Flux      []*float64 `json:"flux,omitempty"`
	Demand    []*float64 `json:"demand,omitempty"`
	Residual  []*float64 `json:"residual,omitempty"`
	Threshold float64    `json:"threshold,omitempty"`
	Zero      []bool     `json:"zero,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// FluxResultToDoc converts r.
func FluxResultToDoc(r *fba.Result) FluxResultDoc {
	doc := FluxResultDoc{
		Mode:        r.Mode.String(),
		Reactions:   r.ReactionIDs,
		Compounds:   r.CompoundIDs,
		Demands:     r.DemandIDs,
		Simulations: make([]SimulationDoc, len(r.Simulations)),
	}
	for i, s := range r.Simulations {
		doc.Simulations[i] = simulationToDoc(s)
	}

	return doc
}

func simulationToDoc(s fba.SimulationResult) SimulationDoc {
	return SimulationDoc{
		Condition: s.Condition,
		Status:    s.Status.String(),
		Objective: valuePtr(s.Objective),
		Flux:      values(s.Flux),
		Demand:    values(s.Demand),
		Residual:  values(s.Residual),
		Threshold: s.Threshold,
		Zero:      s.Zero,
		Message:   s.Message,
	}
}

func values(v []float64) []*float64 {
	if v == nil {
		return nil
	}
	out := make([]*float64, len(v))
	for i, x := range v {
		out[i] = valuePtr(x)
	}

	return out
}

// VariabilityDoc is the JSON form of an fva.Result.
type VariabilityDoc struct {
	Reactions   []string                   `json:"reactions"`
	Simulations []VariabilitySimulationDoc `json:"simulations"`
}

// VariabilitySimulationDoc is one simulation of a variability result.
type VariabilitySimulationDoc struct {
	Base   SimulationDoc `json:"base"`
	Ranges []RangeDoc    `json:"ranges"`
}

// RangeDoc is one reaction interval.
type RangeDoc struct {
	Min       *float64 `json:"min"`
	Max       *float64 `json:"max"`
	MinStatus string   `json:"min_status"`
	MaxStatus string   `json:"max_status"`
}

// VariabilityToDoc converts r.
func VariabilityToDoc(r *fva.Result) VariabilityDoc {
	doc := VariabilityDoc{Reactions: r.ReactionIDs, Simulations: make([]VariabilitySimulationDoc, len(r.Simulations))}
	for i, s := range r.Simulations {
		sd := VariabilitySimulationDoc{Base: simulationToDoc(s.Base), Ranges: make([]RangeDoc, len(s.Ranges))}
		for k, rg := range s.Ranges {
			sd.Ranges[k] = RangeDoc{
				Min: valuePtr(rg.Min), Max: valuePtr(rg.Max),
				MinStatus: rg.MinStatus.String(), MaxStatus: rg.MaxStatus.String(),
			}
		}
		doc.Simulations[i] = sd
	}

	return doc
}

// KnockoutDoc is the JSON form of a knockout.Result.
type KnockoutDoc struct {
	Baseline *FluxResultDoc     `json:"baseline,omitempty"`
	Entries  []KnockoutEntryDoc `json:"entries"`
}

// KnockoutEntryDoc is one knockout.
type KnockoutEntryDoc struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Targets  []string       `json:"targets"`
	Disabled []string       `json:"disabled,omitempty"`
	Error    string         `json:"error,omitempty"`
	Result   *FluxResultDoc `json:"result,omitempty"`
}

// KnockoutToDoc converts r.
func KnockoutToDoc(r *knockout.Result) KnockoutDoc {
	doc := KnockoutDoc{Entries: make([]KnockoutEntryDoc, len(r.Entries))}
	if r.Baseline != nil {
		b := FluxResultToDoc(r.Baseline)
		doc.Baseline = &b
	}
	for k, e := range r.Entries {
		ed := KnockoutEntryDoc{
			ID: e.Spec.ID, Kind: e.Spec.Kind.String(), Targets: e.Spec.Targets, Disabled: e.Disabled,
		}
		if e.Err != nil {
			ed.Error = e.Err.Error()
		}
		if e.Result != nil {
			fr := FluxResultToDoc(e.Result)
			ed.Result = &fr
		}
		doc.Entries[k] = ed
	}

	return doc
}
