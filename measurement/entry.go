// SPDX-License-Identifier: MIT

package measurement

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Variable is one term of an entry's linear combination. Ref names a
// reaction (its flux) or a compound (its net consumption).
type Variable struct {
	Ref         string
	Coefficient float64
}

// Bound is the view of one entry for one simulation.
type Bound struct {
	Lower      float64
	Upper      float64
	Target     float64
	Confidence float64
}

// Pinned reports whether the bound is fully trusted (confidence 1).
func (b Bound) Pinned() bool { return b.Confidence >= 1 }

// Entry constrains Σ coefficient·variable, per simulation, to
// [Lower[i], Upper[i]] and fits it to Target[i] with weight Confidence[i].
type Entry struct {
	ID         string
	Variables  []Variable
	Lower      []float64
	Upper      []float64
	Target     []float64
	Confidence []float64
}

// NewEntry validates and returns an entry. The slices are copied.
//
// Errors: ErrEmptyID, ErrNoVariables, ErrDuplicateVariable,
// ErrInvalidCoefficient, ErrVectorLength, ErrInvalidBounds,
// ErrInvalidTarget, ErrInvalidConfidence.
func NewEntry(id string, vars []Variable, lower, upper, target, confidence []float64) (*Entry, error) {
	e := &Entry{
		ID:         id,
		Variables:  slices.Clone(vars),
		Lower:      slices.Clone(lower),
		Upper:      slices.Clone(upper),
		Target:     slices.Clone(target),
		Confidence: slices.Clone(confidence),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Single builds a one-variable (coefficient 1), one-simulation entry.
func Single(id, ref string, lower, upper, target, confidence float64) (*Entry, error) {
	return NewEntry(id, []Variable{{Ref: ref, Coefficient: 1}},
		[]float64{lower}, []float64{upper}, []float64{target}, []float64{confidence})
}

// Validate checks the entry invariants.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("Entry: %w", ErrEmptyID)
	}
	if len(e.Variables) == 0 {
		return fmt.Errorf("Entry(%s): %w", e.ID, ErrNoVariables)
	}
	seen := make(map[string]bool, len(e.Variables))
	for _, v := range e.Variables {
		if strings.TrimSpace(v.Ref) == "" {
			return fmt.Errorf("Entry(%s): variable: %w", e.ID, ErrEmptyID)
		}
		if seen[v.Ref] {
			return fmt.Errorf("Entry(%s): %s: %w", e.ID, v.Ref, ErrDuplicateVariable)
		}
		seen[v.Ref] = true
		if v.Coefficient == 0 || math.IsNaN(v.Coefficient) || math.IsInf(v.Coefficient, 0) {
			return fmt.Errorf("Entry(%s): %s: %g: %w", e.ID, v.Ref, v.Coefficient, ErrInvalidCoefficient)
		}
	}
	n := len(e.Lower)
	if n == 0 || len(e.Upper) != n || len(e.Target) != n || len(e.Confidence) != n {
		return fmt.Errorf("Entry(%s): lower=%d upper=%d target=%d confidence=%d: %w",
			e.ID, len(e.Lower), len(e.Upper), len(e.Target), len(e.Confidence), ErrVectorLength)
	}
	for i := 0; i < n; i++ {
		lo, hi := e.Lower[i], e.Upper[i]
		if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
			return fmt.Errorf("Entry(%s)[%d]: [%g, %g]: %w", e.ID, i, lo, hi, ErrInvalidBounds)
		}
		if t := e.Target[i]; math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("Entry(%s)[%d]: %g: %w", e.ID, i, t, ErrInvalidTarget)
		}
		if c := e.Confidence[i]; !(c >= 0 && c <= 1) {
			return fmt.Errorf("Entry(%s)[%d]: %g: %w", e.ID, i, c, ErrInvalidConfidence)
		}
	}

	return nil
}

// Len returns the number of simulations described by the entry.
func (e *Entry) Len() int { return len(e.Lower) }

// At returns the bound of simulation i.
func (e *Entry) At(i int) (Bound, error) {
	if i < 0 || i >= e.Len() {
		return Bound{}, fmt.Errorf("Entry(%s).At(%d) of %d: %w", e.ID, i, e.Len(), ErrSimulationIndex)
	}

	return Bound{Lower: e.Lower[i], Upper: e.Upper[i], Target: e.Target[i], Confidence: e.Confidence[i]}, nil
}

// Refs returns the referenced variable ids in order.
func (e *Entry) Refs() []string {
	out := make([]string, len(e.Variables))
	for i, v := range e.Variables {
		out[i] = v.Ref
	}

	return out
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	return &Entry{
		ID:         e.ID,
		Variables:  slices.Clone(e.Variables),
		Lower:      slices.Clone(e.Lower),
		Upper:      slices.Clone(e.Upper),
		Target:     slices.Clone(e.Target),
		Confidence: slices.Clone(e.Confidence),
	}
}

// Equal reports whether two entries carry the same id, variables and
// vectors. ±Inf compare equal to themselves.
func (e *Entry) Equal(o *Entry) bool {
	return e.ID == o.ID &&
		slices.Equal(e.Variables, o.Variables) &&
		slices.Equal(e.Lower, o.Lower) &&
		slices.Equal(e.Upper, o.Upper) &&
		slices.Equal(e.Target, o.Target) &&
		slices.Equal(e.Confidence, o.Confidence)
}
