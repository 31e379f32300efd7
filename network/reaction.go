// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// DefaultFluxBound caps infinite flux bounds. Reversible reactions default
// to [-DefaultFluxBound, DefaultFluxBound].
const DefaultFluxBound = 1000.0

// Direction of a reaction.
type Direction int

const (
	// Forward reactions carry non-negative flux.
	Forward Direction = iota
	// Reverse reactions carry non-positive flux.
	Reverse
	// Reversible reactions carry flux of either sign.
	Reversible
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case Reversible:
		return "reversible"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts "forward", "reverse" or "reversible"
// (case-insensitive; "->", "<-", "<->" accepted) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "->", "":
		return Forward, nil
	case "reverse", "<-":
		return Reverse, nil
	case "reversible", "<->", "<=>":
		return Reversible, nil
	default:
		return 0, fmt.Errorf("ParseDirection(%q): %w", s, ErrInvalidDirection)
	}
}

// DefaultBounds returns the flux bounds implied by a direction.
func DefaultBounds(d Direction) (lower, upper float64) {
	switch d {
	case Reverse:
		return -DefaultFluxBound, 0
	case Reversible:
		return -DefaultFluxBound, DefaultFluxBound
	default:
		return 0, DefaultFluxBound
	}
}

// Term is one stoichiometric entry: negative = substrate, positive = product.
type Term struct {
	Compound    string
	Coefficient float64
}

// Reaction converts substrates into products at a signed flux.
type Reaction struct {
	ID        string
	Name      string
	Direction Direction
	Lower     float64
	Upper     float64
	GeneRule  *GeneRule // nil when the reaction has no gene association

	terms []Term // insertion order, no zero coefficients
}

// NewReaction creates a reaction with bounds defaulted from the direction.
func NewReaction(id string, d Direction) (*Reaction, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("NewReaction: %w", ErrEmptyID)
	}
	if d < Forward || d > Reversible {
		return nil, fmt.Errorf("NewReaction(%s): %w", id, ErrInvalidDirection)
	}
	lo, hi := DefaultBounds(d)

	return &Reaction{ID: id, Direction: d, Lower: lo, Upper: hi}, nil
}

// AddSubstrate adds compound cid consumed with the given positive amount.
func (r *Reaction) AddSubstrate(cid string, amount float64) error {
	return r.addTerm(cid, -amount, "AddSubstrate")
}

// AddProduct adds compound cid produced with the given positive amount.
func (r *Reaction) AddProduct(cid string, amount float64) error {
	return r.addTerm(cid, amount, "AddProduct")
}

// addTerm stores a signed coefficient. The same compound on the same side
// is rejected; on the opposite side the coefficients are netted and the
// term disappears when it nets to zero.
func (r *Reaction) addTerm(cid string, coef float64, op string) error {
	if strings.TrimSpace(cid) == "" {
		return fmt.Errorf("Reaction(%s).%s: %w", r.ID, op, ErrEmptyID)
	}
	if coef == 0 || math.IsNaN(coef) || math.IsInf(coef, 0) || (op == "AddSubstrate") != (coef < 0) {
		return fmt.Errorf("Reaction(%s).%s(%s, %g): %w", r.ID, op, cid, math.Abs(coef), ErrInvalidCoefficient)
	}
	for i, t := range r.terms {
		if t.Compound != cid {
			continue
		}
		if (t.Coefficient < 0) == (coef < 0) {
			return fmt.Errorf("Reaction(%s).%s(%s): %w", r.ID, op, cid, ErrDuplicateCompound)
		}
		net := t.Coefficient + coef
		if net == 0 {
			r.terms = slices.Delete(r.terms, i, i+1)
		} else {
			r.terms[i].Coefficient = net
		}

		return nil
	}
	r.terms = append(r.terms, Term{Compound: cid, Coefficient: coef})

	return nil
}

// SetBounds replaces the flux bounds. Infinite values are capped at
// ±DefaultFluxBound; the bounds must be ordered and compatible with the
// direction (forward: lower >= 0, reverse: upper <= 0).
func (r *Reaction) SetBounds(lower, upper float64) error {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return fmt.Errorf("Reaction(%s).SetBounds: NaN: %w", r.ID, ErrInvalidBounds)
	}
	lower = math.Max(lower, -DefaultFluxBound)
	upper = math.Min(upper, DefaultFluxBound)
	if lower > upper {
		return fmt.Errorf("Reaction(%s).SetBounds(%g, %g): %w", r.ID, lower, upper, ErrInvalidBounds)
	}
	if (r.Direction == Forward && lower < 0) || (r.Direction == Reverse && upper > 0) {
		return fmt.Errorf("Reaction(%s).SetBounds(%g, %g) for %s: %w", r.ID, lower, upper, r.Direction, ErrInvalidBounds)
	}
	r.Lower, r.Upper = lower, upper

	return nil
}

// SetGeneRule parses and attaches a gene-reaction rule. An empty rule
// removes the association.
func (r *Reaction) SetGeneRule(rule string) error {
	if strings.TrimSpace(rule) == "" {
		r.GeneRule = nil
		return nil
	}
	gr, err := ParseGeneRule(rule)
	if err != nil {
		return fmt.Errorf("Reaction(%s).SetGeneRule: %w", r.ID, err)
	}
	r.GeneRule = gr

	return nil
}

// Terms returns a copy of the stoichiometric terms in insertion order.
func (r *Reaction) Terms() []Term {
	return slices.Clone(r.terms)
}

// Coefficient returns the coefficient of cid, or 0 when absent.
func (r *Reaction) Coefficient(cid string) float64 {
	for _, t := range r.terms {
		if t.Compound == cid {
			return t.Coefficient
		}
	}

	return 0
}

// Compounds returns the ids of all compounds touched by the reaction.
func (r *Reaction) Compounds() []string {
	out := make([]string, len(r.terms))
	for i, t := range r.terms {
		out[i] = t.Compound
	}

	return out
}

// Clone returns a deep copy of r.
func (r *Reaction) Clone() *Reaction {
	cp := *r
	cp.terms = slices.Clone(r.terms)

	return &cp // GeneRule is immutable after parsing and may be shared
}
