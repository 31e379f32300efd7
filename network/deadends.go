// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
)

// SinkPrefix names the synthetic sink reaction of a compound.
const SinkPrefix = "sink_"

// DeadEnds lists steady compounds that can only be produced or only be
// consumed, given reaction directions and current bounds. Reactions fixed
// at [0,0] are ignored. Order follows compound insertion order.
//
// Complexity: O(Σ|terms|).
func (n *Network) DeadEnds() ([]string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if err := n.validateLocked(); err != nil {
		return nil, err
	}
	canProduce := make(map[string]bool)
	canConsume := make(map[string]bool)
	for _, rid := range n.reactionOrder {
		r := n.reactions[rid]
		for _, t := range r.terms {
			// forward flux moves the coefficient's sign, backward flux flips it
			if r.Upper > 0 {
				if t.Coefficient > 0 {
					canProduce[t.Compound] = true
				} else {
					canConsume[t.Compound] = true
				}
			}
			if r.Lower < 0 {
				if t.Coefficient > 0 {
					canConsume[t.Compound] = true
				} else {
					canProduce[t.Compound] = true
				}
			}
		}
	}
	var out []string
	for _, cid := range n.compoundOrder {
		if !n.compartments[n.compounds[cid].Compartment].IsSteady {
			continue
		}
		if canProduce[cid] != canConsume[cid] {
			out = append(out, cid)
		}
	}

	return out, nil
}

// WithSinks returns a clone of n with one reversible sink reaction
// "sink_<cid>" (cid -> nothing) per listed compound. The receiver is not
// modified. Compounds that already have a sink are skipped.
func (n *Network) WithSinks(compoundIDs []string) (*Network, error) {
	cp := n.Clone()
	for _, cid := range compoundIDs {
		if !cp.HasCompound(cid) {
			return nil, fmt.Errorf("WithSinks(%s): %w", cid, ErrUnknownCompound)
		}
		id := SinkPrefix + cid
		if cp.HasReaction(id) {
			continue
		}
		r, err := NewReaction(id, Reversible)
		if err != nil {
			return nil, err
		}
		r.Name = "sink for " + cid
		if err = r.AddSubstrate(cid, 1); err != nil {
			return nil, err
		}
		if err = cp.AddReaction(r); err != nil {
			return nil, err
		}
	}

	return cp, nil
}

// DisabledByGenes returns, in reaction order, the reactions whose gene rule
// evaluates to false once every gene in genes is knocked out. Genes that
// no rule mentions yield ErrUnknownGene.
func (n *Network) DisabledByGenes(genes []string) ([]string, error) {
	known := make(map[string]bool)
	for _, g := range n.Genes() {
		known[g] = true
	}
	knocked := make(map[string]bool, len(genes))
	for _, g := range genes {
		if !known[g] {
			return nil, fmt.Errorf("DisabledByGenes(%s): %w", g, ErrUnknownGene)
		}
		knocked[g] = true
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []string
	for _, rid := range n.reactionOrder {
		gr := n.reactions[rid].GeneRule
		if gr != nil && !gr.Active(knocked) {
			out = append(out, rid)
		}
	}

	return out, nil
}
