// SPDX-License-Identifier: MIT

package twin

import (
	"fmt"

	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
)

// Flatten merges every (Network, Context) pair into one network and one
// context whose ids are prefixed with the source network id.
//
// Stage 1 (Validate): Validate the twin.
// Stage 2 (Execute): copy compartments, compounds, reactions and entries in
// network insertion order, rewriting every id and reference, gene ids in
// gene rules included.
//
// The result is deterministic and does not alias the twin's state.
func (t *Twin) Flatten() (*network.Network, *measurement.Context, error) {
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}
	names, _ := t.conditions()

	flat := network.New(t.ID)
	flat.Name = t.ID
	ctx := measurement.New(t.ID, names...)
	for _, nid := range t.order {
		if err := flattenNetwork(flat, t.networks[nid]); err != nil {
			return nil, nil, fmt.Errorf("Twin(%s).Flatten: %w", t.ID, err)
		}
		c, ok := t.contexts[nid]
		if !ok {
			continue
		}
		for _, e := range c.Entries() {
			e.ID = FlatID(nid, e.ID)
			for k := range e.Variables {
				e.Variables[k].Ref = FlatID(nid, e.Variables[k].Ref)
			}
			if err := ctx.Add(e); err != nil {
				return nil, nil, fmt.Errorf("Twin(%s).Flatten: %w", t.ID, err)
			}
		}
	}

	return flat, ctx, nil
}

func flattenNetwork(dst, src *network.Network) error {
	nid := src.ID
	for _, c := range src.Compartments() {
		c.ID = FlatID(nid, c.ID)
		if err := dst.AddCompartment(c); err != nil {
			return err
		}
	}
	for _, c := range src.Compounds() {
		c.ID = FlatID(nid, c.ID)
		c.Compartment = FlatID(nid, c.Compartment)
		if err := dst.AddCompound(*c); err != nil {
			return err
		}
	}
	for _, r := range src.Reactions() {
		fr, err := network.NewReaction(FlatID(nid, r.ID), r.Direction)
		if err != nil {
			return err
		}
		fr.Name = r.Name
		if r.GeneRule != nil {
			fr.GeneRule = r.GeneRule.Rename(func(g string) string { return FlatID(nid, g) })
		}
		for _, term := range r.Terms() {
			if term.Coefficient < 0 {
				err = fr.AddSubstrate(FlatID(nid, term.Compound), -term.Coefficient)
			} else {
				err = fr.AddProduct(FlatID(nid, term.Compound), term.Coefficient)
			}
			if err != nil {
				return err
			}
		}
		fr.Lower, fr.Upper = r.Lower, r.Upper
		if err = dst.AddReaction(fr); err != nil {
			return err
		}
	}

	return nil
}
