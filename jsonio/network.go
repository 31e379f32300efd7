// SPDX-License-Identifier: MIT

package jsonio

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/metatwin/network"
)

// NetworkDoc is the JSON form of a network.
type NetworkDoc struct {
	ID           string           `json:"id"`
	Name         string           `json:"name,omitempty"`
	Compartments []CompartmentDoc `json:"compartments"`
	Compounds    []CompoundDoc    `json:"compounds"`
	Reactions    []ReactionDoc    `json:"reactions"`
}

// CompartmentDoc is the JSON form of a compartment.
type CompartmentDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Ontology string `json:"ontology,omitempty"`
	Steady   bool   `json:"steady"`
}

// CompoundDoc is the JSON form of a compound.
type CompoundDoc struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Compartment string    `json:"compartment"`
	Formula     string    `json:"formula,omitempty"`
	Charge      *int      `json:"charge,omitempty"`
	XRefs       []XRefDoc `json:"xrefs,omitempty"`
}

// XRefDoc is one external database reference.
type XRefDoc struct {
	DB string `json:"db"`
	ID string `json:"id"`
}

// ReactionDoc is the JSON form of a reaction. Stoichiometry maps compound
// ids to signed coefficients; substrates are applied before products, each
// in key order. Zero coefficients are skipped on import.
type ReactionDoc struct {
	ID            string             `json:"id"`
	Name          string             `json:"name,omitempty"`
	Direction     string             `json:"direction"`
	Lower         *float64           `json:"lower"`
	Upper         *float64           `json:"upper"`
	GeneRule      string             `json:"gene_rule,omitempty"`
	Stoichiometry map[string]float64 `json:"stoichiometry"`
}

// NetworkToDoc converts n into its document form.
func NetworkToDoc(n *network.Network) NetworkDoc {
	doc := NetworkDoc{ID: n.ID, Name: n.Name}
	for _, c := range n.Compartments() {
		doc.Compartments = append(doc.Compartments, CompartmentDoc{
			ID: c.ID, Name: c.Name, Ontology: c.Ontology, Steady: c.IsSteady,
		})
	}
	for _, c := range n.Compounds() {
		cd := CompoundDoc{
			ID: c.ID, Name: c.Name, Compartment: c.Compartment, Formula: c.Formula, Charge: c.Charge,
		}
		for _, x := range c.XRefs {
			cd.XRefs = append(cd.XRefs, XRefDoc{DB: x.DB, ID: x.ID})
		}
		doc.Compounds = append(doc.Compounds, cd)
	}
	for _, r := range n.Reactions() {
		rd := ReactionDoc{
			ID:            r.ID,
			Name:          r.Name,
			Direction:     r.Direction.String(),
			Lower:         lowerPtr(r.Lower),
			Upper:         upperPtr(r.Upper),
			Stoichiometry: make(map[string]float64),
		}
		if r.GeneRule != nil {
			rd.GeneRule = r.GeneRule.String()
		}
		for _, t := range r.Terms() {
			rd.Stoichiometry[t.Compound] = t.Coefficient
		}
		doc.Reactions = append(doc.Reactions, rd)
	}

	return doc
}

// NetworkFromDoc builds and validates a network from doc.
func NetworkFromDoc(doc NetworkDoc) (*network.Network, error) {
	n := network.New(doc.ID)
	n.Name = doc.Name
	for _, c := range doc.Compartments {
		if err := n.AddCompartment(network.Compartment{
			ID: c.ID, Name: c.Name, Ontology: c.Ontology, IsSteady: c.Steady,
		}); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Compounds {
		cp := network.Compound{
			ID: c.ID, Name: c.Name, Compartment: c.Compartment, Formula: c.Formula, Charge: c.Charge,
		}
		for _, x := range c.XRefs {
			cp.XRefs = append(cp.XRefs, network.XRef{DB: x.DB, ID: x.ID})
		}
		if err := n.AddCompound(cp); err != nil {
			return nil, err
		}
	}
	for _, rd := range doc.Reactions {
		r, err := reactionFromDoc(rd)
		if err != nil {
			return nil, err
		}
		if err = n.AddReaction(r); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func reactionFromDoc(rd ReactionDoc) (*network.Reaction, error) {
	dir, err := network.ParseDirection(rd.Direction)
	if err != nil {
		return nil, fmt.Errorf("reaction %s: %w", rd.ID, err)
	}
	r, err := network.NewReaction(rd.ID, dir)
	if err != nil {
		return nil, err
	}
	r.Name = rd.Name

	ids := make([]string, 0, len(rd.Stoichiometry))
	for cid := range rd.Stoichiometry {
		ids = append(ids, cid)
	}
	sort.Strings(ids)
	for _, substrates := range []bool{true, false} {
		for _, cid := range ids {
			c := rd.Stoichiometry[cid]
			switch {
			case substrates && c < 0:
				err = r.AddSubstrate(cid, -c)
			case !substrates && c > 0:
				err = r.AddProduct(cid, c)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	lo, hi := r.Lower, r.Upper
	if rd.Lower != nil {
		lo = *rd.Lower
	}
	if rd.Upper != nil {
		hi = *rd.Upper
	}
	if err = r.SetBounds(lo, hi); err != nil {
		return nil, err
	}
	if err = r.SetGeneRule(rd.GeneRule); err != nil {
		return nil, err
	}

	return r, nil
}

// lowerPtr maps −Inf to nil.
func lowerPtr(v float64) *float64 {
	if math.IsInf(v, -1) {
		return nil
	}

	return &v
}

// upperPtr maps +Inf to nil.
func upperPtr(v float64) *float64 {
	if math.IsInf(v, 1) {
		return nil
	}

	return &v
}

// valuePtr maps NaN and ±Inf to nil.
func valuePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

func orInf(p *float64, sign int) float64 {
	if p == nil {
		return math.Inf(sign)
	}

	return *p
}
