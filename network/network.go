// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Network is an owned, keyed collection of compartments, compounds and
// reactions. Iteration order is insertion order.
type Network struct {
	ID   string
	Name string

	mu sync.RWMutex // guards everything below

	compartments     map[string]*Compartment
	compartmentOrder []string
	compounds        map[string]*Compound
	compoundOrder    []string
	reactions        map[string]*Reaction
	reactionOrder    []string
}

// New creates an empty network.
// Complexity: O(1).
func New(id string) *Network {
	return &Network{
		ID:           id,
		compartments: make(map[string]*Compartment),
		compounds:    make(map[string]*Compound),
		reactions:    make(map[string]*Reaction),
	}
}

// AddCompartment adds a compartment.
func (n *Network) AddCompartment(c Compartment) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("AddCompartment: %w", ErrEmptyID)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.compartments[c.ID]; ok {
		return fmt.Errorf("AddCompartment(%s): %w", c.ID, ErrDuplicateCompartment)
	}
	cp := c
	n.compartments[c.ID] = &cp
	n.compartmentOrder = append(n.compartmentOrder, c.ID)

	return nil
}

// AddCompound adds a compound; its compartment must already exist.
func (n *Network) AddCompound(c Compound) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("AddCompound: %w", ErrEmptyID)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.compounds[c.ID]; ok {
		return fmt.Errorf("AddCompound(%s): %w", c.ID, ErrDuplicateCompound)
	}
	if _, ok := n.compartments[c.Compartment]; !ok {
		return fmt.Errorf("AddCompound(%s): compartment %q: %w", c.ID, c.Compartment, ErrUnknownCompartment)
	}
	n.compounds[c.ID] = c.clone()
	n.compoundOrder = append(n.compoundOrder, c.ID)

	return nil
}

// AddReaction adds a copy of r; every compound it references must exist.
func (n *Network) AddReaction(r *Reaction) error {
	if r == nil || strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("AddReaction: %w", ErrEmptyID)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.reactions[r.ID]; ok {
		return fmt.Errorf("AddReaction(%s): %w", r.ID, ErrDuplicateReaction)
	}
	for _, t := range r.terms {
		if _, ok := n.compounds[t.Compound]; !ok {
			return fmt.Errorf("AddReaction(%s): compound %q: %w", r.ID, t.Compound, ErrUnknownCompound)
		}
	}
	if r.Lower > r.Upper {
		return fmt.Errorf("AddReaction(%s): [%g, %g]: %w", r.ID, r.Lower, r.Upper, ErrInvalidBounds)
	}
	n.reactions[r.ID] = r.Clone()
	n.reactionOrder = append(n.reactionOrder, r.ID)

	return nil
}

// RemoveReaction deletes a reaction.
func (n *Network) RemoveReaction(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.reactions[id]; !ok {
		return fmt.Errorf("RemoveReaction(%s): %w", id, ErrUnknownReaction)
	}
	delete(n.reactions, id)
	n.reactionOrder = slices.DeleteFunc(n.reactionOrder, func(s string) bool { return s == id })

	return nil
}

// RemoveCompound deletes a compound. Reactions that reference it are left
// untouched and will be reported by the matrix builders.
func (n *Network) RemoveCompound(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.compounds[id]; !ok {
		return fmt.Errorf("RemoveCompound(%s): %w", id, ErrUnknownCompound)
	}
	delete(n.compounds, id)
	n.compoundOrder = slices.DeleteFunc(n.compoundOrder, func(s string) bool { return s == id })

	return nil
}

// RemoveCompartment deletes a compartment without cascading to its compounds.
func (n *Network) RemoveCompartment(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.compartments[id]; !ok {
		return fmt.Errorf("RemoveCompartment(%s): %w", id, ErrUnknownCompartment)
	}
	delete(n.compartments, id)
	n.compartmentOrder = slices.DeleteFunc(n.compartmentOrder, func(s string) bool { return s == id })

	return nil
}

// Compartment returns a copy of the compartment with the given id.
func (n *Network) Compartment(id string) (Compartment, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.compartments[id]
	if !ok {
		return Compartment{}, false
	}

	return *c, true
}

// Compound returns a copy of the compound with the given id.
func (n *Network) Compound(id string) (*Compound, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.compounds[id]
	if !ok {
		return nil, false
	}

	return c.clone(), true
}

// Reaction returns a copy of the reaction with the given id.
func (n *Network) Reaction(id string) (*Reaction, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	r, ok := n.reactions[id]
	if !ok {
		return nil, false
	}

	return r.Clone(), true
}

// HasReaction reports whether a reaction id exists.
func (n *Network) HasReaction(id string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.reactions[id]

	return ok
}

// HasCompound reports whether a compound id exists.
func (n *Network) HasCompound(id string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.compounds[id]

	return ok
}

// Compartments returns copies of all compartments in insertion order.
func (n *Network) Compartments() []Compartment {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Compartment, len(n.compartmentOrder))
	for i, id := range n.compartmentOrder {
		out[i] = *n.compartments[id]
	}

	return out
}

// Compounds returns copies of all compounds in insertion order.
func (n *Network) Compounds() []*Compound {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Compound, len(n.compoundOrder))
	for i, id := range n.compoundOrder {
		out[i] = n.compounds[id].clone()
	}

	return out
}

// Reactions returns copies of all reactions in insertion order.
func (n *Network) Reactions() []*Reaction {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Reaction, len(n.reactionOrder))
	for i, id := range n.reactionOrder {
		out[i] = n.reactions[id].Clone()
	}

	return out
}

// ReactionIDs returns reaction ids in insertion order.
func (n *Network) ReactionIDs() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return slices.Clone(n.reactionOrder)
}

// CompoundIDs returns compound ids in insertion order.
func (n *Network) CompoundIDs() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return slices.Clone(n.compoundOrder)
}

// IsSteadyCompound reports whether cid lives in a steady compartment.
func (n *Network) IsSteadyCompound(cid string) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.compounds[cid]
	if !ok {
		return false, fmt.Errorf("IsSteadyCompound(%s): %w", cid, ErrUnknownCompound)
	}
	comp, ok := n.compartments[c.Compartment]
	if !ok {
		return false, fmt.Errorf("compound %s: compartment %q was removed: %w", cid, c.Compartment, ErrDanglingReference)
	}

	return comp.IsSteady, nil
}

// Genes returns the sorted set of gene ids referenced by reaction rules.
func (n *Network) Genes() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var out []string
	for _, id := range n.reactionOrder {
		if gr := n.reactions[id].GeneRule; gr != nil {
			out = append(out, gr.Genes()...)
		}
	}
	slices.Sort(out)

	return slices.Compact(out)
}

// Validate checks every cross reference of the network.
func (n *Network) Validate() error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.validateLocked()
}

func (n *Network) validateLocked() error {
	for _, cid := range n.compoundOrder {
		c := n.compounds[cid]
		if _, ok := n.compartments[c.Compartment]; !ok {
			return fmt.Errorf("network %s: compound %s: compartment %q was removed: %w",
				n.ID, cid, c.Compartment, ErrDanglingReference)
		}
	}
	for _, rid := range n.reactionOrder {
		for _, t := range n.reactions[rid].terms {
			if _, ok := n.compounds[t.Compound]; !ok {
				return fmt.Errorf("network %s: reaction %s: compound %q was removed: %w",
					n.ID, rid, t.Compound, ErrDanglingReference)
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the network.
func (n *Network) Clone() *Network {
	n.mu.RLock()
	defer n.mu.RUnlock()
	cp := New(n.ID)
	cp.Name = n.Name
	for _, id := range n.compartmentOrder {
		c := *n.compartments[id]
		cp.compartments[id] = &c
	}
	for _, id := range n.compoundOrder {
		cp.compounds[id] = n.compounds[id].clone()
	}
	for _, id := range n.reactionOrder {
		cp.reactions[id] = n.reactions[id].Clone()
	}
	cp.compartmentOrder = slices.Clone(n.compartmentOrder)
	cp.compoundOrder = slices.Clone(n.compoundOrder)
	cp.reactionOrder = slices.Clone(n.reactionOrder)

	return cp
}
