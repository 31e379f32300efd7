// SPDX-License-Identifier: MIT

package twin

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
)

// Separator joins a network id and an entity id in flattened systems.
const Separator = ":"

// Twin owns (Network, Context) pairs keyed by network id, in insertion order.
type Twin struct {
	ID string

	order    []string
	networks map[string]*network.Network
	contexts map[string]*measurement.Context
}

// New creates an empty twin.
func New(id string) *Twin {
	return &Twin{
		ID:       id,
		networks: make(map[string]*network.Network),
		contexts: make(map[string]*measurement.Context),
	}
}

// Single wraps one network and its context (which may be nil).
func Single(n *network.Network, c *measurement.Context) (*Twin, error) {
	if n == nil {
		return nil, fmt.Errorf("twin.Single: %w", ErrNilNetwork)
	}
	t := New(n.ID)
	if err := t.AddNetwork(n); err != nil {
		return nil, err
	}
	if c != nil {
		if err := t.AddContext(n.ID, c); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// AddNetwork takes ownership of a copy of n.
func (t *Twin) AddNetwork(n *network.Network) error {
	if n == nil {
		return fmt.Errorf("Twin(%s).AddNetwork: %w", t.ID, ErrNilNetwork)
	}
	if strings.TrimSpace(n.ID) == "" {
		return fmt.Errorf("Twin(%s).AddNetwork: %w", t.ID, ErrEmptyID)
	}
	if strings.Contains(n.ID, Separator) {
		return fmt.Errorf("Twin(%s).AddNetwork(%s): %w", t.ID, n.ID, ErrInvalidID)
	}
	if _, ok := t.networks[n.ID]; ok {
		return fmt.Errorf("Twin(%s).AddNetwork(%s): %w", t.ID, n.ID, ErrDuplicateNetwork)
	}
	t.networks[n.ID] = n.Clone()
	t.order = append(t.order, n.ID)

	return nil
}

// AddContext attaches a copy of c to the network networkID. Every variable
// reference must name a reaction or a compound of that network.
func (t *Twin) AddContext(networkID string, c *measurement.Context) error {
	if c == nil {
		return fmt.Errorf("Twin(%s).AddContext: %w", t.ID, ErrNilNetwork)
	}
	n, ok := t.networks[networkID]
	if !ok {
		return fmt.Errorf("Twin(%s).AddContext(%s): %w", t.ID, networkID, ErrUnknownNetwork)
	}
	if _, ok = t.contexts[networkID]; ok {
		return fmt.Errorf("Twin(%s).AddContext(%s): %w", t.ID, networkID, ErrDuplicateContext)
	}
	if err := checkRefs(n, c); err != nil {
		return fmt.Errorf("Twin(%s).AddContext(%s): %w", t.ID, networkID, err)
	}
	t.contexts[networkID] = c.Clone()

	return nil
}

func checkRefs(n *network.Network, c *measurement.Context) error {
	for _, e := range c.Entries() {
		for _, ref := range e.Refs() {
			if !n.HasReaction(ref) && !n.HasCompound(ref) {
				return fmt.Errorf("entry %s: %q: %w", e.ID, ref, ErrUnknownReference)
			}
		}
	}

	return nil
}

// NetworkIDs returns the network ids in insertion order.
func (t *Twin) NetworkIDs() []string {
	return append([]string(nil), t.order...)
}

// Network returns the owned network. Callers must treat it as read-only.
func (t *Twin) Network(id string) (*network.Network, bool) {
	n, ok := t.networks[id]

	return n, ok
}

// Context returns the context of network id, if any.
func (t *Twin) Context(id string) (*measurement.Context, bool) {
	c, ok := t.contexts[id]

	return c, ok
}

// Validate checks every network and context and that all contexts agree on
// the simulation conditions.
func (t *Twin) Validate() error {
	if len(t.order) == 0 {
		return fmt.Errorf("Twin(%s): %w", t.ID, ErrEmptyTwin)
	}
	for _, id := range t.order {
		if err := t.networks[id].Validate(); err != nil {
			return fmt.Errorf("Twin(%s): %w", t.ID, err)
		}
		if c, ok := t.contexts[id]; ok {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("Twin(%s): network %s: %w", t.ID, id, err)
			}
			if err := checkRefs(t.networks[id], c); err != nil {
				return fmt.Errorf("Twin(%s): network %s: %w", t.ID, id, err)
			}
		}
	}
	_, err := t.conditions()

	return err
}

// conditions returns the shared condition names, or nil when no context
// names them. The simulation counts of contexts with entries must agree.
func (t *Twin) conditions() ([]string, error) {
	var names []string
	sims := 0
	for _, id := range t.order {
		c, ok := t.contexts[id]
		if !ok {
			continue
		}
		if c.Len() > 0 || len(c.Conditions) > 0 {
			n := c.NumSimulations()
			if sims != 0 && n != sims {
				return nil, fmt.Errorf("Twin(%s): network %s has %d simulations, want %d: %w",
					t.ID, id, n, sims, ErrConditionMismatch)
			}
			sims = n
		}
		if len(c.Conditions) == 0 {
			continue
		}
		if names != nil && strings.Join(names, "\x00") != strings.Join(c.Conditions, "\x00") {
			return nil, fmt.Errorf("Twin(%s): network %s conditions %v, want %v: %w",
				t.ID, id, c.Conditions, names, ErrConditionMismatch)
		}
		names = c.Conditions
	}

	return names, nil
}

// FlatID prefixes id with its network id.
func FlatID(networkID, id string) string {
	return networkID + Separator + id
}

// SplitID inverts FlatID. ok is false when flat carries no prefix.
func SplitID(flat string) (networkID, id string, ok bool) {
	return strings.Cut(flat, Separator)
}
