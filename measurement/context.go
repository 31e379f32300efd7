// SPDX-License-Identifier: MIT

package measurement

import (
	"fmt"
	"slices"
)

// Context is a named, ordered collection of entries sharing one set of
// simulation conditions.
type Context struct {
	ID         string
	Conditions []string // optional condition names, one per simulation

	entries []*Entry
	index   map[string]int
}

// New creates an empty context.
func New(id string, conditions ...string) *Context {
	return &Context{ID: id, Conditions: slices.Clone(conditions), index: make(map[string]int)}
}

// Add validates e and stores a copy. Duplicate ids are rejected; the
// simulation count is checked by Validate.
func (c *Context) Add(e *Entry) error {
	if e == nil {
		return fmt.Errorf("Context(%s).Add: %w", c.ID, ErrEmptyID)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("Context(%s).Add: %w", c.ID, err)
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if _, ok := c.index[e.ID]; ok {
		return fmt.Errorf("Context(%s).Add(%s): %w", c.ID, e.ID, ErrDuplicateEntry)
	}
	c.index[e.ID] = len(c.entries)
	c.entries = append(c.entries, e.Clone())

	return nil
}

// Entries returns copies of the entries in insertion order.
func (c *Context) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}

	return out
}

// Entry returns a copy of the entry with the given id.
func (c *Context) Entry(id string) (*Entry, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}

	return c.entries[i].Clone(), true
}

// Len returns the number of entries.
func (c *Context) Len() int { return len(c.entries) }

// NumSimulations returns the number of simulations: the shared vector
// length, or len(Conditions) for a context without entries (at least 1).
func (c *Context) NumSimulations() int {
	if len(c.entries) > 0 {
		return c.entries[0].Len()
	}
	if len(c.Conditions) > 0 {
		return len(c.Conditions)
	}

	return 1
}

// Validate checks that every entry describes the same number of
// simulations, and that condition names, when given, match it.
func (c *Context) Validate() error {
	n := c.NumSimulations()
	for _, e := range c.entries {
		if e.Len() != n {
			return fmt.Errorf("Context(%s): entry %s has %d simulations, want %d: %w",
				c.ID, e.ID, e.Len(), n, ErrSimulationMismatch)
		}
	}
	if len(c.Conditions) > 0 && len(c.Conditions) != n {
		return fmt.Errorf("Context(%s): %d condition names for %d simulations: %w",
			c.ID, len(c.Conditions), n, ErrSimulationMismatch)
	}

	return nil
}

// ConditionNames returns the condition names, defaulting to sim_0..sim_{n-1}.
func (c *Context) ConditionNames() []string {
	if len(c.Conditions) > 0 {
		return slices.Clone(c.Conditions)
	}
	n := c.NumSimulations()
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("sim_%d", i)
	}

	return out
}

// Clone returns a deep copy of c.
func (c *Context) Clone() *Context {
	cp := New(c.ID, c.Conditions...)
	for _, e := range c.entries {
		cp.index[e.ID] = len(cp.entries)
		cp.entries = append(cp.entries, e.Clone())
	}

	return cp
}

// Equal reports whether two contexts hold equal entries in the same order.
func (c *Context) Equal(o *Context) bool {
	if c.ID != o.ID || !slices.Equal(c.Conditions, o.Conditions) || len(c.entries) != len(o.entries) {
		return false
	}
	for i := range c.entries {
		if !c.entries[i].Equal(o.entries[i]) {
			return false
		}
	}

	return true
}
