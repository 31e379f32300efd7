// SPDX-License-Identifier: MIT

package network

import "slices"

// XRef is a cross-reference of a compound into an external database.
type XRef struct {
	DB string
	ID string
}

// Compound is a chemical species located in one compartment.
//
// Formula, Charge and XRefs annotate the compound and are never used when
// solving.
type Compound struct {
	ID          string
	Name        string
	Compartment string // compartment id
	Formula     string
	Charge      *int
	XRefs       []XRef
}

// clone returns a deep copy of c.
func (c *Compound) clone() *Compound {
	cp := *c
	if c.Charge != nil {
		ch := *c.Charge
		cp.Charge = &ch
	}
	cp.XRefs = slices.Clone(c.XRefs)

	return &cp
}
