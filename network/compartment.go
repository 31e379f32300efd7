// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"strings"
)

// Compartment is a physical location of compounds.
//
// IsSteady marks physiological compartments subject to the steady-state
// mass balance. Compartments that model the environment are not steady:
// their compounds act as sources/sinks and are excluded from S_int.
type Compartment struct {
	ID       string
	Name     string
	Ontology string // GO term or other stable external identifier
	IsSteady bool
}

// OtherCompartmentID is the code of the fallback compartment used when an
// unknown compartment is coerced.
const OtherCompartmentID = "o"

// knownCompartments is the curated registry, keyed by short code.
// Order matters only for KnownCompartments.
var knownCompartments = []Compartment{
	{ID: "c", Name: "cytosol", Ontology: "GO:0005829", IsSteady: true},
	{ID: "e", Name: "extracellular", Ontology: "GO:0005576", IsSteady: false},
	{ID: "m", Name: "mitochondrion", Ontology: "GO:0005739", IsSteady: true},
	{ID: "p", Name: "periplasm", Ontology: "GO:0042597", IsSteady: true},
	{ID: "n", Name: "nucleus", Ontology: "GO:0005634", IsSteady: true},
	{ID: "x", Name: "peroxisome", Ontology: "GO:0005777", IsSteady: true},
	{ID: "r", Name: "endoplasmic reticulum", Ontology: "GO:0005783", IsSteady: true},
	{ID: "g", Name: "golgi apparatus", Ontology: "GO:0005794", IsSteady: true},
	{ID: "l", Name: "lysosome", Ontology: "GO:0005764", IsSteady: true},
	{ID: "v", Name: "vacuole", Ontology: "GO:0005773", IsSteady: true},
	{ID: OtherCompartmentID, Name: "other", Ontology: "", IsSteady: true},
}

// KnownCompartments returns a copy of the curated registry.
func KnownCompartments() []Compartment {
	out := make([]Compartment, len(knownCompartments))
	copy(out, knownCompartments)

	return out
}

// LookupCompartment finds a known compartment by short code, ontology term
// or name (case-insensitive).
func LookupCompartment(key string) (Compartment, bool) {
	k := strings.TrimSpace(key)
	for _, c := range knownCompartments {
		if strings.EqualFold(c.ID, k) ||
			(c.Ontology != "" && strings.EqualFold(c.Ontology, k)) ||
			strings.EqualFold(c.Name, k) {
			return c, true
		}
	}

	return Compartment{}, false
}

// ResolveCompartment returns the known compartment for key. Unknown keys
// fail with ErrUnknownCompartment unless coerce is set, in which case the
// "other" compartment is returned.
func ResolveCompartment(key string, coerce bool) (Compartment, error) {
	if c, ok := LookupCompartment(key); ok {
		return c, nil
	}
	if coerce {
		c, _ := LookupCompartment(OtherCompartmentID)
		return c, nil
	}

	return Compartment{}, fmt.Errorf("ResolveCompartment(%q): %w", key, ErrUnknownCompartment)
}
