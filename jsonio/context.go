// SPDX-License-Identifier: MIT

package jsonio

import (
	"fmt"

	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/twin"
)

// ContextDoc is the JSON form of a measurement context.
type ContextDoc struct {
	ID         string     `json:"id"`
	Conditions []string   `json:"conditions,omitempty"`
	Entries    []EntryDoc `json:"entries"`
}

// EntryDoc is the JSON form of one entry; every vector has one value per
// simulation.
type EntryDoc struct {
	ID         string        `json:"id"`
	Variables  []VariableDoc `json:"variables"`
	Lower      []*float64    `json:"lower"`
	Upper      []*float64    `json:"upper"`
	Target     []*float64    `json:"target"`
	Confidence []*float64    `json:"confidence"`
}

// VariableDoc is one term of an entry.
type VariableDoc struct {
	Ref         string  `json:"ref"`
	Coefficient float64 `json:"coefficient"`
}

// ContextToDoc converts c into its document form.
func ContextToDoc(c *measurement.Context) ContextDoc {
	doc := ContextDoc{ID: c.ID, Conditions: c.Conditions, Entries: []EntryDoc{}}
	for _, e := range c.Entries() {
		ed := EntryDoc{ID: e.ID}
		for _, v := range e.Variables {
			ed.Variables = append(ed.Variables, VariableDoc{Ref: v.Ref, Coefficient: v.Coefficient})
		}
		for i := 0; i < e.Len(); i++ {
			ed.Lower = append(ed.Lower, lowerPtr(e.Lower[i]))
			ed.Upper = append(ed.Upper, upperPtr(e.Upper[i]))
			ed.Target = append(ed.Target, valuePtr(e.Target[i]))
			ed.Confidence = append(ed.Confidence, valuePtr(e.Confidence[i]))
		}
		doc.Entries = append(doc.Entries, ed)
	}

	return doc
}

// ContextFromDoc builds and validates a context from doc.
func ContextFromDoc(doc ContextDoc) (*measurement.Context, error) {
	c := measurement.New(doc.ID, doc.Conditions...)
	for _, ed := range doc.Entries {
		vars := make([]measurement.Variable, len(ed.Variables))
		for k, v := range ed.Variables {
			vars[k] = measurement.Variable{Ref: v.Ref, Coefficient: v.Coefficient}
		}
		lower := make([]float64, len(ed.Lower))
		for i, p := range ed.Lower {
			lower[i] = orInf(p, -1)
		}
		upper := make([]float64, len(ed.Upper))
		for i, p := range ed.Upper {
			upper[i] = orInf(p, 1)
		}
		target, err := required(ed.ID, ed.Target)
		if err != nil {
			return nil, err
		}
		conf, err := required(ed.ID, ed.Confidence)
		if err != nil {
			return nil, err
		}
		e, err := measurement.NewEntry(ed.ID, vars, lower, upper, target, conf)
		if err != nil {
			return nil, err
		}
		if err = c.Add(e); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func required(id string, ps []*float64) ([]float64, error) {
	out := make([]float64, len(ps))
	for i, p := range ps {
		if p == nil {
			return nil, fmt.Errorf("entry %s[%d]: %w", id, i, ErrNullTarget)
		}
		out[i] = *p
	}

	return out, nil
}

// TwinDoc is the JSON form of a twin: networks in order, each with an
// optional context.
type TwinDoc struct {
	ID      string      `json:"id"`
	Members []MemberDoc `json:"members"`
}

// MemberDoc pairs a network with its context.
type MemberDoc struct {
	Network NetworkDoc  `json:"network"`
	Context *ContextDoc `json:"context,omitempty"`
}

// TwinFromDoc builds a twin; reference checks run as contexts are added.
func TwinFromDoc(doc TwinDoc) (*twin.Twin, error) {
	t := twin.New(doc.ID)
	for _, m := range doc.Members {
		n, err := NetworkFromDoc(m.Network)
		if err != nil {
			return nil, err
		}
		if err = t.AddNetwork(n); err != nil {
			return nil, err
		}
		if m.Context == nil {
			continue
		}
		c, err := ContextFromDoc(*m.Context)
		if err != nil {
			return nil, err
		}
		if err = t.AddContext(n.ID, c); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// TwinToDoc converts t into its document form.
func TwinToDoc(t *twin.Twin) TwinDoc {
	doc := TwinDoc{ID: t.ID}
	for _, nid := range t.NetworkIDs() {
		n, _ := t.Network(nid)
		m := MemberDoc{Network: NetworkToDoc(n)}
		if c, ok := t.Context(nid); ok {
			cd := ContextToDoc(c)
			m.Context = &cd
		}
		doc.Members = append(doc.Members, m)
	}

	return doc
}
