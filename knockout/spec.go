// SPDX-License-Identifier: MIT

package knockout

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Kind selects what a Spec removes.
type Kind int

const (
	// Reaction specs list reaction ids.
	Reaction Kind = iota
	// Gene specs list gene ids.
	Gene
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Reaction:
		return "reaction"
	case Gene:
		return "gene"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts "reaction"/"reactions" or "gene"/"genes".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reaction", "reactions":
		return Reaction, nil
	case "gene", "genes":
		return Gene, nil
	default:
		return 0, fmt.Errorf("kind %q: %w", s, ErrInvalidKind)
	}
}

// Spec is one knockout: every target is removed at once.
type Spec struct {
	ID      string // targets joined by ","
	Kind    Kind
	Targets []string
}

// ParseSpec reads a comma-delimited target list. Blanks around targets
// are trimmed and duplicates dropped; order is kept.
func ParseSpec(line string, kind Kind) (Spec, error) {
	if kind != Reaction && kind != Gene {
		return Spec{}, fmt.Errorf("ParseSpec(%q): %w", line, ErrInvalidKind)
	}
	var targets []string
	for _, f := range strings.Split(line, ",") {
		f = strings.TrimSpace(f)
		if f != "" && !slices.Contains(targets, f) {
			targets = append(targets, f)
		}
	}
	if len(targets) == 0 {
		return Spec{}, fmt.Errorf("ParseSpec(%q): %w", line, ErrEmptySpec)
	}

	return Spec{ID: strings.Join(targets, ","), Kind: kind, Targets: targets}, nil
}

// ParseSpecs parses one spec per line, skipping blank lines and lines
// starting with '#'. Two lines naming the same targets in the same order
// share an id and are rejected.
func ParseSpecs(lines []string, kind Kind) ([]Spec, error) {
	var out []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		out = append(out, l)
	}
	specs := make([]Spec, 0, len(out))
	for i, l := range out {
		s, err := ParseSpec(l, kind)
		if err != nil {
			return nil, fmt.Errorf("spec %d: %w", i+1, err)
		}
		specs = append(specs, s)
	}
	if err := CheckUnique(specs); err != nil {
		return nil, err
	}

	return specs, nil
}

// CheckUnique returns ErrDuplicateSpec when two specs share an id.
func CheckUnique(specs []Spec) error {
	seen := make(map[string]int, len(specs))
	for i, s := range specs {
		if j, ok := seen[s.ID]; ok {
			return fmt.Errorf("specs %d and %d: %q: %w", j+1, i+1, s.ID, ErrDuplicateSpec)
		}
		seen[s.ID] = i
	}

	return nil
}

// ReadSpecs parses specs from r, one per line.
func ReadSpecs(r io.Reader, kind Kind) ([]Spec, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ReadSpecs: %w", err)
	}

	return ParseSpecs(lines, kind)
}
