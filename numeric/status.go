// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"strings"
)

// Status is the outcome of one solve.
type Status int

const (
	// StatusOptimal means X is an optimal point.
	StatusOptimal Status = iota
	// StatusInfeasible means no point satisfies the constraints.
	StatusInfeasible
	// StatusUnbounded means the objective is unbounded in the optimisation direction.
	StatusUnbounded
	// StatusNumericalError means the method failed to converge, hit a
	// limit or lost accuracy. It never means the problem is infeasible.
	StatusNumericalError
)

var statusNames = [...]string{"optimal", "infeasible", "unbounded", "numerical_error"}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}

	return statusNames[s]
}

// ParseStatus inverts String.
func ParseStatus(s string) (Status, error) {
	for i, name := range statusNames {
		if strings.EqualFold(s, name) {
			return Status(i), nil
		}
	}

	return 0, fmt.Errorf("numeric: unknown status %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v

	return nil
}

// Solution is the result of one solve. X and Objective are meaningful only
// when Status is StatusOptimal.
type Solution struct {
	Status     Status
	X          []float64
	Objective  float64
	Iterations int
	Message    string // why the method stopped, for non-optimal outcomes
}

// OK reports whether the solve reached an optimum.
func (s *Solution) OK() bool { return s != nil && s.Status == StatusOptimal }
