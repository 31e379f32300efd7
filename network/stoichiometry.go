// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/metatwin/matrix"
)

// Stoichiometry is a labelled stoichiometric matrix: one row per compound,
// one column per reaction, entry = coefficient or 0.
type Stoichiometry struct {
	CompoundIDs []string
	ReactionIDs []string
	Matrix      *matrix.Dense
}

// At returns the coefficient of compound cid in reaction rid.
func (s *Stoichiometry) At(cid, rid string) (float64, error) {
	i, ok := s.RowIndex(cid)
	if !ok {
		return 0, fmt.Errorf("Stoichiometry.At(%s): %w", cid, ErrUnknownCompound)
	}
	j, ok := s.ColIndex(rid)
	if !ok {
		return 0, fmt.Errorf("Stoichiometry.At(%s): %w", rid, ErrUnknownReaction)
	}

	return s.Matrix.At(i, j)
}

// RowIndex returns the row of compound cid.
func (s *Stoichiometry) RowIndex(cid string) (int, bool) {
	for i, id := range s.CompoundIDs {
		if id == cid {
			return i, true
		}
	}

	return -1, false
}

// ColIndex returns the column of reaction rid.
func (s *Stoichiometry) ColIndex(rid string) (int, bool) {
	for j, id := range s.ReactionIDs {
		if id == rid {
			return j, true
		}
	}

	return -1, false
}

// StoichiometricMatrix builds the full matrix S.
//
// Stage 1 (Validate): every compound's compartment and every reaction's
// compounds must still exist, else ErrDanglingReference.
// Stage 2 (Execute): rows follow compound insertion order, columns follow
// reaction insertion order.
//
// Complexity: O(|C|*|R| + Σ|terms|).
func (n *Network) StoichiometricMatrix() (*Stoichiometry, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.stoichiometryLocked()
}

func (n *Network) stoichiometryLocked() (*Stoichiometry, error) {
	if err := n.validateLocked(); err != nil {
		return nil, err
	}
	rowOf := make(map[string]int, len(n.compoundOrder))
	for i, id := range n.compoundOrder {
		rowOf[id] = i
	}
	m, err := matrix.NewDense(len(n.compoundOrder), len(n.reactionOrder))
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", n.ID, err)
	}
	for j, rid := range n.reactionOrder {
		for _, t := range n.reactions[rid].terms {
			if err = m.Set(rowOf[t.Compound], j, t.Coefficient); err != nil {
				return nil, fmt.Errorf("network %s: reaction %s: %w", n.ID, rid, err)
			}
		}
	}

	return &Stoichiometry{
		CompoundIDs: append([]string(nil), n.compoundOrder...),
		ReactionIDs: append([]string(nil), n.reactionOrder...),
		Matrix:      m,
	}, nil
}

// SteadyStoichiometricMatrix restricts S to compounds in steady compartments.
func (n *Network) SteadyStoichiometricMatrix() (*Stoichiometry, error) {
	return n.restricted(true)
}

// NonSteadyStoichiometricMatrix restricts S to compounds in non-steady
// compartments.
func (n *Network) NonSteadyStoichiometricMatrix() (*Stoichiometry, error) {
	return n.restricted(false)
}

func (n *Network) restricted(steady bool) (*Stoichiometry, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	full, err := n.stoichiometryLocked()
	if err != nil {
		return nil, err
	}
	var rows []int
	var ids []string
	for i, cid := range full.CompoundIDs {
		if n.compartments[n.compounds[cid].Compartment].IsSteady == steady {
			rows = append(rows, i)
			ids = append(ids, cid)
		}
	}
	cols := make([]int, len(full.ReactionIDs))
	for j := range cols {
		cols[j] = j
	}
	sub, err := full.Matrix.Induced(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", n.ID, err)
	}

	return &Stoichiometry{CompoundIDs: ids, ReactionIDs: full.ReactionIDs, Matrix: sub}, nil
}
