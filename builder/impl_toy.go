// SPDX-License-Identifier: MIT
// Package: metatwin/builder
//
// impl_toy.go - the two-reaction transport network and the dead-end fixture.
//
// Toy:
//   - Compartments "c" (steady) and "e" (not steady).
//   - Compounds A(e), B(c), B_e(e).
//   - R1: A -> B, rule "g1 and g2"; R2: B -> B_e, rule "g3 or g4".
//   - Both forward with bounds [0, cfg.bound].
//
// DeadEnd:
//   - EX_<id>: <id>_e -> <id>, then nothing consumes <id>.

package builder

import "github.com/katalvlaran/metatwin/network"

const (
	methodToy     = "Toy"
	methodDeadEnd = "DeadEnd"
)

// Toy returns a Constructor for the fixed two-reaction transport network.
// Ids are fixed and do not follow cfg.idFn.
func Toy() Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		if err := ensureCompartments(n, methodToy, "c", "e"); err != nil {
			return err
		}
		for _, c := range [][2]string{{"A", "e"}, {"B", "c"}, {"B_e", "e"}} {
			if err := addCompound(n, methodToy, c[0], c[1]); err != nil {
				return err
			}
		}
		if err := addReaction(n, cfg, methodToy, reactionSpec{
			id: "R1", dir: network.Forward, substrates: []string{"A"}, products: []string{"B"}, rule: "g1 and g2",
		}); err != nil {
			return err
		}

		return addReaction(n, cfg, methodToy, reactionSpec{
			id: "R2", dir: network.Forward, substrates: []string{"B"}, products: []string{"B_e"}, rule: "g3 or g4",
		})
	}
}

// DeadEnd returns a Constructor adding an uptake of cfg.idFn(idx) into the
// cytosol with no consumer, so the compound is a dead end.
func DeadEnd(idx int) Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		if idx < 0 {
			return errorf(methodDeadEnd, ErrTooFewCompounds, "idx=%d < 0", idx)
		}
		if err := ensureCompartments(n, methodDeadEnd, "c", "e"); err != nil {
			return err
		}
		id := cfg.idFn(idx)
		if err := addCompound(n, methodDeadEnd, id+externalSuffix, "e"); err != nil {
			return err
		}
		if err := addCompound(n, methodDeadEnd, id, "c"); err != nil {
			return err
		}

		return addReaction(n, cfg, methodDeadEnd, reactionSpec{
			id: exchangePrefix + id, dir: network.Forward,
			substrates: []string{id + externalSuffix}, products: []string{id},
		})
	}
}
