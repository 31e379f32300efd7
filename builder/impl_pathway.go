// SPDX-License-Identifier: MIT
// Package: metatwin/builder
//
// impl_pathway.go - LinearPathway(n) and Branched(k) constructors.
//
// LinearPathway(n), n >= 2, ids from cfg:
//   - compounds M0..M(n-1) in "c", M0_e and M(n-1)_e in "e";
//   - EX_M0:     M0_e -> M0
//   - R1..R(n-1): M(i-1) -> M(i)           (rule "g<i>" when WithGenes)
//   - EX_M(n-1): M(n-1) -> M(n-1)_e
//
// Branched(k), k >= 1:
//   - compounds M0 (substrate) and M1 (product) in "c", plus their "_e" twins;
//   - EX_M0, k parallel reactions R1..Rk: M0 -> M1, EX_M1.
//
// Complexity: O(n) compounds and reactions; emission order is by index.

package builder

import "github.com/katalvlaran/metatwin/network"

const (
	methodLinearPathway = "LinearPathway"
	methodBranched      = "Branched"
	minPathwayCompounds = 2
	minBranches         = 1
)

// LinearPathway returns a Constructor for an n-compound unbranched pathway.
func LinearPathway(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if n < minPathwayCompounds {
			return errorf(methodLinearPathway, ErrTooFewCompounds, "n=%d < min=%d", n, minPathwayCompounds)
		}
		if err := ensureCompartments(net, methodLinearPathway, "c", "e"); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := addCompound(net, methodLinearPathway, cfg.idFn(i), "c"); err != nil {
				return err
			}
		}
		if err := addExchanges(net, cfg, methodLinearPathway, cfg.idFn(0), cfg.idFn(n-1)); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			spec := reactionSpec{
				id:         cfg.reactionFn(i),
				dir:        network.Forward,
				substrates: []string{cfg.idFn(i - 1)},
				products:   []string{cfg.idFn(i)},
			}
			if cfg.genes {
				spec.rule = cfg.geneID(i)
			}
			if err := addReaction(net, cfg, methodLinearPathway, spec); err != nil {
				return err
			}
		}

		return nil
	}
}

// Branched returns a Constructor for k parallel conversions of M0 into M1.
func Branched(k int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if k < minBranches {
			return errorf(methodBranched, ErrTooFewCompounds, "k=%d < min=%d", k, minBranches)
		}
		if err := ensureCompartments(net, methodBranched, "c", "e"); err != nil {
			return err
		}
		src, dst := cfg.idFn(0), cfg.idFn(1)
		for _, id := range []string{src, dst} {
			if err := addCompound(net, methodBranched, id, "c"); err != nil {
				return err
			}
		}
		if err := addExchanges(net, cfg, methodBranched, src, dst); err != nil {
			return err
		}
		for i := 1; i <= k; i++ {
			spec := reactionSpec{
				id:         cfg.reactionFn(i),
				dir:        network.Forward,
				substrates: []string{src},
				products:   []string{dst},
			}
			if cfg.genes {
				spec.rule = cfg.geneID(i)
			}
			if err := addReaction(net, cfg, methodBranched, spec); err != nil {
				return err
			}
		}

		return nil
	}
}

// addExchanges adds the uptake of in and the export of out.
func addExchanges(net *network.Network, cfg builderConfig, method, in, out string) error {
	for _, id := range []string{in + externalSuffix, out + externalSuffix} {
		if err := addCompound(net, method, id, "e"); err != nil {
			return err
		}
	}
	if err := addReaction(net, cfg, method, reactionSpec{
		id: exchangePrefix + in, dir: network.Forward,
		substrates: []string{in + externalSuffix}, products: []string{in},
	}); err != nil {
		return err
	}

	return addReaction(net, cfg, method, reactionSpec{
		id: exchangePrefix + out, dir: network.Forward,
		substrates: []string{out}, products: []string{out + externalSuffix},
	})
}
