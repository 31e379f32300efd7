// SPDX-License-Identifier: MIT
// Package: metatwin/builder
//
// impl_random.go - RandomNetwork(compounds, reactions, p) constructor.
//
// Model:
//   - compounds cfg.idFn(0..nc-1) in "c", each with an exchange
//     EX_<id>: <id>_e <-> <id> (reversible) so every compound can balance;
//   - reactions cfg.reactionFn(1..nr): for each compound in index order a
//     Bernoulli(p) trial adds it, as substrate or product with equal odds;
//   - a reaction left without terms consumes compound (j-1) mod nc;
//   - direction is reversible with probability 1/2, forward otherwise.
//
// Contract: nc >= 1, nr >= 1, 0 <= p <= 1, cfg.rng != nil.
// Determinism: fixed trial order (reaction asc, compound asc) and seed.
// Complexity: O(nc·nr) trials.

package builder

import "github.com/katalvlaran/metatwin/network"

const (
	methodRandomNetwork = "RandomNetwork"
	probMin             = 0.0
	probMax             = 1.0
)

// RandomNetwork returns a Constructor sampling a random stoichiometry.
func RandomNetwork(compounds, reactions int, p float64) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if compounds < 1 || reactions < 1 {
			return errorf(methodRandomNetwork, ErrTooFewCompounds,
				"compounds=%d reactions=%d < 1", compounds, reactions)
		}
		if !(p >= probMin && p <= probMax) {
			return errorf(methodRandomNetwork, ErrInvalidProbability, "p=%.6f not in [%.1f,%.1f]", p, probMin, probMax)
		}
		if cfg.rng == nil {
			return errorf(methodRandomNetwork, ErrNeedRandSource, "rng is required")
		}
		if err := ensureCompartments(net, methodRandomNetwork, "c", "e"); err != nil {
			return err
		}

		for i := 0; i < compounds; i++ {
			id := cfg.idFn(i)
			if err := addCompound(net, methodRandomNetwork, id, "c"); err != nil {
				return err
			}
			if err := addCompound(net, methodRandomNetwork, id+externalSuffix, "e"); err != nil {
				return err
			}
			if err := addReaction(net, cfg, methodRandomNetwork, reactionSpec{
				id: exchangePrefix + id, dir: network.Reversible,
				substrates: []string{id + externalSuffix}, products: []string{id},
			}); err != nil {
				return err
			}
		}

		rng := cfg.rng
		for j := 1; j <= reactions; j++ {
			spec := reactionSpec{id: cfg.reactionFn(j), dir: network.Forward}
			for i := 0; i < compounds; i++ {
				if rng.Float64() >= p {
					continue
				}
				if rng.Intn(2) == 0 {
					spec.substrates = append(spec.substrates, cfg.idFn(i))
				} else {
					spec.products = append(spec.products, cfg.idFn(i))
				}
			}
			if len(spec.substrates)+len(spec.products) == 0 {
				spec.substrates = []string{cfg.idFn((j - 1) % compounds)}
			}
			if rng.Intn(2) == 0 {
				spec.dir = network.Reversible
			}
			if cfg.genes {
				spec.rule = cfg.geneID(j)
			}
			if err := addReaction(net, cfg, methodRandomNetwork, spec); err != nil {
				return err
			}
		}

		return nil
	}
}
