// SPDX-License-Identifier: MIT
// Package: metatwin/builder
//
// api.go - public entry point for the builder package.
//
// Design contract:
//   - One orchestrator: BuildNetwork(id, bopts, cons...). Creates the network,
//     resolves cfg, runs cons in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs, options, seed and constructor order yield
//     identical networks.
//   - Safety: constructors never panic; they return sentinel errors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/metatwin/network"
)

// Constructor applies a deterministic network mutation using the resolved
// builderConfig. Constructors validate parameters first and return
// sentinel errors; they must not panic.
type Constructor func(n *network.Network, cfg builderConfig) error

// BuildNetwork creates a network with the given id, resolves the builder
// configuration from bopts and applies all constructors in order.
// Any constructor error is wrapped with "BuildNetwork: %w" and returned
// immediately; the partial network is discarded.
//
// Complexity: O(len(bopts)) for options plus the sum of constructor costs.
func BuildNetwork(id string, bopts []BuilderOption, cons ...Constructor) (*network.Network, error) {
	n := network.New(id)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildNetwork: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(n, cfg); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}

	return n, nil
}

// ensureCompartments adds the known compartments ids that are not present yet.
func ensureCompartments(n *network.Network, method string, ids ...string) error {
	for _, id := range ids {
		if _, ok := n.Compartment(id); ok {
			continue
		}
		c, ok := network.LookupCompartment(id)
		if !ok {
			return fmt.Errorf("%s: compartment %q: %w", method, id, ErrConstructFailed)
		}
		if err := n.AddCompartment(c); err != nil {
			return fmt.Errorf("%s: AddCompartment(%s): %w", method, id, err)
		}
	}

	return nil
}

// addCompound adds compound id in compartment cmp unless it already exists.
func addCompound(n *network.Network, method, id, cmp string) error {
	if n.HasCompound(id) {
		return nil
	}
	if err := n.AddCompound(network.Compound{ID: id, Compartment: cmp}); err != nil {
		return fmt.Errorf("%s: AddCompound(%s): %w", method, id, err)
	}

	return nil
}

// reactionSpec is the flat description of one generated reaction.
type reactionSpec struct {
	id         string
	dir        network.Direction
	substrates []string
	products   []string
	rule       string
}

// addReaction builds r with unit coefficients and bounds scaled to cfg.bound.
func addReaction(n *network.Network, cfg builderConfig, method string, r reactionSpec) error {
	rx, err := network.NewReaction(r.id, r.dir)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	for _, s := range r.substrates {
		if err = rx.AddSubstrate(s, 1); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
	}
	for _, p := range r.products {
		if err = rx.AddProduct(p, 1); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
	}
	lo, hi := network.DefaultBounds(r.dir)
	scale := cfg.bound / network.DefaultFluxBound
	if err = rx.SetBounds(lo*scale, hi*scale); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err = rx.SetGeneRule(r.rule); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err = n.AddReaction(rx); err != nil {
		return fmt.Errorf("%s: AddReaction(%s): %w", method, r.id, err)
	}

	return nil
}
