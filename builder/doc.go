// SPDX-License-Identifier: MIT

// Package builder assembles deterministic metabolic networks and
// measurement series for tests, examples and benchmarks.
//
// One orchestrator, BuildNetwork(id, bopts, cons...), creates an empty
// network, resolves the builder configuration and runs the constructors
// in order. Constructors are plain closures over (*network.Network,
// builderConfig); composing several of them in one call yields a single
// network with their union.
//
// Topologies:
//
//   - Toy:            A(e) -R1-> B(c) -R2-> B_e(e), gene rules "g1 and g2" and "g3 or g4".
//   - LinearPathway:  uptake, n-1 chained conversions and export.
//   - Branched:       uptake, k parallel isoenzyme branches and export.
//   - DeadEnd:        uptake into a cytosolic compound nothing consumes.
//   - RandomNetwork:  Bernoulli stoichiometry over a fixed compound set (needs WithSeed).
//
// Series builds one measurement.Entry whose targets follow
// amplitude + trend·i + N(0, noise²) across simulations.
//
// Options are functional (BuilderOption). Option constructors panic on
// meaningless inputs; constructors themselves return sentinel errors and
// never panic.
package builder
