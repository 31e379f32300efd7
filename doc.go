// Package metatwin models metabolic reaction networks as twins and computes
// feasible or optimal flux distributions under measured constraints.
//
// A twin pairs each Network (compartments, compounds, reactions, gene
// rules) with an optional Context of measurements, one value per simulated
// condition. The solvers flatten the twin and solve one problem per
// condition:
//
//	network/      compartments, compounds, reactions, stoichiometric matrices, dead ends
//	measurement/  contexts: entries with per-simulation bounds, targets and confidence
//	twin/         (Network, Context) pairs, validation, flattening
//	numeric/      LP/QP problem layout, status taxonomy, gonum reference backend
//	fba/          flux-balance analysis (linear, quadratic, relaxed, parsimonious)
//	fva/          flux-variability analysis under a held optimum
//	knockout/     reaction and gene knockout screens
//	reach/        connectivity of reactions to the medium
//	matrix/       dense matrices and vector statistics
//	builder/      synthetic networks and measurement series
//	jsonio/       JSON documents for networks, contexts, twins and results
//	store/        sqlite/postgres result tables
//	artifact/     result documents on disk or in S3
//	cmd/metatwin  command line interface
//
// Toy network used across tests and examples:
//
//	A(e) ──R1──▶ B(c) ──R2──▶ B_e(e)
//
// A and B_e sit in the non-steady medium; B is balanced. Maximising R2
// drives both reactions to the flux bound.
//
//	go install github.com/katalvlaran/metatwin/cmd/metatwin@latest
package metatwin
