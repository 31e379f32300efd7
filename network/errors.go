// SPDX-License-Identifier: MIT
// Package network: sentinel errors. Callers match them with errors.Is;
// call sites wrap them with entity ids for context.

package network

import "errors"

var (
	// ErrEmptyID indicates an entity was created with an empty identifier.
	ErrEmptyID = errors.New("network: empty identifier")

	// ErrDuplicateCompartment indicates a compartment id is already present.
	ErrDuplicateCompartment = errors.New("network: duplicate compartment")

	// ErrDuplicateCompound indicates a compound id is already present in the
	// network, or a compound was added twice on the same side of a reaction.
	ErrDuplicateCompound = errors.New("network: duplicate compound")

	// ErrDuplicateReaction indicates a reaction id is already present.
	ErrDuplicateReaction = errors.New("network: duplicate reaction")

	// ErrUnknownCompartment indicates a referenced compartment does not exist.
	ErrUnknownCompartment = errors.New("network: unknown compartment")

	// ErrUnknownCompound indicates a referenced compound does not exist.
	ErrUnknownCompound = errors.New("network: unknown compound")

	// ErrUnknownReaction indicates a referenced reaction does not exist.
	ErrUnknownReaction = errors.New("network: unknown reaction")

	// ErrUnknownGene indicates a gene that no reaction rule mentions.
	ErrUnknownGene = errors.New("network: unknown gene")

	// ErrDanglingReference indicates a reaction or compound points to an
	// entity that was removed after it was created.
	ErrDanglingReference = errors.New("network: dangling reference")

	// ErrInvalidCoefficient indicates a zero, NaN or infinite stoichiometric coefficient.
	ErrInvalidCoefficient = errors.New("network: invalid stoichiometric coefficient")

	// ErrInvalidBounds indicates lower > upper, NaN bounds, or bounds that
	// contradict the reaction direction.
	ErrInvalidBounds = errors.New("network: invalid flux bounds")

	// ErrInvalidDirection indicates an unknown direction value.
	ErrInvalidDirection = errors.New("network: invalid reaction direction")

	// ErrGeneRuleSyntax indicates a gene-reaction rule that cannot be parsed.
	ErrGeneRuleSyntax = errors.New("network: gene rule syntax error")
)
