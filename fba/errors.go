// SPDX-License-Identifier: MIT

package fba

import "errors"

var (
	// ErrInvalidOption indicates an option value outside its valid range.
	ErrInvalidOption = errors.New("fba: invalid option")

	// ErrIncompatibleOptions indicates options that cannot be combined.
	ErrIncompatibleOptions = errors.New("fba: incompatible options")

	// ErrUnknownObjective indicates an objective term that names no reaction.
	ErrUnknownObjective = errors.New("fba: objective references unknown reaction")

	// ErrSimulationCount indicates a requested simulation count that
	// disagrees with the context.
	ErrSimulationCount = errors.New("fba: simulation count mismatch")

	// ErrNothingToFit indicates quadratic mode without soft-fit entries and
	// without parsimony.
	ErrNothingToFit = errors.New("fba: quadratic mode has nothing to fit")

	// ErrNilInput indicates a nil network or twin.
	ErrNilInput = errors.New("fba: nil input")
)
