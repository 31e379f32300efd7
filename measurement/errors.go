// SPDX-License-Identifier: MIT

package measurement

import "errors"

var (
	// ErrEmptyID indicates an entry or context without identifier.
	ErrEmptyID = errors.New("measurement: empty identifier")

	// ErrNoVariables indicates an entry with no variable.
	ErrNoVariables = errors.New("measurement: entry has no variables")

	// ErrDuplicateVariable indicates the same reference twice in one entry.
	ErrDuplicateVariable = errors.New("measurement: duplicate variable reference")

	// ErrInvalidCoefficient indicates a zero, NaN or infinite coefficient.
	ErrInvalidCoefficient = errors.New("measurement: invalid coefficient")

	// ErrVectorLength indicates per-simulation vectors of different or zero length.
	ErrVectorLength = errors.New("measurement: per-simulation vector length mismatch")

	// ErrInvalidBounds indicates lower > upper or a NaN bound.
	ErrInvalidBounds = errors.New("measurement: invalid bounds")

	// ErrInvalidTarget indicates a NaN or infinite target.
	ErrInvalidTarget = errors.New("measurement: invalid target")

	// ErrInvalidConfidence indicates a confidence outside [0, 1].
	ErrInvalidConfidence = errors.New("measurement: confidence outside [0, 1]")

	// ErrDuplicateEntry indicates an entry id already present in the context.
	ErrDuplicateEntry = errors.New("measurement: duplicate entry")

	// ErrSimulationMismatch indicates entries disagreeing on the number of
	// simulations, or disagreeing with the condition names.
	ErrSimulationMismatch = errors.New("measurement: simulation count mismatch")

	// ErrSimulationIndex indicates a simulation index out of range.
	ErrSimulationIndex = errors.New("measurement: simulation index out of range")
)
