// SPDX-License-Identifier: MIT

package fva

import "errors"

var (
	// ErrInvalidFraction indicates an optimum fraction outside [0, 1].
	ErrInvalidFraction = errors.New("fva: fraction outside [0, 1]")

	// ErrRelaxationUnsupported indicates a base solver with steady-state
	// relaxation, whose slacks make the variability unbounded.
	ErrRelaxationUnsupported = errors.New("fva: relaxation is not supported")

	// ErrUnknownReaction indicates a requested reaction missing from the network.
	ErrUnknownReaction = errors.New("fva: unknown reaction")
)
