// SPDX-License-Identifier: MIT

package twin

import "errors"

var (
	// ErrEmptyID indicates a twin or network without identifier.
	ErrEmptyID = errors.New("twin: empty identifier")

	// ErrInvalidID indicates a network id containing the flattening separator.
	ErrInvalidID = errors.New("twin: network id contains separator")

	// ErrNilNetwork indicates a nil network or context argument.
	ErrNilNetwork = errors.New("twin: nil network or context")

	// ErrDuplicateNetwork indicates a network id already present in the twin.
	ErrDuplicateNetwork = errors.New("twin: duplicate network")

	// ErrUnknownNetwork indicates a network id the twin does not own.
	ErrUnknownNetwork = errors.New("twin: unknown network")

	// ErrDuplicateContext indicates a network that already has a context.
	ErrDuplicateContext = errors.New("twin: network already has a context")

	// ErrUnknownReference indicates a context variable naming neither a
	// reaction nor a compound of its network.
	ErrUnknownReference = errors.New("twin: unknown variable reference")

	// ErrConditionMismatch indicates contexts that disagree on simulation
	// count or condition names.
	ErrConditionMismatch = errors.New("twin: contexts disagree on conditions")

	// ErrEmptyTwin indicates flattening a twin without networks.
	ErrEmptyTwin = errors.New("twin: no networks")
)
