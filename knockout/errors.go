// SPDX-License-Identifier: MIT

package knockout

import "errors"

var (
	// ErrEmptySpec indicates a knockout line without targets.
	ErrEmptySpec = errors.New("knockout: empty specification")

	// ErrInvalidKind indicates a kind other than reaction or gene.
	ErrInvalidKind = errors.New("knockout: invalid kind")

	// ErrDuplicateSpec indicates two specs with the same id in one list.
	ErrDuplicateSpec = errors.New("knockout: duplicate specification")

	// ErrUnknownReaction indicates a reaction target missing from the network.
	ErrUnknownReaction = errors.New("knockout: unknown reaction")
)
