// SPDX-License-Identifier: MIT

package jsonio

import "errors"

var (
	// ErrDecode indicates a document that is not valid JSON for its type.
	ErrDecode = errors.New("jsonio: cannot decode document")

	// ErrEncode indicates a value that cannot be encoded.
	ErrEncode = errors.New("jsonio: cannot encode document")

	// ErrNullTarget indicates a null target or confidence value.
	ErrNullTarget = errors.New("jsonio: null target or confidence")
)
