// SPDX-License-Identifier: MIT

package builder

import "fmt"

const (
	// exchangePrefix names uptake and export reactions ("EX_M0").
	exchangePrefix = "EX_"
	// externalSuffix names the extracellular twin of a compound ("M0_e").
	externalSuffix = "_e"
)

// errorf returns "<method>: <detail>: <sentinel>" with the sentinel wrapped.
func errorf(method string, sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
