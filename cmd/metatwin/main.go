// SPDX-License-Identifier: MIT

// Command metatwin solves flux-balance, flux-variability and knockout
// problems on metabolic twins described by JSON documents.
package main

import (
	"os"
)

var (
	// Version is set by build flags.
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
