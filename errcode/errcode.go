// SPDX-License-Identifier: MIT

// Package errcode enumerates the user-facing error codes printed by the
// metatwin CLI.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigLoadError
	SolverOptionsError

	// Input errors
	NetworkLoadError
	ContextLoadError
	TwinInvalidError
	KnockoutSpecError

	// Solve errors
	SolveError
	VariabilityError
	KnockoutError

	// Storage errors
	StoreOpenError
	StoreWriteError
	ArtifactOpenError
	ArtifactUploadError
)
