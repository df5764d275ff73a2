// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import "errors"

// Failure categories. Every stage failure wraps exactly one of these
// so callers can classify with errors.Is. All of them are fatal: no
// stage retries, and no stage recovers from a failure in a
// prerequisite stage.
var (
	// ErrToolMissing means a required external executable was not
	// found in PATH. Reported before any stage runs.
	ErrToolMissing = errors.New("required tool missing")

	// ErrNetwork means an artifact transfer failed.
	ErrNetwork = errors.New("network transfer failed")

	// ErrDecompile means the decompiler or its output handling
	// failed. Partial output is left in place for inspection.
	ErrDecompile = errors.New("decompilation failed")

	// ErrFormat means the source formatter failed.
	ErrFormat = errors.New("source formatting failed")

	// ErrPatchConflict means a stored patch did not apply against
	// the baseline. The work tree is left mid-apply so the conflict
	// can be resolved with the version-control tool directly.
	ErrPatchConflict = errors.New("patch failed to apply")

	// ErrBuildFailure means the external build tool exited non-zero.
	// Its diagnostics go straight to the user's terminal.
	ErrBuildFailure = errors.New("build failed")
)
