// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. The pipeline does no interesting
// work of its own; decompilation, version control, formatting, and
// building are all delegated through this interface, which lets tests
// substitute fakes without the tools installed.
type Runner interface {
	// Run executes name with args in dir, discarding output. An empty
	// dir means the process working directory.
	Run(dir, name string, args ...string) error

	// Output executes name with args in dir and returns trimmed stdout.
	Output(dir, name string, args ...string) (string, error)

	// Stream executes name with args in dir with stdout and stderr
	// inherited, for long-running tools whose diagnostics the user
	// needs to see (decompiler, build tool).
	Stream(dir, name string, args ...string) error
}

// LookPathFunc resolves an executable name to an absolute path.
type LookPathFunc func(name string) (string, error)

func defaultLookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// execRunner is the os/exec-backed Runner used outside of tests.
type execRunner struct{}

func (execRunner) Run(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.Run()
}

func (execRunner) Output(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	return strings.TrimSpace(string(out)), err
}

func (execRunner) Stream(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
