// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner records every external command invocation and returns
// scripted outputs and errors. Commands are matched by exact string
// or prefix against "name arg arg ...".
type fakeRunner struct {
	calls   []string
	outputs map[string]string
	errs    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: map[string]string{},
		errs:    map[string]error{},
	}
}

func (f *fakeRunner) record(name string, args []string) string {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmd)
	return cmd
}

func (f *fakeRunner) scriptedErr(cmd string) error {
	if err, ok := f.errs[cmd]; ok {
		return err
	}
	for k, err := range f.errs {
		if strings.HasPrefix(cmd, k) {
			return err
		}
	}
	return nil
}

func (f *fakeRunner) Run(dir, name string, args ...string) error {
	return f.scriptedErr(f.record(name, args))
}

func (f *fakeRunner) Output(dir, name string, args ...string) (string, error) {
	cmd := f.record(name, args)
	if err := f.scriptedErr(cmd); err != nil {
		return "", err
	}
	if out, ok := f.outputs[cmd]; ok {
		return out, nil
	}
	for k, out := range f.outputs {
		if strings.HasPrefix(cmd, k) {
			return out, nil
		}
	}
	return "", nil
}

func (f *fakeRunner) Stream(dir, name string, args ...string) error {
	return f.Run(dir, name, args...)
}

// indexOf returns the position of the first recorded call starting
// with prefix, or -1.
func (f *fakeRunner) indexOf(prefix string) int {
	for i, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

func (f *fakeRunner) calledWith(prefix string) bool {
	return f.indexOf(prefix) >= 0
}

// newTestPipeline returns a Pipeline rooted in a temp directory with
// a fake runner and fake tool resolution, so no external tools are
// needed. Tool names resolve to themselves, so recorded calls start
// with "git", "mvn", "java", or "astyle".
func newTestPipeline(t *testing.T) (*Pipeline, *fakeRunner) {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		Project: ProjectConfig{
			Name:          "demo",
			GroupID:       "com.example",
			ArtifactID:    "demo",
			Version:       "1.0.0",
			ArtifactURL:   "http://artifact.invalid/demo.jar",
			DecompilerURL: "http://decompiler.invalid/decompiler.jar",
		},
		Dirs: DirsConfig{
			Work:    filepath.Join(dir, "work"),
			Tasks:   filepath.Join(dir, ".tasks"),
			Patches: filepath.Join(dir, "patches"),
			Tools:   filepath.Join(dir, "tools"),
			Staging: filepath.Join(dir, "decompiled"),
		},
		Templates: TemplatesConfig{
			Dir: filepath.Join(dir, "templates"),
		},
	}

	fr := newFakeRunner()
	p := New(cfg)
	p.SetRunner(fr)
	p.SetLookPath(func(name string) (string, error) { return name, nil })
	if err := p.LocateTools(); err != nil {
		t.Fatalf("LocateTools: %v", err)
	}
	return p, fr
}
