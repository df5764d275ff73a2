// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"testing"
)

func TestBuildJar_RunsMavenAfterApply(t *testing.T) {
	p, fr := newTestPipeline(t)
	markPipelineReady(t, p, fr)
	writePatches(t, p, "0001-fix.patch")

	if err := p.BuildJar(); err != nil {
		t.Fatalf("BuildJar: %v", err)
	}
	buildIdx := fr.indexOf("mvn -B clean package")
	if buildIdx < 0 {
		t.Fatalf("maven should run, calls: %v", fr.calls)
	}
	if applyIdx := fr.indexOf("git am "); applyIdx < 0 || applyIdx > buildIdx {
		t.Errorf("patches must be applied before the build: %v", fr.calls)
	}
}

func TestBuildJar_FailureIsFatal(t *testing.T) {
	p, fr := newTestPipeline(t)
	markPipelineReady(t, p, fr)
	fr.errs["mvn -B clean package"] = errors.New("exit status 1")

	err := p.BuildJar()
	if !errors.Is(err, ErrBuildFailure) {
		t.Errorf("error should wrap ErrBuildFailure, got %v", err)
	}
}

func TestBuildJar_PatchConflictStopsBuild(t *testing.T) {
	p, fr := newTestPipeline(t)
	markPipelineReady(t, p, fr)
	abs := writePatches(t, p, "0001-fix.patch")
	fr.errs["git am "+abs[0]] = errors.New("patch does not apply")

	err := p.BuildJar()
	if !errors.Is(err, ErrPatchConflict) {
		t.Fatalf("error should wrap ErrPatchConflict, got %v", err)
	}
	if fr.calledWith("mvn -B clean package") {
		t.Error("build must not run after a patch conflict")
	}
}
