// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestLocateTools_ResolvesAll(t *testing.T) {
	p := New(DefaultConfig())
	p.SetLookPath(func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	})

	if err := p.LocateTools(); err != nil {
		t.Fatalf("LocateTools: %v", err)
	}
	if p.tools.Git != "/usr/bin/git" {
		t.Errorf("Git = %q", p.tools.Git)
	}
	if p.tools.Java != "/usr/bin/java" {
		t.Errorf("Java = %q", p.tools.Java)
	}
	if p.tools.Maven != "/usr/bin/mvn" {
		t.Errorf("Maven = %q", p.tools.Maven)
	}
	if p.tools.Astyle != "/usr/bin/astyle" {
		t.Errorf("Astyle = %q", p.tools.Astyle)
	}
}

func TestLocateTools_NothingInstalled_NamesFirstMissing(t *testing.T) {
	p := New(DefaultConfig())
	p.SetLookPath(func(name string) (string, error) {
		return "", fmt.Errorf("%s not found", name)
	})

	err := p.LocateTools()
	if !errors.Is(err, ErrToolMissing) {
		t.Fatalf("error should wrap ErrToolMissing, got %v", err)
	}
	// The version-control tool is checked first.
	if !strings.Contains(err.Error(), "git") {
		t.Errorf("error should name git, got %v", err)
	}
}

func TestLocateTools_NamesTheMissingTool(t *testing.T) {
	p := New(DefaultConfig())
	p.SetLookPath(func(name string) (string, error) {
		if name == "astyle" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + name, nil
	})

	err := p.LocateTools()
	if !errors.Is(err, ErrToolMissing) {
		t.Fatalf("error should wrap ErrToolMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "astyle") {
		t.Errorf("error should name astyle, got %v", err)
	}
}
