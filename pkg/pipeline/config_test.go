// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patchsmith.yaml")
	if err := os.WriteFile(path, []byte("project:\n  name: demo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Project.Name != "demo" {
		t.Errorf("Name = %q, want demo", cfg.Project.Name)
	}
	if cfg.Dirs.Work != "work" || cfg.Dirs.Tasks != ".tasks" || cfg.Dirs.Patches != "patches" {
		t.Errorf("dir defaults not applied: %+v", cfg.Dirs)
	}
	if cfg.Tools.Git != "git" || cfg.Tools.Maven != "mvn" || cfg.Tools.Astyle != "astyle" {
		t.Errorf("tool defaults not applied: %+v", cfg.Tools)
	}
	if cfg.Templates.FileList != "files.txt" {
		t.Errorf("FileList default = %q, want files.txt", cfg.Templates.FileList)
	}
}

func TestLoadConfig_ReadsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patchsmith.yaml")
	content := `
project:
  artifact_url: https://example.com/plugin.jar
dirs:
  work: src-tree
tools:
  maven: mvn3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Project.ArtifactURL != "https://example.com/plugin.jar" {
		t.Errorf("ArtifactURL = %q", cfg.Project.ArtifactURL)
	}
	if cfg.Dirs.Work != "src-tree" {
		t.Errorf("Work = %q, want src-tree", cfg.Dirs.Work)
	}
	if cfg.Tools.Maven != "mvn3" {
		t.Errorf("Maven = %q, want mvn3", cfg.Tools.Maven)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}

func TestWriteDefaultConfig_RefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patchsmith.yaml")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefaultConfig(path); err == nil {
		t.Error("expected error when config already exists, got nil")
	}
}

func TestWriteDefaultConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patchsmith.yaml")
	if err := WriteDefaultConfig(path); err != nil {
		t.Fatalf("WriteDefaultConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("generated config not valid YAML: %v", err)
	}
	if parsed.Dirs.Patches != "patches" {
		t.Errorf("Patches round-trip: got %q", parsed.Dirs.Patches)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	base := func() Config {
		cfg := DefaultConfig()
		cfg.Project = ProjectConfig{
			GroupID:       "com.example",
			ArtifactID:    "demo",
			Version:       "1.0.0",
			ArtifactURL:   "https://example.com/demo.jar",
			DecompilerURL: "https://example.com/decompiler.jar",
		}
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		errHas string
	}{
		{"complete", func(c *Config) {}, ""},
		{"no artifact url", func(c *Config) { c.Project.ArtifactURL = "" }, "artifact_url"},
		{"no decompiler url", func(c *Config) { c.Project.DecompilerURL = "" }, "decompiler_url"},
		{"no coordinates", func(c *Config) { c.Project.GroupID = "" }, "group_id"},
	}
	for _, tc := range cases {
		cfg := base()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if tc.errHas == "" {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", tc.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.errHas) {
			t.Errorf("%s: error = %v, want mention of %q", tc.name, err, tc.errHas)
		}
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Project.ArtifactID = "demo"
	cfg.Project.Version = "1.0.0"

	if got := cfg.ArtifactPath(); got != filepath.Join("tools", "demo-1.0.0.jar") {
		t.Errorf("ArtifactPath = %q", got)
	}
	if got := cfg.BuiltJarPath(); got != filepath.Join("work", "target", "demo-1.0.0.jar") {
		t.Errorf("BuiltJarPath = %q", got)
	}
	if got := cfg.DecompilerPath(); got != filepath.Join("tools", "decompiler.jar") {
		t.Errorf("DecompilerPath = %q", got)
	}
}
