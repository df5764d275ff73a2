// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig describes the plugin artifact being patched.
type ProjectConfig struct {
	// Name is the human-readable plugin name, used in logs and in the
	// generated build descriptor.
	Name string `yaml:"name"`

	// GroupID, ArtifactID, and Version are the Maven coordinates used
	// to register the downloaded jar with the local repository and to
	// locate the built jar.
	GroupID    string `yaml:"group_id"`
	ArtifactID string `yaml:"artifact_id"`
	Version    string `yaml:"version"`

	// ArtifactURL is the download URL of the compiled plugin jar.
	ArtifactURL string `yaml:"artifact_url"`

	// DecompilerURL is the download URL of the decompiler jar. The
	// downloaded copy is cached in the tools directory; presence
	// suppresses re-download.
	DecompilerURL string `yaml:"decompiler_url"`
}

// DirsConfig holds the working directory layout. Paths are relative
// to the process working directory unless absolute.
type DirsConfig struct {
	// Work is the decompiled, version-controlled source tree
	// (default "work").
	Work string `yaml:"work"`

	// Tasks is the task-marker directory (default ".tasks").
	Tasks string `yaml:"tasks"`

	// Patches is the stored patch set (default "patches"). It is the
	// durable input of the tool and is never removed by Cleanup.
	Patches string `yaml:"patches"`

	// Tools caches downloaded jars (default "tools").
	Tools string `yaml:"tools"`

	// Staging receives the raw decompiler output before relocation
	// into the work tree (default "decompiled").
	Staging string `yaml:"staging"`
}

// TemplatesConfig names the scaffold files copied into the work tree
// during decompilation. Missing files are materialized from embedded
// defaults; existing files are the user's and are left untouched.
type TemplatesConfig struct {
	// Dir is the template directory (default "templates").
	Dir string `yaml:"dir"`

	// BuildDescriptor is the Maven pom filename (default "pom.xml").
	BuildDescriptor string `yaml:"build_descriptor"`

	// Ignore is the gitignore template filename (default "gitignore").
	Ignore string `yaml:"ignore"`

	// FormatterConfig is the astyle options filename
	// (default "astylerc").
	FormatterConfig string `yaml:"formatter_config"`

	// FileList is the allow-list of paths staged into the baseline
	// commit (default "files.txt"). Blank lines and # comments are
	// skipped.
	FileList string `yaml:"file_list"`
}

// ToolsConfig overrides the names of the required external
// executables, resolved through PATH at startup.
type ToolsConfig struct {
	Git    string `yaml:"git"`
	Java   string `yaml:"java"`
	Maven  string `yaml:"maven"`
	Astyle string `yaml:"astyle"`
}

// Config holds all pipeline settings. Consumers either construct a
// Config in Go code and pass it to New(), or place a patchsmith.yaml
// next to the patch set and let the CLI load it.
type Config struct {
	Project   ProjectConfig   `yaml:"project"`
	Dirs      DirsConfig      `yaml:"dirs"`
	Templates TemplatesConfig `yaml:"templates"`
	Tools     ToolsConfig     `yaml:"tools"`
}

// DefaultConfigFile is the conventional configuration filename.
const DefaultConfigFile = "patchsmith.yaml"

// DefaultConfig returns a Config populated with all default values.
// Project-specific fields (URLs, coordinates) are left empty for the
// user to fill in.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// WriteDefaultConfig writes a patchsmith.yaml at the given path with
// all defaults filled in. Returns an error if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshalling default config: %w", err)
	}

	header := "# patchsmith configuration. Fill in the project section\n# (coordinates and download URLs) before running a pipeline command.\n\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

func (c *Config) applyDefaults() {
	if c.Dirs.Work == "" {
		c.Dirs.Work = "work"
	}
	if c.Dirs.Tasks == "" {
		c.Dirs.Tasks = ".tasks"
	}
	if c.Dirs.Patches == "" {
		c.Dirs.Patches = "patches"
	}
	if c.Dirs.Tools == "" {
		c.Dirs.Tools = "tools"
	}
	if c.Dirs.Staging == "" {
		c.Dirs.Staging = "decompiled"
	}
	if c.Templates.Dir == "" {
		c.Templates.Dir = "templates"
	}
	if c.Templates.BuildDescriptor == "" {
		c.Templates.BuildDescriptor = "pom.xml"
	}
	if c.Templates.Ignore == "" {
		c.Templates.Ignore = "gitignore"
	}
	if c.Templates.FormatterConfig == "" {
		c.Templates.FormatterConfig = "astylerc"
	}
	if c.Templates.FileList == "" {
		c.Templates.FileList = "files.txt"
	}
	if c.Tools.Git == "" {
		c.Tools.Git = "git"
	}
	if c.Tools.Java == "" {
		c.Tools.Java = "java"
	}
	if c.Tools.Maven == "" {
		c.Tools.Maven = "mvn"
	}
	if c.Tools.Astyle == "" {
		c.Tools.Astyle = "astyle"
	}
}

// Validate checks the fields required by the network-touching stages.
// Called before the first download, not at load time, so that cleanup
// and help work on an unfilled config.
func (c *Config) Validate() error {
	if c.Project.ArtifactURL == "" {
		return fmt.Errorf("project.artifact_url not set in %s", DefaultConfigFile)
	}
	if c.Project.DecompilerURL == "" {
		return fmt.Errorf("project.decompiler_url not set in %s", DefaultConfigFile)
	}
	if c.Project.GroupID == "" || c.Project.ArtifactID == "" || c.Project.Version == "" {
		return fmt.Errorf("project.group_id, project.artifact_id, and project.version must all be set in %s", DefaultConfigFile)
	}
	return nil
}

// ArtifactPath is the local cache path of the downloaded plugin jar.
func (c *Config) ArtifactPath() string {
	return filepath.Join(c.Dirs.Tools, c.Project.ArtifactID+"-"+c.Project.Version+".jar")
}

// DecompilerPath is the local cache path of the decompiler jar.
func (c *Config) DecompilerPath() string {
	return filepath.Join(c.Dirs.Tools, "decompiler.jar")
}

// BuiltJarPath is where the build tool leaves the patched jar.
func (c *Config) BuiltJarPath() string {
	return filepath.Join(c.Dirs.Work, "target", c.Project.ArtifactID+"-"+c.Project.Version+".jar")
}

// templatePath resolves a template filename inside the template dir.
func (c *Config) templatePath(name string) string {
	return filepath.Join(c.Templates.Dir, name)
}

// LoadConfig reads a configuration YAML file and returns a Config
// with defaults applied.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}
