// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed templates/pom.xml
var defaultBuildDescriptor string

//go:embed templates/gitignore
var defaultIgnore string

//go:embed templates/astylerc
var defaultFormatterConfig string

//go:embed templates/files.txt
var defaultFileList string

// templateData is passed to the embedded scaffold templates.
type templateData struct {
	Name       string
	GroupID    string
	ArtifactID string
	Version    string
}

// materializeTemplates writes any missing scaffold file into the
// template directory from its embedded default, rendered with the
// project coordinates. Files already present belong to the user and
// are left untouched.
func (p *Pipeline) materializeTemplates() error {
	data := templateData{
		Name:       p.cfg.Project.Name,
		GroupID:    p.cfg.Project.GroupID,
		ArtifactID: p.cfg.Project.ArtifactID,
		Version:    p.cfg.Project.Version,
	}
	for name, tmpl := range map[string]string{
		p.cfg.Templates.BuildDescriptor: defaultBuildDescriptor,
		p.cfg.Templates.Ignore:          defaultIgnore,
		p.cfg.Templates.FormatterConfig: defaultFormatterConfig,
		p.cfg.Templates.FileList:        defaultFileList,
	} {
		path := p.cfg.templatePath(name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		p.logf("templates: writing default %s", path)
		if err := writeTemplate(path, tmpl, data); err != nil {
			return fmt.Errorf("materializing template %s: %w", name, err)
		}
	}
	return nil
}

// writeTemplate renders tmpl with data and writes it to path,
// creating parent directories as needed.
func writeTemplate(path, tmpl string, data templateData) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
