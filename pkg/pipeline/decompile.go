// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// baselineCommitMsg is the message of the work tree's single root
// commit. Every patch commit is layered on top of it.
const baselineCommitMsg = "Decompiled baseline"

// Decompile produces the clean baseline: decompiled, formatted,
// relocated sources committed as the work tree's single root commit.
// Gated by the "decompile" task marker, which is set only after every
// step has succeeded; a failure leaves partial output in place for
// inspection and the next run starts the stage over.
func (p *Pipeline) Decompile() error {
	if p.tasks.IsDone(taskDecompile) {
		p.logf("decompile: already done, skipping")
		return nil
	}
	// Reject an unfilled config before anything is written to disk;
	// templates rendered with empty coordinates would persist and
	// poison later runs.
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	if err := p.materializeTemplates(); err != nil {
		return err
	}
	if err := p.DownloadArtifact(); err != nil {
		return err
	}
	if err := p.ensureDecompiler(); err != nil {
		return err
	}
	if err := p.runDecompiler(); err != nil {
		return err
	}
	if err := p.unpackSources(); err != nil {
		return err
	}
	if err := p.formatSources(); err != nil {
		return err
	}
	if err := p.relocateSources(); err != nil {
		return err
	}
	if err := p.rewriteManifestVersion(); err != nil {
		return err
	}
	if err := p.copyScaffold(); err != nil {
		return err
	}
	if err := p.commitBaseline(); err != nil {
		return err
	}
	return p.tasks.MarkDone(taskDecompile)
}

// stagingSrc is where the decompiled source jar gets unpacked.
func (p *Pipeline) stagingSrc() string {
	return filepath.Join(p.cfg.Dirs.Staging, "src")
}

// sourceJarPath is where the decompiler leaves its output: a jar of
// sources named after the input artifact.
func (p *Pipeline) sourceJarPath() string {
	return filepath.Join(p.cfg.Dirs.Staging, filepath.Base(p.cfg.ArtifactPath()))
}

// runDecompiler invokes the decompiler jar against the downloaded
// artifact, streaming its diagnostics to the terminal.
func (p *Pipeline) runDecompiler() error {
	if err := os.MkdirAll(p.cfg.Dirs.Staging, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", p.cfg.Dirs.Staging, err)
	}
	p.logf("decompile: running decompiler on %s", p.cfg.ArtifactPath())
	err := p.run.Stream("", p.tools.Java, "-jar", p.cfg.DecompilerPath(),
		p.cfg.ArtifactPath(), p.cfg.Dirs.Staging)
	if err != nil {
		return fmt.Errorf("%w: decompiler: %v", ErrDecompile, err)
	}
	return nil
}

// unpackSources extracts the decompiler's source jar into the staging
// source tree.
func (p *Pipeline) unpackSources() error {
	p.logf("decompile: unpacking %s", p.sourceJarPath())
	if err := unzip(p.sourceJarPath(), p.stagingSrc()); err != nil {
		return fmt.Errorf("%w: unpacking sources: %v", ErrDecompile, err)
	}
	return nil
}

// formatSources normalizes all decompiled Java sources with astyle
// and removes the .orig backups it leaves behind.
func (p *Pipeline) formatSources() error {
	src := p.stagingSrc()
	p.logf("decompile: formatting sources under %s", src)
	err := p.run.Run("", p.tools.Astyle,
		"--options="+p.cfg.templatePath(p.cfg.Templates.FormatterConfig),
		"--recursive", filepath.Join(src, "*.java"))
	if err != nil {
		return fmt.Errorf("%w: astyle: %v", ErrFormat, err)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".orig") {
			return os.Remove(path)
		}
		return nil
	})
}

// relocateSources lays the staged files out as a conventional Maven
// tree: .java files under src/main/java, everything else under
// src/main/resources. META-INF is dropped since the build regenerates
// jar metadata.
func (p *Pipeline) relocateSources() error {
	src := p.stagingSrc()
	javaDir := filepath.Join(p.cfg.Dirs.Work, "src", "main", "java")
	resDir := filepath.Join(p.cfg.Dirs.Work, "src", "main", "resources")
	p.logf("decompile: relocating sources into %s", p.cfg.Dirs.Work)

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "META-INF" || strings.HasPrefix(rel, "META-INF"+string(os.PathSeparator)) {
			return nil
		}
		dest := filepath.Join(resDir, rel)
		if strings.HasSuffix(rel, ".java") {
			dest = filepath.Join(javaDir, rel)
		}
		return copyFile(path, dest)
	})
}

// rewriteManifestVersion replaces the plugin manifest's declared
// version with the Maven placeholder so the built jar reports the
// project version. Only the top-level version key is touched.
func (p *Pipeline) rewriteManifestVersion() error {
	manifest := filepath.Join(p.cfg.Dirs.Work, "src", "main", "resources", "plugin.yml")
	data, err := os.ReadFile(manifest)
	if err != nil {
		return fmt.Errorf("reading plugin manifest: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	rewritten := false
	for i, line := range lines {
		if strings.HasPrefix(line, "version:") {
			lines[i] = "version: ${project.version}"
			rewritten = true
			break
		}
	}
	if !rewritten {
		p.logf("warning: no declared version line in %s; the built jar will not carry the project version", manifest)
	}
	return os.WriteFile(manifest, []byte(strings.Join(lines, "\n")), 0o644)
}

// copyScaffold overwrites the extracted ignore rules and build
// descriptor with the template versions.
func (p *Pipeline) copyScaffold() error {
	work := p.cfg.Dirs.Work
	if err := copyFile(p.cfg.templatePath(p.cfg.Templates.Ignore), filepath.Join(work, ".gitignore")); err != nil {
		return fmt.Errorf("copying ignore template: %w", err)
	}
	if err := copyFile(p.cfg.templatePath(p.cfg.Templates.BuildDescriptor), filepath.Join(work, "pom.xml")); err != nil {
		return fmt.Errorf("copying build descriptor template: %w", err)
	}
	return nil
}

// commitBaseline initializes version control in the work tree, stages
// the allow-listed files, and creates the single root commit. Anything
// the allow-list did not capture is discarded afterwards so the
// baseline is exactly what was committed.
func (p *Pipeline) commitBaseline() error {
	work := p.cfg.Dirs.Work
	p.logf("decompile: committing clean baseline in %s", work)

	if err := p.run.Run(work, p.tools.Git, "init"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return p.withSigningDisabled(work, func() error {
		files, err := p.readFileList()
		if err != nil {
			return err
		}
		for _, f := range files {
			if err := p.run.Run(work, p.tools.Git, "add", f); err != nil {
				return fmt.Errorf("staging %s: %w", f, err)
			}
		}
		if err := p.run.Run(work, p.tools.Git, "commit", "-m", baselineCommitMsg); err != nil {
			return fmt.Errorf("committing baseline: %w", err)
		}
		if err := p.run.Run(work, p.tools.Git, "checkout", "--", "."); err != nil {
			return fmt.Errorf("discarding unstaged changes: %w", err)
		}
		if err := p.run.Run(work, p.tools.Git, "clean", "-fd"); err != nil {
			return fmt.Errorf("removing untracked files: %w", err)
		}
		return nil
	})
}

// withSigningDisabled runs fn with commit.gpgsign forced off when the
// user's git config enables it. The original setting is restored on
// every exit path, success or failure, via the deferred unset.
func (p *Pipeline) withSigningDisabled(dir string, fn func() error) error {
	out, err := p.run.Output(dir, p.tools.Git, "config", "--get", "commit.gpgsign")
	if err != nil || out != "true" {
		return fn()
	}
	if err := p.run.Run(dir, p.tools.Git, "config", "--local", "commit.gpgsign", "false"); err != nil {
		return fmt.Errorf("disabling commit signing: %w", err)
	}
	defer func() {
		if err := p.run.Run(dir, p.tools.Git, "config", "--local", "--unset", "commit.gpgsign"); err != nil {
			p.logf("warning: could not restore commit.gpgsign: %v", err)
		}
	}()
	return fn()
}

// readFileList parses the allow-list template: one path per line,
// blank lines and # comments skipped.
func (p *Pipeline) readFileList() ([]string, error) {
	path := p.cfg.templatePath(p.cfg.Templates.FileList)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file allow-list: %w", err)
	}

	var files []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	return files, nil
}
