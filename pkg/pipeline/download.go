// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// download fetches url into dest, overwriting it unconditionally.
// Skip-if-cached decisions belong to the callers, via the task
// tracker or file presence.
func (p *Pipeline) download(url, dest string) error {
	p.logf("download: %s -> %s", url, dest)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("%w: fetching %s: %v", ErrNetwork, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: fetching %s: HTTP %s", ErrNetwork, url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %v", ErrNetwork, dest, err)
	}
	return f.Close()
}

// DownloadArtifact fetches the plugin jar and registers it with the
// local Maven repository so the generated build descriptor can depend
// on it. Gated by the "download" task marker.
func (p *Pipeline) DownloadArtifact() error {
	if p.tasks.IsDone(taskDownload) {
		p.logf("download: already done, skipping")
		return nil
	}
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	if err := p.download(p.cfg.Project.ArtifactURL, p.cfg.ArtifactPath()); err != nil {
		return err
	}
	if err := p.registerArtifact(); err != nil {
		return err
	}
	return p.tasks.MarkDone(taskDownload)
}

// registerArtifact installs the downloaded jar into the local Maven
// repository under the configured coordinates.
func (p *Pipeline) registerArtifact() error {
	pr := p.cfg.Project
	p.logf("download: registering %s:%s:%s with the local maven repository",
		pr.GroupID, pr.ArtifactID, pr.Version)
	err := p.run.Run("", p.tools.Maven, "-B", "install:install-file",
		"-Dfile="+p.cfg.ArtifactPath(),
		"-DgroupId="+pr.GroupID,
		"-DartifactId="+pr.ArtifactID,
		"-Dversion="+pr.Version,
		"-Dpackaging=jar")
	if err != nil {
		return fmt.Errorf("registering artifact with maven: %w", err)
	}
	return nil
}

// ensureDecompiler fetches the decompiler jar unless a cached copy is
// already present.
func (p *Pipeline) ensureDecompiler() error {
	if _, err := os.Stat(p.cfg.DecompilerPath()); err == nil {
		return nil
	}
	return p.download(p.cfg.Project.DecompilerURL, p.cfg.DecompilerPath())
}
