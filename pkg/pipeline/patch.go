// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// rootCommit returns the work tree's single root commit, the clean
// baseline created by Decompile.
func (p *Pipeline) rootCommit() (string, error) {
	out, err := p.run.Output(p.cfg.Dirs.Work, p.tools.Git, "rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return "", fmt.Errorf("finding baseline commit: %w", err)
	}
	return out, nil
}

// listPatches returns the stored patch files as absolute paths in
// directory-listing (lexicographic) order, which is the apply order.
// A missing patch directory is an empty set.
func (p *Pipeline) listPatches() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.Dirs.Patches)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading patch dir: %w", err)
	}

	var patches []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".patch") {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(p.cfg.Dirs.Patches, e.Name()))
		if err != nil {
			return nil, err
		}
		patches = append(patches, abs)
	}
	return patches, nil
}

// ApplyPatches resets the work tree hard to the clean baseline,
// discarding any prior patch commits, then applies every stored patch
// in order as a mailbox commit. The first failing patch aborts the
// run and leaves the tree mid-apply so the conflict can be resolved
// with git am directly. An empty patch set leaves the tree at the
// baseline.
func (p *Pipeline) ApplyPatches() error {
	if err := p.Decompile(); err != nil {
		return err
	}
	work := p.cfg.Dirs.Work

	// A previous conflicted apply leaves an am session behind that
	// would block this one.
	_ = p.run.Run(work, p.tools.Git, "am", "--abort")

	root, err := p.rootCommit()
	if err != nil {
		return err
	}
	p.logf("apply: resetting %s to baseline %s", work, shortHash(root))
	if err := p.run.Run(work, p.tools.Git, "reset", "--hard", root); err != nil {
		return fmt.Errorf("resetting to baseline: %w", err)
	}

	patches, err := p.listPatches()
	if err != nil {
		return err
	}
	if len(patches) == 0 {
		p.logf("apply: no patches in %s, tree stays at the baseline", p.cfg.Dirs.Patches)
		return nil
	}
	for _, patch := range patches {
		p.logf("apply: %s", filepath.Base(patch))
		if err := p.run.Run(work, p.tools.Git, "am", patch); err != nil {
			return fmt.Errorf("%w: %s: %v (resolve in %s, then git am --continue)",
				ErrPatchConflict, filepath.Base(patch), err, work)
		}
	}
	p.logf("apply: %d patch(es) applied", len(patches))
	return nil
}

// RebuildPatches regenerates the stored patch set from the commits
// layered on the baseline. It applies the current set first so the
// tree reflects it, deletes the old patch files, then emits one patch
// per commit between the baseline (exclusive) and the tip, in
// chronological order, without diffstat headers. Filenames carry the
// sequence number and commit subject, which preserves apply order
// across regenerate cycles.
func (p *Pipeline) RebuildPatches() error {
	if err := p.ApplyPatches(); err != nil {
		return err
	}

	old, err := p.listPatches()
	if err != nil {
		return err
	}
	for _, f := range old {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("removing stale patch %s: %w", filepath.Base(f), err)
		}
	}

	root, err := p.rootCommit()
	if err != nil {
		return err
	}
	patchDir, err := filepath.Abs(p.cfg.Dirs.Patches)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(patchDir, 0o755); err != nil {
		return fmt.Errorf("creating patch dir: %w", err)
	}

	p.logf("rebuild: writing patches for %s..HEAD into %s", shortHash(root), patchDir)
	err = p.run.Run(p.cfg.Dirs.Work, p.tools.Git, "format-patch",
		"--no-stat", "-N", "-o", patchDir, root+"..HEAD")
	if err != nil {
		return fmt.Errorf("regenerating patches: %w", err)
	}
	return nil
}

// shortHash returns the first 12 characters of a commit hash for
// display, or the full string if it is shorter.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
