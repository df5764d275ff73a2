// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import "fmt"

// BuildJar runs the external build against the fully patched tree and
// reports the output jar location. The build tool's diagnostics
// stream straight to the terminal; a non-zero exit aborts with no
// retry, since build failures always need human attention.
func (p *Pipeline) BuildJar() error {
	if err := p.ApplyPatches(); err != nil {
		return err
	}
	work := p.cfg.Dirs.Work
	p.logf("build: running maven in %s", work)
	if err := p.run.Stream(work, p.tools.Maven, "-B", "clean", "package"); err != nil {
		return fmt.Errorf("%w: %v", ErrBuildFailure, err)
	}
	p.logf("build: done, output at %s", p.cfg.BuiltJarPath())
	return nil
}
