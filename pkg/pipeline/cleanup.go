// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"os"
)

// Cleanup unconditionally removes all generated state: task markers,
// the work tree, decompiler staging, and downloaded tools. The stored
// patch set is the durable input and is kept. Irreversible; the next
// pipeline run starts from scratch.
func (p *Pipeline) Cleanup() error {
	for _, dir := range []string{
		p.cfg.Dirs.Tasks,
		p.cfg.Dirs.Work,
		p.cfg.Dirs.Staging,
		p.cfg.Dirs.Tools,
	} {
		p.logf("cleanup: removing %s", dir)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
