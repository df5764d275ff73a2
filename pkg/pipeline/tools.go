// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import "fmt"

// Tools holds the resolved paths of the required external executables.
type Tools struct {
	Git    string
	Java   string
	Maven  string
	Astyle string
}

// LocateTools resolves every required external tool through PATH
// before any stage runs. The first missing tool aborts the whole run
// with an error naming it; nothing is retried.
func (p *Pipeline) LocateTools() error {
	for _, tool := range []struct {
		name string
		dst  *string
	}{
		{p.cfg.Tools.Git, &p.tools.Git},
		{p.cfg.Tools.Java, &p.tools.Java},
		{p.cfg.Tools.Maven, &p.tools.Maven},
		{p.cfg.Tools.Astyle, &p.tools.Astyle},
	} {
		path, err := p.look(tool.name)
		if err != nil {
			return fmt.Errorf("%w: %s is not in PATH", ErrToolMissing, tool.name)
		}
		*tool.dst = path
	}
	return nil
}
