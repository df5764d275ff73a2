// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// TaskTracker records one-shot completion of pipeline stages as empty
// marker files, one per task name. Markers survive process restarts;
// later invocations use them to skip already-completed work. Only
// Cleanup removes them.
type TaskTracker struct {
	dir string
}

// NewTaskTracker returns a tracker rooted at dir. The directory is
// created on first MarkDone, not here.
func NewTaskTracker(dir string) TaskTracker {
	return TaskTracker{dir: dir}
}

// IsDone reports whether the named task has completed.
func (t TaskTracker) IsDone(name string) bool {
	_, err := os.Stat(filepath.Join(t.dir, name))
	return err == nil
}

// MarkDone records the named task as completed, creating the tracking
// directory on demand.
func (t TaskTracker) MarkDone(name string) error {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return fmt.Errorf("creating task dir %s: %w", t.dir, err)
	}
	if err := os.WriteFile(filepath.Join(t.dir, name), nil, 0o644); err != nil {
		return fmt.Errorf("marking task %s done: %w", name, err)
	}
	return nil
}
