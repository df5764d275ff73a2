// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"go.uber.org/zap"
)

// Task marker names. Existence of the marker file means the stage
// completed; Cleanup is the only thing that removes them.
const (
	taskDownload  = "download"
	taskDecompile = "decompile"
)

// Pipeline sequences the download -> decompile -> patch -> build
// workflow over an on-disk work tree. Create one with New() and call
// its stage methods from CLI commands. Stages are marker-gated and
// safe to invoke repeatedly; every failure is fatal and propagates
// unchanged to the caller.
type Pipeline struct {
	cfg   Config
	run   Runner
	look  LookPathFunc
	tools Tools
	tasks TaskTracker
	log   *zap.SugaredLogger
}

// New creates a Pipeline with the given configuration. It applies
// defaults to any zero-value Config fields. Logging is discarded
// until SetLogger is called.
func New(cfg Config) *Pipeline {
	cfg.applyDefaults()
	return &Pipeline{
		cfg:   cfg,
		run:   execRunner{},
		look:  defaultLookPath,
		tasks: NewTaskTracker(cfg.Dirs.Tasks),
		log:   zap.NewNop().Sugar(),
	}
}

// Config returns a copy of the Pipeline's configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// SetLogger routes pipeline log output through the given zap logger.
func (p *Pipeline) SetLogger(l *zap.Logger) { p.log = l.Sugar() }

// SetRunner substitutes the external command runner. Tests use this
// to script git, decompiler, and build tool behavior without the
// tools installed.
func (p *Pipeline) SetRunner(r Runner) { p.run = r }

// SetLookPath substitutes executable resolution for tests.
func (p *Pipeline) SetLookPath(f LookPathFunc) { p.look = f }

// logf prints a formatted log line through the configured logger.
func (p *Pipeline) logf(format string, args ...any) {
	p.log.Infof(format, args...)
}
