// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/patchsmith/pkg/pipeline"
)

var (
	cfgFile string
	verbose bool

	cfg    pipeline.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "patchsmith",
	Short: "Download, decompile, patch, and rebuild a plugin jar",
	Long: `patchsmith turns a compiled plugin jar into a patchable project.

It downloads the artifact, decompiles it, normalizes the sources, and
commits them as a clean git baseline. Stored patches are then applied
on top as mailbox commits, and the patched tree is rebuilt with Maven.
Patches can be regenerated from commits made on the work tree.

Stages record completion markers on disk, so re-running a command
skips work that is already done. Use cleanup to force a fresh run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := initLogger(); err != nil {
			return err
		}
		if cfgFile == pipeline.DefaultConfigFile {
			if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
				if err := pipeline.WriteDefaultConfig(cfgFile); err != nil {
					return fmt.Errorf("creating %s: %w", cfgFile, err)
				}
				fmt.Fprintf(os.Stderr, "created default %s; fill in the project section\n", cfgFile)
			}
		}
		var err error
		cfg, err = pipeline.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", cfgFile, err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func initLogger() error {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	return nil
}

// newPipeline builds a Pipeline from the loaded config with every
// required external tool resolved. A missing tool aborts here, before
// any stage runs.
func newPipeline() (*pipeline.Pipeline, error) {
	p := pipeline.New(cfg)
	p.SetLogger(logger)
	if err := p.LocateTools(); err != nil {
		return nil, err
	}
	return p, nil
}

// runStage wires a pipeline method into a cobra RunE.
func runStage(stage func(*pipeline.Pipeline) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		return stage(p)
	}
}

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"jar", "j"},
	Short:   "Run the full pipeline and build the patched jar",
	Args:    cobra.NoArgs,
	RunE:    runStage((*pipeline.Pipeline).BuildJar),
}

var applyCmd = &cobra.Command{
	Use:     "apply",
	Aliases: []string{"patches", "p"},
	Short:   "Reset to the baseline and apply the stored patch set",
	Args:    cobra.NoArgs,
	RunE:    runStage((*pipeline.Pipeline).ApplyPatches),
}

var decompileCmd = &cobra.Command{
	Use:     "decompile",
	Aliases: []string{"dec"},
	Short:   "Fetch, decompile, normalize, and commit the clean baseline",
	Args:    cobra.NoArgs,
	RunE:    runStage((*pipeline.Pipeline).Decompile),
}

var recompileCmd = &cobra.Command{
	Use:     "recompile",
	Aliases: []string{"rec"},
	Short:   "Recompile the work tree in place (not implemented)",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("recompile: not implemented")
	},
}

var rebuildCmd = &cobra.Command{
	Use:     "rebuild",
	Aliases: []string{"reb"},
	Short:   "Regenerate the stored patch set from work tree commits",
	Args:    cobra.NoArgs,
	RunE:    runStage((*pipeline.Pipeline).RebuildPatches),
}

var downloadCmd = &cobra.Command{
	Use:     "download",
	Aliases: []string{"dl"},
	Short:   "Fetch the artifact and register it with the local Maven repository",
	Args:    cobra.NoArgs,
	RunE:    runStage((*pipeline.Pipeline).DownloadArtifact),
}

var cleanupCmd = &cobra.Command{
	Use:     "cleanup",
	Aliases: []string{"clean", "c"},
	Short:   "Delete all generated and working state",
	Args:    cobra.NoArgs,
	RunE:    runStage((*pipeline.Pipeline).Cleanup),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", pipeline.DefaultConfigFile, "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.SetHelpCommand(&cobra.Command{
		Use:     "help [command]",
		Aliases: []string{"h"},
		Short:   "Help about any command",
		Run: func(cmd *cobra.Command, args []string) {
			target, _, err := cmd.Root().Find(args)
			if target == nil || err != nil {
				cmd.Printf("unknown help topic %q\n", args)
				_ = cmd.Root().Usage()
				return
			}
			_ = target.Help()
		},
	})

	rootCmd.AddCommand(
		buildCmd,
		applyCmd,
		decompileCmd,
		recompileCmd,
		rebuildCmd,
		downloadCmd,
		cleanupCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
