// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package sketch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sketchkit.sh/config"
	"sketchkit.sh/internal/cli/sketch/boards"
	"sketchkit.sh/internal/cli/sketch/build"
	"sketchkit.sh/internal/cli/sketch/clean"
	"sketchkit.sh/internal/cli/sketch/version"
	kitversion "sketchkit.sh/internal/version"
	"sketchkit.sh/log"
)

func NewCmd() *cobra.Command {
	var logLevel, logType string

	cmd := &cobra.Command{
		Short: "Prepare Arduino sketches for compilation without the IDE",
		Use:   "sketch [FLAGS] SUBCOMMAND",
		Long: heredoc.Docf(`
			Prepare Arduino sketches for compilation without the IDE:
			resolve board profiles against their menu options, assemble
			compiler and linker flag sequences, and work out which
			libraries a sketch uses and the order to link them in.

			Version: %s`, kitversion.Version()),
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if logLevel == "" && logType == "" {
				return
			}

			// Flags win over the configuration file and the
			// environment, so the logger is rebuilt with them.
			cfg := config.G(cmd.Context())
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if logType != "" {
				cfg.Log.Type = logType
			}

			cmd.SetContext(log.WithLogger(cmd.Context(), newLogger(cfg)))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "", "Log level verbosity")
	flags.StringVar(&logType, "log-type", "", "Log type")

	cmd.AddCommand(build.NewCmd())
	cmd.AddCommand(boards.NewCmd())
	cmd.AddCommand(clean.NewCmd())
	cmd.AddCommand(version.NewCmd())

	return cmd
}

func Main(args []string) int {
	cmd := NewCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgm, err := config.NewConfigManager(
		config.WithDefaultConfigFile(),
		config.WithFeeder(config.EnvFeeder{}),
	)
	if cfgm == nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx = config.WithConfigManager(ctx, cfgm)
	ctx = log.WithLogger(ctx, newLogger(cfgm.Config))

	// The manager falls back to defaults when feeding fails, which is
	// still worth a build, but the user should know why their settings
	// did not stick.
	if err != nil {
		log.G(ctx).Warnf("%v", err)
	}

	log.G(ctx).Debugf("sketchkit %s", kitversion.Version())

	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.G(ctx).Error(err)
		return 1
	}

	return 0
}

// newLogger configures the process logger from the log section of the
// configuration.
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, ok := log.Levels()[cfg.Log.Level]
	if !ok {
		level = logrus.InfoLevel
	}

	switch log.LoggerTypeFromString(cfg.Log.Type) {
	case log.QUIET:
		logger.Formatter = new(logrus.TextFormatter)
		level = logrus.ErrorLevel

	case log.BASIC:
		formatter := new(log.TextFormatter)
		formatter.FullTimestamp = true
		formatter.DisableColors = true
		formatter.DisableTimestamp = !cfg.Log.Timestamps
		logger.Formatter = formatter

	case log.FANCY:
		formatter := new(log.TextFormatter)
		formatter.FullTimestamp = true
		formatter.DisableTimestamp = !cfg.Log.Timestamps
		logger.Formatter = formatter

	case log.JSON:
		formatter := new(logrus.JSONFormatter)
		formatter.DisableTimestamp = !cfg.Log.Timestamps
		logger.Formatter = formatter
	}

	logger.Level = level

	return logger
}
