// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package clean

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sketchkit.sh/config"
	"sketchkit.sh/log"
)

type CleanOptions struct {
	BuildDir string
}

func NewCmd() *cobra.Command {
	opts := &CleanOptions{}

	cmd := &cobra.Command{
		Short: "Remove the build output of a sketch",
		Use:   "clean [FLAGS] [DIR]",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`
			Remove the build directory of the sketch in the current or the
			given directory.
		`),
		Example: heredoc.Doc(`
			# Clean the sketch in the current directory
			$ sketch clean

			# Clean a specific sketch
			$ sketch clean ~/sketchbook/Blink
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Directory holding build output")

	return cmd
}

func (opts *CleanOptions) Run(ctx context.Context, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = config.G(ctx).BuildDir
	}
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(dir, buildDir)
	}

	if _, err := os.Stat(buildDir); os.IsNotExist(err) {
		log.G(ctx).Debugf("build directory %s does not exist, nothing to clean", buildDir)
		return nil
	}

	var total uint64
	err := filepath.WalkDir(buildDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if info, err := d.Info(); err == nil {
			total += uint64(info.Size())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not measure build directory %s: %w", buildDir, err)
	}

	if err := os.RemoveAll(buildDir); err != nil {
		return fmt.Errorf("could not remove build directory %s: %w", buildDir, err)
	}

	log.G(ctx).Infof("removed %s (%s freed)", buildDir, humanize.Bytes(total))

	return nil
}
