// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package version

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"sketchkit.sh/internal/version"
)

type VersionOptions struct{}

func NewCmd() *cobra.Command {
	opts := &VersionOptions{}

	return &cobra.Command{
		Short:   "Show sketch version information",
		Use:     "version",
		Aliases: []string{"v"},
		Args:    cobra.NoArgs,
		Long:    "Show sketch version information.",
		Example: heredoc.Doc(`
			# Show sketch version information
			$ sketch version
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd, args)
		},
	}
}

func (opts *VersionOptions) Run(_ context.Context, cmd *cobra.Command, _ []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "sketch %s", version.String())
	return nil
}
