// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package boards

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"sketchkit.sh/arduino"
	"sketchkit.sh/arduino/board"
	"sketchkit.sh/config"
	"sketchkit.sh/log"
)

type BoardsOptions struct {
	Dist string
}

func NewCmd() *cobra.Command {
	opts := &BoardsOptions{}

	cmd := &cobra.Command{
		Short:   "List the boards a distribution can build for",
		Use:     "boards",
		Aliases: []string{"models"},
		Args:    cobra.NoArgs,
		Long: heredoc.Doc(`
			List every board the configured Arduino distribution declares,
			along with the menu options each board exposes.
		`),
		Example: heredoc.Doc(`
			# List all known boards
			$ sketch boards

			# List the boards of a specific distribution
			$ sketch boards --dist ~/arduino-1.0.5
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Dist, "dist", "d", "", "Path to the Arduino distribution")

	return cmd
}

func (opts *BoardsOptions) Run(ctx context.Context, cmd *cobra.Command, _ []string) error {
	distDir := opts.Dist
	if distDir == "" {
		distDir = config.G(ctx).Paths.Dist
	}

	dist, err := arduino.OpenDist(distDir)
	if err != nil {
		return err
	}

	log.G(ctx).Debugf("loading board database from %s", dist.BoardsDir())

	db, err := board.Load(dist.BoardsDir())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), printBoards(dist, db))

	return nil
}

func printBoards(dist *arduino.Dist, db *board.File) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s (%s)", dist.BoardsDir(), dist.Version))

	for _, b := range db.Boards {
		branch := tree.AddBranch(fmt.Sprintf("%s: %s", b.ID, b.Name()))

		if protocol, ok := b.Upload().Get("protocol"); ok {
			branch.AddNode(fmt.Sprintf("upload via %s", protocol))
		}

		menu := b.Menu()
		if menu == nil {
			continue
		}

		for _, category := range menu.Keys() {
			title := category
			if t, ok := db.Titles.Get(category); ok {
				title = t
			}

			choices := menu.Sub(category)
			if choices.Len() == 0 {
				continue
			}

			sub := branch.AddBranch(fmt.Sprintf("%s (--menu %s:...)", title, category))
			for i, choice := range choices.Keys() {
				name := choiceName(choices, choice)
				// The first declared choice is what a build picks when
				// the category is left unselected.
				if i == 0 {
					name += " (default)"
				}
				sub.AddNode(fmt.Sprintf("%s: %s", choice, name))
			}
		}
	}

	return tree.String()
}

// choiceName digs out a choice's display name, which is either the scalar
// value itself or the name key of the choice's override fragment.
func choiceName(choices *board.Tree, choice string) string {
	if v, ok := choices.Get(choice); ok {
		return v
	}

	if sub := choices.Sub(choice); sub != nil {
		if v, ok := sub.Get("name"); ok {
			return v
		}
	}

	return choice
}
