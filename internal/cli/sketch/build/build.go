// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"sketchkit.sh/arduino"
	"sketchkit.sh/arduino/board"
	"sketchkit.sh/arduino/library"
	"sketchkit.sh/arduino/toolchain"
	"sketchkit.sh/config"
	"sketchkit.sh/log"
)

type BuildOptions struct {
	Board      string
	Menu       *board.Selection
	Dist       string
	Sketchbook string
	BuildDir   string
	ScannerBin string
	DryRun     bool
}

func NewCmd() *cobra.Command {
	opts := &BuildOptions{
		Menu: board.NewSelection(),
	}

	cmd := &cobra.Command{
		Short: "Prepare a sketch for compilation",
		Use:   "build [FLAGS] [DIR]",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`
			Prepare the sketch in the current or the given directory for
			compilation: resolve the board profile against its menu options,
			assemble the compiler and linker flag sequences, scan which
			libraries the sources use and derive their link order, and write
			the resulting build plan into the build directory.
		`),
		Example: heredoc.Doc(`
			# Prepare the sketch in the current directory for the default board
			$ sketch build

			# Prepare a specific sketch for an Arduino Pro with a chosen cpu
			$ sketch build --board pro --menu cpu:atmega328 ~/sketchbook/Blink

			# Show the build plan without writing it
			$ sketch build --dry-run
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd.Context(), cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Board, "board", "b", "", "Board model to build for")
	flags.VarP(&menuValue{opts.Menu}, "menu", "m", "Menu choice as category:choice (repeatable)")
	flags.StringVarP(&opts.Dist, "dist", "d", "", "Path to the Arduino distribution")
	flags.StringVar(&opts.Sketchbook, "sketchbook", "", "Path to the sketchbook with user libraries")
	flags.StringVar(&opts.BuildDir, "build-dir", "", "Directory for build output")
	flags.StringVar(&opts.ScannerBin, "scanner-bin", "", "Compiler driver used for dependency scans")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Print the build plan instead of writing it")

	return cmd
}

// menuValue accumulates repeated --menu flags into one selection.
type menuValue struct {
	sel *board.Selection
}

func (m *menuValue) String() string {
	return m.sel.String()
}

func (m *menuValue) Set(raw string) error {
	m.sel.Parse(raw)
	return nil
}

func (m *menuValue) Type() string {
	return "category:choice"
}

func (opts *BuildOptions) Run(ctx context.Context, cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	c := *config.G(ctx)

	project, err := config.LoadProject(dir)
	if err != nil {
		return err
	}
	if err := project.ApplyTo(&c); err != nil {
		return err
	}

	// Command-line flags beat both the project and the tool configuration.
	if opts.Board != "" {
		c.Board = opts.Board
	}
	if opts.Dist != "" {
		c.Paths.Dist = opts.Dist
	}
	if opts.Sketchbook != "" {
		c.Paths.Sketchbook = opts.Sketchbook
	}
	if opts.BuildDir != "" {
		c.BuildDir = opts.BuildDir
	}
	if opts.ScannerBin != "" {
		c.Scanner.Bin = opts.ScannerBin
	}

	selection := board.ParseSelection(c.Menu)
	selection.Parse(opts.Menu.String())

	dist, err := arduino.OpenDist(c.Paths.Dist)
	if err != nil {
		return err
	}

	log.G(ctx).Infof("using arduino distribution %s (%s)", dist.Root, dist.Version)

	db, err := board.Load(dist.BoardsDir())
	if err != nil {
		return err
	}

	b, ok := db.Board(c.Board)
	if !ok {
		return fmt.Errorf("unknown board %q, run 'sketch boards' to list the available models", c.Board)
	}

	resolved, err := b.Resolve(ctx, selection)
	if err != nil {
		return err
	}

	log.G(ctx).Infof("building for %s", resolved.Name())

	core, _ := resolved.BuildField("core")
	coreDir := dist.CoreDir(core)

	asm, err := toolchain.Assemble(ctx, resolved,
		toolchain.WithVersion(dist.Version),
		toolchain.WithCoreDir(coreDir),
		toolchain.WithVariantsDir(dist.VariantsDir()),
		toolchain.WithUserCPPFlags(c.Flags.CPP),
		toolchain.WithUserCFlags(c.Flags.C),
		toolchain.WithUserCXXFlags(c.Flags.CXX),
		toolchain.WithUserLDFlags(c.Flags.LD),
	)
	if err != nil {
		return err
	}

	srcDir, err := sourceDir(dir)
	if err != nil {
		return err
	}

	candidates := []string{coreDir}
	candidates = append(candidates, subdirs(filepath.Join(dir, "lib"))...)
	candidates = append(candidates, subdirs(filepath.Join(c.Paths.Sketchbook, arduino.LibrariesDir))...)
	candidates = append(candidates, subdirs(dist.LibrariesDir())...)

	scanner, err := library.NewCCScanner(library.WithBin(c.Scanner.Bin))
	if err != nil {
		return err
	}

	libs, err := library.Resolve(ctx, srcDir, candidates, asm.IncludeFlag, scanner,
		library.WithExcludePatterns(c.Scanner.Excludes...))
	if err != nil {
		return err
	}

	for _, lib := range libs {
		log.G(ctx).Infof("using library %s", lib)
	}

	excludes, err := library.CompileExcludes(c.Scanner.Excludes)
	if err != nil {
		return err
	}
	libFlags, err := library.IncludeFlags(asm.IncludeFlag, libs, excludes)
	if err != nil {
		return err
	}
	asm.IncludeLibraries(libFlags)

	buildDir := c.BuildDir
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(dir, buildDir)
	}

	plan := &toolchain.Plan{
		Board:       resolved.ID,
		Name:        resolved.Name(),
		Version:     dist.Version.String(),
		Src:         srcDir,
		BuildDir:    buildDir,
		CoreDir:     coreDir,
		Flags:       asm.Flags,
		Naming:      asm.Naming,
		IncludeFlag: asm.IncludeFlag,
		Libraries:   libs,
	}

	if opts.DryRun {
		data, err := plan.Serialize()
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), string(data))

		return nil
	}

	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return fmt.Errorf("could not create build directory %s: %w", buildDir, err)
	}

	planFile := filepath.Join(buildDir, arduino.PlanFile)
	if err := plan.Write(planFile); err != nil {
		return err
	}

	log.G(ctx).Infof("wrote build plan to %s", planFile)

	return nil
}

// sourceDir picks where the sketch sources live: a src subdirectory when
// the sketch has one, otherwise the sketch directory itself.
func sourceDir(dir string) (string, error) {
	if src := filepath.Join(dir, "src"); hasSources(src) {
		return src, nil
	}
	if hasSources(dir) {
		return dir, nil
	}

	return "", fmt.Errorf("no sketch sources (*.ino, *.pde, *.c, *.cpp) found in %s", dir)
}

func hasSources(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".c", ".cpp", ".ino", ".pde":
			return true
		}
	}

	return false
}

// subdirs lists the immediate visible subdirectories of a library tier.
// Tiers that do not exist contribute nothing.
func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, entry.Name()))
	}

	return dirs
}
