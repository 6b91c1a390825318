// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package toolchain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is the handoff to the downstream compile driver: everything it needs
// to compile and link one sketch without re-deriving configuration.
type Plan struct {
	// Board is the database identifier of the resolved board.
	Board string `yaml:"board"`

	// Name is the board's display name.
	Name string `yaml:"name"`

	// Version is the platform release the flags were derived for.
	Version string `yaml:"version"`

	// Src is the sketch source directory.
	Src string `yaml:"src"`

	// BuildDir is where the driver places its artifacts.
	BuildDir string `yaml:"build_dir"`

	// CoreDir is the platform core source directory, when known.
	CoreDir string `yaml:"core_dir,omitempty"`

	// Flags are the four ordered flag sequences of the build.
	Flags Flags `yaml:"flags"`

	// Naming is the output naming scheme of the build.
	Naming Naming `yaml:"naming"`

	// IncludeFlag is the include-path prefix used throughout the build.
	IncludeFlag string `yaml:"incflag"`

	// Libraries are the used library directories in link order: a library
	// precedes everything it depends on.
	Libraries []string `yaml:"libraries,omitempty"`
}

// Serialize renders the plan as YAML.
func (p *Plan) Serialize() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not serialize build plan: %w", err)
	}

	return data, nil
}

// Write serializes the plan to a file.
func (p *Plan) Write(path string) error {
	data, err := p.Serialize()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write build plan %s: %w", path, err)
	}

	return nil
}
