// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/imdario/mergo"
	"gopkg.in/yaml.v3"

	"sketchkit.sh/arduino"
)

// Project is the per-sketch configuration read from a sketch.yml at the
// sketch root.  Any value set here overrides the tool configuration for
// builds of that sketch.
type Project struct {
	Board string `yaml:"board,omitempty"`
	Menu  string `yaml:"menu,omitempty"`

	Paths struct {
		Dist       string `yaml:"dist,omitempty"`
		Sketchbook string `yaml:"sketchbook,omitempty"`
	} `yaml:"paths,omitempty"`

	Flags struct {
		CPP string `yaml:"cppflags,omitempty"`
		C   string `yaml:"cflags,omitempty"`
		CXX string `yaml:"cxxflags,omitempty"`
		LD  string `yaml:"ldflags,omitempty"`
	} `yaml:"flags,omitempty"`
}

// LoadProject reads the project configuration of the sketch at dir.  A
// sketch without one yields nil, which is safe to apply.
func LoadProject(dir string) (*Project, error) {
	file := filepath.Join(dir, arduino.ProjectFile)

	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("could not read project file %s: %w", file, err)
	}

	project := &Project{}
	if err := yaml.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("could not parse project file %s: %w", file, err)
	}

	return project, nil
}

// ApplyTo folds the project's values over the given configuration, letting
// set project values win and leaving the rest untouched.
func (p *Project) ApplyTo(c *Config) error {
	if p == nil {
		return nil
	}

	overlay := Config{
		Board: p.Board,
		Menu:  p.Menu,
	}
	overlay.Paths.Dist = p.Paths.Dist
	overlay.Paths.Sketchbook = p.Paths.Sketchbook
	overlay.Flags.CPP = p.Flags.CPP
	overlay.Flags.C = p.Flags.C
	overlay.Flags.CXX = p.Flags.CXX
	overlay.Flags.LD = p.Flags.LD

	if err := mergo.Merge(c, &overlay, mergo.WithOverride); err != nil {
		return fmt.Errorf("could not apply project configuration: %w", err)
	}

	return nil
}
