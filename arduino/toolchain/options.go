// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package toolchain

import (
	"fmt"

	"github.com/mattn/go-shellwords"

	"sketchkit.sh/arduino"
)

// AssembleOptions collects the build-invocation inputs flag assembly needs
// beyond the board profile itself.
type AssembleOptions struct {
	// Version of the platform the sketch is built against.
	Version *arduino.PlatformVersion

	// CoreDir is the platform's core source directory for the board.
	CoreDir string

	// VariantsDir is the platform's variant pin-mapping directory.
	VariantsDir string

	// LinkScript overrides the resolved path of the profile's link script.
	LinkScript string

	// User-supplied flag tokens per sequence.
	UserCPP []string
	UserC   []string
	UserCXX []string
	UserLD  []string
}

type AssembleOption func(*AssembleOptions) error

// WithVersion sets the platform version the sketch is built against.
func WithVersion(version *arduino.PlatformVersion) AssembleOption {
	return func(o *AssembleOptions) error {
		if version == nil {
			return fmt.Errorf("cannot assemble flags with a nil platform version")
		}

		o.Version = version

		return nil
	}
}

// WithCoreDir sets the platform core source directory included on every
// compilation unit.
func WithCoreDir(dir string) AssembleOption {
	return func(o *AssembleOptions) error {
		o.CoreDir = dir
		return nil
	}
}

// WithVariantsDir sets the directory holding per-board variant pin mappings.
func WithVariantsDir(dir string) AssembleOption {
	return func(o *AssembleOptions) error {
		o.VariantsDir = dir
		return nil
	}
}

// WithLinkScript overrides the path used for the -T linker token when the
// profile names a link script.
func WithLinkScript(path string) AssembleOption {
	return func(o *AssembleOptions) error {
		o.LinkScript = path
		return nil
	}
}

// WithUserCPPFlags tokenizes a raw user flag string for the preprocessor
// sequence.
func WithUserCPPFlags(raw string) AssembleOption {
	return func(o *AssembleOptions) (err error) {
		o.UserCPP, err = splitFlags(raw)
		return err
	}
}

// WithUserCFlags tokenizes a raw user flag string for the C-only sequence.
func WithUserCFlags(raw string) AssembleOption {
	return func(o *AssembleOptions) (err error) {
		o.UserC, err = splitFlags(raw)
		return err
	}
}

// WithUserCXXFlags tokenizes a raw user flag string for the C++-only
// sequence.
func WithUserCXXFlags(raw string) AssembleOption {
	return func(o *AssembleOptions) (err error) {
		o.UserCXX, err = splitFlags(raw)
		return err
	}
}

// WithUserLDFlags tokenizes a raw user flag string for the linker sequence.
// Each token is later prefixed for pass-through to the underlying linker.
func WithUserLDFlags(raw string) AssembleOption {
	return func(o *AssembleOptions) (err error) {
		o.UserLD, err = splitFlags(raw)
		return err
	}
}

func splitFlags(raw string) ([]string, error) {
	tokens, err := shellwords.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("could not tokenize flags %q: %w", raw, err)
	}

	return tokens, nil
}
