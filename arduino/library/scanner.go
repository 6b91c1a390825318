// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package library

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sketchkit.sh/exec"
)

// DefaultScannerBin is the compiler driver used for dependency scans when
// no other binary is configured.
const DefaultScannerBin = "avr-gcc"

// Scanner produces a textual dependency listing for the sources directly
// under a root directory.  A failed scan is fatal to resolution.
type Scanner interface {
	Scan(ctx context.Context, root string, includeFlags []string) ([]byte, error)
}

// CCScanner asks a GCC-compatible compiler driver for the include closure
// of a directory's sources.  Scanning with -MM -MG keeps system headers out
// of the listing and emits rules even while some headers are still
// unresolvable.
type CCScanner struct {
	bin    string
	extra  []string
	stderr io.Writer
}

// CCScannerOption configures a CCScanner.
type CCScannerOption func(*CCScanner) error

// NewCCScanner instantiates a scanner with the given options.
func NewCCScanner(opts ...CCScannerOption) (*CCScanner, error) {
	scanner := &CCScanner{
		bin:    DefaultScannerBin,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		if err := opt(scanner); err != nil {
			return nil, err
		}
	}

	return scanner, nil
}

// WithBin sets the compiler driver binary to invoke.
func WithBin(bin string) CCScannerOption {
	return func(scanner *CCScanner) error {
		if bin == "" {
			return fmt.Errorf("scanner binary cannot be empty")
		}

		scanner.bin = bin

		return nil
	}
}

// WithExtraFlags passes additional flags to the compiler driver ahead of
// the include flags, e.g. an -mmcu selection the preprocessor needs.
func WithExtraFlags(flags ...string) CCScannerOption {
	return func(scanner *CCScanner) error {
		scanner.extra = append(scanner.extra, flags...)
		return nil
	}
}

// WithStderr redirects the compiler driver's diagnostics.
func WithStderr(w io.Writer) CCScannerOption {
	return func(scanner *CCScanner) error {
		scanner.stderr = w
		return nil
	}
}

// Scan implements Scanner.  Only sources directly under root participate;
// a directory without any yields an empty listing.
func (scanner *CCScanner) Scan(ctx context.Context, root string, includeFlags []string) ([]byte, error) {
	cSources, cxxSources, err := listSources(root)
	if err != nil {
		return nil, err
	}
	if len(cSources) == 0 && len(cxxSources) == 0 {
		return nil, nil
	}

	args := []string{"-MM", "-MG"}
	args = append(args, scanner.extra...)
	args = append(args, includeFlags...)
	args = append(args, cSources...)
	if len(cxxSources) > 0 {
		// Sketch sources carry non-standard extensions, so force the
		// language instead of trusting the suffix.
		args = append(args, "-x", "c++")
		args = append(args, cxxSources...)
	}

	var listing bytes.Buffer

	stderr := scanner.stderr
	if stderr == nil {
		stderr = io.Discard
	}

	process, err := exec.NewProcess(
		scanner.bin,
		args,
		exec.WithStdout(&listing),
		exec.WithStderr(stderr),
	)
	if err != nil {
		return nil, err
	}

	if err := process.StartAndWait(ctx); err != nil {
		return nil, fmt.Errorf("could not scan dependencies of %s: %w", root, err)
	}

	return listing.Bytes(), nil
}

func listSources(root string) ([]string, []string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("could not list sources in %s: %w", root, err)
	}

	var cSources, cxxSources []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".c":
			cSources = append(cSources, filepath.Join(root, name))
		case ".cpp", ".ino", ".pde":
			cxxSources = append(cxxSources, filepath.Join(root, name))
		}
	}

	return cSources, cxxSources, nil
}
