// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package arduino

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// DefaultCore is the core a board profile builds against when its profile
// does not name one.
const DefaultCore = "arduino"

// DefaultDistDirs are searched, in order, when no distribution directory
// is configured.
var DefaultDistDirs = []string{
	"/usr/local/share/arduino",
	"/usr/share/arduino",
	"/opt/arduino",
	"/Applications/Arduino.app/Contents/Resources/Java",
	"~/Applications/Arduino.app/Contents/Resources/Java",
}

// Dist is an installed platform distribution: the tree shipping the board
// database, cores, variants and bundled libraries.
type Dist struct {
	Root    string
	Version *PlatformVersion
}

// OpenDist opens the distribution at root, falling back to searching
// DefaultDistDirs when root is empty.  The platform release is detected
// from the tree itself.
func OpenDist(root string) (*Dist, error) {
	if root == "" {
		var err error
		if root, err = FindDist(); err != nil {
			return nil, err
		}
	} else if expanded, err := homedir.Expand(root); err == nil {
		root = expanded
	}

	if !IsDist(root) {
		return nil, fmt.Errorf(
			"%s does not look like an arduino distribution (missing %s)",
			root, filepath.Join("hardware", DefaultCore, BoardsFile),
		)
	}

	return &Dist{
		Root:    root,
		Version: DetectVersion(root),
	}, nil
}

// FindDist returns the first default location holding a distribution.
func FindDist() (string, error) {
	for _, dir := range DefaultDistDirs {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			continue
		}
		if IsDist(expanded) {
			return expanded, nil
		}
	}

	return "", fmt.Errorf("could not find an arduino distribution in any default location, configure one explicitly")
}

// IsDist reports whether root carries a board database where a
// distribution ships it.
func IsDist(root string) bool {
	stat, err := os.Stat(filepath.Join(root, "hardware", DefaultCore, BoardsFile))
	return err == nil && !stat.IsDir()
}

// DetectVersion reads the platform release stamped into a distribution at
// lib/version.txt.  Trees without a readable stamp are assumed to be
// DefaultVersion.
func DetectVersion(root string) *PlatformVersion {
	data, err := os.ReadFile(filepath.Join(root, "lib", "version.txt"))
	if err != nil {
		return DefaultVersion
	}

	v, err := parseDistVersion(string(data))
	if err != nil {
		return DefaultVersion
	}

	return v
}

func parseDistVersion(s string) (*PlatformVersion, error) {
	s = strings.TrimSpace(s)

	// Pre-1.0 releases stamp a bare zero-padded revision, e.g. "0022".
	if len(s) > 1 && s[0] == '0' && !strings.Contains(s, ".") {
		s = "0." + strings.TrimLeft(s, "0")
	}

	return ParsePlatformVersion(s)
}

// BoardsDir returns the directory holding the board database.
func (d *Dist) BoardsDir() string {
	return filepath.Join(d.Root, "hardware", DefaultCore)
}

// CoreDir returns the sources of the given core, or of DefaultCore when
// the profile names none.
func (d *Dist) CoreDir(core string) string {
	if core == "" {
		core = DefaultCore
	}

	return filepath.Join(d.Root, "hardware", DefaultCore, CoresDir, core)
}

// VariantsDir returns the directory holding per-board pin variants.  Only
// releases from 1.0 onwards ship one.
func (d *Dist) VariantsDir() string {
	return filepath.Join(d.Root, "hardware", DefaultCore, VariantsDir)
}

// LibrariesDir returns the directory holding the libraries bundled with
// the distribution.
func (d *Dist) LibrariesDir() string {
	return filepath.Join(d.Root, LibrariesDir)
}
