// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package library discovers which candidate libraries a sketch transitively
// uses and the order they must be presented to the linker in.
package library

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"sketchkit.sh/arduino"
	"sketchkit.sh/internal/set"
)

// DefaultExcludes returns the subdirectory exclusion patterns applied when
// deriving include directories: example sketches ship inside library trees
// but are never part of the include path.
func DefaultExcludes() []glob.Glob {
	return []glob.Glob{glob.MustCompile(arduino.ExamplesDir)}
}

// CompileExcludes compiles raw subdirectory exclusion patterns.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("could not compile exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	return globs, nil
}

// IncludeDirs returns a library directory followed by every nested
// subdirectory, in lexical order, skipping hidden directories and those
// matching an exclusion pattern (along with everything beneath them).
func IncludeDirs(dir string, excludes []glob.Glob) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		if path != dir {
			name := d.Name()
			if strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			for _, g := range excludes {
				if g.Match(name) {
					return fs.SkipDir
				}
			}
		}

		dirs = append(dirs, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk library directory %s: %w", dir, err)
	}

	return dirs, nil
}

// IncludeFlags derives the include flags covering a set of library
// directories, each directory expanded per IncludeDirs and prefixed with
// the profile's include-flag prefix.
func IncludeFlags(prefix string, dirs []string, excludes []glob.Glob) ([]string, error) {
	var flags []string

	for _, dir := range dirs {
		expanded, err := IncludeDirs(dir, excludes)
		if err != nil {
			return nil, err
		}
		for _, d := range expanded {
			flags = append(flags, prefix+d)
		}
	}

	return flags, nil
}

// Match returns the candidate directories evidenced by a dependency
// listing, in encounter order: line by line, candidates in their given
// order, without duplicates.  A candidate matches a whitespace-delimited
// fragment only on a path-component boundary, so a library never matches a
// sibling whose name it is a prefix of.
func Match(listing []byte, candidates []string) []string {
	matches := set.NewStringSet()

	s := bufio.NewScanner(bytes.NewReader(listing))
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}

		for _, candidate := range candidates {
			if matches.Contains(candidate) {
				continue
			}
			for _, fragment := range fields {
				if withinDir(fragment, candidate) {
					matches.Add(candidate)
					break
				}
			}
		}
	}

	return matches.ToSlice()
}

// withinDir reports whether a path fragment names the directory itself or
// something beneath it.
func withinDir(fragment, dir string) bool {
	fragment = filepath.Clean(fragment)
	dir = filepath.Clean(dir)

	if fragment == dir {
		return true
	}

	return strings.HasPrefix(fragment, dir+string(filepath.Separator))
}
