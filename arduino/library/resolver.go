// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package library

import (
	"context"

	"github.com/gobwas/glob"

	"sketchkit.sh/internal/set"
	"sketchkit.sh/log"
)

// ResolveOptions gather the tunable parts of a resolution.
type ResolveOptions struct {
	excludes []glob.Glob
}

// ResolveOption configures a call to Resolve.
type ResolveOption func(*ResolveOptions) error

// WithExcludePatterns overrides the subdirectory patterns excluded from
// include paths during resolution.
func WithExcludePatterns(patterns ...string) ResolveOption {
	return func(options *ResolveOptions) error {
		globs, err := CompileExcludes(patterns)
		if err != nil {
			return err
		}

		options.excludes = globs

		return nil
	}
}

// Resolve determines which candidate libraries the sources under src
// transitively use and returns them in link order, dependencies behind
// their dependents.
//
// Every scan, including the initial one of src, sees the include flags of
// all candidates so that headers resolve no matter which library ends up
// providing them.  Whenever a scanned library names dependencies that are
// already in use, those are moved to the tail of the ordering, preserving
// their relative order; newly discovered dependencies are appended in
// encounter order and scanned in a later round.  Each library is scanned
// exactly once, so dependency cycles terminate.  A library never counts as
// its own dependency.
func Resolve(ctx context.Context, src string, candidates []string, incflag string, scanner Scanner, opts ...ResolveOption) ([]string, error) {
	options := &ResolveOptions{
		excludes: DefaultExcludes(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	includeFlags, err := IncludeFlags(incflag, candidates, options.excludes)
	if err != nil {
		return nil, err
	}

	log.G(ctx).Debugf("scanning dependencies of %s", src)

	listing, err := scanner.Scan(ctx, src, includeFlags)
	if err != nil {
		return nil, err
	}

	used := set.NewStringSet()
	for _, match := range Match(listing, candidates) {
		if match != src {
			used.Add(match)
		}
	}

	scanned := set.NewStringSet()

	for scanned.Len() < used.Len() {
		var next string
		for _, lib := range used.ToSlice() {
			if !scanned.Contains(lib) {
				next = lib
				break
			}
		}

		log.G(ctx).Debugf("scanning dependencies of %s", next)

		listing, err := scanner.Scan(ctx, next, includeFlags)
		if err != nil {
			return nil, err
		}

		deps := set.NewStringSet()
		for _, match := range Match(listing, candidates) {
			if match != next {
				deps.Add(match)
			}
		}

		// A library must be linked after everything that depends on it,
		// so demote known dependencies to the tail before appending the
		// newly discovered ones.
		for _, lib := range append([]string(nil), used.ToSlice()...) {
			if deps.Contains(lib) {
				used.MoveToBack(lib)
				deps.Remove(lib)
			}
		}

		used.Add(deps.ToSlice()...)
		scanned.Add(next)
	}

	log.G(ctx).Debugf("resolved %d libraries for %s", used.Len(), src)

	return append([]string(nil), used.ToSlice()...), nil
}
