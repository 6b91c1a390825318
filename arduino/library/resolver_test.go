// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeScanner serves canned listings keyed by root and records every scan
// it is asked for.
type fakeScanner struct {
	listings map[string]string
	failOn   string

	scans []string
	flags [][]string
}

func (s *fakeScanner) Scan(_ context.Context, root string, includeFlags []string) ([]byte, error) {
	s.scans = append(s.scans, root)
	s.flags = append(s.flags, includeFlags)

	if s.failOn != "" && root == s.failOn {
		return nil, fmt.Errorf("scanner exploded")
	}

	return []byte(s.listings[root]), nil
}

// mkdirs creates each relative path under a fresh temporary root and
// returns a mapper from relative to absolute paths.
func mkdirs(t *testing.T, paths ...string) func(string) string {
	t.Helper()

	tmp := t.TempDir()
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Join(tmp, p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
	}

	return func(p string) string {
		return filepath.Join(tmp, p)
	}
}

func TestResolveTransitive(t *testing.T) {
	at := mkdirs(t, "sketch", "libs/A", "libs/B", "libs/C")
	candidates := []string{at("libs/A"), at("libs/B"), at("libs/C")}

	scanner := &fakeScanner{listings: map[string]string{
		at("sketch"): "sketch.o: sketch.ino " + at("libs/A") + "/a.h\n",
		at("libs/A"): "a.o: a.cpp " + at("libs/B") + "/b.h\n",
		at("libs/B"): "b.o: b.cpp " + at("libs/C") + "/c.h\n",
		at("libs/C"): "c.o: c.cpp\n",
	}}

	libs, err := Resolve(context.Background(), at("sketch"), candidates, "-I", scanner)
	require.NoError(t, err)
	require.Equal(t, []string{at("libs/A"), at("libs/B"), at("libs/C")}, libs)
	require.Equal(t, []string{at("sketch"), at("libs/A"), at("libs/B"), at("libs/C")}, scanner.scans)
}

func TestResolveDependentsLinkFirst(t *testing.T) {
	at := mkdirs(t, "sketch", "libs/SPI", "libs/Wire")
	candidates := []string{at("libs/SPI"), at("libs/Wire")}

	// The sketch names both libraries, but Wire itself depends on SPI, so
	// SPI must end up behind Wire in link order.
	scanner := &fakeScanner{listings: map[string]string{
		at("sketch"): "sketch.o: " + at("libs/SPI") + "/SPI.h " +
			at("libs/Wire") + "/Wire.h\n",
		at("libs/SPI"):  "spi.o: spi.cpp\n",
		at("libs/Wire"): "wire.o: wire.cpp " + at("libs/SPI") + "/SPI.h\n",
	}}

	libs, err := Resolve(context.Background(), at("sketch"), candidates, "-I", scanner)
	require.NoError(t, err)
	require.Equal(t, []string{at("libs/Wire"), at("libs/SPI")}, libs)
}

func TestResolveCycleTerminates(t *testing.T) {
	at := mkdirs(t, "sketch", "libs/A", "libs/B", "libs/C")
	candidates := []string{at("libs/A"), at("libs/B"), at("libs/C")}

	scanner := &fakeScanner{listings: map[string]string{
		at("sketch"): "sketch.o: " + at("libs/A") + "/a.h\n",
		at("libs/A"): "a.o: " + at("libs/B") + "/b.h\n",
		at("libs/B"): "b.o: " + at("libs/C") + "/c.h\n",
		at("libs/C"): "c.o: " + at("libs/A") + "/a.h\n",
	}}

	libs, err := Resolve(context.Background(), at("sketch"), candidates, "-I", scanner)
	require.NoError(t, err)

	// Closing the cycle demotes A behind its dependency chain without
	// introducing duplicates or another round of scans.
	require.Equal(t, []string{at("libs/B"), at("libs/C"), at("libs/A")}, libs)
	require.Len(t, scanner.scans, 4)
}

func TestResolveSelfReferencesIgnored(t *testing.T) {
	at := mkdirs(t, "sketch", "libs/A")
	candidates := []string{at("sketch"), at("libs/A")}

	scanner := &fakeScanner{listings: map[string]string{
		at("sketch"): "sketch.o: " + at("sketch") + "/sketch.ino " +
			at("libs/A") + "/a.h\n",
		at("libs/A"): "a.o: " + at("libs/A") + "/a.h " + at("libs/A") + "/util/u.h\n",
	}}

	libs, err := Resolve(context.Background(), at("sketch"), candidates, "-I", scanner)
	require.NoError(t, err)
	require.Equal(t, []string{at("libs/A")}, libs)
}

func TestResolveNothingUsed(t *testing.T) {
	at := mkdirs(t, "sketch", "libs/A")

	scanner := &fakeScanner{listings: map[string]string{
		at("sketch"): "sketch.o: sketch.ino\n",
	}}

	libs, err := Resolve(context.Background(), at("sketch"), []string{at("libs/A")}, "-I", scanner)
	require.NoError(t, err)
	require.Empty(t, libs)
	require.Len(t, scanner.scans, 1)
}

func TestResolveScannerFailureAborts(t *testing.T) {
	at := mkdirs(t, "sketch", "libs/A", "libs/B")
	candidates := []string{at("libs/A"), at("libs/B")}

	scanner := &fakeScanner{
		listings: map[string]string{
			at("sketch"): "sketch.o: " + at("libs/A") + "/a.h\n",
		},
		failOn: at("libs/A"),
	}

	_, err := Resolve(context.Background(), at("sketch"), candidates, "-I", scanner)
	require.ErrorContains(t, err, "scanner exploded")
	require.Len(t, scanner.scans, 2)
}

func TestResolveSharesIncludeFlags(t *testing.T) {
	at := mkdirs(t, "sketch", "libs/Wire/utility", "libs/Wire/examples/Demo", "libs/SPI")
	candidates := []string{at("libs/Wire"), at("libs/SPI")}

	scanner := &fakeScanner{listings: map[string]string{
		at("sketch"):    "sketch.o: " + at("libs/Wire") + "/Wire.h\n",
		at("libs/Wire"): "wire.o: " + at("libs/SPI") + "/SPI.h\n",
		at("libs/SPI"):  "",
	}}

	_, err := Resolve(context.Background(), at("sketch"), candidates, "-I", scanner)
	require.NoError(t, err)

	// Every scan, the sketch's included, sees the include path of all
	// candidates, with example trees left out.
	want := []string{
		"-I" + at("libs/Wire"),
		"-I" + at("libs/Wire/utility"),
		"-I" + at("libs/SPI"),
	}
	require.Len(t, scanner.flags, 3)
	for _, flags := range scanner.flags {
		require.Equal(t, want, flags)
	}
}

func TestResolveExcludeOverride(t *testing.T) {
	at := mkdirs(t, "sketch", "libs/Wire/utility")

	scanner := &fakeScanner{listings: map[string]string{
		at("sketch"): "sketch.o: sketch.ino\n",
	}}

	_, err := Resolve(
		context.Background(),
		at("sketch"),
		[]string{at("libs/Wire")},
		"-I",
		scanner,
		WithExcludePatterns("utility"),
	)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"-I" + at("libs/Wire")}}, scanner.flags)

	_, err = Resolve(
		context.Background(),
		at("sketch"),
		[]string{at("libs/Wire")},
		"-I",
		scanner,
		WithExcludePatterns("["),
	)
	require.ErrorContains(t, err, "could not compile exclude pattern")
}
