// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package library

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListSources(t *testing.T) {
	tmp := t.TempDir()

	for _, name := range []string{
		"util.c",
		"wire.cpp",
		"sketch.ino",
		"legacy.PDE",
		"README.md",
	} {
		if err := os.WriteFile(filepath.Join(tmp, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	// Sources inside subdirectories never participate in a scan.
	if err := os.MkdirAll(filepath.Join(tmp, "utility"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "utility", "twi.c"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cSources, cxxSources, err := listSources(tmp)
	if err != nil {
		t.Fatalf("listSources() error = %v", err)
	}

	if want := []string{filepath.Join(tmp, "util.c")}; !reflect.DeepEqual(cSources, want) {
		t.Errorf("c sources = %v, want %v", cSources, want)
	}

	wantCxx := []string{
		filepath.Join(tmp, "legacy.PDE"),
		filepath.Join(tmp, "sketch.ino"),
		filepath.Join(tmp, "wire.cpp"),
	}
	if !reflect.DeepEqual(cxxSources, wantCxx) {
		t.Errorf("c++ sources = %v, want %v", cxxSources, wantCxx)
	}
}

func TestNewCCScanner(t *testing.T) {
	scanner, err := NewCCScanner()
	if err != nil {
		t.Fatalf("NewCCScanner() error = %v", err)
	}
	if scanner.bin != DefaultScannerBin {
		t.Errorf("bin = %q, want %q", scanner.bin, DefaultScannerBin)
	}

	scanner, err = NewCCScanner(WithBin("arm-none-eabi-gcc"), WithExtraFlags("-mmcu=atmega328p"))
	if err != nil {
		t.Fatalf("NewCCScanner() error = %v", err)
	}
	if scanner.bin != "arm-none-eabi-gcc" {
		t.Errorf("bin = %q, want arm-none-eabi-gcc", scanner.bin)
	}
	if !reflect.DeepEqual(scanner.extra, []string{"-mmcu=atmega328p"}) {
		t.Errorf("extra = %v", scanner.extra)
	}

	if _, err := NewCCScanner(WithBin("")); err == nil {
		t.Fatal("NewCCScanner() expected error for empty binary")
	}
}
