// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	data := "board: leonardo\nmenu: cpu:atmega168\nflags:\n  ldflags: -Os\n"
	if err := os.WriteFile(filepath.Join(dir, "sketch.yml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	project, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if project == nil {
		t.Fatal("LoadProject() = nil for existing project file")
	}

	if project.Board != "leonardo" {
		t.Errorf("board = %q, want leonardo", project.Board)
	}
	if project.Menu != "cpu:atmega168" {
		t.Errorf("menu = %q", project.Menu)
	}
	if project.Flags.LD != "-Os" {
		t.Errorf("ldflags = %q, want -Os", project.Flags.LD)
	}
}

func TestLoadProjectAbsent(t *testing.T) {
	project, err := LoadProject(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if project != nil {
		t.Fatalf("LoadProject() = %+v, want nil", project)
	}

	// A nil project applies cleanly.
	c, err := NewDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := project.ApplyTo(c); err != nil {
		t.Fatalf("ApplyTo() error = %v", err)
	}
	if c.Board != "uno" {
		t.Errorf("board = %q, want uno", c.Board)
	}
}

func TestLoadProjectMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sketch.yml"), []byte(":\tnope"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProject(dir); err == nil {
		t.Fatal("LoadProject() expected error for malformed project file")
	}
}

func TestProjectApplyTo(t *testing.T) {
	c, err := NewDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}

	project := &Project{Board: "mega2560"}
	project.Flags.CXX = "-fno-rtti"

	if err := project.ApplyTo(c); err != nil {
		t.Fatalf("ApplyTo() error = %v", err)
	}

	if c.Board != "mega2560" {
		t.Errorf("board = %q, want mega2560", c.Board)
	}
	if c.Flags.CXX != "-fno-rtti" {
		t.Errorf("cxxflags = %q, want -fno-rtti", c.Flags.CXX)
	}

	// Values the project leaves unset stay as configured.
	if c.Flags.CPP != "-ffunction-sections -fdata-sections -g -Os -w" {
		t.Errorf("cppflags = %q", c.Flags.CPP)
	}
	if c.Scanner.Bin != "avr-gcc" {
		t.Errorf("scanner bin = %q, want avr-gcc", c.Scanner.Bin)
	}
}
