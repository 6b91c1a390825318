// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package toolchain derives the ordered compiler and linker flag sequences a
// resolved board profile prescribes for a sketch build.
package toolchain

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"sketchkit.sh/arduino"
	"sketchkit.sh/arduino/board"
	"sketchkit.sh/log"
)

// Flags holds the four ordered flag sequences handed to the downstream
// compile driver.  Order within each sequence is semantically significant
// and must not be normalized or sorted.
type Flags struct {
	CPP []string `yaml:"cppflags"`
	C   []string `yaml:"cflags"`
	CXX []string `yaml:"cxxflags"`
	LD  []string `yaml:"ldflags"`
}

// Naming is the scheme of printf-style patterns for the files a build
// produces per compilation unit and library.
type Naming struct {
	Object  string `yaml:"obj"`
	Archive string `yaml:"lib"`
	Source  string `yaml:"cpp"`
	Depends string `yaml:"deps"`
}

// StandardNaming returns the naming scheme used by every supported toolchain
// family.
func StandardNaming() Naming {
	return Naming{
		Object:  "%s.o",
		Archive: "lib%s.a",
		Source:  "%s.cpp",
		Depends: "%s.d",
	}
}

// MissingFieldError reports a profile field a flag derivation cannot proceed
// without.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required profile field %s is missing", e.Field)
}

// Assembly is the output of flag assembly for one board: the flag sequences,
// the output naming scheme and the include-flag prefix every include path of
// this build must use.
type Assembly struct {
	Flags       `yaml:",inline"`
	Naming      Naming `yaml:"naming"`
	IncludeFlag string `yaml:"incflag"`
}

// Assemble derives the flag sequences for a resolved board profile.
//
// Preprocessor flags are emitted in fixed precedence order: the architecture
// flag (-mcpu= when the profile names a cpu, else -mmcu= when it names an
// mcu, never both), the clock-frequency define, the platform-version define,
// the core include path, user-supplied flags, the gap-terminated "option"
// and "define" families, USB vendor/product defines when present and finally
// the variant include path for family boards on a 1.0+ platform.  Linker
// flags carry the same architecture flag, user flags individually prefixed
// for linker pass-through, the "linkoption" and "additionalobject" families,
// and a -T<script> token prepended ahead of everything when the profile
// names a link script.
//
// Boards of the cloud family short-circuit with four empty sequences: their
// toolchain is remote and only the naming scheme and include prefix apply.
func Assemble(ctx context.Context, b *board.Board, opts ...AssembleOption) (*Assembly, error) {
	options := &AssembleOptions{
		Version: arduino.DefaultVersion,
	}
	for _, o := range opts {
		if err := o(options); err != nil {
			return nil, err
		}
	}

	asm := &Assembly{
		Naming:      StandardNaming(),
		IncludeFlag: b.IncludeFlag(),
	}

	if arduino.IsCloudBoard(b.Name()) {
		log.G(ctx).Debugf("board %q builds with a hosted toolchain, no local flags assembled", b.Name())
		return asm, nil
	}

	build := b.Build()

	var arch string
	if cpu, ok := build.Get("cpu"); ok {
		arch = "-mcpu=" + cpu
	} else if mcu, ok := build.Get("mcu"); ok {
		arch = "-mmcu=" + mcu
	}

	fcpu, ok := build.Get("f_cpu")
	if !ok {
		return nil, &MissingFieldError{Field: "build.f_cpu"}
	}

	var cpp []string
	if arch != "" {
		cpp = append(cpp, arch)
	}
	cpp = append(cpp,
		"-DF_CPU="+fcpu,
		"-DARDUINO="+strconv.FormatUint(options.Version.AsDefine(), 10),
	)
	if options.CoreDir != "" {
		cpp = append(cpp, asm.IncludeFlag+options.CoreDir)
	}
	cpp = append(cpp, options.UserCPP...)
	cpp = append(cpp, build.Numbered("option", 1)...)
	cpp = append(cpp, build.Numbered("define", 1)...)

	if vid, ok := build.Get("vid"); ok {
		cpp = append(cpp, "-DUSB_VID="+vid)
	}
	if pid, ok := build.Get("pid"); ok {
		cpp = append(cpp, "-DUSB_PID="+pid)
	}

	if arduino.IsFamilyBoard(b.Name()) && options.Version.Major() > 0 {
		variant, ok := build.Get("variant")
		if !ok {
			return nil, &MissingFieldError{Field: "build.variant"}
		}
		if options.VariantsDir == "" {
			return nil, fmt.Errorf("no variants directory configured for variant %q of board %q", variant, b.Name())
		}
		cpp = append(cpp, asm.IncludeFlag+filepath.Join(options.VariantsDir, variant))
	}

	var ld []string
	if arch != "" {
		ld = append(ld, arch)
	}
	for _, flag := range options.UserLD {
		ld = append(ld, "-Wl,"+flag)
	}
	ld = append(ld, build.Numbered("linkoption", 1)...)
	ld = append(ld, build.Numbered("additionalobject", 1)...)

	if script, ok := build.Get("linkscript"); ok {
		path := options.LinkScript
		if path == "" && options.CoreDir != "" {
			path = filepath.Join(options.CoreDir, script)
		}
		if path == "" {
			path = script
		}
		ld = append([]string{"-T" + path}, ld...)
	}

	asm.CPP = cpp
	asm.C = append([]string{}, options.UserC...)
	asm.CXX = append(append([]string{}, options.UserCXX...), build.Numbered("cppoption", 1)...)
	asm.LD = ld

	log.G(ctx).Debugf("assembled %d preprocessor, %d C, %d C++ and %d linker flags for %q",
		len(asm.CPP), len(asm.C), len(asm.CXX), len(asm.LD), b.Name())

	return asm, nil
}

// IncludeLibraries folds the include flags of the resolved library set into
// the preprocessor sequence for the final build.
func (a *Assembly) IncludeLibraries(flags []string) {
	a.CPP = append(a.CPP, flags...)
}
