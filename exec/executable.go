// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package exec prepares and runs external programs with explicit control
// over their arguments, environment and standard streams.
package exec

import (
	"fmt"
	"strings"
)

type Executable struct {
	bin  string
	args []string
}

// NewExecutable accepts an input argument bin which is the path or executable
// name to be ultimately executed.  A bin containing spaces is split, with the
// remainder treated as leading arguments; any additional args are appended.
func NewExecutable(bin string, args ...string) (*Executable, error) {
	if len(bin) == 0 {
		return nil, fmt.Errorf("binary argument cannot be empty")
	}

	e := &Executable{}

	if strings.Contains(bin, " ") {
		split := strings.Split(bin, " ")
		bin = split[0]
		e.args = split[1:]
	}

	e.args = append(e.args, args...)
	e.bin = bin

	return e, nil
}

// Bin returns the binary name or path to be executed.
func (e *Executable) Bin() string {
	return e.bin
}

// Args returns the arguments the binary will be invoked with.
func (e *Executable) Args() []string {
	return e.args
}

// AddArgs appends additional arguments.
func (e *Executable) AddArgs(args ...string) {
	e.args = append(e.args, args...)
}
