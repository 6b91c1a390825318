// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package main

import (
	"os"

	"sketchkit.sh/internal/cli/sketch"
)

func main() {
	os.Exit(sketch.Main(os.Args[1:]))
}
