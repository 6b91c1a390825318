// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package arduino

import "strings"

const (
	// Board display-name markers which divide profiles into toolchain
	// families.
	CloudMarker  = "spark"
	FamilyMarker = "arduino"

	// Files which make up an on-disk board database.
	BoardsFile      = "boards.txt"
	BoardsLocalFile = "boards.local.txt"

	// Well-known directory names inside a platform distribution.
	CoresDir     = "cores"
	VariantsDir  = "variants"
	LibrariesDir = "libraries"
	ExamplesDir  = "examples"

	// Built-in paths
	BuildDir    = ".build"
	ProjectFile = "sketch.yml"
	PlanFile    = "build.yml"
)

// IsCloudBoard reports whether a board display name belongs to the hosted
// cloud family, which brings its own toolchain and therefore receives no
// locally assembled compiler flags.
func IsCloudBoard(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), CloudMarker)
}

// IsFamilyBoard reports whether a board display name belongs to the standard
// hardware family whose platform distributions ship variant directories.
func IsFamilyBoard(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), FamilyMarker)
}
