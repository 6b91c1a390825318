// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

// DefaultIncludeFlag is the include-path prefix assumed when a profile does
// not declare its own.
const DefaultIncludeFlag = "-I"

// Board couples a board identifier from the database with its configuration
// profile.
type Board struct {
	// ID is the database key the board was declared under, e.g. "uno".
	ID string
	// Tree is the board's full configuration profile.
	Tree *Tree
}

func New(id string, tree *Tree) *Board {
	if tree == nil {
		tree = NewTree()
	}

	return &Board{
		ID:   id,
		Tree: tree,
	}
}

// Name returns the board's human-readable display name, falling back to the
// database identifier when the profile carries none.
func (b *Board) Name() string {
	if v, ok := b.Tree.Get("name"); ok && v != "" {
		return v
	}

	return b.ID
}

// Build returns the profile's build subtree, which may be nil.
func (b *Board) Build() *Tree {
	return b.Tree.Sub("build")
}

// BuildField returns a scalar from the profile's build subtree.
func (b *Board) BuildField(key string) (string, bool) {
	return b.Build().Get(key)
}

// IncludeFlag returns the include-path prefix the board's toolchain expects.
// The prefix is declared once per profile and reused verbatim for every
// include flag emitted during a build.
func (b *Board) IncludeFlag() string {
	if v, ok := b.BuildField("incflag"); ok && v != "" {
		return v
	}

	return DefaultIncludeFlag
}

// Menu returns the profile's menu subtree, or nil when the board declares no
// selectable options.
func (b *Board) Menu() *Tree {
	return b.Tree.Sub("menu")
}

// Upload returns the profile's upload subtree, which carries programmer
// settings such as the protocol and baud rate.  It may be nil.
func (b *Board) Upload() *Tree {
	return b.Tree.Sub("upload")
}

// Bootloader returns the profile's bootloader subtree, which may be nil.
func (b *Board) Bootloader() *Tree {
	return b.Tree.Sub("bootloader")
}
