// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sketchkit.sh/arduino"
)

// File represents a parsed board database: every board a platform
// distribution declares, in declaration order, plus the file-level menu
// titles.
type File struct {
	Boards []*Board
	// Map duplicates Boards for convenience.
	Map map[string]*Board
	// Titles maps menu category identifiers to their display titles.
	Titles *Tree
}

// Load reads the board database of a platform distribution directory:
// boards.txt plus an optional boards.local.txt overlay carrying per-board
// additions and overrides.
func Load(dir string) (*File, error) {
	f, err := ParseFile(filepath.Join(dir, arduino.BoardsFile))
	if err != nil {
		return nil, err
	}

	local := filepath.Join(dir, arduino.BoardsLocalFile)
	if _, err := os.Stat(local); err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, err
	}

	overlay, err := ParseFile(local)
	if err != nil {
		return nil, err
	}

	return f.OverrideBy(overlay), nil
}

// ParseFile parses a single board database file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read board database %s: %w", path, err)
	}

	return ParseFileData(data)
}

// ParseFileData parses board database properties: dotted keys whose first
// segment is the board identifier, e.g. "uno.build.mcu=atmega328p".  Blank
// lines, comments and lines without a '=' are skipped.
func ParseFileData(data []byte) (*File, error) {
	f := &File{
		Map:    map[string]*Board{},
		Titles: NewTree(),
	}

	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		f.parseLine(s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("could not scan board database: %w", err)
	}

	return f, nil
}

func (f *File) parseLine(text string) {
	line := strings.TrimSpace(text)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	segments := strings.Split(key, ".")
	if segments[0] == "" || len(segments) == 1 {
		return
	}

	// File-level menu titles: menu.<category>=<title>.
	if segments[0] == "menu" {
		if len(segments) == 2 && segments[1] != "" {
			f.Titles.Set(segments[1], value)
		}
		return
	}

	b, ok := f.Map[segments[0]]
	if !ok {
		b = New(segments[0], NewTree())
		f.Map[b.ID] = b
		f.Boards = append(f.Boards, b)
	}

	setDotted(b.Tree, segments[1:], value)
}

// setDotted walks a dotted key path, creating subtrees as needed.  A scalar
// revisited as an intermediate segment is promoted to a subtree which keeps
// the old value under the reserved name key; symmetrically, a leaf landing
// on an existing subtree stores its value as that subtree's name.  This is
// how a database declares choice display names before choice overrides:
//
//	pro.menu.cpu.8MHzatmega328=ATmega328P (8 MHz)
//	pro.menu.cpu.8MHzatmega328.build.f_cpu=8000000L
func setDotted(t *Tree, segments []string, value string) {
	cur := t
	for i, segment := range segments {
		if segment == "" {
			return
		}

		if i == len(segments)-1 {
			if sub := cur.Sub(segment); sub != nil {
				sub.Set("name", value)
			} else {
				cur.Set(segment, value)
			}
			return
		}

		next := cur.Sub(segment)
		if next == nil {
			next = NewTree()
			if old, ok := cur.Get(segment); ok {
				next.Set("name", old)
			}
			cur.SetTree(segment, next)
		}
		cur = next
	}
}

// Board returns the board declared under the given identifier.
func (f *File) Board(id string) (*Board, bool) {
	b, ok := f.Map[id]
	return b, ok
}

// IDs returns the board identifiers in declaration order.
func (f *File) IDs() []string {
	ids := make([]string, 0, len(f.Boards))
	for _, b := range f.Boards {
		ids = append(ids, b.ID)
	}

	return ids
}

// OverrideBy merges another database over this one: profiles of boards
// present in both are tree-merged, boards only declared by the other
// database append in their declared order.
func (f *File) OverrideBy(other *File) *File {
	for _, ob := range other.Boards {
		if existing, ok := f.Map[ob.ID]; ok {
			existing.Tree = existing.Tree.Merge(ob.Tree)
			continue
		}

		b := New(ob.ID, ob.Tree.Clone())
		f.Map[b.ID] = b
		f.Boards = append(f.Boards, b)
	}

	f.Titles = f.Titles.Merge(other.Titles)

	return f
}
