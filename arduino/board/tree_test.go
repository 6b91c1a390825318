// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import (
	"reflect"
	"strings"
	"testing"
)

func TestTreeDeclarationOrder(t *testing.T) {
	tr := NewTree()
	tr.Set("zulu", "1")
	tr.Set("alpha", "2")
	tr.SetTree("mike", NewTree().Set("x", "y"))
	tr.Set("zulu", "3")

	want := []string{"zulu", "alpha", "mike"}
	if got := tr.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("got keys %v, want %v", got, want)
	}

	if v, ok := tr.Get("zulu"); !ok || v != "3" {
		t.Errorf("got zulu=%q ok=%v, want 3", v, ok)
	}
}

func TestTreeScalarTreeReplacement(t *testing.T) {
	tr := NewTree()
	tr.Set("build", "scalar")
	tr.SetTree("build", NewTree().Set("mcu", "atmega328p"))

	if _, ok := tr.Get("build"); ok {
		t.Error("expected build to no longer be a scalar")
	}
	if sub := tr.Sub("build"); sub == nil {
		t.Fatal("expected build to be a subtree")
	} else if v, _ := sub.Get("mcu"); v != "atmega328p" {
		t.Errorf("got mcu=%q", v)
	}

	tr.Set("build", "flat")
	if tr.Sub("build") != nil {
		t.Error("expected build to be a scalar again")
	}
}

func TestTreeCloneIsDeep(t *testing.T) {
	orig := NewTree()
	orig.SetTree("build", NewTree().Set("mcu", "atmega168"))

	clone := orig.Clone()
	clone.Sub("build").Set("mcu", "atmega328p")
	clone.Set("extra", "1")

	if v, _ := orig.Sub("build").Get("mcu"); v != "atmega168" {
		t.Errorf("clone mutated the original: mcu=%q", v)
	}
	if orig.Has("extra") {
		t.Error("clone mutated the original: extra key appeared")
	}
}

func TestTreeMerge(t *testing.T) {
	testcases := []struct {
		desc    string
		base    func() *Tree
		overlay func() *Tree
		want    map[string]string
		keys    []string
	}{
		{
			desc: "recurses when both sides are trees",
			base: func() *Tree {
				return NewTree().SetTree("build", NewTree().
					Set("mcu", "atmega168").
					Set("f_cpu", "16000000L"))
			},
			overlay: func() *Tree {
				return NewTree().SetTree("build", NewTree().
					Set("mcu", "atmega328p"))
			},
			want: map[string]string{
				"build.mcu":   "atmega328p",
				"build.f_cpu": "16000000L",
			},
			keys: []string{"build"},
		},
		{
			desc: "scalar overwrites tree",
			base: func() *Tree {
				return NewTree().SetTree("upload", NewTree().Set("speed", "57600"))
			},
			overlay: func() *Tree {
				return NewTree().Set("upload", "none")
			},
			want: map[string]string{"upload": "none"},
			keys: []string{"upload"},
		},
		{
			desc: "tree overwrites scalar",
			base: func() *Tree {
				return NewTree().Set("bootloader", "none")
			},
			overlay: func() *Tree {
				return NewTree().SetTree("bootloader", NewTree().Set("file", "optiboot.hex"))
			},
			want: map[string]string{"bootloader.file": "optiboot.hex"},
			keys: []string{"bootloader"},
		},
		{
			desc: "overlay only keys append after base keys",
			base: func() *Tree {
				return NewTree().Set("a", "1").Set("b", "2")
			},
			overlay: func() *Tree {
				return NewTree().Set("c", "3").Set("a", "9")
			},
			want: map[string]string{"a": "9", "b": "2", "c": "3"},
			keys: []string{"a", "b", "c"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			base := tc.base()
			overlay := tc.overlay()
			merged := base.Merge(overlay)

			if got := merged.Keys(); !reflect.DeepEqual(got, tc.keys) {
				t.Errorf("got top-level keys %v, want %v", got, tc.keys)
			}

			for dotted, want := range tc.want {
				if got := lookupDotted(merged, dotted); got != want {
					t.Errorf("got %s=%q, want %q", dotted, got, want)
				}
			}
		})
	}
}

func TestTreeMergeDoesNotMutateInputs(t *testing.T) {
	base := NewTree().SetTree("build", NewTree().Set("mcu", "atmega168"))
	overlay := NewTree().SetTree("build", NewTree().Set("mcu", "atmega328p"))

	merged := base.Merge(overlay)
	merged.Sub("build").Set("mcu", "changed")

	if v, _ := base.Sub("build").Get("mcu"); v != "atmega168" {
		t.Errorf("merge mutated base: mcu=%q", v)
	}
	if v, _ := overlay.Sub("build").Get("mcu"); v != "atmega328p" {
		t.Errorf("merge mutated overlay: mcu=%q", v)
	}
}

func TestTreeNumbered(t *testing.T) {
	testcases := []struct {
		desc   string
		tree   func() *Tree
		prefix string
		start  int
		want   []string
	}{
		{
			desc: "stops before the first gap",
			tree: func() *Tree {
				return NewTree().
					Set("cpu1", "1").
					Set("cpu2", "1").
					Set("cpu3", "2").
					Set("cpu4", "3").
					Set("cpu5", "5").
					Set("cpu7", "13")
			},
			prefix: "cpu",
			start:  1,
			want:   []string{"1", "1", "2", "3", "5"},
		},
		{
			desc: "missing first index yields nothing",
			tree: func() *Tree {
				return NewTree().Set("option2", "-x")
			},
			prefix: "option",
			start:  1,
			want:   nil,
		},
		{
			desc: "a subtree entry terminates the scan",
			tree: func() *Tree {
				return NewTree().
					Set("define1", "-DA").
					SetTree("define2", NewTree()).
					Set("define3", "-DC")
			},
			prefix: "define",
			start:  1,
			want:   []string{"-DA"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			got := tc.tree().Numbered(tc.prefix, tc.start)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	tr, err := FromMap(map[string]interface{}{
		"name": "Test Board",
		"build": map[string]interface{}{
			"f_cpu": 16000000,
			"core":  "arduino",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := tr.Get("name"); v != "Test Board" {
		t.Errorf("got name %q", v)
	}
	if v, _ := tr.Sub("build").Get("f_cpu"); v != "16000000" {
		t.Errorf("got f_cpu %q, want numeric scalars stringified", v)
	}

	if _, err := FromMap(map[string]interface{}{"bad": []string{"x"}}); err == nil {
		t.Error("expected error for unsupported value type")
	}
}

func TestTreeSerialize(t *testing.T) {
	tr := NewTree()
	tr.Set("name", "Test")
	tr.SetTree("build", NewTree().Set("mcu", "atmega328p").Set("f_cpu", "16000000L"))

	want := "name=Test\nbuild.mcu=atmega328p\nbuild.f_cpu=16000000L\n"
	if got := tr.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// lookupDotted walks a dotted key path of subtrees down to a scalar.
func lookupDotted(tr *Tree, dotted string) string {
	cur := tr
	keys := strings.Split(dotted, ".")
	for i, k := range keys {
		if i == len(keys)-1 {
			v, _ := cur.Get(k)
			return v
		}
		cur = cur.Sub(k)
		if cur == nil {
			return ""
		}
	}
	return ""
}
