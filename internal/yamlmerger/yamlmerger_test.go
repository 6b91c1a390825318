// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package yamlmerger

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRecursiveMerge(t *testing.T) {
	var from, into yaml.Node

	if err := yaml.Unmarshal([]byte("board: uno\nlegacy: true\nlist:\n  - a\n  - b\n"), &from); err != nil {
		t.Fatal(err)
	}
	if err := yaml.Unmarshal([]byte("board: mega\nlist:\n  - b\n  - c\n"), &into); err != nil {
		t.Fatal(err)
	}

	if err := RecursiveMerge(&from, &into); err != nil {
		t.Fatalf("RecursiveMerge() error: %v", err)
	}

	out, err := yaml.Marshal(&into)
	if err != nil {
		t.Fatal(err)
	}

	merged := string(out)
	if !strings.Contains(merged, "board: mega") {
		t.Errorf("destination value was overwritten:\n%s", merged)
	}
	if !strings.Contains(merged, "legacy: true") {
		t.Errorf("missing key was not merged in:\n%s", merged)
	}
	for _, item := range []string{"a", "b", "c"} {
		if !strings.Contains(merged, "- "+item) {
			t.Errorf("sequence item %q missing from union:\n%s", item, merged)
		}
	}
}

func TestRecursiveMergeKindMismatch(t *testing.T) {
	var from, into yaml.Node

	if err := yaml.Unmarshal([]byte("- a\n"), &from); err != nil {
		t.Fatal(err)
	}
	if err := yaml.Unmarshal([]byte("board: uno\n"), &into); err != nil {
		t.Fatal(err)
	}

	if err := RecursiveMerge(&from, &into); err == nil {
		t.Fatal("expected an error merging a sequence into a mapping")
	}
}
