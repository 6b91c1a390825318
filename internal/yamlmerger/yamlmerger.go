// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package yamlmerger folds one parsed YAML tree into another without
// disturbing the values the destination already carries.
package yamlmerger

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RecursiveMerge copies nodes present in from but absent from into into
// the latter.  Mapping keys recurse, sequences take the union of their
// items and scalars keep the value into already carries.
func RecursiveMerge(from, into *yaml.Node) error {
	if from.Kind != into.Kind {
		return fmt.Errorf("cannot merge nodes of different kinds")
	}

	switch from.Kind {
	case yaml.MappingNode:
		for i := 0; i < len(from.Content); i += 2 {
			found := false
			for j := 0; j < len(into.Content); j += 2 {
				if nodesEqual(from.Content[i], into.Content[j]) {
					found = true
					if err := RecursiveMerge(from.Content[i+1], into.Content[j+1]); err != nil {
						return fmt.Errorf("at key %s: %w", from.Content[i].Value, err)
					}
					break
				}
			}
			if !found {
				into.Content = append(into.Content, from.Content[i:i+2]...)
			}
		}
	case yaml.ScalarNode:
		// Keep the value into already carries.
	case yaml.SequenceNode:
		for _, fromItem := range from.Content {
			found := false
			for _, intoItem := range into.Content {
				if fromItem.Value == intoItem.Value {
					found = true
				}
			}
			if !found {
				into.Content = append(into.Content, fromItem)
			}
		}
	case yaml.DocumentNode:
		return RecursiveMerge(from.Content[0], into.Content[0])
	default:
		return fmt.Errorf("can only merge mapping, sequence and scalar nodes")
	}

	return nil
}

func nodesEqual(l, r *yaml.Node) bool {
	if l.Kind == yaml.ScalarNode && r.Kind == yaml.ScalarNode {
		return l.Value == r.Value
	}

	return false
}
