// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package board models hardware profiles as ordered configuration trees and
// resolves user menu selections against them.
package board

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// A Node is a single entry of a Tree: either a scalar value or a nested
// subtree, never both.
type Node struct {
	Key   string
	Value string
	Sub   *Tree
}

// IsTree reports whether the node holds a nested subtree rather than a
// scalar value.
func (n *Node) IsTree() bool {
	return n.Sub != nil
}

// Tree is a string-keyed configuration tree which preserves the order in
// which its keys were first declared.  Declaration order is semantically
// significant: menu categories default to their first declared choice, and
// numbered option families must be emitted in declared sequence.
type Tree struct {
	nodes []*Node
	// index duplicates nodes for lookup convenience.
	index map[string]*Node
}

func NewTree() *Tree {
	return &Tree{
		index: map[string]*Node{},
	}
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Keys returns the tree's keys in declaration order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}

	keys := make([]string, 0, len(t.nodes))
	for _, n := range t.nodes {
		keys = append(keys, n.Key)
	}

	return keys
}

func (t *Tree) Has(key string) bool {
	if t == nil {
		return false
	}

	_, ok := t.index[key]
	return ok
}

// Get returns the scalar value stored at key.  The second return value is
// false when the key is absent or holds a subtree.
func (t *Tree) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}

	n, ok := t.index[key]
	if !ok || n.IsTree() {
		return "", false
	}

	return n.Value, true
}

// Sub returns the subtree stored at key, or nil when the key is absent or
// holds a scalar.
func (t *Tree) Sub(key string) *Tree {
	if t == nil {
		return nil
	}

	n, ok := t.index[key]
	if !ok || !n.IsTree() {
		return nil
	}

	return n.Sub
}

// Set stores a scalar value at key, replacing any existing value or subtree.
// A key keeps the position of its first declaration.
func (t *Tree) Set(key, value string) *Tree {
	if n, ok := t.index[key]; ok {
		n.Value = value
		n.Sub = nil
		return t
	}

	n := &Node{Key: key, Value: value}
	t.nodes = append(t.nodes, n)
	t.index[key] = n

	return t
}

// SetTree stores a subtree at key, replacing any existing value or subtree.
func (t *Tree) SetTree(key string, sub *Tree) *Tree {
	if sub == nil {
		sub = NewTree()
	}

	if n, ok := t.index[key]; ok {
		n.Value = ""
		n.Sub = sub
		return t
	}

	n := &Node{Key: key, Sub: sub}
	t.nodes = append(t.nodes, n)
	t.index[key] = n

	return t
}

// EnsureSub returns the subtree at key, creating it (or replacing a scalar)
// when necessary.
func (t *Tree) EnsureSub(key string) *Tree {
	if sub := t.Sub(key); sub != nil {
		return sub
	}

	sub := NewTree()
	t.SetTree(key, sub)

	return sub
}

func (t *Tree) Delete(key string) {
	if t == nil {
		return
	}

	if _, ok := t.index[key]; !ok {
		return
	}

	delete(t.index, key)
	for i, n := range t.nodes {
		if n.Key == key {
			t.nodes = append(t.nodes[:i], t.nodes[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}

	out := NewTree()
	for _, n := range t.nodes {
		if n.IsTree() {
			out.SetTree(n.Key, n.Sub.Clone())
		} else {
			out.Set(n.Key, n.Value)
		}
	}

	return out
}

// Merge overlays another tree onto this one and returns the result as a new
// tree; neither input is mutated.  When both sides hold subtrees at the same
// key the merge recurses, otherwise the overlay entry wins outright,
// including a scalar replacing a subtree and vice versa.  Keys keep the base
// tree's declaration order; keys only present in the overlay are appended in
// the overlay's order.
func (t *Tree) Merge(overlay *Tree) *Tree {
	if t == nil {
		return overlay.Clone()
	}
	if overlay == nil {
		return t.Clone()
	}

	out := t.Clone()
	for _, n := range overlay.nodes {
		if n.IsTree() {
			if existing, ok := out.index[n.Key]; ok && existing.IsTree() {
				existing.Sub = existing.Sub.Merge(n.Sub)
				continue
			}
			out.SetTree(n.Key, n.Sub.Clone())
			continue
		}

		out.Set(n.Key, n.Value)
	}

	return out
}

// Numbered collects the values of a gap-terminated numbered key family:
// prefix1, prefix2, ... scanned from start upward, stopping at the first
// index which is missing or does not hold a scalar.
func (t *Tree) Numbered(prefix string, start int) []string {
	var values []string

	for i := start; ; i++ {
		v, ok := t.Get(prefix + strconv.Itoa(i))
		if !ok {
			break
		}
		values = append(values, v)
	}

	return values
}

// FromMap builds a tree from a nested string-keyed map, such as the result
// of unmarshalling YAML.  Map keys are visited in sorted order so the
// resulting declaration order is deterministic; parsers which know the real
// declaration order build trees directly instead.
func FromMap(m map[string]interface{}) (*Tree, error) {
	t := NewTree()

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := m[k].(type) {
		case map[string]interface{}:
			sub, err := FromMap(v)
			if err != nil {
				return nil, err
			}
			t.SetTree(k, sub)
		case string:
			t.Set(k, v)
		case bool, int, int64, uint64, float64:
			t.Set(k, fmt.Sprint(v))
		case nil:
			t.Set(k, "")
		default:
			return nil, fmt.Errorf("unsupported value type %T for key %q", v, k)
		}
	}

	return t, nil
}

// Serialize renders the tree as dotted key=value properties, one per line,
// in declaration order.
func (t *Tree) Serialize() []byte {
	var buf bytes.Buffer
	t.serialize(&buf, "")
	return buf.Bytes()
}

func (t *Tree) serialize(buf *bytes.Buffer, prefix string) {
	if t == nil {
		return
	}

	for _, n := range t.nodes {
		key := n.Key
		if prefix != "" {
			key = prefix + "." + n.Key
		}
		if n.IsTree() {
			n.Sub.serialize(buf, key)
			continue
		}
		fmt.Fprintf(buf, "%s=%s\n", key, n.Value)
	}
}

func (t *Tree) String() string {
	return string(t.Serialize())
}
