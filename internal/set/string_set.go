// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package set

var exists = struct{}{}

// stringSet is a set of strings which additionally remembers the order in
// which its elements were first inserted.
type stringSet struct {
	v []string
	m map[string]struct{}
}

// NewStringSet returns a new stringSet instance initialized with the given
// values, if any are provided.
func NewStringSet(values ...string) *stringSet {
	s := &stringSet{
		m: make(map[string]struct{}, len(values)),
		v: make([]string, 0, len(values)),
	}

	s.Add(values...)

	return s
}

func (s *stringSet) Add(values ...string) *stringSet {
	for _, value := range values {
		if s.Contains(value) {
			continue
		}
		s.m[value] = exists
		s.v = append(s.v, value)
	}

	return s
}

func (s *stringSet) Remove(values ...string) *stringSet {
	for _, value := range values {
		if !s.Contains(value) {
			continue
		}
		delete(s.m, value)
		s.v = sliceWithout(s.v, value)
	}

	return s
}

// MoveToBack moves an existing value to the tail of the set, preserving the
// relative order of every other element.  Values not present are ignored.
func (s *stringSet) MoveToBack(value string) *stringSet {
	if !s.Contains(value) {
		return s
	}

	s.v = append(sliceWithout(s.v, value), value)

	return s
}

func sliceWithout(s []string, v string) []string {
	idx := -1
	for i, item := range s {
		if item == v {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}
	return append(s[:idx], s[idx+1:]...)
}

func (s *stringSet) Contains(value string) bool {
	_, ok := s.m[value]
	return ok
}

func (s *stringSet) ContainsAnyOf(values ...string) bool {
	for _, value := range values {
		if s.Contains(value) {
			return true
		}
	}
	return false
}

func (s *stringSet) Len() int {
	return len(s.m)
}

// ToSlice returns the elements of the set in insertion order.  The returned
// slice is the set's backing storage and must not be mutated by callers.
func (s *stringSet) ToSlice() []string {
	return s.v
}

func (s1 *stringSet) Equal(s2 *stringSet) bool {
	if s1.Len() != s2.Len() {
		return false
	}
	for _, v := range s1.v {
		if !s2.Contains(v) {
			return false
		}
	}
	return true
}
