// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package arduino

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// PlatformVersion identifies the release of the platform core sources a
// sketch is built against.  Releases before 1.0 lay their cores out
// differently and carry no variant directories, so several build decisions
// hinge on the major component.
type PlatformVersion struct {
	v *semver.Version
}

// DefaultVersion is the platform release assumed when none is configured.
var DefaultVersion = MustPlatformVersion("1.0.5")

// ParsePlatformVersion parses a platform release string such as "1.0.5".
// Two-component versions ("1.5") are accepted.
func ParsePlatformVersion(s string) (*PlatformVersion, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("could not parse platform version %q: %w", s, err)
	}

	return &PlatformVersion{v: v}, nil
}

// MustPlatformVersion is like ParsePlatformVersion but panics on malformed
// input.  Intended for hard-coded versions.
func MustPlatformVersion(s string) *PlatformVersion {
	pv, err := ParsePlatformVersion(s)
	if err != nil {
		panic(err)
	}

	return pv
}

func (pv *PlatformVersion) Major() uint64 {
	return pv.v.Major()
}

func (pv *PlatformVersion) Minor() uint64 {
	return pv.v.Minor()
}

// AsDefine returns the numeric form of the version used for the ARDUINO
// preprocessor define, e.g. "1.5" becomes 105.
func (pv *PlatformVersion) AsDefine() uint64 {
	return pv.v.Major()*100 + pv.v.Minor()
}

func (pv *PlatformVersion) String() string {
	return pv.v.String()
}
