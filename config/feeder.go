// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

// Feeder provides configuration data from some source, e.g. a file or the
// environment.
type Feeder interface {
	// Feed decodes the source into the given structure.
	Feed(structure interface{}) error

	// Write persists the given structure back to the source, merging with
	// its current contents when merge is set.  Sources that cannot be
	// written to return nil.
	Write(structure interface{}, merge bool) error
}
