// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/mitchellh/go-homedir"
)

const (
	SKETCHKIT_CONFIG_DIR = "SKETCHKIT_CONFIG_DIR"
	XDG_CONFIG_HOME      = "XDG_CONFIG_HOME"
)

// Config path precedence
// 1. SKETCHKIT_CONFIG_DIR
// 2. XDG_CONFIG_HOME
// 3. HOME
func ConfigDir() string {
	if a := os.Getenv(SKETCHKIT_CONFIG_DIR); a != "" {
		return a
	}

	if b := os.Getenv(XDG_CONFIG_HOME); b != "" {
		return filepath.Join(b, "sketchkit")
	}

	c, _ := homedir.Dir()
	return filepath.Join(c, ".config", "sketchkit")
}

func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// HomeDirPath resolves a subdirectory of the invoking user's home.
func HomeDirPath(subdir string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, subdir), nil
}

func pathError(err error) error {
	var pathError *os.PathError
	if errors.As(err, &pathError) && errors.Is(pathError.Err, syscall.ENOTDIR) {
		if p := findRegularFile(pathError.Path); p != "" {
			return fmt.Errorf("remove or rename regular file `%s` (must be a directory)", p)
		}
	}
	return err
}

func findRegularFile(p string) string {
	for {
		if s, err := os.Stat(p); err == nil && s.Mode().IsRegular() {
			return p
		}
		newPath := filepath.Dir(p)
		if newPath == p || newPath == string(filepath.Separator) || newPath == "." {
			break
		}
		p = newPath
	}
	return ""
}
