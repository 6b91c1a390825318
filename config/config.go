// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

// Config holds the tool-wide configuration.  Values are seeded from the
// `default` tags, overridden by the configuration file and finally by the
// `env` environment variables.
type Config struct {
	Board    string `yaml:"board" env:"SKETCHKIT_BOARD" long:"board" usage:"Board model to build for" default:"uno"`
	Menu     string `yaml:"menu,omitempty" env:"SKETCHKIT_MENU" long:"menu" usage:"Menu choices, e.g. cpu:atmega328"`
	BuildDir string `yaml:"build_dir" env:"SKETCHKIT_BUILD_DIR" long:"build-dir" usage:"Directory for intermediate build output" default:".build"`

	Paths struct {
		Config     string `yaml:"config,omitempty" env:"SKETCHKIT_PATHS_CONFIG" long:"config-dir" usage:"Path to SketchKit config directory"`
		Dist       string `yaml:"dist,omitempty" env:"SKETCHKIT_PATHS_DIST" long:"dist-dir" usage:"Path to the Arduino distribution"`
		Sketchbook string `yaml:"sketchbook,omitempty" env:"SKETCHKIT_PATHS_SKETCHBOOK" long:"sketchbook-dir" usage:"Path to the sketchbook with user libraries"`
	} `yaml:"paths,omitempty"`

	Log struct {
		Level      string `yaml:"level" env:"SKETCHKIT_LOG_LEVEL" long:"log-level" usage:"Log level verbosity" default:"info"`
		Timestamps bool   `yaml:"timestamps" env:"SKETCHKIT_LOG_TIMESTAMPS" long:"log-timestamps" usage:"Enable log timestamps"`
		Type       string `yaml:"type" env:"SKETCHKIT_LOG_TYPE" long:"log-type" usage:"Log type" default:"fancy"`
	} `yaml:"log"`

	Scanner struct {
		Bin      string   `yaml:"bin" env:"SKETCHKIT_SCANNER_BIN" long:"scanner-bin" usage:"Compiler driver used for dependency scans" default:"avr-gcc"`
		Excludes []string `yaml:"excludes,omitempty" usage:"Library subdirectories excluded from include paths"`
	} `yaml:"scanner"`

	Flags struct {
		CPP string `yaml:"cppflags" env:"SKETCHKIT_CPPFLAGS" long:"cppflags" usage:"Flags for C and C++ preprocessing" default:"-ffunction-sections -fdata-sections -g -Os -w"`
		C   string `yaml:"cflags,omitempty" env:"SKETCHKIT_CFLAGS" long:"cflags" usage:"Flags for compiling C sources"`
		CXX string `yaml:"cxxflags" env:"SKETCHKIT_CXXFLAGS" long:"cxxflags" usage:"Flags for compiling C++ sources" default:"-fno-exceptions"`
		LD  string `yaml:"ldflags" env:"SKETCHKIT_LDFLAGS" long:"ldflags" usage:"Flags for linking" default:"-Os --gc-sections"`
	} `yaml:"flags"`
}

type ConfigDetail struct {
	Key           string
	Description   string
	AllowedValues []string
}

// Descriptions of each configuration parameter as well as valid values
var configDetails = []ConfigDetail{
	{
		Key:         "board",
		Description: "the board model builds target by default",
	},
	{
		Key:         "build_dir",
		Description: "the directory build output is placed in",
	},
	{
		Key:         "scanner.bin",
		Description: "the compiler driver used for dependency scans",
	},
	{
		Key:         "log.level",
		Description: "Set the logging verbosity",
		AllowedValues: []string{
			"fatal",
			"error",
			"warn",
			"info",
			"debug",
			"trace",
		},
	},
	{
		Key:         "log.type",
		Description: "Set the logging output style",
		AllowedValues: []string{
			"quiet",
			"basic",
			"fancy",
			"json",
		},
	},
	{
		Key:         "log.timestamps",
		Description: "Show timestamps with log output",
	},
}

func ConfigDetails() []ConfigDetail {
	return configDetails
}
