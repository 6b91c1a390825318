// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package sketch

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"sketchkit.sh/config"
)

func TestLogFlagsOverrideConfig(t *testing.T) {
	cfgm, err := config.NewConfigManager()
	require.NoError(t, err)

	cmd := NewCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--log-level", "debug", "--log-type", "json", "version"})

	ctx := config.WithConfigManager(context.Background(), cfgm)
	require.NoError(t, cmd.ExecuteContext(ctx))

	require.Equal(t, "debug", cfgm.Config.Log.Level)
	require.Equal(t, "json", cfgm.Config.Log.Type)
}

func TestVersionSubcommand(t *testing.T) {
	cfgm, err := config.NewConfigManager()
	require.NoError(t, err)

	cmd := NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"version"})

	ctx := config.WithConfigManager(context.Background(), cfgm)
	require.NoError(t, cmd.ExecuteContext(ctx))
	require.Contains(t, out.String(), "sketch ")
}

func TestNewLogger(t *testing.T) {
	cfgm, err := config.NewConfigManager()
	require.NoError(t, err)

	cfg := cfgm.Config
	cfg.Log.Level = "trace"
	cfg.Log.Type = "basic"

	logger := newLogger(cfg)
	require.Equal(t, logrus.TraceLevel, logger.Level)

	cfg.Log.Type = "quiet"
	logger = newLogger(cfg)
	require.Equal(t, logrus.ErrorLevel, logger.Level)
}
