// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFileData(t *testing.T) {
	data := []byte(`
# 1.5.x style board definitions

menu.cpu=Processor

uno.name=Arduino Uno
uno.upload.protocol=arduino
uno.build.mcu=atmega328p
uno.build.f_cpu=16000000L
uno.build.core=arduino
uno.build.variant=standard

pro.name=Arduino Pro
pro.menu.cpu.16MHzatmega328=ATmega328P (16 MHz)
pro.menu.cpu.16MHzatmega328.build.mcu=atmega328p
pro.menu.cpu.16MHzatmega328.build.f_cpu=16000000L
pro.menu.cpu.8MHzatmega328=ATmega328P (8 MHz)
pro.menu.cpu.8MHzatmega328.build.mcu=atmega328p
pro.menu.cpu.8MHzatmega328.build.f_cpu=8000000L

this line carries no property at all
.=empty segments are skipped
`)

	f, err := ParseFileData(data)
	require.NoError(t, err)
	require.Equal(t, []string{"uno", "pro"}, f.IDs())

	title, ok := f.Titles.Get("cpu")
	require.True(t, ok)
	require.Equal(t, "Processor", title)

	uno, ok := f.Board("uno")
	require.True(t, ok)
	require.Equal(t, "Arduino Uno", uno.Name())

	mcu, ok := uno.BuildField("mcu")
	require.True(t, ok)
	require.Equal(t, "atmega328p", mcu)

	pro, ok := f.Board("pro")
	require.True(t, ok)

	cpus := pro.Menu().Sub("cpu")
	require.NotNil(t, cpus)
	require.Equal(t, []string{"16MHzatmega328", "8MHzatmega328"}, cpus.Keys())

	// The display name declared before the choice's overrides must have been
	// promoted into the choice subtree.
	slow := cpus.Sub("8MHzatmega328")
	require.NotNil(t, slow)

	name, ok := slow.Get("name")
	require.True(t, ok)
	require.Equal(t, "ATmega328P (8 MHz)", name)

	fcpu, ok := slow.Sub("build").Get("f_cpu")
	require.True(t, ok)
	require.Equal(t, "8000000L", fcpu)
}

func TestLoadWithLocalOverlay(t *testing.T) {
	dir := t.TempDir()

	base := `uno.name=Arduino Uno
uno.build.mcu=atmega328p
uno.build.f_cpu=16000000L
`
	local := `uno.build.f_cpu=20000000L
nano.name=Nano Clone
nano.build.mcu=atmega168
`

	require.NoError(t, os.WriteFile(filepath.Join(dir, "boards.txt"), []byte(base), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boards.local.txt"), []byte(local), 0o644))

	f, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"uno", "nano"}, f.IDs())

	uno, _ := f.Board("uno")
	fcpu, _ := uno.BuildField("f_cpu")
	require.Equal(t, "20000000L", fcpu, "local overlay must override the base database")

	mcu, _ := uno.BuildField("mcu")
	require.Equal(t, "atmega328p", mcu, "keys absent from the overlay must survive")

	nano, ok := f.Board("nano")
	require.True(t, ok)
	require.Equal(t, "Nano Clone", nano.Name())
}

func TestLoadWithoutLocalOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boards.txt"), []byte("uno.name=Arduino Uno\n"), 0o644))

	f, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"uno"}, f.IDs())
}

func TestLoadMissingDatabase(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}
