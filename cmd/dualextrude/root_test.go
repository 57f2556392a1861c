// Tests for the dualextrude command line.
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) error {
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRequiresBothPaths(t *testing.T) {
	assert.Error(t, execute())
	assert.Error(t, execute("only-one.gcode"))
}

func TestDiameterFlagsMustPair(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.gcode")
	require.NoError(t, os.WriteFile(in, []byte("M101 T0\n"), 0644))

	err := execute(in, filepath.Join(dir, "out.gcode"),
		"--input-diameter", "1.75", "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be given together")
}

func TestConvertViaCLI(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.gcode")
	out := filepath.Join(dir, "out.gcode")
	require.NoError(t, os.WriteFile(in, []byte("M104 S200 T0\nG1 X10 E5\nG1 X20 E8\n"), 0644))

	err := execute(in, out,
		"--input-diameter", "1.75", "--added-diameter", "1.75", "--quiet")
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"M104 S200 T1\nM104 S200 T0\nG1 X10 A5 B5\nG1 X20 B8.00000 A8\n",
		string(got))
}

func TestConflictFailsViaCLI(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.gcode")
	out := filepath.Join(dir, "out.gcode")
	require.NoError(t, os.WriteFile(in, []byte("M101 T0\nM101 T1\n"), 0644))

	err := execute(in, out,
		"--input-diameter", "1.75", "--added-diameter", "1.75", "--quiet")
	require.Error(t, err)
	_, serr := os.Stat(out)
	assert.True(t, os.IsNotExist(serr), "output must not be created on conflict")
}

func TestProfileFlagOverridesBound(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.gcode")
	out := filepath.Join(dir, "out.gcode")
	prof := filepath.Join(dir, "profile.yaml")
	// A speed token over the default bound, allowed by a raised one.
	require.NoError(t, os.WriteFile(in, []byte("M101 T0\nM108 R123456789012345\n"), 0644))
	require.NoError(t, os.WriteFile(prof, []byte("max_argument_length: 32\n"), 0644))

	err := execute(in, out, "--profile", prof,
		"--input-diameter", "1.75", "--added-diameter", "1.75", "--quiet")
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), "M108 R123456789012345 T1")
}
