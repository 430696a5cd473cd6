package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endurer-sim/endurer/sim"
	"github.com/endurer-sim/endurer/sim/trace"
)

func parseRunFlags(t *testing.T, args ...string) (*cobra.Command, runOptions) {
	t.Helper()
	var o runOptions
	c := &cobra.Command{Use: "run"}
	addRunFlags(c, &o)
	require.NoError(t, c.ParseFlags(args))
	return c, o
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveRunConfig_FlagsOnly(t *testing.T) {
	// GIVEN the classic short-flag invocation with two traces
	c, o := parseRunFlags(t, "-m", "WRITE", "-p", "4096", "-c", "1000", "-r", "10",
		"-i", "a.bin", "-i", "b.bin", "-t", "1.5", "-t", "2")

	// WHEN resolved
	cfg, paths, units, err := resolveRunConfig(c, o)

	// THEN every flag lands in the config
	require.NoError(t, err)
	assert.Equal(t, sim.ModeWrite, cfg.Mode)
	assert.Equal(t, uint64(4096), cfg.PageSize)
	assert.Equal(t, uint64(1000), cfg.CellWriteEndurance)
	assert.Equal(t, 10.0, cfg.RemapPeriod)
	assert.Equal(t, sim.DefaultSeed, cfg.Seed)
	assert.Equal(t, sim.DefaultProgressInterval, cfg.ProgressInterval)
	assert.Equal(t, trace.TraceLevelNone, cfg.TraceLevel)
	assert.Equal(t, []string{"a.bin", "b.bin"}, paths)
	assert.Equal(t, []float64{1.5, 2}, units)
}

func TestResolveRunConfig_RunFileOnly(t *testing.T) {
	// GIVEN a run file with relative input paths
	path := writeTempYAML(t, `
mode: time
page_size: 64
cell_write_endurance: 100000000
remap_period: 1e6
seed: 3
max_iterations: 500
trace_level: remaps
inputs:
  - path: app0.bin
    time_unit: 1.5e9
  - path: /abs/app1.bin
    time_unit: 2
`)
	c, o := parseRunFlags(t, "--config", path)

	// WHEN resolved
	cfg, paths, units, err := resolveRunConfig(c, o)

	// THEN file values are used and relative paths are anchored at the file
	require.NoError(t, err)
	assert.Equal(t, sim.ModeTime, cfg.Mode)
	assert.Equal(t, uint64(64), cfg.PageSize)
	assert.Equal(t, uint64(100000000), cfg.CellWriteEndurance)
	assert.Equal(t, 1e6, cfg.RemapPeriod)
	assert.Equal(t, int64(3), cfg.Seed)
	assert.Equal(t, uint64(500), cfg.MaxIterations)
	assert.Equal(t, trace.TraceLevelRemaps, cfg.TraceLevel)
	assert.Equal(t, []string{filepath.Join(filepath.Dir(path), "app0.bin"), "/abs/app1.bin"}, paths)
	assert.Equal(t, []float64{1.5e9, 2}, units)
}

func TestResolveRunConfig_ExplicitFlagsOverrideRunFile(t *testing.T) {
	path := writeTempYAML(t, `
mode: write
page_size: 4096
cell_write_endurance: 500
remap_period: 20
seed: 3
inputs:
  - path: a.bin
    time_unit: 1
`)
	c, o := parseRunFlags(t, "--config", path, "--page-size", "64", "--seed", "8", "-m", "lifetime")

	cfg, _, _, err := resolveRunConfig(c, o)

	require.NoError(t, err)
	assert.Equal(t, sim.ModeLifetime, cfg.Mode)
	assert.Equal(t, uint64(64), cfg.PageSize)
	assert.Equal(t, int64(8), cfg.Seed)
	// unset flags never override the file
	assert.Equal(t, uint64(500), cfg.CellWriteEndurance)
	assert.Equal(t, 20.0, cfg.RemapPeriod)
}

func TestResolveRunConfig_FlagTimeUnitsOverrideFileInputs(t *testing.T) {
	path := writeTempYAML(t, `
mode: lifetime
page_size: 1
cell_write_endurance: 10
inputs:
  - path: a.bin
    time_unit: 1
`)
	c, o := parseRunFlags(t, "--config", path, "-t", "7")

	_, paths, units, err := resolveRunConfig(c, o)

	require.NoError(t, err)
	assert.Len(t, paths, 1)
	assert.Equal(t, []float64{7}, units)
}

func TestResolveRunConfig_UnknownYAMLField_Error(t *testing.T) {
	path := writeTempYAML(t, "mode: write\npage_sise: 4096\n")
	c, o := parseRunFlags(t, "--config", path)

	_, _, _, err := resolveRunConfig(c, o)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_sise")
}

func TestResolveRunConfig_MissingRunFile_Error(t *testing.T) {
	c, o := parseRunFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	_, _, _, err := resolveRunConfig(c, o)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveRunConfig_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing mode", []string{"-p", "1", "-c", "1", "-r", "1", "-i", "a", "-t", "1"}},
		{"unknown mode", []string{"-m", "read", "-p", "1", "-c", "1", "-r", "1", "-i", "a", "-t", "1"}},
		{"missing page size", []string{"-m", "write", "-c", "1", "-r", "1", "-i", "a", "-t", "1"}},
		{"missing endurance", []string{"-m", "write", "-p", "1", "-r", "1", "-i", "a", "-t", "1"}},
		{"missing remap period", []string{"-m", "time", "-p", "1", "-c", "1", "-i", "a", "-t", "1"}},
		{"missing inputs", []string{"-m", "write", "-p", "1", "-c", "1", "-r", "1", "-t", "1"}},
		{"missing time units", []string{"-m", "write", "-p", "1", "-c", "1", "-r", "1", "-i", "a"}},
		{"bad trace level", []string{"-m", "write", "-p", "1", "-c", "1", "-r", "1", "-i", "a", "-t", "1", "--trace-level", "all"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, o := parseRunFlags(t, tt.args...)
			_, _, _, err := resolveRunConfig(c, o)
			assert.ErrorIs(t, err, sim.ErrInvalidConfig)
		})
	}
}

func TestResolveRunConfig_LifetimeNeedsNoRemapPeriod(t *testing.T) {
	c, o := parseRunFlags(t, "-m", "lifetime", "-p", "1", "-c", "100", "-i", "a", "-t", "10")
	cfg, _, _, err := resolveRunConfig(c, o)
	require.NoError(t, err)
	assert.Equal(t, sim.ModeLifetime, cfg.Mode)
}
