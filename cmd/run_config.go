package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/endurer-sim/endurer/sim"
	"github.com/endurer-sim/endurer/sim/trace"
)

// RunFile is the YAML form of a run configuration.
// Nil pointer fields mean "not set in YAML"; string fields use "" for "not set".
type RunFile struct {
	Mode               string      `yaml:"mode"`
	PageSize           *uint64     `yaml:"page_size"`
	CellWriteEndurance *uint64     `yaml:"cell_write_endurance"`
	RemapPeriod        *float64    `yaml:"remap_period"`
	Seed               *int64      `yaml:"seed"`
	ProgressInterval   *uint64     `yaml:"progress_interval"`
	MaxIterations      *uint64     `yaml:"max_iterations"`
	TraceLevel         string      `yaml:"trace_level"`
	Inputs             []InputSpec `yaml:"inputs"`
}

// InputSpec pairs a write-set file with the input time it covers.
type InputSpec struct {
	Path     string  `yaml:"path"`
	TimeUnit float64 `yaml:"time_unit"`
}

// loadRunFile parses a run configuration with strict field checking, so typos
// are errors. Relative input paths are resolved against the file's directory.
func loadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var rf RunFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rf); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range rf.Inputs {
		if rf.Inputs[i].Path != "" && !filepath.IsAbs(rf.Inputs[i].Path) {
			rf.Inputs[i].Path = filepath.Join(dir, rf.Inputs[i].Path)
		}
	}
	return &rf, nil
}

// runOptions holds the raw flag values of the run command.
type runOptions struct {
	configPath       string
	mode             string
	pageSize         uint64
	endurance        uint64
	remapPeriod      float64
	inputs           []string
	timeUnits        []float64
	seed             int64
	progressInterval uint64
	maxIterations    uint64
	traceLevel       string
	metricsOut       string
}

// resolveRunConfig merges the optional run file with the flags. A flag the user set
// explicitly always wins over the file; an unset flag never overrides a file value.
func resolveRunConfig(cmd *cobra.Command, opts runOptions) (sim.Config, []string, []float64, error) {
	rf := &RunFile{}
	if opts.configPath != "" {
		var err error
		if rf, err = loadRunFile(opts.configPath); err != nil {
			return sim.Config{}, nil, nil, err
		}
	}
	changed := cmd.Flags().Changed

	modeName := rf.Mode
	if changed("mode") || modeName == "" {
		modeName = opts.mode
	}
	mode, err := sim.ParseMode(modeName)
	if err != nil {
		return sim.Config{}, nil, nil, err
	}

	cfg := sim.NewConfig(mode, opts.pageSize, opts.endurance, opts.remapPeriod)
	cfg.Seed = opts.seed
	cfg.ProgressInterval = opts.progressInterval
	cfg.MaxIterations = opts.maxIterations
	cfg.TraceLevel = trace.TraceLevel(opts.traceLevel)

	if rf.PageSize != nil && !changed("page-size") {
		cfg.PageSize = *rf.PageSize
	}
	if rf.CellWriteEndurance != nil && !changed("endurance") {
		cfg.CellWriteEndurance = *rf.CellWriteEndurance
	}
	if rf.RemapPeriod != nil && !changed("remap-period") {
		cfg.RemapPeriod = *rf.RemapPeriod
	}
	if rf.Seed != nil && !changed("seed") {
		cfg.Seed = *rf.Seed
	}
	if rf.ProgressInterval != nil && !changed("progress-interval") {
		cfg.ProgressInterval = *rf.ProgressInterval
	}
	if rf.MaxIterations != nil && !changed("max-iterations") {
		cfg.MaxIterations = *rf.MaxIterations
	}
	if rf.TraceLevel != "" && !changed("trace-level") {
		cfg.TraceLevel = trace.TraceLevel(rf.TraceLevel)
	}

	if err := cfg.Validate(); err != nil {
		return sim.Config{}, nil, nil, err
	}

	var paths []string
	var units []float64
	for _, in := range rf.Inputs {
		paths = append(paths, in.Path)
		units = append(units, in.TimeUnit)
	}
	if changed("input") {
		paths = opts.inputs
	}
	if changed("time-unit") {
		units = opts.timeUnits
	}
	if len(paths) == 0 {
		return sim.Config{}, nil, nil, fmt.Errorf("%w: must supply input file(s): --input INPUT_FILE [--input INPUT_FILE]...", sim.ErrInvalidConfig)
	}
	if len(units) == 0 {
		return sim.Config{}, nil, nil, fmt.Errorf("%w: must supply input time units (in instructions/cycles/seconds): --time-unit T [--time-unit T]...", sim.ErrInvalidConfig)
	}
	return cfg, paths, units, nil
}
