package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/endurer-sim/endurer/sim"
	"github.com/endurer-sim/endurer/sim/trace"
	"github.com/endurer-sim/endurer/sim/writeset"
)

var (
	runOpts  runOptions
	logLevel string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "endurer",
	Short: "Trace-driven page-level wear-leveling simulator",
}

// setLogLevel parses and applies the --log flag.
func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes the simulation using parameters from CLI flags and the optional run file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate wear leveling over recorded write sets",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg, paths, units, err := resolveRunConfig(cmd, runOpts)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		writeSets, err := writeset.LoadAll(paths, units)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		s, err := sim.NewSimulator(cfg, writeSets)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		startTime := time.Now()
		s.Run()
		stats := s.ComputeStats()
		stats.Print(os.Stdout)
		if s.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(s.Trace))
		}

		if runOpts.metricsOut != "" {
			if err := writeMetricsTextfile(runOpts.metricsOut, s, stats); err != nil {
				logrus.Fatalf("Failed to write metrics to %s: %v", runOpts.metricsOut, err)
			}
			logrus.Infof("Metrics written to %s", runOpts.metricsOut)
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// printTraceSummary writes the remap trace summary after the main report.
func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Remap Trace Summary ===")
	fmt.Fprintf(w, "Total Remaps      : %d\n", ts.TotalRemaps)
	if ts.TotalRemaps == 0 {
		return
	}
	fmt.Fprintf(w, "Iterations/Remap  : mean %.2f, min %d, max %d\n", ts.MeanInterval, ts.MinInterval, ts.MaxInterval)
	fmt.Fprintf(w, "Distinct Offsets  : %d\n", ts.DistinctOffsets)
	reasons := make([]string, 0, len(ts.ReasonCounts))
	for r := range ts.ReasonCounts {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(w, "Trigger %-10s: %d\n", r, ts.ReasonCounts[r])
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRunFlags registers the run command's flags on c, bound to o.
func addRunFlags(c *cobra.Command, o *runOptions) {
	c.Flags().StringVar(&o.configPath, "config", "", "YAML run configuration; explicitly set flags override its values")
	c.Flags().StringVarP(&o.mode, "mode", "m", "", "Simulation mode: write, time, or lifetime")
	c.Flags().Uint64VarP(&o.pageSize, "page-size", "p", 0, "Page size in bytes")
	c.Flags().Uint64VarP(&o.endurance, "endurance", "c", 0, "Cell write endurance (writes before wear-out)")
	c.Flags().Float64VarP(&o.remapPeriod, "remap-period", "r", 0, "Remap period in writes (write mode) or input time units (time mode)")
	c.Flags().StringArrayVarP(&o.inputs, "input", "i", nil, "Write-set histogram file (repeatable, one per node)")
	c.Flags().Float64SliceVarP(&o.timeUnits, "time-unit", "t", nil, "Input time (instructions, cycles, or s) covered by each input file (repeatable)")
	c.Flags().Int64Var(&o.seed, "seed", sim.DefaultSeed, "Seed for remap offset generation")
	c.Flags().Uint64Var(&o.progressInterval, "progress-interval", sim.DefaultProgressInterval, "Iterations between progress log lines (0 disables)")
	c.Flags().Uint64Var(&o.maxIterations, "max-iterations", 0, "Stop after this many iterations even if no page wore out (0 = unlimited)")
	c.Flags().StringVar(&o.traceLevel, "trace-level", string(trace.TraceLevelNone), "Remap tracing: none or remaps")
	c.Flags().StringVar(&o.metricsOut, "metrics-out", "", "Write final metrics in Prometheus text format to this file")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addRunFlags(runCmd, &runOpts)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
}
