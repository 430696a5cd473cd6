package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/endurer-sim/endurer/sim"
	"github.com/endurer-sim/endurer/sim/writeset"
)

// --- endurer generate ---

var (
	genOut   string
	genSeed  int64
	genSynth writeset.SynthConfig
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic hot/cold write-set histogram",
	Long:  "Generate a write-set histogram file where a random fraction of pages is hot. Useful for sweeping remap periods without a recorded trace.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if genOut == "" {
			logrus.Fatalf("must supply an output file: --out FILE")
		}
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(genSeed)).ForSubsystem(sim.SubsystemWriteSet)
		counts, err := writeset.Synthesize(genSynth, rng)
		if err != nil {
			logrus.Fatalf("Invalid histogram shape: %v", err)
		}
		if err := writeset.Write(genOut, counts); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Wrote %d pages to %s", len(counts), genOut)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Output histogram file")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for hot page selection")
	generateCmd.Flags().Uint64Var(&genSynth.Pages, "pages", 1024, "Number of logical pages")
	generateCmd.Flags().Uint64Var(&genSynth.ColdWrites, "cold-writes", 1, "Writes per cold page")
	generateCmd.Flags().Float64Var(&genSynth.HotFraction, "hot-fraction", 0.01, "Fraction of pages that are hot")
	generateCmd.Flags().Uint64Var(&genSynth.HotWrites, "hot-writes", 100, "Writes per hot page")
}
