package writeset

import (
	"fmt"
	"math/rand"
)

// SynthConfig describes a synthetic hot/cold write histogram.
type SynthConfig struct {
	Pages       uint64  // logical pages (must be > 0)
	ColdWrites  uint64  // writes per cold page
	HotFraction float64 // fraction of pages that are hot, in [0, 1]
	HotWrites   uint64  // writes per hot page
}

// Validate checks that the histogram shape is well defined.
func (c SynthConfig) Validate() error {
	if c.Pages == 0 {
		return fmt.Errorf("pages must be > 0")
	}
	if c.HotFraction < 0 || c.HotFraction > 1 {
		return fmt.Errorf("hot fraction must be in [0, 1], got %v", c.HotFraction)
	}
	return nil
}

// Synthesize builds a histogram where round(Pages*HotFraction) pages, chosen
// uniformly by rng, receive HotWrites and the rest receive ColdWrites.
func Synthesize(c SynthConfig, rng *rand.Rand) ([]uint64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	counts := make([]uint64, c.Pages)
	for i := range counts {
		counts[i] = c.ColdWrites
	}

	hot := uint64(float64(c.Pages)*c.HotFraction + 0.5)
	// Partial Fisher-Yates over page indices picks hot pages without repeats.
	perm := make([]uint64, c.Pages)
	for i := range perm {
		perm[i] = uint64(i)
	}
	for i := uint64(0); i < hot; i++ {
		j := i + uint64(rng.Int63n(int64(c.Pages-i)))
		perm[i], perm[j] = perm[j], perm[i]
		counts[perm[i]] = c.HotWrites
	}
	return counts, nil
}
