// Package testutil provides shared test infrastructure for the endurer simulator.
// It consolidates write-set builders and assertion helpers used across sim/ test packages.
package testutil

import (
	"math"
	"math/rand"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// SkewedCounts returns a reproducible histogram of n pages where most pages see a
// handful of writes and roughly one in sixteen is hot.
func SkewedCounts(seed int64, n int) []uint64 {
	rng := rand.New(rand.NewSource(seed))
	counts := make([]uint64, n)
	for i := range counts {
		counts[i] = uint64(rng.Intn(4))
		if rng.Intn(16) == 0 {
			counts[i] += uint64(50 + rng.Intn(50))
		}
	}
	return counts
}

// Uniform returns a histogram of n pages with w writes each.
func Uniform(n int, w uint64) []uint64 {
	counts := make([]uint64, n)
	for i := range counts {
		counts[i] = w
	}
	return counts
}
