package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endurer-sim/endurer/sim/trace"
	"github.com/endurer-sim/endurer/sim/writeset"
)

// captureStdout runs fn with os.Stdout redirected and returns what it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrintTraceSummary_ListsReasonsInOrder(t *testing.T) {
	// GIVEN a summary with two trigger kinds
	ts := &trace.TraceSummary{
		TotalRemaps:     3,
		MeanInterval:    2.5,
		MinInterval:     1,
		MaxInterval:     4,
		DistinctOffsets: 5,
		ReasonCounts:    map[string]int{"write": 2, "time": 1},
	}
	var buf bytes.Buffer

	// WHEN printed
	printTraceSummary(&buf, ts)

	// THEN the header, intervals and sorted reasons appear
	out := buf.String()
	assert.Contains(t, out, "=== Remap Trace Summary ===")
	assert.Contains(t, out, "Total Remaps      : 3")
	assert.Contains(t, out, "mean 2.50, min 1, max 4")
	assert.Contains(t, out, "Distinct Offsets  : 5")
	assert.Less(t, strings.Index(out, "Trigger time"), strings.Index(out, "Trigger write"))
}

func TestPrintTraceSummary_NoRemaps_OnlyTotal(t *testing.T) {
	var buf bytes.Buffer
	printTraceSummary(&buf, trace.Summarize(trace.NewSimulationTrace(trace.TraceLevelRemaps)))

	assert.Contains(t, buf.String(), "Total Remaps      : 0")
	assert.NotContains(t, buf.String(), "Iterations/Remap")
}

func TestGenerateThenRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	histogram := filepath.Join(dir, "hot.bin")
	metrics := filepath.Join(dir, "endurer.prom")

	// GIVEN a synthetic 16-page histogram with 4 hot pages
	rootCmd.SetArgs([]string{"generate", "--log", "error", "-o", histogram,
		"--pages", "16", "--hot-fraction", "0.25", "--hot-writes", "9", "--cold-writes", "1"})
	require.NoError(t, rootCmd.Execute())

	ws, err := writeset.Load(histogram, 1)
	require.NoError(t, err)
	hot := 0
	for _, c := range ws.Counts {
		if c == 9 {
			hot++
		}
	}
	assert.Equal(t, uint64(16), ws.PageCount())
	assert.Equal(t, 4, hot)

	// WHEN it is simulated in write mode with remap tracing
	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"run", "--log", "error", "-m", "write", "-p", "4096", "-c", "1000", "-r", "50",
			"-i", histogram, "-t", "2", "--trace-level", "remaps", "--metrics-out", metrics})
		require.NoError(t, rootCmd.Execute())
	})

	// THEN the report, trace summary and metrics file are all produced
	assert.Contains(t, out, "WSS stats:")
	assert.Contains(t, out, "n. remaps:")
	assert.Contains(t, out, "=== Remap Trace Summary ===")
	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `endurer_memory_pages{mode="write"} 16`)
}
