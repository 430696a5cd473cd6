package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRemaps     int
	MeanInterval    float64 // iterations between consecutive remaps (first measured from 0)
	MinInterval     uint64
	MaxInterval     uint64
	DistinctOffsets int            // distinct offsets drawn across all nodes
	ReasonCounts    map[string]int // trigger reason → count
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ReasonCounts: make(map[string]int),
	}
	if st == nil || len(st.Remaps) == 0 {
		return summary
	}

	summary.TotalRemaps = len(st.Remaps)
	offsets := make(map[uint64]struct{})
	var prev, total uint64
	for i, r := range st.Remaps {
		summary.ReasonCounts[r.Reason]++
		for _, off := range r.Offsets {
			offsets[off] = struct{}{}
		}

		interval := r.Iteration - prev
		prev = r.Iteration
		total += interval
		if i == 0 || interval < summary.MinInterval {
			summary.MinInterval = interval
		}
		if interval > summary.MaxInterval {
			summary.MaxInterval = interval
		}
	}
	summary.MeanInterval = float64(total) / float64(len(st.Remaps))
	summary.DistinctOffsets = len(offsets)

	return summary
}
