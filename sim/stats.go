// Derives capacity-normalized wear statistics from a finished simulation.

package sim

import (
	"fmt"
	"io"
	"math"
)

// Stats holds derived statistics, normalized to a 1 GiB memory where noted.
type Stats struct {
	Mode Mode

	// Per write set, in input order.
	WSSPages []uint64
	WSSBytes []uint64
	WSSGiB   []float64

	MemoriesPerGiB float64 // simulated memories that fit in 1 GiB

	Remaps           uint64
	Iterations       uint64
	IterationsPerGiB float64
	TimeUnscaled     float64 // minimum node runtime; lifetime estimate in lifetime mode
	TimePerGiB       float64
	AvgRuntime       float64
	MaxTotalWrites   uint64
	Terminated       bool

	Lifetimes []LifetimeEstimate // lifetime mode only
}

// ComputeStats derives Stats from the simulator's final state. The result is computed
// once and cached; later calls return the same value.
func (s *Simulator) ComputeStats() *Stats {
	if s.stats != nil {
		return s.stats
	}

	st := &Stats{
		Mode:     s.Config.Mode,
		WSSPages: make([]uint64, len(s.WriteSets)),
		WSSBytes: make([]uint64, len(s.WriteSets)),
		WSSGiB:   make([]float64, len(s.WriteSets)),
	}
	for i, ws := range s.WriteSets {
		st.WSSPages[i] = ws.PageCount()
		st.WSSBytes[i] = ws.PageCount() * s.Config.PageSize
		st.WSSGiB[i] = float64(st.WSSBytes[i]) / float64(GiB)
	}

	st.MemoriesPerGiB = float64(GiB) / float64(s.MemoryPageCount*s.Config.PageSize)

	if s.Config.Mode == ModeLifetime {
		st.Lifetimes = s.Lifetimes
		st.TimeUnscaled = math.Inf(1)
		for _, est := range s.Lifetimes {
			st.TimeUnscaled = min(st.TimeUnscaled, est.TimeUnscaled)
		}
		s.stats = st
		return st
	}

	st.Remaps = s.Counters.Remaps
	st.Iterations = s.Counters.Iterations
	st.IterationsPerGiB = float64(s.Counters.Iterations) * st.MemoriesPerGiB
	st.TimeUnscaled = s.MinRuntime()
	st.TimePerGiB = st.TimeUnscaled * st.MemoriesPerGiB
	st.AvgRuntime = s.AvgRuntime()
	st.MaxTotalWrites = s.MaxTotalWrites()
	st.Terminated = s.Terminated

	s.stats = st
	return st
}

// Print writes the human-readable report.
func (st *Stats) Print(w io.Writer) {
	fmt.Fprintln(w, "WSS stats:")
	for i := range st.WSSPages {
		fmt.Fprintf(w, "WSS %d: %d pages (%d bytes; %f GiB)\n", i, st.WSSPages[i], st.WSSBytes[i], st.WSSGiB[i])
	}
	fmt.Fprintf(w, "mems. per GiB: %f\n", st.MemoriesPerGiB)

	if st.Mode == ModeLifetime {
		for i, est := range st.Lifetimes {
			fmt.Fprintf(w, "write set %d: max page writes %d; total writes %d; time %f\n",
				i, est.MaxPageWrites, est.TotalPageWrites, est.TimeUnscaled)
		}
		fmt.Fprintf(w, "time (in instructions, cycles, or s): %f\n", st.TimeUnscaled)
		return
	}

	fmt.Fprintf(w, "n. remaps: %d\n", st.Remaps)
	fmt.Fprintf(w, "n. iterations: %d\n", st.Iterations)
	fmt.Fprintf(w, "n. iterations per GiB: %f\n", st.IterationsPerGiB)
	fmt.Fprintf(w, "time (in instructions, cycles, or s) per GiB: %f\n", st.TimePerGiB)
	fmt.Fprintf(w, "avg. node time (in instructions, cycles, or s): %f\n", st.AvgRuntime)
	fmt.Fprintf(w, "hottest page writes: %d\n", st.MaxTotalWrites)
	if !st.Terminated {
		fmt.Fprintln(w, "WARNING: iteration cap reached before any page wore out")
	}
}
