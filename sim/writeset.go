package sim

// WriteSet is a recorded per-page write-count histogram.
// Counts is never modified after loading.
type WriteSet struct {
	Path     string   // source file, for reporting
	Counts   []uint64 // writes per logical page, in page order
	TimeUnit float64  // input time (instructions, cycles or seconds) covered by one application
}

// NewWriteSet wraps counts recorded over timeUnit input time.
func NewWriteSet(path string, counts []uint64, timeUnit float64) *WriteSet {
	return &WriteSet{Path: path, Counts: counts, TimeUnit: timeUnit}
}

// PageCount returns the number of logical pages in the write set.
func (w *WriteSet) PageCount() uint64 {
	return uint64(len(w.Counts))
}

// MaxWrites returns the write count of the hottest page.
func (w *WriteSet) MaxWrites() uint64 {
	var m uint64
	for _, c := range w.Counts {
		if c > m {
			m = c
		}
	}
	return m
}

// TotalWrites returns the sum of all page write counts.
func (w *WriteSet) TotalWrites() uint64 {
	var sum uint64
	for _, c := range w.Counts {
		sum += c
	}
	return sum
}
