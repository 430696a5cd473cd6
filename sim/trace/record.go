// Package trace provides remap decision recording for wear-leveling analysis.
// It stores plain data types and does not import sim.
package trace

// RemapRecord captures a single remap event.
type RemapRecord struct {
	Iteration         uint64   // completed passes when the remap fired
	Remap             uint64   // 1-based remap number
	Reason            string   // "write" or "time"
	NodeShift         uint64   // cluster shift after the remap
	Offsets           []uint64 // new intra-node offset per node, in node order
	HottestPageWrites uint64   // lifetime writes of the most worn page before the remap
}
