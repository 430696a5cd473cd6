package sim

import "math/bits"

// MemoryPage tracks wear on one physical page.
type MemoryPage struct {
	PeriodWrites uint64 // writes since the last remap
	TotalWrites  uint64 // lifetime writes, never decreases
}

// NodeMemory is the physical page array of one node, indexed by physical page number.
type NodeMemory []MemoryPage

// NewNodeMemory allocates a zeroed memory of pageCount pages.
func NewNodeMemory(pageCount uint64) NodeMemory {
	return make(NodeMemory, pageCount)
}

// MaxTotalWrites returns the lifetime writes of the most worn page.
func (m NodeMemory) MaxTotalWrites() uint64 {
	var hottest uint64
	for i := range m {
		if m[i].TotalWrites > hottest {
			hottest = m[i].TotalWrites
		}
	}
	return hottest
}

// nextPow2 rounds n up to a power of two; exact powers of two are returned unchanged.
func nextPow2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len64(n)
}

// SizeMemory returns the page count shared by every node memory: the next power of
// two at or above the largest write set.
func SizeMemory(writeSets []*WriteSet) (uint64, error) {
	if len(writeSets) == 0 {
		return 0, invalidConfig("must supply at least one write set")
	}
	var maxPages uint64
	for _, ws := range writeSets {
		if ws.PageCount() > maxPages {
			maxPages = ws.PageCount()
		}
	}
	if maxPages == 0 {
		return 0, invalidConfig("all write sets are empty")
	}
	return nextPow2(maxPages), nil
}

// PhysicalIndex maps a logical page to its physical page under the given offset.
func PhysicalIndex(logicalPage, offset, memoryPageCount uint64) uint64 {
	return (logicalPage + offset) % memoryPageCount
}
