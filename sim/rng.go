package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the master seed of a run. Identical keys and write sets
// reproduce identical remap offsets.
type SimulationKey int64

// NewSimulationKey wraps a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Subsystems that own a random stream.
const (
	// SubsystemRemap draws remap offsets. It is seeded with the master seed itself,
	// so seed 8 yields the historical offset sequence.
	SubsystemRemap = "remap"

	// SubsystemWriteSet picks hot pages for synthetic histograms.
	SubsystemWriteSet = "writeset"
)

// PartitionedRNG hands out one independent stream per subsystem, so drawing from
// one never shifts another. Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates the stream set for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	rng, ok := p.streams[name]
	if !ok {
		rng = rand.New(rand.NewSource(p.seedFor(name)))
		p.streams[name] = rng
	}
	return rng
}

// Key returns the master seed.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// seedFor is the master seed for remap offsets and the master seed XOR the
// FNV-1a hash of name for everything else.
func (p *PartitionedRNG) seedFor(name string) int64 {
	if name == SubsystemRemap {
		return int64(p.key)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(p.key) ^ int64(h.Sum64())
}
