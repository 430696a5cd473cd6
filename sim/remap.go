package sim

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/endurer-sim/endurer/sim/trace"
)

// remapTrigger decides when a remap fires. One implementation per remapping mode,
// chosen once when the scheduler is built.
type remapTrigger interface {
	// pageThreshold is the PeriodWrites level at which a page makes a remap due.
	pageThreshold() uint64
	// shouldRemap is called once per completed pass.
	shouldRemap(pageDue bool, passTime float64) bool
	reason() string
}

// writeTrigger fires when any page's PeriodWrites reached the remap period.
type writeTrigger struct {
	threshold uint64
}

func newWriteTrigger(period float64) *writeTrigger {
	// PeriodWrites is integral, so >= period is >= ceil(period).
	ceil := math.Ceil(period)
	if ceil >= math.MaxUint64 {
		return &writeTrigger{threshold: math.MaxUint64}
	}
	return &writeTrigger{threshold: uint64(ceil)}
}

func (t *writeTrigger) pageThreshold() uint64                    { return t.threshold }
func (t *writeTrigger) shouldRemap(pageDue bool, _ float64) bool { return pageDue }
func (t *writeTrigger) reason() string                           { return ModeWrite.String() }

// timeTrigger accumulates input time across passes and fires when it reaches the period.
type timeTrigger struct {
	period float64
	timer  float64
}

func (t *timeTrigger) pageThreshold() uint64 { return math.MaxUint64 }

func (t *timeTrigger) shouldRemap(_ bool, passTime float64) bool {
	t.timer += passTime
	if t.timer >= t.period {
		t.timer = 0
		return true
	}
	return false
}

func (t *timeTrigger) reason() string { return ModeTime.String() }

// RemapScheduler owns the remap triggering policy and executes remaps.
type RemapScheduler struct {
	trigger         remapTrigger
	rng             *rand.Rand
	memoryPageCount uint64
	endurance       uint64
	trace           *trace.SimulationTrace // nil when tracing is off
}

// NewRemapScheduler builds the scheduler for a remapping mode. Lifetime mode has no
// scheduler and is rejected.
func NewRemapScheduler(cfg Config, memoryPageCount uint64, rng *PartitionedRNG, st *trace.SimulationTrace) (*RemapScheduler, error) {
	var trig remapTrigger
	switch cfg.Mode {
	case ModeWrite:
		trig = newWriteTrigger(cfg.RemapPeriod)
	case ModeTime:
		trig = &timeTrigger{period: cfg.RemapPeriod}
	default:
		return nil, invalidConfig("mode %s does not remap", cfg.Mode)
	}
	return &RemapScheduler{
		trigger:         trig,
		rng:             rng.ForSubsystem(SubsystemRemap),
		memoryPageCount: memoryPageCount,
		endurance:       cfg.CellWriteEndurance,
		trace:           st,
	}, nil
}

// PageThreshold returns the PeriodWrites level that makes a remap due.
func (rs *RemapScheduler) PageThreshold() uint64 {
	return rs.trigger.pageThreshold()
}

// ShouldRemap reports whether the pass that just completed triggers a remap.
func (rs *RemapScheduler) ShouldRemap(pageDue bool, passTime float64) bool {
	return rs.trigger.shouldRemap(pageDue, passTime)
}

// nextOffset draws an offset uniformly from [0, memoryPageCount).
func (rs *RemapScheduler) nextOffset() uint64 {
	if rs.memoryPageCount > math.MaxInt64 {
		return rs.rng.Uint64() % rs.memoryPageCount
	}
	return uint64(rs.rng.Int63n(int64(rs.memoryPageCount)))
}

// Remap charges the remap overhead to every page, draws a new offset per node in
// node order, and rotates write sets one node along the cluster. It returns true
// when the overhead itself wore out a page.
func (rs *RemapScheduler) Remap(nodes []*Node, cluster *ClusterState, counters *SimulationCounters) bool {
	var hottest uint64
	if rs.trace != nil {
		for _, n := range nodes {
			hottest = max(hottest, n.Memory.MaxTotalWrites())
		}
	}

	wornOut := false
	for _, n := range nodes {
		mem := n.Memory
		for i := range mem {
			mem[i].TotalWrites += ExtraWritesPerRemap
			mem[i].PeriodWrites = 0
			if mem[i].TotalWrites >= rs.endurance {
				wornOut = true
			}
		}
	}

	for _, n := range nodes {
		n.IntraNodeOffset = rs.nextOffset()
	}
	cluster.NodeShift = (cluster.NodeShift + 1) % uint64(len(nodes))
	counters.Remaps++

	logrus.Debugf("[iteration %d] remap %d (%s): node shift %d", counters.Iterations, counters.Remaps, rs.trigger.reason(), cluster.NodeShift)

	if rs.trace != nil {
		offsets := make([]uint64, len(nodes))
		for i, n := range nodes {
			offsets[i] = n.IntraNodeOffset
		}
		rs.trace.RecordRemap(trace.RemapRecord{
			Iteration:         counters.Iterations,
			Remap:             counters.Remaps,
			Reason:            rs.trigger.reason(),
			NodeShift:         cluster.NodeShift,
			Offsets:           offsets,
			HottestPageWrites: hottest,
		})
	}
	return wornOut
}
