// sim/simulator.go
package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/endurer-sim/endurer/sim/trace"
)

// Node is one simulated memory node.
type Node struct {
	ID              int
	Memory          NodeMemory
	IntraNodeOffset uint64  // current remap offset
	Runtime         float64 // input time applied to this node so far
}

// ClusterState tracks which write set each node currently receives.
type ClusterState struct {
	NodeShift uint64 // advanced by one on every remap, modulo node count
}

// AssignedWriteSet returns the index of the write set mapped onto node.
func (c ClusterState) AssignedWriteSet(node, nodeCount int) int {
	return int((uint64(node) + c.NodeShift) % uint64(nodeCount))
}

// SimulationCounters are the run-wide progress counters.
type SimulationCounters struct {
	Iterations uint64 // completed passes over all nodes
	Remaps     uint64
}

// LifetimeEstimate is the no-remap lifetime of a single write set.
type LifetimeEstimate struct {
	MaxPageWrites   uint64
	TotalPageWrites uint64
	TimeUnscaled    float64 // input time until the hottest page wears out
}

// Simulator applies write sets to node memories until a page wears out.
// Write set i is initially assigned to node i.
type Simulator struct {
	Config          Config
	WriteSets       []*WriteSet
	MemoryPageCount uint64
	Nodes           []*Node
	Cluster         ClusterState
	Counters        SimulationCounters
	// Terminated is set once some page's TotalWrites reached CellWriteEndurance.
	Terminated bool
	// Lifetimes holds one estimate per write set in lifetime mode.
	Lifetimes []LifetimeEstimate
	RNG       *PartitionedRNG
	Trace     *trace.SimulationTrace // nil unless Config.TraceLevel is remaps

	scheduler *RemapScheduler // nil in lifetime mode
	ran       bool
	stats     *Stats
}

// NewSimulator validates cfg against the write sets and allocates node memories.
func NewSimulator(cfg Config, writeSets []*WriteSet) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pageCount, err := SizeMemory(writeSets)
	if err != nil {
		return nil, err
	}

	anyWrites := false
	for i, ws := range writeSets {
		if !(ws.TimeUnit > 0) || math.IsInf(ws.TimeUnit, 0) {
			return nil, invalidConfig("write set %d (%s): time unit must be a positive finite number, got %v", i, ws.Path, ws.TimeUnit)
		}
		if ws.MaxWrites() > 0 {
			anyWrites = true
		}
	}
	if cfg.Mode == ModeWrite && !anyWrites {
		return nil, invalidConfig("write sets contain no writes; write-triggered simulation would never end")
	}

	s := &Simulator{
		Config:          cfg,
		WriteSets:       writeSets,
		MemoryPageCount: pageCount,
		Nodes:           make([]*Node, len(writeSets)),
		RNG:             NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}
	for i := range s.Nodes {
		s.Nodes[i] = &Node{ID: i, Memory: NewNodeMemory(pageCount)}
	}
	if cfg.TraceLevel == trace.TraceLevelRemaps {
		s.Trace = trace.NewSimulationTrace(cfg.TraceLevel)
	}
	if cfg.Mode != ModeLifetime {
		s.scheduler, err = NewRemapScheduler(cfg, pageCount, s.RNG, s.Trace)
		if err != nil {
			return nil, err
		}
	}

	logrus.Infof("Simulating %d node(s) of %d pages each, mode=%s, endurance=%d, remap period=%v",
		len(s.Nodes), pageCount, cfg.Mode, cfg.CellWriteEndurance, cfg.RemapPeriod)
	return s, nil
}

// Run executes the simulation. Calling Run again is a no-op.
func (s *Simulator) Run() {
	if s.ran {
		return
	}
	s.ran = true

	switch s.Config.Mode {
	case ModeLifetime:
		s.runLifetime()
	default:
		s.runRemapping()
	}
}

// runRemapping drives write- and time-triggered simulation.
func (s *Simulator) runRemapping() {
	for {
		if s.Config.MaxIterations > 0 && s.Counters.Iterations >= s.Config.MaxIterations {
			logrus.Warnf("Stopping at iteration cap %d before any page wore out", s.Config.MaxIterations)
			return
		}

		wornOut, remapDue, passTime := s.applyPass()
		if wornOut {
			s.Terminated = true
			break
		}
		s.Counters.Iterations++

		if s.scheduler.ShouldRemap(remapDue, passTime) {
			if s.scheduler.Remap(s.Nodes, &s.Cluster, &s.Counters) {
				s.Terminated = true
				break
			}
		}

		if s.Config.ProgressInterval > 0 && s.Counters.Iterations%s.Config.ProgressInterval == 0 {
			logrus.Infof("At %d iterations: %d remaps; avg. runtime %f",
				s.Counters.Iterations, s.Counters.Remaps, s.AvgRuntime())
		}
	}
	logrus.Infof("Page wore out after %d iterations and %d remaps", s.Counters.Iterations, s.Counters.Remaps)
}

// applyPass writes every node's assigned write set once, in node order. It stops
// after the first node on which a page wears out. passTime is the smallest time unit
// applied in the pass.
func (s *Simulator) applyPass() (wornOut, remapDue bool, passTime float64) {
	threshold := s.scheduler.PageThreshold()
	endurance := s.Config.CellWriteEndurance
	passTime = math.Inf(1)

	for n, node := range s.Nodes {
		ws := s.WriteSets[s.Cluster.AssignedWriteSet(n, len(s.Nodes))]
		mem := node.Memory
		for p, w := range ws.Counts {
			page := &mem[PhysicalIndex(uint64(p), node.IntraNodeOffset, s.MemoryPageCount)]
			page.PeriodWrites += w
			page.TotalWrites += w
			if page.PeriodWrites >= threshold {
				remapDue = true
			}
			if page.TotalWrites >= endurance {
				wornOut = true
			}
		}
		node.Runtime += ws.TimeUnit
		passTime = min(passTime, ws.TimeUnit)

		if wornOut {
			return wornOut, remapDue, passTime
		}
	}
	return wornOut, remapDue, passTime
}

// runLifetime estimates, per write set, how many input time units the hottest page
// survives with no wear leveling.
func (s *Simulator) runLifetime() {
	s.Lifetimes = make([]LifetimeEstimate, len(s.WriteSets))
	for i, ws := range s.WriteSets {
		est := LifetimeEstimate{
			MaxPageWrites:   ws.MaxWrites(),
			TotalPageWrites: ws.TotalWrites(),
		}
		est.TimeUnscaled = float64(s.Config.CellWriteEndurance) / float64(est.MaxPageWrites) * ws.TimeUnit
		s.Lifetimes[i] = est

		logrus.Infof("write set %d: most-written page had %d writes; total writes %d",
			i, est.MaxPageWrites, est.TotalPageWrites)
	}
}

// MinRuntime returns the smallest runtime across nodes.
func (s *Simulator) MinRuntime() float64 {
	m := math.MaxFloat64
	for _, n := range s.Nodes {
		m = min(m, n.Runtime)
	}
	return m
}

// AvgRuntime returns the mean runtime across nodes.
func (s *Simulator) AvgRuntime() float64 {
	sum := 0.0
	for _, n := range s.Nodes {
		sum += n.Runtime
	}
	return sum / float64(len(s.Nodes))
}

// MaxTotalWrites returns the lifetime writes of the most worn page in the cluster.
func (s *Simulator) MaxTotalWrites() uint64 {
	var hottest uint64
	for _, n := range s.Nodes {
		hottest = max(hottest, n.Memory.MaxTotalWrites())
	}
	return hottest
}
