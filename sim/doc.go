// Package sim provides the core wear-leveling simulation engine for endurer.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - memory.go: per-page wear counters, power-of-two sizing, logical→physical translation
//   - remap.go: remap triggering (write count or elapsed time) and remap execution
//   - simulator.go: the pass loop, cluster rotation and termination
//   - stats.go: GiB-normalized statistics and the text report
//
// # Determinism
//
// Remap offsets come from a single seeded stream (rng.go). Nodes are written and
// offsets drawn in ascending node order, so identical write sets and seed give
// identical results.
//
// Sub-packages:
//   - sim/writeset/: binary write-set histogram loading
//   - sim/trace/: remap decision tracing
package sim
