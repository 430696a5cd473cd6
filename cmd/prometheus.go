package cmd

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/endurer-sim/endurer/sim"
)

// writeMetricsTextfile exports final wear statistics in the Prometheus text format,
// suitable for node_exporter's textfile collector.
func writeMetricsTextfile(path string, s *sim.Simulator, st *sim.Stats) error {
	labels := prometheus.Labels{"mode": st.Mode.String()}
	gauge := func(name, help string, v float64) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
		g.Set(v)
		return g
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		gauge("endurer_memory_pages", "Pages per simulated node memory", float64(s.MemoryPageCount)),
		gauge("endurer_memories_per_gib", "Simulated memories that fit in 1 GiB", st.MemoriesPerGiB),
		gauge("endurer_remaps", "Remaps performed before wear-out", float64(st.Remaps)),
		gauge("endurer_iterations", "Completed passes over all nodes", float64(st.Iterations)),
		gauge("endurer_iterations_per_gib", "Iterations normalized to 1 GiB", st.IterationsPerGiB),
		gauge("endurer_time_unscaled", "Input time survived (minimum across nodes, or lifetime estimate)", st.TimeUnscaled),
		gauge("endurer_time_per_gib", "Input time survived normalized to 1 GiB", st.TimePerGiB),
		gauge("endurer_max_total_writes", "Lifetime writes of the most worn page", float64(st.MaxTotalWrites)),
	)

	nodeRuntime := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        "endurer_node_runtime",
		Help:        "Input time applied to each node",
		ConstLabels: labels,
	}, []string{"node"})
	for _, n := range s.Nodes {
		nodeRuntime.WithLabelValues(strconv.Itoa(n.ID)).Set(n.Runtime)
	}
	reg.MustRegister(nodeRuntime)

	return prometheus.WriteToTextfile(path, reg)
}
