package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Simulation step metrics
	LayoutStepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "layout_steps_total",
			Help: "Total number of simulation steps executed",
		},
	)

	LayoutStepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "layout_step_duration_seconds",
			Help:    "Duration of one simulation step in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	LayoutKineticEnergy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "layout_kinetic_energy",
			Help: "Kinetic energy of the simulation after the latest step",
		},
	)

	// Quadtree shape, observed on every rebuild
	QuadtreeNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quadtree_nodes",
			Help: "Number of nodes in the most recently built quadtree",
		},
	)

	QuadtreeDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quadtree_max_depth",
			Help: "Maximum depth of the most recently built quadtree",
		},
	)

	QuadtreeRejectedInserts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quadtree_rejected_inserts_total",
			Help: "Total number of entities that fell outside the simulation bounds",
		},
	)

	// Whole layout runs
	LayoutRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "layout_runs_total",
			Help: "Total number of layout runs",
		},
		[]string{"status"}, // status: success, failed, cancelled, cached
	)

	LayoutRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "layout_run_duration_seconds",
			Help:    "Duration of a full layout run in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	LayoutNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "layout_nodes",
			Help: "Number of nodes in the graph being laid out",
		},
	)

	// Result cache metrics
	LayoutCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "layout_cache_hits_total",
			Help: "Total number of layout result cache hits",
		},
	)

	LayoutCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "layout_cache_misses_total",
			Help: "Total number of layout result cache misses",
		},
	)
)
