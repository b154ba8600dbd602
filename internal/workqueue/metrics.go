package workqueue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are intentionally simple. Keys are user ids, so per-key labels
// would be unbounded; everything aggregates over the whole executor.
var (
	submissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "savedmessages",
			Subsystem: "workqueue",
			Name:      "submissions_total",
			Help:      "Jobs successfully accepted for execution.",
		},
	)

	queueFullTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "savedmessages",
			Subsystem: "workqueue",
			Name:      "queue_full_total",
			Help:      "Enqueue attempts that timed out (per-key queue full).",
		},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "savedmessages",
			Subsystem: "workqueue",
			Name:      "run_duration_seconds",
			Help:      "Job execution latency.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	activeWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "savedmessages",
			Subsystem: "workqueue",
			Name:      "active_workers",
			Help:      "Per-key workers currently alive.",
		},
	)
)
