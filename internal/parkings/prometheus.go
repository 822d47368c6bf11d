package parkings

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ParkingsLoadingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "beypark",
		Subsystem: "parkings",
		Name:      "load_durations_seconds",
		Help:      "snapshot normalization latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 1.5, 15),
	})

	ParkingsSnapshots = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "beypark",
		Subsystem: "parkings",
		Name:      "snapshots_total",
		Help:      "number of feed snapshots normalized",
	})

	ParkingsEmptySnapshots = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "beypark",
		Subsystem: "parkings",
		Name:      "empty_snapshots_total",
		Help:      "number of empty feed snapshots ignored",
	})

	SkippedLots = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beypark",
		Subsystem: "parkings",
		Name:      "skipped_lots_total",
		Help:      "number of lots left out of the map, by reason",
	},
		[]string{"reason"},
	)
)
