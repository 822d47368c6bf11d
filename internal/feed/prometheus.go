package feed

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeedSnapshots = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beypark",
		Subsystem: "feed",
		Name:      "snapshots_total",
		Help:      "number of snapshots delivered by the realtime feed",
	},
		[]string{"connector"},
	)

	FeedErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beypark",
		Subsystem: "feed",
		Name:      "errors_total",
		Help:      "number of failed reads of the realtime feed",
	},
		[]string{"connector"},
	)
)
