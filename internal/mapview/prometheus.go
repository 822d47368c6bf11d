package mapview

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FocusRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beypark",
		Subsystem: "map",
		Name:      "focus_requests_total",
		Help:      "number of focus requests, by result (focused or stale)",
	},
		[]string{"result"},
	)
)
