package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/contrib/ginrus"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/beypark/beypark"
	"github.com/beypark/beypark/internal/feed"
	"github.com/beypark/beypark/internal/manager"
	"github.com/beypark/beypark/internal/mapview"
	"github.com/beypark/beypark/internal/parkings"
)

type FeedStatus struct {
	Connector      string    `json:"connector,omitempty"`
	Path           string    `json:"path,omitempty"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	WaitingSince   time.Time `json:"waiting_since"`
}

// StatusResponse defines the object returned by the /status endpoint.
// Loading stays true until the first snapshot of the feed arrives, there is no timeout.
type StatusResponse struct {
	Status            string                 `json:"status,omitempty"`
	Version           string                 `json:"version,omitempty"`
	Loading           bool                   `json:"loading"`
	LastParkingUpdate time.Time              `json:"last_parking_update"`
	NbParkings        int                    `json:"nb_parkings"`
	Feed              FeedStatus             `json:"feed"`
	Viewport          *mapview.ViewportState `json:"viewport,omitempty"`
}

var (
	httpDurations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "beypark",
		Subsystem: "http",
		Name:      "durations_seconds",
		Help:      "http request latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 15),
	},
		[]string{"handler", "code"},
	)

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "beypark",
		Subsystem: "http",
		Name:      "in_flight",
		Help:      "current number of http request being served",
	},
	)
)

func StatusHandler(manager *manager.DataManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := StatusResponse{
			Status:  "ok",
			Version: beypark.BeyparkVersion,
			Loading: true,
		}

		if parkingsContext := manager.GetParkingsContext(); parkingsContext != nil {
			response.LastParkingUpdate = parkingsContext.GetLastParkingsDataUpdate()
			if locations, err := parkingsContext.GetParkings(); err == nil {
				response.Loading = false
				response.NbParkings = len(locations)
			}
		}

		if subscription := manager.GetSubscription(); subscription != nil {
			response.Feed = FeedStatus{
				Connector:      subscription.Connector,
				Path:           subscription.Path,
				SubscriptionID: subscription.ID.String(),
				WaitingSince:   manager.GetWaitingSince(),
			}
		}

		if controller := manager.GetMapController(); controller != nil {
			viewport := controller.Viewport()
			response.Viewport = &viewport
		}

		c.JSON(http.StatusOK, response)
	}
}

func SetupRouter(manager *manager.DataManager, r *gin.Engine) *gin.Engine {
	if r == nil {
		r = gin.New()
	}
	r.Use(ginrus.Ginrus(logrus.StandardLogger(), time.RFC3339, false))
	r.Use(instrumentGin())
	r.Use(gin.Recovery())
	pprof.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/status", StatusHandler(manager))

	return r
}

func instrumentGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		httpInFlight.Inc()
		c.Next()
		httpInFlight.Dec()
		observer := httpDurations.With(prometheus.Labels{"handler": c.HandlerName(), "code": strconv.Itoa(c.Writer.Status())})
		observer.Observe(time.Since(begin).Seconds())
	}
}

func init() {
	prometheus.MustRegister(httpDurations)
	prometheus.MustRegister(httpInFlight)
	prometheus.MustRegister(parkings.ParkingsLoadingDuration)
	prometheus.MustRegister(parkings.ParkingsSnapshots)
	prometheus.MustRegister(parkings.ParkingsEmptySnapshots)
	prometheus.MustRegister(parkings.SkippedLots)
	prometheus.MustRegister(feed.FeedSnapshots)
	prometheus.MustRegister(feed.FeedErrors)
	prometheus.MustRegister(mapview.FocusRequests)
}
