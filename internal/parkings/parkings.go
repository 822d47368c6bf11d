package parkings

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beypark/beypark/internal/feed"
)

// Listener is told about every new list of locations, e.g. to redraw the map
type Listener func(locations []Location)

// RefreshParkingsLoop consumes the snapshots of the subscription one at a time
// until the subscription is cancelled or ctx is done.
func RefreshParkingsLoop(ctx context.Context, parkingsContext *ParkingsContext,
	subscription *feed.Subscription, listeners ...Listener) {
	snapshots := subscription.Snapshots()
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				logrus.Info("Parking feed subscription closed")
				return
			}
			if RefreshParkings(parkingsContext, snapshot, listeners...) {
				logrus.Debug("Parking data updated")
			} else {
				logrus.Debug("Empty parking snapshot, keeping previous data")
			}
		}
	}
}

// RefreshParkings normalizes one snapshot and publishes the result. It returns
// false when the snapshot was empty and nothing changed.
func RefreshParkings(parkingsContext *ParkingsContext, snapshot feed.Snapshot, listeners ...Listener) bool {
	begin := time.Now()
	locations, ok := Normalize(snapshot.Data)
	if !ok {
		ParkingsEmptySnapshots.Inc()
		return false
	}

	parkingsContext.UpdateParkings(locations)
	ParkingsSnapshots.Inc()
	ParkingsLoadingDuration.Observe(time.Since(begin).Seconds())

	for _, listener := range listeners {
		listener(locations)
	}
	return true
}
