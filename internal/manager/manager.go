package manager

import (
	"sync"
	"time"

	"github.com/beypark/beypark/internal/feed"
	"github.com/beypark/beypark/internal/mapview"
	"github.com/beypark/beypark/internal/parkings"
)

// Data manager for all apis
type DataManager struct {
	parkingsContext *parkings.ParkingsContext
	mapController   *mapview.Controller
	subscription    *feed.Subscription
	waitingSince    time.Time
	mutex           sync.RWMutex
}

func (d *DataManager) SetParkingsContext(parkingsContext *parkings.ParkingsContext) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.parkingsContext = parkingsContext
}

func (d *DataManager) GetParkingsContext() *parkings.ParkingsContext {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.parkingsContext
}

func (d *DataManager) SetMapController(mapController *mapview.Controller) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.mapController = mapController
}

func (d *DataManager) GetMapController() *mapview.Controller {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.mapController
}

// SetSubscription records the feed subscription and the moment we started waiting
// for its first snapshot.
func (d *DataManager) SetSubscription(subscription *feed.Subscription) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.subscription = subscription
	d.waitingSince = time.Now()
}

func (d *DataManager) GetSubscription() *feed.Subscription {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.subscription
}

func (d *DataManager) GetWaitingSince() time.Time {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.waitingSince
}
