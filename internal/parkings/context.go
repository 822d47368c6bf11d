package parkings

import (
	"fmt"
	"sync"
	"time"
)

type ParkingsContext struct {
	parkings          *[]Location
	index             map[string]int
	lastParkingUpdate time.Time
	parkingsMutex     sync.RWMutex
}

// UpdateParkings replaces the whole list of locations, it is never patched.
func (d *ParkingsContext) UpdateParkings(parkings []Location) {
	index := make(map[string]int, len(parkings))
	for i, p := range parkings {
		index[p.ID] = i
	}

	d.parkingsMutex.Lock()
	defer d.parkingsMutex.Unlock()

	d.parkings = &parkings
	d.index = index
	d.lastParkingUpdate = time.Now()
}

func (d *ParkingsContext) GetLastParkingsDataUpdate() time.Time {
	d.parkingsMutex.RLock()
	defer d.parkingsMutex.RUnlock()

	return d.lastParkingUpdate
}

// Loaded is false until the first snapshot of the feed has been received
func (d *ParkingsContext) Loaded() bool {
	d.parkingsMutex.RLock()
	defer d.parkingsMutex.RUnlock()

	return d.parkings != nil
}

func (d *ParkingsContext) GetParkingsByIds(ids []string) (parkings []Location, errors []error) {
	for _, id := range ids {
		if p, err := d.GetParkingById(id); err == nil {
			parkings = append(parkings, p)
		} else {
			errors = append(errors, err)
		}
	}
	return
}

// GetParkings returns the locations in the order of the last snapshot
func (d *ParkingsContext) GetParkings() (parkings []Location, e error) {
	d.parkingsMutex.RLock()
	defer d.parkingsMutex.RUnlock()

	if d.parkings == nil {
		return nil, fmt.Errorf("No parkings in the data")
	}

	parkings = make([]Location, len(*d.parkings))
	copy(parkings, *d.parkings)
	return parkings, nil
}

func (d *ParkingsContext) GetParkingById(id string) (p Location, e error) {
	d.parkingsMutex.RLock()
	defer d.parkingsMutex.RUnlock()

	if d.parkings == nil {
		return p, fmt.Errorf("No parkings in the data")
	}

	i, ok := d.index[id]
	if !ok {
		return p, fmt.Errorf("No parkings found with id: %s", id)
	}
	return (*d.parkings)[i], nil
}

// FindLocation resolves a location id against the latest snapshot
func (d *ParkingsContext) FindLocation(id string) (Location, bool) {
	p, err := d.GetParkingById(id)
	return p, err == nil
}
