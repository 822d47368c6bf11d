package parkings

import (
	"fmt"
	"math"
)

// Coord is a WGS84 position
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coord) Valid() bool {
	return isFinite(c.Lat) && isFinite(c.Lon)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// VehicleClass names a tracked capacity class of a parking lot
type VehicleClass string

const (
	ClassTotal VehicleClass = "total"
	ClassCar   VehicleClass = "car"
	ClassBike  VehicleClass = "bike"
)

// ClassSpaces is the capacity and the live occupancy of one vehicle class
type ClassSpaces struct {
	Class    VehicleClass
	Capacity int
	Occupied int
}

func (c ClassSpaces) Available() int {
	return Available(c.Capacity, c.Occupied)
}

func (c ClassSpaces) Status() Status {
	return Classify(c.Occupied, c.Capacity)
}

// Spaces is either CombinedSpaces or SplitSpaces.
type Spaces interface {
	Combined() bool
	// Classes returns the tracked classes, headline class first.
	Classes() []ClassSpaces
}

// CombinedSpaces is a lot reporting one undifferentiated slot count
type CombinedSpaces struct {
	CapacityTotal int
	OccupiedTotal int
}

func (CombinedSpaces) Combined() bool { return true }

func (s CombinedSpaces) Classes() []ClassSpaces {
	return []ClassSpaces{{ClassTotal, s.CapacityTotal, s.OccupiedTotal}}
}

// SplitSpaces is a lot reporting car and bike slots separately
type SplitSpaces struct {
	CapacityCar  int
	OccupiedCar  int
	CapacityBike int
	OccupiedBike int
}

func (SplitSpaces) Combined() bool { return false }

func (s SplitSpaces) Classes() []ClassSpaces {
	return []ClassSpaces{
		{ClassCar, s.CapacityCar, s.OccupiedCar},
		{ClassBike, s.CapacityBike, s.OccupiedBike},
	}
}

// Location is a normalized parking lot, ready to be put on a map
type Location struct {
	ID     string
	Name   string
	Coord  Coord
	Spaces Spaces
}

func (l Location) Combined() bool {
	return l.Spaces.Combined()
}

// Headline returns the class used to pick the marker of the location.
func (l Location) Headline() ClassSpaces {
	return l.Spaces.Classes()[0]
}

// LocationID builds the composite id of a lot reported by a device
func LocationID(deviceID, lotID string) string {
	return fmt.Sprintf("%s_%s", deviceID, lotID)
}
