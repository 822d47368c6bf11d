package parkings

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Reasons for which a lot of the feed is left out of the normalized list
const (
	skipMasterNode     = "master_node"
	skipBadCoordinates = "bad_coordinates"
	skipMalformed      = "malformed"
	skipDuplicateID    = "duplicate_id"
)

// Live counters read from live_status[lotId].occupancy
const (
	counterNetOccupancy  = "net_occupancy"
	counterCarOccupancy  = "car_occupancy"
	counterBikeOccupancy = "bike_occupancy"
)

// Temporary structures used only to read the raw feed

type deviceRecord struct {
	Config struct {
		ParkingLots json.RawMessage `json:"parking_lots"`
	} `json:"config"`
	LiveStatus json.RawMessage `json:"live_status"`
}

type lotCapacities struct {
	Combined flexBool   `json:"combined"`
	Total    flexNumber `json:"total"`
	Car      flexNumber `json:"car"`
	Bike     flexNumber `json:"bike"`
}

type liveStatus struct {
	Occupancy map[string]flexNumber `json:"occupancy"`
}

// flexNumber reads a JSON number or a numeric string. Anything else is NaN.
type flexNumber struct {
	value float64
	set   bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	n.set = true
	n.value = math.NaN()

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			n.value = f
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.value = f
	}
	return nil
}

func (n flexNumber) float() float64 {
	if !n.set {
		return math.NaN()
	}
	return n.value
}

// count coerces a counter to a non-negative integer, 0 when missing or invalid.
// Values beyond math.MaxInt32 are clamped.
func (n flexNumber) count() int {
	f := n.float()
	if !isFinite(f) || f < 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func numberField(fields map[string]json.RawMessage, name string) flexNumber {
	var n flexNumber
	if raw, ok := fields[name]; ok {
		_ = json.Unmarshal(raw, &n)
	}
	return n
}

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseBool(strings.Trim(string(data), `"`))
	*b = flexBool(err == nil && v)
	return nil
}

// Normalize flattens one snapshot of the feed into a list of locations.
// ok is false when the snapshot is absent: the caller should keep its previous
// list rather than clearing it.
// Lots marked with a master_node, lots without valid coordinates and entries that
// cannot be decoded are left out; they never fail the whole snapshot.
// Devices and lots are walked in ascending id order. When two lots end up with
// the same composite id, the first one is kept.
func Normalize(snapshot []byte) (locations []Location, ok bool) {
	trimmed := bytes.TrimSpace(snapshot)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}

	locations = make([]Location, 0)
	devices, valid := entries(trimmed)
	if !valid {
		logrus.Warn("Parking feed snapshot is not an object, ignoring its content")
		return locations, true
	}

	seen := make(map[string]struct{})
	for _, deviceID := range sortedKeys(devices) {
		var device deviceRecord
		if err := json.Unmarshal(devices[deviceID], &device); err != nil {
			logrus.Debugf("Skipping device %s: %s", deviceID, err)
			SkippedLots.WithLabelValues(skipMalformed).Inc()
			continue
		}
		lots, _ := entries(device.Config.ParkingLots)
		statuses, _ := entries(device.LiveStatus)

		for _, lotID := range sortedKeys(lots) {
			location, reason := normalizeLot(deviceID, lotID, lots[lotID], statuses[lotID])
			if reason != "" {
				logrus.Debugf("Skipping lot %s of device %s: %s", lotID, deviceID, reason)
				SkippedLots.WithLabelValues(reason).Inc()
				continue
			}
			if _, duplicate := seen[location.ID]; duplicate {
				logrus.Warnf("Skipping lot %s of device %s: id %s is already used by another lot",
					lotID, deviceID, location.ID)
				SkippedLots.WithLabelValues(skipDuplicateID).Inc()
				continue
			}
			seen[location.ID] = struct{}{}
			locations = append(locations, location)
		}
	}
	return locations, true
}

func normalizeLot(deviceID, lotID string, raw, rawStatus json.RawMessage) (Location, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Location{}, skipMalformed
	}
	if _, isSecondary := fields["master_node"]; isSecondary {
		return Location{}, skipMasterNode
	}

	coord := Coord{Lat: numberField(fields, "lat").float(), Lon: numberField(fields, "long").float()}
	if !coord.Valid() {
		return Location{}, skipBadCoordinates
	}

	// Unreadable capacities or names fall back to their defaults
	var capacities lotCapacities
	if err := json.Unmarshal(fields["capacities"], &capacities); err != nil {
		capacities = lotCapacities{}
	}
	var displayName string
	_ = json.Unmarshal(fields["display_name"], &displayName)

	var status liveStatus
	if len(rawStatus) > 0 {
		// Unreadable counters are the same as absent ones
		_ = json.Unmarshal(rawStatus, &status)
	}
	counter := func(name string) int {
		return status.Occupancy[name].count()
	}

	var spaces Spaces
	if capacities.Combined {
		spaces = CombinedSpaces{
			CapacityTotal: capacities.Total.count(),
			OccupiedTotal: counter(counterNetOccupancy),
		}
	} else {
		spaces = SplitSpaces{
			CapacityCar:  capacities.Car.count(),
			OccupiedCar:  counter(counterCarOccupancy),
			CapacityBike: capacities.Bike.count(),
			OccupiedBike: counter(counterBikeOccupancy),
		}
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = lotID
	}

	return Location{
		ID:     LocationID(deviceID, lotID),
		Name:   name,
		Coord:  coord,
		Spaces: spaces,
	}, ""
}

// entries reads a JSON object as a map. Arrays are accepted too, keyed by index,
// since the realtime database returns objects with sequential integer keys as arrays.
func entries(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err == nil {
		return object, object != nil
	}
	var array []json.RawMessage
	if err := json.Unmarshal(raw, &array); err != nil {
		return nil, false
	}
	object = make(map[string]json.RawMessage, len(array))
	for i, item := range array {
		if len(item) == 0 || string(item) == "null" {
			continue
		}
		object[strconv.Itoa(i)] = item
	}
	return object, true
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
