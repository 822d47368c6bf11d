package parkings

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSnapshot(t *testing.T) []byte {
	data, err := os.ReadFile(filepath.Join("testdata", "snapshot.json"))
	require.Nil(t, err)
	return data
}

func byID(locations []Location) map[string]Location {
	m := make(map[string]Location, len(locations))
	for _, l := range locations {
		m[l.ID] = l
	}
	return m
}

func TestNormalizeSingleCombinedLot(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	snapshot := []byte(`{"d1": {
		"config": {"parking_lots": {
			"l1": {"lat": "11.25", "long": "75.78", "capacities": {"combined": true, "total": 50}},
			"l2": {"master_node": "d1:l1", "lat": "11.25", "long": "75.78", "capacities": {"combined": true, "total": 50}}
		}},
		"live_status": {"l1": {"occupancy": {"net_occupancy": 48}}}
	}}`)

	locations, ok := Normalize(snapshot)
	require.True(ok)
	require.Len(locations, 1)

	l := locations[0]
	assert.Equal("d1_l1", l.ID)
	assert.Equal("l1", l.Name)
	assert.Equal(Coord{Lat: 11.25, Lon: 75.78}, l.Coord)
	assert.True(l.Combined())
	assert.Equal(CombinedSpaces{CapacityTotal: 50, OccupiedTotal: 48}, l.Spaces)
	assert.Equal(2, l.Headline().Available())
	assert.Equal(StatusCritical, l.Headline().Status())
}

func TestNormalizeSnapshotFile(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	locations, ok := Normalize(loadSnapshot(t))
	require.True(ok)
	require.Len(locations, 3)

	assert.Equal("d1_l1", locations[0].ID)
	assert.Equal("d1_l3", locations[1].ID)
	assert.Equal("d2_port", locations[2].ID)

	assert.Equal("Beypore Beach", locations[0].Name)

	split := locations[1]
	assert.False(split.Combined())
	assert.Equal(SplitSpaces{CapacityCar: 40, OccupiedCar: 30, CapacityBike: 60, OccupiedBike: 12}, split.Spaces)
	classes := split.Spaces.Classes()
	require.Len(classes, 2)
	assert.Equal(StatusWarm, classes[0].Status())
	assert.Equal(StatusNominal, classes[1].Status())

	// No capacity and no live status
	port := locations[2]
	assert.Equal("port", port.Name)
	assert.Equal(CombinedSpaces{}, port.Spaces)
	assert.Equal(StatusUnknown, port.Headline().Status())
}

func TestNormalizeSkipsMasterNodes(t *testing.T) {
	assert := assert.New(t)

	snapshot := []byte(`{"dev": {"config": {"parking_lots": {
		"a": {"master_node": null, "lat": 1, "long": 2, "capacities": {"combined": true, "total": 5}},
		"b": {"master_node": "", "lat": 1, "long": 2, "capacities": {"combined": true, "total": 5}},
		"c": {"master_node": "dev:d", "lat": 1, "long": 2},
		"d": {"lat": 1, "long": 2, "capacities": {"combined": true, "total": 5}}
	}}}}`)

	locations, ok := Normalize(snapshot)
	assert.True(ok)
	assert.Len(locations, 1)
	assert.NotContains(byID(locations), "dev_a")
	assert.NotContains(byID(locations), "dev_b")
	assert.NotContains(byID(locations), "dev_c")
	assert.Contains(byID(locations), "dev_d")
}

func TestNormalizeSkipsBadCoordinates(t *testing.T) {
	assert := assert.New(t)

	snapshot := []byte(`{"dev": {"config": {"parking_lots": {
		"nan": {"lat": "NaN", "long": "75.8"},
		"inf": {"lat": "11.2", "long": "+Inf"},
		"text": {"lat": "north", "long": "75.8"},
		"missing": {"long": "75.8"},
		"object": {"lat": {}, "long": "75.8"},
		"valid": {"lat": "11.2", "long": "75.8"}
	}}}}`)

	locations, ok := Normalize(snapshot)
	assert.True(ok)
	assert.Len(locations, 1)
	assert.Equal("dev_valid", locations[0].ID)
}

func TestNormalizeIsolatesMalformedLots(t *testing.T) {
	assert := assert.New(t)

	snapshot := []byte(`{
		"broken": "not a device",
		"dev": {"config": {"parking_lots": {
			"scalar": 42,
			"list": [1, 2],
			"ok": {"lat": "11.2", "long": "75.8", "capacities": {"combined": true, "total": 10}}
		}}}
	}`)

	locations, ok := Normalize(snapshot)
	assert.True(ok)
	assert.Len(locations, 1)
	assert.Equal("dev_ok", locations[0].ID)
}

func TestNormalizeEmptySnapshot(t *testing.T) {
	assert := assert.New(t)

	for _, snapshot := range [][]byte{nil, []byte(""), []byte("  "), []byte("null")} {
		locations, ok := Normalize(snapshot)
		assert.False(ok)
		assert.Nil(locations)
	}
}

func TestNormalizeNoDevices(t *testing.T) {
	assert := assert.New(t)

	for _, snapshot := range [][]byte{[]byte("{}"), []byte(`"text"`), []byte("12")} {
		locations, ok := Normalize(snapshot)
		assert.True(ok)
		assert.NotNil(locations)
		assert.Empty(locations)
	}
}

func TestNormalizeSplitDefaults(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	snapshot := []byte(`{"dev": {
		"config": {"parking_lots": {
			"bikes": {"lat": 11.2, "long": 75.8, "capacities": {"bike": 30}},
			"cars": {"lat": 11.2, "long": 75.8, "capacities": {"combined": "false", "car": 20}}
		}},
		"live_status": {
			"bikes": {"occupancy": {"bike_occupancy": -3, "car_occupancy": "junk"}},
			"cars": {"occupancy": {"car_occupancy": 25}}
		}
	}}`)

	locations, ok := Normalize(snapshot)
	require.True(ok)
	require.Len(locations, 2)

	assert.Equal(SplitSpaces{CapacityBike: 30}, locations[0].Spaces)

	cars := locations[1].Spaces.(SplitSpaces)
	assert.Equal(20, cars.CapacityCar)
	assert.Equal(25, cars.OccupiedCar)
	assert.Equal(0, Available(cars.CapacityCar, cars.OccupiedCar))
}

func TestNormalizeArrays(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	snapshot := []byte(`[null, {
		"config": {"parking_lots": [
			{"lat": 11.2, "long": 75.8, "capacities": {"combined": true, "total": 10}},
			null,
			{"lat": 11.3, "long": 75.9, "capacities": {"combined": true, "total": 10}}
		]},
		"live_status": [{"occupancy": {"net_occupancy": 7}}]
	}]`)

	locations, ok := Normalize(snapshot)
	require.True(ok)
	require.Len(locations, 2)
	assert.Equal("1_0", locations[0].ID)
	assert.Equal(CombinedSpaces{CapacityTotal: 10, OccupiedTotal: 7}, locations[0].Spaces)
	assert.Equal("1_2", locations[1].ID)
	assert.Equal(CombinedSpaces{CapacityTotal: 10}, locations[1].Spaces)
}

func TestNormalizeIdempotence(t *testing.T) {
	require := require.New(t)

	snapshot := loadSnapshot(t)
	first, ok := Normalize(snapshot)
	require.True(ok)
	second, ok := Normalize(snapshot)
	require.True(ok)

	require.Equal(byID(first), byID(second))
	require.Equal(first, second)
}

func TestNormalizeInvariants(t *testing.T) {
	assert := assert.New(t)

	locations, _ := Normalize(loadSnapshot(t))
	for _, l := range locations {
		assert.True(l.Coord.Valid())
		assert.NotNil(l.Spaces)
		for _, s := range l.Spaces.Classes() {
			assert.GreaterOrEqual(s.Capacity, 0)
			assert.GreaterOrEqual(s.Occupied, 0)
			assert.GreaterOrEqual(s.Available(), 0)
		}
	}
}

func TestNormalizeClampsHugeCounters(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	snapshot := []byte(`{"dev": {
		"config": {"parking_lots": {
			"l1": {"lat": 11.2, "long": 75.8, "capacities": {"combined": true, "total": 1e30}}
		}},
		"live_status": {"l1": {"occupancy": {"net_occupancy": 5}}}
	}}`)

	locations, ok := Normalize(snapshot)
	require.True(ok)
	require.Len(locations, 1)

	headline := locations[0].Headline()
	assert.Equal(math.MaxInt32, headline.Capacity)
	assert.Equal(5, headline.Occupied)
	assert.Equal(math.MaxInt32-5, headline.Available())
	assert.Equal(StatusNominal, headline.Status())
}

func TestNormalizeKeepsLotsWithUnreadableFields(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	snapshot := []byte(`{"d": {
		"config": {"parking_lots": {
			"a": {"lat": 11.2, "long": 75.8, "capacities": "n/a"},
			"b": {"lat": 11.2, "long": 75.8, "display_name": 42, "capacities": {"combined": true, "total": 10}},
			"c": {"lat": 11.2, "long": 75.8, "display_name": "Gate", "capacities": {"combined": true, "total": 10}}
		}},
		"live_status": {"a": {"occupancy": {"car_occupancy": 3}}}
	}}`)

	locations, ok := Normalize(snapshot)
	require.True(ok)
	require.Len(locations, 3)

	a := locations[0]
	assert.Equal("d_a", a.ID)
	assert.Equal("a", a.Name)
	assert.Equal(SplitSpaces{OccupiedCar: 3}, a.Spaces)

	b := locations[1]
	assert.Equal("d_b", b.ID)
	assert.Equal("b", b.Name)
	assert.Equal(CombinedSpaces{CapacityTotal: 10}, b.Spaces)

	assert.Equal("Gate", locations[2].Name)
}

func TestNormalizeDuplicateIDs(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	// a_b + c and a + b_c both give a_b_c
	snapshot := []byte(`{
		"a": {"config": {"parking_lots": {
			"b_c": {"lat": 11.2, "long": 75.8, "display_name": "first"}
		}}},
		"a_b": {"config": {"parking_lots": {
			"c": {"lat": 11.3, "long": 75.9, "display_name": "second"}
		}}}
	}`)

	locations, ok := Normalize(snapshot)
	require.True(ok)
	require.Len(locations, 1)
	assert.Equal("a_b_c", locations[0].ID)
	assert.Equal("first", locations[0].Name)
}
