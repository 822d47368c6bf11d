package mapview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beypark/beypark/internal/parkings"
)

func TestStateSurfaceView(t *testing.T) {
	assert := assert.New(t)

	surface := NewStateSurface(DefaultCenter, 10, 3, 12)
	assert.Equal(uint64(0), surface.View().Sequence)

	target := parkings.Coord{Lat: 11.2, Lon: 75.8}
	surface.SetView(target, 20, ViewOptions{Duration: 1500 * time.Millisecond})
	view := surface.View()
	assert.Equal(target, view.Center)
	assert.Equal(12, view.Zoom)
	assert.Equal(int64(1500), view.DurationMs)
	assert.Equal(uint64(1), view.Sequence)

	// already at the max zoom: nothing changes
	surface.ZoomIn()
	assert.Equal(view, surface.View())

	surface.ZoomOut()
	view = surface.View()
	assert.Equal(11, view.Zoom)
	assert.Equal(int64(0), view.DurationMs)
	assert.Equal(uint64(2), view.Sequence)
}

func TestStateSurfaceMarkers(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	surface := NewStateSurface(DefaultCenter, DefaultZoom, DefaultMinZoom, DefaultMaxZoom)
	first := surface.AddMarker(parkings.Coord{Lat: 1, Lon: 2}, "parking-nominal")
	second := surface.AddMarker(parkings.Coord{Lat: 3, Lon: 4}, "parking-warm")
	assert.NotEqual(first, second)

	surface.SetPopupContent(second, PopupContent{Title: "second"})
	// unknown handles are ignored
	surface.SetPopupContent(MarkerHandle("nope"), PopupContent{Title: "nope"})
	surface.RemoveMarker(MarkerHandle("nope"))

	markers := surface.Markers()
	require.Len(markers, 2)
	assert.Equal(first, markers[0].Handle)
	assert.Equal(second, markers[1].Handle)
	assert.Equal("second", markers[1].Popup.Title)

	surface.RemoveMarker(first)
	_, ok := surface.Marker(first)
	assert.False(ok)
	marker, ok := surface.Marker(second)
	require.True(ok)
	assert.Equal("parking-warm", marker.Icon)
	assert.Len(surface.Markers(), 1)
}
