package mapview

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beypark/beypark/internal/parkings"
)

// Beypore, where the festival parking lots are
var DefaultCenter = parkings.Coord{Lat: 11.1718, Lon: 75.8058}

const (
	DefaultZoom               = 14
	DefaultFocusZoom          = 17
	DefaultMinZoom            = 3
	DefaultMaxZoom            = 19
	DefaultTransitionDuration = 1500 * time.Millisecond
)

// LocationFinder resolves a location id against the latest snapshot
type LocationFinder interface {
	FindLocation(id string) (parkings.Location, bool)
}

type Config struct {
	Center             parkings.Coord
	Zoom               int
	FocusZoom          int
	MinZoom            int
	MaxZoom            int
	TransitionDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		Center:             DefaultCenter,
		Zoom:               DefaultZoom,
		FocusZoom:          DefaultFocusZoom,
		MinZoom:            DefaultMinZoom,
		MaxZoom:            DefaultMaxZoom,
		TransitionDuration: DefaultTransitionDuration,
	}
}

// ViewportState is either unfocused (fallback center, no selection) or focused on
// a location. The selection is only an id, it may name a location that is gone.
type ViewportState struct {
	Center             parkings.Coord `json:"center"`
	Zoom               int            `json:"zoom"`
	SelectedLocationID string         `json:"selected_location_id,omitempty"`
}

func (v ViewportState) Focused() bool {
	return v.SelectedLocationID != ""
}

type placedMarker struct {
	handle MarkerHandle
	coord  parkings.Coord
	icon   string
}

// Controller keeps the viewport and the markers of a map surface in sync with the
// locations. Only Focus and the zoom actions move the viewport.
type Controller struct {
	mutex   sync.Mutex
	config  Config
	finder  LocationFinder
	surface Surface
	state   ViewportState
	markers map[string]placedMarker
}

func NewController(config Config, finder LocationFinder, surface Surface) *Controller {
	c := &Controller{
		config:  config,
		finder:  finder,
		surface: surface,
		state:   ViewportState{Center: config.Center, Zoom: config.Zoom},
		markers: make(map[string]placedMarker),
	}
	surface.SetView(config.Center, config.Zoom, ViewOptions{})
	return c
}

// Focus centers the map on a location with an animated transition.
// It returns false, leaving the viewport untouched, when the id is unknown.
func (c *Controller) Focus(locationID string) bool {
	location, ok := c.finder.FindLocation(locationID)
	if !ok {
		FocusRequests.WithLabelValues("stale").Inc()
		logrus.Debugf("Ignoring focus on unknown location %s", locationID)
		return false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.state.Center = location.Coord
	c.state.Zoom = c.clamp(c.config.FocusZoom)
	c.state.SelectedLocationID = locationID
	c.surface.SetView(c.state.Center, c.state.Zoom, ViewOptions{Duration: c.config.TransitionDuration})
	FocusRequests.WithLabelValues("focused").Inc()
	return true
}

// Render places a marker per location and refreshes its popup. Markers of
// locations that are gone are removed.
func (c *Controller) Render(locations []parkings.Location) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	seen := make(map[string]bool, len(locations))
	for _, l := range locations {
		seen[l.ID] = true
		icon := MarkerIcon(l)

		placed, ok := c.markers[l.ID]
		if ok && (placed.coord != l.Coord || placed.icon != icon) {
			c.surface.RemoveMarker(placed.handle)
			ok = false
		}
		if !ok {
			placed = placedMarker{
				handle: c.surface.AddMarker(l.Coord, icon),
				coord:  l.Coord,
				icon:   icon,
			}
			c.markers[l.ID] = placed
		}
		c.surface.SetPopupContent(placed.handle, BuildPopup(l))
	}

	for id, placed := range c.markers {
		if !seen[id] {
			c.surface.RemoveMarker(placed.handle)
			delete(c.markers, id)
		}
	}
}

func (c *Controller) ZoomIn() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state.Zoom < c.config.MaxZoom {
		c.state.Zoom++
		c.surface.ZoomIn()
	}
}

func (c *Controller) ZoomOut() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.state.Zoom > c.config.MinZoom {
		c.state.Zoom--
		c.surface.ZoomOut()
	}
}

func (c *Controller) clamp(zoom int) int {
	if zoom < c.config.MinZoom {
		return c.config.MinZoom
	}
	if zoom > c.config.MaxZoom {
		return c.config.MaxZoom
	}
	return zoom
}

func (c *Controller) Viewport() ViewportState {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state
}

// Selected resolves the selection against the latest snapshot
func (c *Controller) Selected() (parkings.Location, bool) {
	id := c.Viewport().SelectedLocationID
	if id == "" {
		return parkings.Location{}, false
	}
	return c.finder.FindLocation(id)
}

// MarkerHandle returns the marker placed for a location
func (c *Controller) MarkerHandle(locationID string) (MarkerHandle, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	placed, ok := c.markers[locationID]
	return placed.handle, ok
}

// MarkedLocations maps the placed markers to their location id
func (c *Controller) MarkedLocations() map[MarkerHandle]string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	locations := make(map[MarkerHandle]string, len(c.markers))
	for id, placed := range c.markers {
		locations[placed.handle] = id
	}
	return locations
}
