package mapview

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beypark/beypark/internal/parkings"
)

type MarkerHandle string

type ViewOptions struct {
	Duration time.Duration
}

// Surface is the map library the controller drives
type Surface interface {
	SetView(center parkings.Coord, zoom int, opts ViewOptions)
	ZoomIn()
	ZoomOut()
	AddMarker(coord parkings.Coord, icon string) MarkerHandle
	SetPopupContent(handle MarkerHandle, content PopupContent)
	RemoveMarker(handle MarkerHandle)
}

// View is the last view requested on a surface. Sequence grows with every change,
// a client animating toward an older sequence must retarget.
type View struct {
	Center     parkings.Coord `json:"center"`
	Zoom       int            `json:"zoom"`
	DurationMs int64          `json:"duration_ms"`
	Sequence   uint64         `json:"sequence"`
}

type Marker struct {
	Handle MarkerHandle   `json:"handle"`
	Coord  parkings.Coord `json:"coord"`
	Icon   string         `json:"icon"`
	Popup  PopupContent   `json:"popup"`
	placed uint64
}

// StateSurface keeps the state of the map in memory; the browser map mirrors it.
type StateSurface struct {
	mutex   sync.RWMutex
	view    View
	minZoom int
	maxZoom int
	markers map[MarkerHandle]*Marker
	placed  uint64
}

func NewStateSurface(center parkings.Coord, zoom, minZoom, maxZoom int) *StateSurface {
	return &StateSurface{
		view:    View{Center: center, Zoom: zoom},
		minZoom: minZoom,
		maxZoom: maxZoom,
		markers: make(map[MarkerHandle]*Marker),
	}
}

// SetView retargets the map, superseding a transition still running
func (s *StateSurface) SetView(center parkings.Coord, zoom int, opts ViewOptions) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.view.Center = center
	s.view.Zoom = s.clamp(zoom)
	s.view.DurationMs = opts.Duration.Milliseconds()
	s.view.Sequence++
}

func (s *StateSurface) ZoomIn() {
	s.zoomBy(1)
}

func (s *StateSurface) ZoomOut() {
	s.zoomBy(-1)
}

func (s *StateSurface) zoomBy(delta int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if zoom := s.clamp(s.view.Zoom + delta); zoom != s.view.Zoom {
		s.view.Zoom = zoom
		s.view.DurationMs = 0
		s.view.Sequence++
	}
}

func (s *StateSurface) clamp(zoom int) int {
	if zoom < s.minZoom {
		return s.minZoom
	}
	if zoom > s.maxZoom {
		return s.maxZoom
	}
	return zoom
}

func (s *StateSurface) AddMarker(coord parkings.Coord, icon string) MarkerHandle {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.placed++
	handle := MarkerHandle(uuid.New().String())
	s.markers[handle] = &Marker{Handle: handle, Coord: coord, Icon: icon, placed: s.placed}
	return handle
}

func (s *StateSurface) SetPopupContent(handle MarkerHandle, content PopupContent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if m, ok := s.markers[handle]; ok {
		m.Popup = content
	}
}

func (s *StateSurface) RemoveMarker(handle MarkerHandle) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.markers, handle)
}

func (s *StateSurface) View() View {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.view
}

func (s *StateSurface) Marker(handle MarkerHandle) (Marker, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	m, ok := s.markers[handle]
	if !ok {
		return Marker{}, false
	}
	return *m, true
}

// Markers returns the markers in the order they were placed
func (s *StateSurface) Markers() []Marker {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	markers := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		markers = append(markers, *m)
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].placed < markers[j].placed })
	return markers
}
