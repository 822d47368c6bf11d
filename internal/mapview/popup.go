package mapview

import (
	"fmt"
	"strconv"

	"github.com/beypark/beypark/internal/parkings"
)

const navigationURLFormat = "https://www.google.com/maps/dir/?api=1&destination=%s,%s"

var statusColors = map[parkings.Status]string{
	parkings.StatusCritical: "#dc2626",
	parkings.StatusWarm:     "#f59e0b",
	parkings.StatusNominal:  "#16a34a",
	parkings.StatusUnknown:  "#6b7280",
}

var classLabels = map[parkings.VehicleClass]string{
	parkings.ClassTotal: "Total",
	parkings.ClassCar:   "Car",
	parkings.ClassBike:  "Bike",
}

// Figure is the availability of one capacity class shown in a popup
type Figure struct {
	Label     string          `json:"label"`
	Available int             `json:"available"`
	Capacity  int             `json:"capacity"`
	Status    parkings.Status `json:"status"`
	Color     string          `json:"color"`
}

func (f Figure) String() string {
	return fmt.Sprintf("%s: %d/%d", f.Label, f.Available, f.Capacity)
}

type PopupContent struct {
	Title         string   `json:"title"`
	Figures       []Figure `json:"figures"`
	NavigationURL string   `json:"navigation_url"`
}

// NavigationLink builds the directions link of the external map application
func NavigationLink(c parkings.Coord) string {
	return fmt.Sprintf(navigationURLFormat,
		strconv.FormatFloat(c.Lat, 'f', -1, 64),
		strconv.FormatFloat(c.Lon, 'f', -1, 64))
}

func StatusColor(s parkings.Status) string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return statusColors[parkings.StatusUnknown]
}

// MarkerIcon depends on the status of the headline class of the location
func MarkerIcon(l parkings.Location) string {
	return "parking-" + string(l.Headline().Status())
}

func BuildPopup(l parkings.Location) PopupContent {
	classes := l.Spaces.Classes()
	figures := make([]Figure, 0, len(classes))
	for _, s := range classes {
		status := s.Status()
		figures = append(figures, Figure{
			Label:     classLabels[s.Class],
			Available: s.Available(),
			Capacity:  s.Capacity,
			Status:    status,
			Color:     StatusColor(status),
		})
	}
	return PopupContent{
		Title:         l.Name,
		Figures:       figures,
		NavigationURL: NavigationLink(l.Coord),
	}
}
