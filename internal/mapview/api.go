package mapview

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beypark/beypark/internal/parkings"
)

type MarkerResponse struct {
	Marker
	LocationID string `json:"location_id"`
}

// MapResponse defines the structure returned by the /map endpoint
type MapResponse struct {
	Viewport   ViewportState    `json:"viewport"`
	Transition View             `json:"transition"`
	Markers    []MarkerResponse `json:"markers"`
}

// FocusResponse defines the structure returned by the /map/focus endpoint.
// Focused is false when the location is not in the data anymore.
type FocusResponse struct {
	Focused  bool          `json:"focused"`
	Viewport ViewportState `json:"viewport"`
}

func MapApiHandler(controller *Controller, surface *StateSurface) gin.HandlerFunc {
	return func(c *gin.Context) {
		locations := controller.MarkedLocations()
		markers := surface.Markers()
		resp := make([]MarkerResponse, 0, len(markers))
		for _, m := range markers {
			resp = append(resp, MarkerResponse{Marker: m, LocationID: locations[m.Handle]})
		}
		c.JSON(http.StatusOK, MapResponse{
			Viewport:   controller.Viewport(),
			Transition: surface.View(),
			Markers:    resp,
		})
	}
}

func FocusApiHandler(controller *Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		focused := controller.Focus(c.Param("id"))
		c.JSON(http.StatusOK, FocusResponse{
			Focused:  focused,
			Viewport: controller.Viewport(),
		})
	}
}

func ZoomApiHandler(controller *Controller, zoomIn bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if zoomIn {
			controller.ZoomIn()
		} else {
			controller.ZoomOut()
		}
		c.JSON(http.StatusOK, controller.Viewport())
	}
}

func AddMapEntryPoint(r *gin.Engine, controller *Controller, surface *StateSurface) {
	if r == nil {
		r = gin.New()
	}
	r.GET("/map", MapApiHandler(controller, surface))
	r.POST("/map/focus/:id", FocusApiHandler(controller))
	r.POST("/map/zoom/in", ZoomApiHandler(controller, true))
	r.POST("/map/zoom/out", ZoomApiHandler(controller, false))
}

// RenderListener redraws the map after each feed update
func RenderListener(controller *Controller) parkings.Listener {
	return controller.Render
}
