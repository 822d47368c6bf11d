package parkings

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/beypark/beypark/internal/utils"
)

// ParkingResponse defines how a location is represent in a response.
// Only the fields of its capacity shape (total, or car and bike) are set.
type ParkingResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Coord    Coord  `json:"coord"`
	Combined bool   `json:"combined"`

	CapacityTotal  *int   `json:"capacity_total,omitempty"`
	OccupiedTotal  *int   `json:"occupied_total,omitempty"`
	AvailableTotal *int   `json:"available_total,omitempty"`
	StatusTotal    Status `json:"status_total,omitempty"`

	CapacityCar  *int   `json:"capacity_car,omitempty"`
	OccupiedCar  *int   `json:"occupied_car,omitempty"`
	AvailableCar *int   `json:"available_car,omitempty"`
	StatusCar    Status `json:"status_car,omitempty"`

	CapacityBike  *int   `json:"capacity_bike,omitempty"`
	OccupiedBike  *int   `json:"occupied_bike,omitempty"`
	AvailableBike *int   `json:"available_bike,omitempty"`
	StatusBike    Status `json:"status_bike,omitempty"`

	Distance float64 `json:"distance,omitempty"`
}

func intPtr(i int) *int {
	return &i
}

// ParkingModelToResponse converts the model of a Location into it's view in the response
func ParkingModelToResponse(l Location) ParkingResponse {
	r := ParkingResponse{
		ID:       l.ID,
		Name:     l.Name,
		Coord:    l.Coord,
		Combined: l.Combined(),
	}
	for _, s := range l.Spaces.Classes() {
		switch s.Class {
		case ClassTotal:
			r.CapacityTotal, r.OccupiedTotal = intPtr(s.Capacity), intPtr(s.Occupied)
			r.AvailableTotal, r.StatusTotal = intPtr(s.Available()), s.Status()
		case ClassCar:
			r.CapacityCar, r.OccupiedCar = intPtr(s.Capacity), intPtr(s.Occupied)
			r.AvailableCar, r.StatusCar = intPtr(s.Available()), s.Status()
		case ClassBike:
			r.CapacityBike, r.OccupiedBike = intPtr(s.Capacity), intPtr(s.Occupied)
			r.AvailableBike, r.StatusBike = intPtr(s.Available()), s.Status()
		}
	}
	return r
}

type ByParkingResponseId []ParkingResponse

func (p ByParkingResponseId) Len() int           { return len(p) }
func (p ByParkingResponseId) Less(i, j int) bool { return p[i].ID < p[j].ID }
func (p ByParkingResponseId) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

type ByDistance []ParkingResponse

func (p ByDistance) Len() int           { return len(p) }
func (p ByDistance) Less(i, j int) bool { return p[i].Distance < p[j].Distance }
func (p ByDistance) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// ParkingsResponse defines the structure returned by the /parkings endpoint
type ParkingsResponse struct {
	Parkings []ParkingResponse `json:"records"`
	Paginate *utils.Paginate   `json:"pagination,omitempty"`
	Errors   []string          `json:"errors,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// ParkingByIdResponse defines the structure returned by the /parkings/:id endpoint
type ParkingByIdResponse struct {
	Parking *ParkingResponse `json:"record,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type ParkingsRequestParameter struct {
	Coord     *Coord
	Count     int
	StartPage int
}

func initParkingsRequestParameter(c *gin.Context) (*ParkingsRequestParameter, error) {
	p := ParkingsRequestParameter{Count: -1}
	if countStr, ok := c.GetQuery("count"); ok {
		p.Count = utils.StringToInt(countStr, 25)
	}
	p.StartPage = utils.StringToInt(c.DefaultQuery("start_page", "0"), 0)

	coordStr := c.Query("coord")
	if len(coordStr) == 0 {
		return &p, nil
	}
	coord := strings.Split(coordStr, ";")
	if len(coord) != 2 {
		return nil, fmt.Errorf("Bad request: coord must be lon;lat")
	}
	longitude, err := strconv.ParseFloat(coord[0], 64)
	if err != nil {
		return nil, fmt.Errorf("Bad request: error on coord longitude value")
	}
	latitude, err := strconv.ParseFloat(coord[1], 64)
	if err != nil {
		return nil, fmt.Errorf("Bad request: error on coord latitude value")
	}
	p.Coord = &Coord{Lat: latitude, Lon: longitude}
	return &p, nil
}

func ParkingsApiHandler(context *ParkingsContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			parkings []Location
			errStr   []string
		)

		parameter, err := initParkingsRequestParameter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, ParkingsResponse{Error: err.Error()})
			return
		}

		if !context.Loaded() {
			c.JSON(http.StatusServiceUnavailable, ParkingsResponse{Error: "No data loaded"})
			return
		}

		if ids, ok := c.GetQueryArray("ids[]"); ok {
			// Only query parkings with a specific id
			var errs []error
			parkings, errs = context.GetParkingsByIds(ids)
			for _, e := range errs {
				errStr = append(errStr, e.Error())
			}
		} else {
			// Query all parkings !
			parkings, err = context.GetParkings()
			if err != nil {
				errStr = append(errStr, err.Error())
			}
		}

		// Convert Parkings from the model to a response view
		parkingsResp := make([]ParkingResponse, len(parkings))
		for i, p := range parkings {
			parkingsResp[i] = ParkingModelToResponse(p)
			if parameter.Coord != nil {
				parkingsResp[i].Distance = math.Round(utils.CoordDistance(
					parameter.Coord.Lat, parameter.Coord.Lon, p.Coord.Lat, p.Coord.Lon))
			}
		}
		if parameter.Coord != nil {
			sort.Stable(ByDistance(parkingsResp))
		}

		response := ParkingsResponse{Errors: errStr}
		if parameter.Count >= 0 {
			paginate, indexS, indexE := utils.PaginateEndPoint(len(parkingsResp), parameter.Count, parameter.StartPage)
			if indexS < 0 {
				parkingsResp = parkingsResp[:0]
			} else {
				parkingsResp = parkingsResp[indexS:indexE]
			}
			response.Paginate = &paginate
		}
		response.Parkings = parkingsResp
		c.JSON(http.StatusOK, response)
	}
}

func ParkingByIdApiHandler(context *ParkingsContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !context.Loaded() {
			c.JSON(http.StatusServiceUnavailable, ParkingByIdResponse{Error: "No data loaded"})
			return
		}
		p, err := context.GetParkingById(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, ParkingByIdResponse{Error: err.Error()})
			return
		}
		resp := ParkingModelToResponse(p)
		c.JSON(http.StatusOK, ParkingByIdResponse{Parking: &resp})
	}
}

func AddParkingsEntryPoint(r *gin.Engine, context *ParkingsContext) {
	if r == nil {
		r = gin.New()
	}
	r.GET("/parkings", ParkingsApiHandler(context))
	r.GET("/parkings/:id", ParkingByIdApiHandler(context))
}
