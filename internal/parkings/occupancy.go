package parkings

// Status is the severity of the occupancy of a lot, used for color coding
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusNominal  Status = "nominal"
	StatusWarm     Status = "warm"
	StatusCritical Status = "critical"
)

const (
	criticalThreshold = 90.0
	warmThreshold     = 70.0
)

// Available returns the free spaces, never negative: sensors may count more
// vehicles than the reported capacity.
func Available(capacity, occupied int) int {
	if available := capacity - occupied; available > 0 {
		return available
	}
	return 0
}

func Classify(occupied, capacity int) Status {
	if capacity <= 0 {
		return StatusUnknown
	}
	rate := float64(occupied) / float64(capacity) * 100
	switch {
	case rate >= criticalThreshold:
		return StatusCritical
	case rate >= warmThreshold:
		return StatusWarm
	default:
		return StatusNominal
	}
}
