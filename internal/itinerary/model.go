// README: Itinerary domain types shared by the planner, adapters and HTTP layer.
package itinerary

import "errors"

const (
	DefaultOrigin      = "Eluru"
	DefaultDestination = "Goa"
	DefaultDays        = 3
	DefaultBudget      = 5000
)

// ErrInvalidItinerary is returned when a generated itinerary does not match the expected shape.
var ErrInvalidItinerary = errors.New("invalid itinerary")

// TripRequest is the normalized input for one itinerary generation.
type TripRequest struct {
	Origin      string
	Destination string
	Days        int
	Budget      int
	Interests   []string
}

// Place is a single attraction returned by the places provider.
type Place struct {
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`

	// DistanceKm is measured from the geocoded destination centre; zero when unknown.
	DistanceKm float64 `json:"distance_km,omitempty"`
}

// AttractionSummary groups the places found for one interest.
type AttractionSummary struct {
	Interest string  `json:"interest"`
	Places   []Place `json:"places"`
}

// RouteHint is a best-effort travel estimate between origin and destination.
type RouteHint struct {
	Distance string
	Duration string
}

type DailyPlanEntry struct {
	Day       int    `json:"day"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
	Cost      int    `json:"cost"`
}

// TransportOption is one way of getting to the destination. A nil Cost means unknown.
type TransportOption struct {
	Mode string `json:"mode"`
	Cost *int   `json:"cost"`
}

type Itinerary struct {
	Summary   string            `json:"summary"`
	Transport []TransportOption `json:"transport"`
	DailyPlan []DailyPlanEntry  `json:"daily_plan"`
	TotalCost int               `json:"total_cost"`
	Notes     string            `json:"notes"`
}

// TotalCost sums the daily costs and the cheapest known transport cost.
func TotalCost(plan []DailyPlanEntry, transport []TransportOption) int {
	total := 0
	for _, d := range plan {
		total += d.Cost
	}
	if cheapest, ok := CheapestTransport(transport); ok {
		total += cheapest
	}
	return total
}

// CheapestTransport returns the minimum non-null transport cost.
func CheapestTransport(transport []TransportOption) (int, bool) {
	found := false
	cheapest := 0
	for _, t := range transport {
		if t.Cost == nil {
			continue
		}
		if !found || *t.Cost < cheapest {
			cheapest = *t.Cost
			found = true
		}
	}
	return cheapest, found
}

func intPtr(v int) *int {
	return &v
}
