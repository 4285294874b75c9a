package handlers

import (
	"strings"

	"github.com/spf13/cast"

	"tripgen/internal/itinerary"
)

// generateReq mirrors the /generate body. Fields stay untyped so that bad values
// can be replaced with defaults instead of failing the bind.
type generateReq struct {
	Origin      any `json:"origin"`
	Destination any `json:"destination"`
	Days        any `json:"days"`
	Budget      any `json:"budget"`
	Interests   any `json:"interests"`
}

func (r generateReq) toTripRequest(maxDays int) itinerary.TripRequest {
	req := itinerary.TripRequest{
		Origin:      textOrDefault(r.Origin, itinerary.DefaultOrigin),
		Destination: textOrDefault(r.Destination, itinerary.DefaultDestination),
		Days:        intOrDefault(r.Days, itinerary.DefaultDays),
		Budget:      intOrDefault(r.Budget, itinerary.DefaultBudget),
		Interests:   interestList(r.Interests),
	}
	if req.Days < 1 {
		req.Days = itinerary.DefaultDays
	}
	if maxDays > 0 && req.Days > maxDays {
		req.Days = maxDays
	}
	if req.Budget < 0 {
		req.Budget = itinerary.DefaultBudget
	}
	return req
}

func textOrDefault(v any, def string) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func intOrDefault(v any, def int) int {
	if v == nil {
		return def
	}
	n, err := itinerary.ToInt(v)
	if err != nil {
		return def
	}
	return n
}

// interestList accepts a JSON array of strings or a single comma separated string.
func interestList(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(t, ",")
	case []any:
		for _, item := range t {
			if s, err := cast.ToStringE(item); err == nil {
				raw = append(raw, s)
			}
		}
	default:
		return nil
	}

	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
