package itinerary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

type looseItinerary struct {
	Summary   any              `json:"summary"`
	Transport []looseTransport `json:"transport"`
	DailyPlan []looseDay       `json:"daily_plan"`
	Notes     any              `json:"notes"`
}

type looseTransport struct {
	Mode any `json:"mode"`
	Cost any `json:"cost"`
}

type looseDay struct {
	Day       any `json:"day"`
	Morning   any `json:"morning"`
	Afternoon any `json:"afternoon"`
	Evening   any `json:"evening"`
	Cost      any `json:"cost"`
}

// Normalize decodes a generated itinerary object and coerces it into an Itinerary for req.
// Numeric fields may arrive as numbers or numeric strings. Days are renumbered 1..n and
// total_cost is recomputed, so the result always satisfies the cost invariant.
func Normalize(raw []byte, req TripRequest) (Itinerary, error) {
	var loose looseItinerary
	if err := json.Unmarshal(raw, &loose); err != nil {
		return Itinerary{}, fmt.Errorf("%w: %v", ErrInvalidItinerary, err)
	}

	if len(loose.DailyPlan) != req.Days {
		return Itinerary{}, fmt.Errorf("%w: daily_plan has %d entries, want %d", ErrInvalidItinerary, len(loose.DailyPlan), req.Days)
	}

	plan := make([]DailyPlanEntry, 0, len(loose.DailyPlan))
	for i, d := range loose.DailyPlan {
		if d.Cost == nil {
			return Itinerary{}, fmt.Errorf("%w: day %d has no cost", ErrInvalidItinerary, i+1)
		}
		cost, err := ToInt(d.Cost)
		if err != nil || cost < 0 {
			return Itinerary{}, fmt.Errorf("%w: day %d cost %v", ErrInvalidItinerary, i+1, d.Cost)
		}
		plan = append(plan, DailyPlanEntry{
			Day:       i + 1,
			Morning:   text(d.Morning),
			Afternoon: text(d.Afternoon),
			Evening:   text(d.Evening),
			Cost:      cost,
		})
	}

	transport := make([]TransportOption, 0, len(loose.Transport))
	for i, t := range loose.Transport {
		mode := text(t.Mode)
		if mode == "" {
			return Itinerary{}, fmt.Errorf("%w: transport %d has no mode", ErrInvalidItinerary, i)
		}
		opt := TransportOption{Mode: mode}
		if t.Cost != nil {
			cost, err := ToInt(t.Cost)
			if err != nil || cost < 0 {
				return Itinerary{}, fmt.Errorf("%w: transport %q cost %v", ErrInvalidItinerary, mode, t.Cost)
			}
			opt.Cost = intPtr(cost)
		}
		transport = append(transport, opt)
	}

	summary := text(loose.Summary)
	if summary == "" {
		summary = Summary(req.Days, req.Origin, req.Destination)
	}

	return Itinerary{
		Summary:   summary,
		Transport: transport,
		DailyPlan: plan,
		TotalCost: TotalCost(plan, transport),
		Notes:     text(loose.Notes),
	}, nil
}

func text(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// ToInt reads a JSON number or a decimal string. Strings are plain base 10, so "010" is 10
// and "0x10" is an error.
func ToInt(v any) (int, error) {
	if s, ok := v.(string); ok {
		return strconv.Atoi(strings.TrimSpace(s))
	}
	return cast.ToIntE(v)
}
