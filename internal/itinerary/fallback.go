package itinerary

import (
	"fmt"
	"math/rand/v2"
)

const (
	MinDailyCost = 400
	MaxDailyCost = 900

	// FallbackNotes marks an itinerary built without any provider data.
	FallbackNotes = "Offline itinerary: external services were unreachable."
)

// Fallback builds provider-independent mock itineraries.
type Fallback struct {
	rng *rand.Rand
}

// NewFallback returns a generator drawing daily costs from rng.
// A nil rng uses the global source.
func NewFallback(rng *rand.Rand) *Fallback {
	return &Fallback{rng: rng}
}

// Generate always succeeds. days below 1 are treated as 1.
func (f *Fallback) Generate(days int, origin, destination string) Itinerary {
	if days < 1 {
		days = 1
	}

	plan := make([]DailyPlanEntry, 0, days)
	for i := 0; i < days; i++ {
		plan = append(plan, DailyPlanEntry{
			Day:       i + 1,
			Morning:   "Local sightseeing",
			Afternoon: "Street food and local market",
			Evening:   "Relax / nightlife",
			Cost:      f.dailyCost(),
		})
	}

	transport := []TransportOption{
		{Mode: "Train", Cost: intPtr(500)},
		{Mode: "Bus", Cost: intPtr(300)},
		{Mode: "Flight", Cost: nil},
	}

	return Itinerary{
		Summary:   Summary(days, origin, destination),
		Transport: transport,
		DailyPlan: plan,
		TotalCost: TotalCost(plan, transport),
		Notes:     FallbackNotes,
	}
}

func (f *Fallback) dailyCost() int {
	span := MaxDailyCost - MinDailyCost + 1
	if f.rng == nil {
		return MinDailyCost + rand.IntN(span)
	}
	return MinDailyCost + f.rng.IntN(span)
}

// Summary is the one-line description used when no better one is available.
func Summary(days int, origin, destination string) string {
	return fmt.Sprintf("%d-day trip %s → %s", days, origin, destination)
}
