package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripgen/internal/itinerary"
)

// buildItineraryPrompt constructs the instructions for the model.
func buildItineraryPrompt(req itinerary.TripRequest, attractions []itinerary.AttractionSummary, hint *itinerary.RouteHint) string {
	interests := "none specified"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}

	attractionData := "[]"
	if len(attractions) > 0 {
		if b, err := json.MarshalIndent(attractions, "", "  "); err == nil {
			attractionData = string(b)
		}
	}

	route := "UNKNOWN"
	if hint != nil {
		route = fmt.Sprintf("%s by road, about %s driving", hint.Distance, hint.Duration)
	}

	return fmt.Sprintf(`Role: You are a travel planner producing budget-aware day-by-day itineraries.

Trip:
- Origin: %s
- Destination: %s
- Days: %d
- Budget (total, INR): %d
- Interests: %s
- Road route from origin: %s

Nearby attractions found for the interests (name and vicinity, distance_km from the city centre):
%s

RULES:
1. Prefer the listed attractions when they match the interests. Do not invent opening hours.
2. "daily_plan" MUST contain exactly %d entries, with "day" numbered 1 to %d in order.
3. Every "cost" is a whole number in INR. Use null for a transport cost you cannot estimate.
4. "transport" lists ways of getting from the origin to the destination (e.g. Train, Bus, Flight).
5. "total_cost" is the sum of all daily costs plus the cheapest known transport cost.
6. Keep the total within the budget when possible; say so in "notes" when it is not.

Respond with ONLY a JSON object, no Markdown and no commentary, matching this schema:
{
  "summary": "string",
  "transport": [{"mode": "string", "cost": integer | null}],
  "daily_plan": [{"day": integer, "morning": "string", "afternoon": "string", "evening": "string", "cost": integer}],
  "total_cost": integer,
  "notes": "string"
}
`, req.Origin, req.Destination, req.Days, req.Budget, interests, route, attractionData, req.Days, req.Days)
}
