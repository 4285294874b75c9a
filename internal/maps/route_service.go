package maps

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"tripgen/internal/itinerary"
)

type directionsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// RouteService estimates the overland journey between origin and destination.
type RouteService struct {
	client directionsAPI
}

// NewRouteService creates a RouteService with the given API key.
// An empty key yields a service whose estimates return ErrNotConfigured.
func NewRouteService(apiKey string) (*RouteService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return &RouteService{}, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

func (s *RouteService) Configured() bool {
	return s != nil && s.client != nil
}

// RouteHint returns the driving distance and duration for a trip from origin to destination.
func (s *RouteService) RouteHint(ctx context.Context, origin, destination string) (*itinerary.RouteHint, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return &itinerary.RouteHint{
		Distance: leg.Distance.HumanReadable,
		Duration: humanDuration(leg.Duration),
	}, nil
}

func humanDuration(d time.Duration) string {
	mins := int(math.Round(d.Minutes()))
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	if mins%60 == 0 {
		return fmt.Sprintf("%d h", mins/60)
	}
	return fmt.Sprintf("%d h %d min", mins/60, mins%60)
}
