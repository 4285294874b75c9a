package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"tripgen/internal/itinerary"
)

const (
	// MaxInterests bounds how many interests are searched per request.
	MaxInterests = 4
	// MaxPlacesPerInterest bounds how many results are kept per interest.
	MaxPlacesPerInterest = 5
	// DefaultRadiusMeters is the nearby-search radius around the destination.
	DefaultRadiusMeters = 7000
)

var (
	// ErrNotConfigured is returned when no maps API key was provided.
	ErrNotConfigured = errors.New("maps provider not configured")
	// ErrNoGeocodeResult is returned when the destination cannot be located.
	ErrNoGeocodeResult = errors.New("destination not found")
)

// placesAPI is the subset of *maps.Client used for attraction lookup.
type placesAPI interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// Cache stores place lists per cache key. Implementations live in internal/cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]itinerary.Place, bool, error)
	Set(ctx context.Context, key string, places []itinerary.Place) error
}

// PlacesService finds tourist attractions near a destination for a list of interests.
type PlacesService struct {
	client placesAPI
	cache  Cache
	radius uint
	log    *zap.Logger
}

// NewPlacesService creates a PlacesService with the given API key.
// An empty key yields a service whose lookups return ErrNotConfigured.
func NewPlacesService(apiKey string, radius uint, cache Cache, log *zap.Logger) (*PlacesService, error) {
	s := &PlacesService{cache: cache, radius: radius, log: log}
	if s.radius == 0 {
		s.radius = DefaultRadiusMeters
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if strings.TrimSpace(apiKey) == "" {
		return s, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	s.client = client
	return s, nil
}

// Configured reports whether lookups will reach the provider.
func (s *PlacesService) Configured() bool {
	return s != nil && s.client != nil
}

// LookupAttractions geocodes destination and runs one nearby search per interest.
// On a provider error it returns the summaries gathered so far together with the error.
func (s *PlacesService) LookupAttractions(ctx context.Context, destination string, interests []string) ([]itinerary.AttractionSummary, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	interests = boundInterests(interests)
	if len(interests) == 0 {
		return nil, nil
	}

	// Skip geocoding entirely when every interest is cached.
	cached := make(map[string][]itinerary.Place, len(interests))
	for _, interest := range interests {
		if places, ok := s.cacheGet(ctx, destination, interest); ok {
			cached[interest] = places
		}
	}

	var center *maps.LatLng
	if len(cached) < len(interests) {
		loc, err := s.geocode(ctx, destination)
		if err != nil {
			return nil, err
		}
		center = loc
	}

	summaries := make([]itinerary.AttractionSummary, 0, len(interests))
	for _, interest := range interests {
		if places, ok := cached[interest]; ok {
			summaries = append(summaries, itinerary.AttractionSummary{Interest: interest, Places: places})
			continue
		}

		places, err := s.searchNearby(ctx, *center, interest)
		if err != nil {
			return summaries, err
		}
		s.cacheSet(ctx, destination, interest, places)
		summaries = append(summaries, itinerary.AttractionSummary{Interest: interest, Places: places})
	}

	return summaries, nil
}

func (s *PlacesService) geocode(ctx context.Context, destination string) (*maps.LatLng, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: destination})
	if err != nil {
		return nil, fmt.Errorf("geocode api error: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoGeocodeResult
	}
	loc := results[0].Geometry.Location
	return &loc, nil
}

func (s *PlacesService) searchNearby(ctx context.Context, center maps.LatLng, interest string) ([]itinerary.Place, error) {
	resp, err := s.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &center,
		Radius:   s.radius,
		Keyword:  interest,
		Type:     maps.PlaceTypeTouristAttraction,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error (%s): %w", interest, err)
	}

	places := make([]itinerary.Place, 0, MaxPlacesPerInterest)
	for _, r := range resp.Results {
		if len(places) >= MaxPlacesPerInterest {
			break
		}
		places = append(places, itinerary.Place{
			Name:       r.Name,
			Vicinity:   r.Vicinity,
			DistanceKm: roundKm(distanceKm(center, r.Geometry.Location)),
		})
	}
	return places, nil
}

func (s *PlacesService) cacheGet(ctx context.Context, destination, interest string) ([]itinerary.Place, bool) {
	if s.cache == nil {
		return nil, false
	}
	places, ok, err := s.cache.Get(ctx, cacheKey(destination, interest))
	if err != nil {
		s.log.Warn("attraction cache read failed", zap.String("interest", interest), zap.Error(err))
		return nil, false
	}
	return places, ok
}

func (s *PlacesService) cacheSet(ctx context.Context, destination, interest string, places []itinerary.Place) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(destination, interest), places); err != nil {
		s.log.Warn("attraction cache write failed", zap.String("interest", interest), zap.Error(err))
	}
}

// boundInterests drops blank entries and keeps at most MaxInterests.
func boundInterests(interests []string) []string {
	out := make([]string, 0, MaxInterests)
	for _, in := range interests {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		out = append(out, in)
		if len(out) == MaxInterests {
			break
		}
	}
	return out
}

func cacheKey(destination, interest string) string {
	return "attractions:" + strings.ToLower(strings.TrimSpace(destination)) + ":" + strings.ToLower(interest)
}
