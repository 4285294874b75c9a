package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"tripgen/internal/ai"
	"tripgen/internal/itinerary"
	"tripgen/internal/logging"
	"tripgen/internal/maps"
)

// Source tells where an itinerary came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// AttractionLookup finds attractions near a destination. Partial results may accompany an error.
type AttractionLookup interface {
	LookupAttractions(ctx context.Context, destination string, interests []string) ([]itinerary.AttractionSummary, error)
}

// RouteHinter estimates the journey between origin and destination.
type RouteHinter interface {
	RouteHint(ctx context.Context, origin, destination string) (*itinerary.RouteHint, error)
}

// ItinerarySynthesizer produces an itinerary JSON object for a trip.
type ItinerarySynthesizer interface {
	SynthesizeItinerary(ctx context.Context, req itinerary.TripRequest, attractions []itinerary.AttractionSummary, hint *itinerary.RouteHint) (json.RawMessage, error)
}

// PlannerDeps are the collaborators of a TripPlanner. Nil adapters are treated as unconfigured.
type PlannerDeps struct {
	Attractions AttractionLookup
	Routes      RouteHinter
	Synthesizer ItinerarySynthesizer
	Fallback    *itinerary.Fallback
	Logger      *zap.Logger

	// Passthrough returns the provider's object as-is instead of validating it.
	Passthrough bool
	MapsTimeout time.Duration
	AITimeout   time.Duration
}

// Result is the outcome of one planning run. Raw is set only for passthrough AI output and
// is then the response body; Itinerary always holds a typed itinerary for other renderings.
type Result struct {
	Itinerary itinerary.Itinerary
	Raw       json.RawMessage
	Source    Source

	// Offline is set when Itinerary came from the fallback generator, including a passthrough
	// run whose raw output failed validation.
	Offline bool
}

// ItinerarySource is the origin of Itinerary, which differs from Source only for
// passthrough output that could not be validated.
func (r Result) ItinerarySource() Source {
	if r.Offline {
		return SourceFallback
	}
	return r.Source
}

// Body returns the value to serialize as the response.
func (r Result) Body() any {
	if r.Raw != nil {
		return r.Raw
	}
	return r.Itinerary
}

// TripPlanner orchestrates attraction lookup, AI synthesis and the offline fallback.
type TripPlanner struct {
	attractions AttractionLookup
	routes      RouteHinter
	synthesizer ItinerarySynthesizer
	fallback    *itinerary.Fallback
	log         *zap.Logger
	passthrough bool
	mapsTimeout time.Duration
	aiTimeout   time.Duration
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(deps PlannerDeps) *TripPlanner {
	p := &TripPlanner{
		attractions: deps.Attractions,
		routes:      deps.Routes,
		synthesizer: deps.Synthesizer,
		fallback:    deps.Fallback,
		log:         deps.Logger,
		passthrough: deps.Passthrough,
		mapsTimeout: deps.MapsTimeout,
		aiTimeout:   deps.AITimeout,
	}
	if p.fallback == nil {
		p.fallback = itinerary.NewFallback(nil)
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p
}

// PlanTrip never fails: every provider problem degrades to less context or to the fallback.
func (p *TripPlanner) PlanTrip(ctx context.Context, req itinerary.TripRequest) Result {
	log := logging.FromContext(ctx, p.log).With(
		zap.String("origin", req.Origin),
		zap.String("destination", req.Destination),
		zap.Int("days", req.Days),
	)

	// 1. Attractions (best effort)
	attractions := p.lookupAttractions(ctx, log, req)

	// 2. Route hint (best effort)
	hint := p.routeHint(ctx, log, req)

	// 3. Synthesis
	raw, err := p.synthesize(ctx, req, attractions, hint)
	if err != nil {
		logDegrade(log, "itinerary synthesis unavailable", err, ai.ErrNotConfigured)
		return p.offline(req)
	}

	// 4. Decision
	it, err := itinerary.Normalize(raw, req)
	if p.passthrough {
		log.Info("returning ai itinerary as-is")
		res := Result{Itinerary: it, Raw: raw, Source: SourceAI}
		if err != nil {
			log.Debug("passthrough itinerary failed validation", zap.Error(err))
			res.Itinerary = p.offline(req).Itinerary
			res.Offline = true
		}
		return res
	}
	if err != nil {
		log.Warn("ai itinerary rejected", zap.Error(err))
		return p.offline(req)
	}
	log.Info("ai itinerary accepted", zap.Int("attraction_groups", len(attractions)), zap.Int("total_cost", it.TotalCost))
	return Result{Itinerary: it, Source: SourceAI}
}

func (p *TripPlanner) lookupAttractions(ctx context.Context, log *zap.Logger, req itinerary.TripRequest) []itinerary.AttractionSummary {
	if p.attractions == nil {
		return nil
	}
	ctx, cancel := withTimeout(ctx, p.mapsTimeout)
	defer cancel()

	attractions, err := p.attractions.LookupAttractions(ctx, req.Destination, req.Interests)
	if err != nil {
		logDegrade(log, "attraction lookup degraded", err, maps.ErrNotConfigured, maps.ErrNoGeocodeResult)
	}
	return attractions
}

func (p *TripPlanner) routeHint(ctx context.Context, log *zap.Logger, req itinerary.TripRequest) *itinerary.RouteHint {
	if p.routes == nil {
		return nil
	}
	ctx, cancel := withTimeout(ctx, p.mapsTimeout)
	defer cancel()

	hint, err := p.routes.RouteHint(ctx, req.Origin, req.Destination)
	if err != nil {
		logDegrade(log, "route hint unavailable", err, maps.ErrNotConfigured)
		return nil
	}
	return hint
}

func (p *TripPlanner) synthesize(ctx context.Context, req itinerary.TripRequest, attractions []itinerary.AttractionSummary, hint *itinerary.RouteHint) (json.RawMessage, error) {
	if p.synthesizer == nil {
		return nil, ai.ErrNotConfigured
	}
	ctx, cancel := withTimeout(ctx, p.aiTimeout)
	defer cancel()
	return p.synthesizer.SynthesizeItinerary(ctx, req, attractions, hint)
}

func (p *TripPlanner) offline(req itinerary.TripRequest) Result {
	return Result{
		Itinerary: p.fallback.Generate(req.Days, req.Origin, req.Destination),
		Source:    SourceFallback,
		Offline:   true,
	}
}

// logDegrade logs expected conditions at debug level and real failures at warn.
func logDegrade(log *zap.Logger, msg string, err error, expected ...error) {
	for _, e := range expected {
		if errors.Is(err, e) {
			log.Debug(msg, zap.Error(err))
			return
		}
	}
	log.Warn(msg, zap.Error(err))
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
