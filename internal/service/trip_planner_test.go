package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tripgen/internal/ai"
	"tripgen/internal/itinerary"
	"tripgen/internal/maps"
)

type stubAttractions struct {
	out   []itinerary.AttractionSummary
	err   error
	calls int
}

func (s *stubAttractions) LookupAttractions(_ context.Context, _ string, _ []string) ([]itinerary.AttractionSummary, error) {
	s.calls++
	return s.out, s.err
}

type stubRoutes struct {
	hint *itinerary.RouteHint
	err  error
}

func (s *stubRoutes) RouteHint(_ context.Context, _, _ string) (*itinerary.RouteHint, error) {
	return s.hint, s.err
}

type stubSynth struct {
	raw         string
	err         error
	calls       int
	attractions []itinerary.AttractionSummary
	hint        *itinerary.RouteHint
	deadline    bool
}

func (s *stubSynth) SynthesizeItinerary(ctx context.Context, _ itinerary.TripRequest, attractions []itinerary.AttractionSummary, hint *itinerary.RouteHint) (json.RawMessage, error) {
	s.calls++
	s.attractions = attractions
	s.hint = hint
	_, s.deadline = ctx.Deadline()
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.raw), nil
}

func goaTrip(days int) itinerary.TripRequest {
	return itinerary.TripRequest{Origin: "Eluru", Destination: "Goa", Days: days, Budget: 5000}
}

func newPlanner(t *testing.T, deps PlannerDeps) *TripPlanner {
	deps.Logger = zaptest.NewLogger(t)
	deps.Fallback = itinerary.NewFallback(rand.New(rand.NewPCG(3, 4)))
	return NewTripPlanner(deps)
}

func assertFallback(t *testing.T, res Result, days int) {
	t.Helper()
	assert.Equal(t, SourceFallback, res.Source)
	assert.True(t, res.Offline)
	assert.Nil(t, res.Raw)
	require.Len(t, res.Itinerary.DailyPlan, days)
	assert.Equal(t, itinerary.FallbackNotes, res.Itinerary.Notes)
	require.Len(t, res.Itinerary.Transport, 3)
	assert.Equal(t, itinerary.TotalCost(res.Itinerary.DailyPlan, res.Itinerary.Transport), res.Itinerary.TotalCost)
}

const validTwoDay = `{
	"summary": "Goa beaches",
	"transport": [{"mode": "Train", "cost": 650}, {"mode": "Flight", "cost": 4200}],
	"daily_plan": [
		{"day": 1, "morning": "Baga", "afternoon": "Fish thali", "evening": "Tito's Lane", "cost": 1500},
		{"day": 2, "morning": "Fort Aguada", "afternoon": "Candolim", "evening": "Sunset cruise", "cost": 1800}
	],
	"total_cost": 99,
	"notes": "Book the train early"
}`

func TestPlanTrip_NothingConfigured(t *testing.T) {
	p := newPlanner(t, PlannerDeps{})
	res := p.PlanTrip(context.Background(), goaTrip(2))
	assertFallback(t, res, 2)
}

func TestPlanTrip_UnconfiguredAdapters(t *testing.T) {
	places, err := maps.NewPlacesService("", 0, nil, nil)
	require.NoError(t, err)
	routes, err := maps.NewRouteService("")
	require.NoError(t, err)

	p := newPlanner(t, PlannerDeps{Attractions: places, Routes: routes, Synthesizer: ai.NewSynthesizer(nil)})
	res := p.PlanTrip(context.Background(), goaTrip(3))
	assertFallback(t, res, 3)
}

func TestPlanTrip_AIAccepted(t *testing.T) {
	attractions := []itinerary.AttractionSummary{{Interest: "beach", Places: []itinerary.Place{{Name: "Baga Beach", Vicinity: "Baga"}}}}
	hint := &itinerary.RouteHint{Distance: "612 km", Duration: "10 h"}
	synth := &stubSynth{raw: validTwoDay}

	p := newPlanner(t, PlannerDeps{
		Attractions: &stubAttractions{out: attractions},
		Routes:      &stubRoutes{hint: hint},
		Synthesizer: synth,
		AITimeout:   time.Second,
	})
	res := p.PlanTrip(context.Background(), goaTrip(2))

	assert.Equal(t, SourceAI, res.Source)
	assert.Equal(t, "Goa beaches", res.Itinerary.Summary)
	assert.Equal(t, 1500+1800+650, res.Itinerary.TotalCost)
	assert.Equal(t, attractions, synth.attractions)
	assert.Equal(t, hint, synth.hint)
	assert.True(t, synth.deadline)
}

func TestPlanTrip_AttractionFailureStillSynthesizes(t *testing.T) {
	partial := []itinerary.AttractionSummary{{Interest: "beach"}}
	synth := &stubSynth{raw: validTwoDay}

	p := newPlanner(t, PlannerDeps{
		Attractions: &stubAttractions{out: partial, err: errors.New("OVER_QUERY_LIMIT")},
		Routes:      &stubRoutes{err: errors.New("ZERO_RESULTS")},
		Synthesizer: synth,
	})
	res := p.PlanTrip(context.Background(), goaTrip(2))

	assert.Equal(t, SourceAI, res.Source)
	assert.Equal(t, 1, synth.calls)
	assert.Equal(t, partial, synth.attractions)
	assert.Nil(t, synth.hint)
}

func TestPlanTrip_SynthesisFailures(t *testing.T) {
	tests := []struct {
		name  string
		synth *stubSynth
	}{
		{"provider error", &stubSynth{err: errors.New("401 unauthorized")}},
		{"malformed output", &stubSynth{err: ai.ErrMalformedOutput}},
		{"wrong day count", &stubSynth{raw: `{"daily_plan": [{"cost": 1}]}`}},
		{"bad cost", &stubSynth{raw: `{"daily_plan": [{"cost": "a lot"}, {"cost": 2}]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlanner(t, PlannerDeps{Synthesizer: tt.synth})
			res := p.PlanTrip(context.Background(), goaTrip(2))
			assertFallback(t, res, 2)
			assert.Equal(t, 1, tt.synth.calls)
		})
	}
}

func TestPlanTrip_Passthrough(t *testing.T) {
	raw := `{"summary":"whatever the model said","daily_plan":[]}`
	p := newPlanner(t, PlannerDeps{Synthesizer: &stubSynth{raw: raw}, Passthrough: true})

	res := p.PlanTrip(context.Background(), goaTrip(2))

	assert.Equal(t, SourceAI, res.Source)
	assert.JSONEq(t, raw, string(res.Raw))
	assert.Equal(t, res.Raw, res.Body())
	assert.Len(t, res.Itinerary.DailyPlan, 2)
	assert.True(t, res.Offline)
	assert.Equal(t, SourceFallback, res.ItinerarySource())
	assert.Equal(t, itinerary.FallbackNotes, res.Itinerary.Notes)
}

func TestPlanTrip_PassthroughKeepsNormalized(t *testing.T) {
	p := newPlanner(t, PlannerDeps{Synthesizer: &stubSynth{raw: validTwoDay}, Passthrough: true})

	res := p.PlanTrip(context.Background(), goaTrip(2))

	assert.JSONEq(t, validTwoDay, string(res.Raw))
	assert.Equal(t, "Goa beaches", res.Itinerary.Summary)
	assert.Equal(t, 1500+1800+650, res.Itinerary.TotalCost)
	assert.False(t, res.Offline)
	assert.Equal(t, SourceAI, res.ItinerarySource())
}

func TestPlanTrip_EachProviderCalledOnce(t *testing.T) {
	attr := &stubAttractions{}
	synth := &stubSynth{err: errors.New("timeout")}
	p := newPlanner(t, PlannerDeps{Attractions: attr, Synthesizer: synth})

	p.PlanTrip(context.Background(), goaTrip(1))

	assert.Equal(t, 1, attr.calls)
	assert.Equal(t, 1, synth.calls)
}

func TestResult_Body(t *testing.T) {
	res := Result{Itinerary: itinerary.Itinerary{Summary: "s"}, Source: SourceFallback}
	assert.Equal(t, res.Itinerary, res.Body())
}
