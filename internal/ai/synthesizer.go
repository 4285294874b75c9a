package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"tripgen/internal/itinerary"
)

// Synthesizer asks a text provider for an itinerary and extracts the JSON object from its reply.
type Synthesizer struct {
	provider TextProvider
}

// NewSynthesizer wraps provider. A nil provider yields a Synthesizer that returns ErrNotConfigured.
func NewSynthesizer(provider TextProvider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

func (s *Synthesizer) Configured() bool {
	return s != nil && s.provider != nil
}

// Provider names the backing provider, or "none".
func (s *Synthesizer) Provider() string {
	if !s.Configured() {
		return "none"
	}
	return s.provider.Name()
}

// SynthesizeItinerary returns the itinerary object produced by the provider. The object is
// only guaranteed to be valid JSON; shape checks belong to the caller.
func (s *Synthesizer) SynthesizeItinerary(ctx context.Context, req itinerary.TripRequest, attractions []itinerary.AttractionSummary, hint *itinerary.RouteHint) (json.RawMessage, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	prompt := buildItineraryPrompt(req, attractions, hint)

	text, err := s.provider.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.provider.Name(), err)
	}

	obj, err := extractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.provider.Name(), err)
	}
	return obj, nil
}
