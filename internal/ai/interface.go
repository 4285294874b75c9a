package ai

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when no text provider was set up.
	ErrNotConfigured = errors.New("ai provider not configured")
	// ErrEmptyResponse is returned when the provider answered with no text.
	ErrEmptyResponse = errors.New("ai provider returned empty response")
	// ErrMalformedOutput is returned when no JSON object can be recovered from the response.
	ErrMalformedOutput = errors.New("ai output is not a JSON object")
)

// TextProvider defines the contract for interacting with text generation models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.).
type TextProvider interface {
	// Name identifies the provider in logs.
	Name() string

	// GenerateText sends prompt as a single user turn and returns the raw reply text.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
