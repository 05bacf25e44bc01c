package gemini

import "errors"

// Common AI service errors.
var (
	// ErrNoAPIKey is returned when no API key is configured.
	ErrNoAPIKey = errors.New("no Gemini API key configured — set GEMINI_API_KEY")
	// ErrUnauthorized is returned when the key is rejected.
	ErrUnauthorized = errors.New("unauthorized — check your Gemini API key")
	// ErrNotFound is returned when a model or endpoint does not exist.
	ErrNotFound = errors.New("model not found")
	// ErrRateLimited is returned when the service throttles the client.
	ErrRateLimited = errors.New("rate limited — try again shortly")
	// ErrBlocked is returned when the service refused the prompt outright.
	ErrBlocked = errors.New("prompt blocked by the service")
	// ErrEmptyResponse is returned when the service produced no usable output.
	ErrEmptyResponse = errors.New("empty response from model")
)
