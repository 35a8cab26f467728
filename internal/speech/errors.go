// Package speech provides error types for the speech bridge.
package speech

import "errors"

// Sentinel errors for speech operations.
// Use errors.Is() to classify provider failures in calling code.
var (
	// ErrTextTooLong indicates synthesis input over the character ceiling.
	ErrTextTooLong = errors.New("text too long")

	// ErrEmptyText indicates synthesis was called with no input.
	ErrEmptyText = errors.New("text is required")

	// ErrRateLimited indicates the provider rejected the call for rate limiting.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates the provider rejected the input itself.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyTranscript indicates transcription produced nothing after
	// trimming whitespace. Treated as a validation failure, not a
	// successful empty answer.
	ErrEmptyTranscript = errors.New("no speech detected")
)
