// Package llm is the boundary to the external text-generation and
// speech-synthesis services. Every failure crossing this boundary carries a
// classified Kind so callers can pick the right user-facing message; nothing
// here ever panics past the boundary.
package llm

import (
	"context"
	"errors"
	"fmt"

	"littlestar/internal/models"
)

// ErrorKind classifies a generation failure.
type ErrorKind string

const (
	// KindUnconfigured means no credential is available. Recoverable by a
	// grown-up configuring an API key.
	KindUnconfigured ErrorKind = "unconfigured"
	// KindUnavailable means a network or provider failure. Recoverable by retry.
	KindUnavailable ErrorKind = "unavailable"
	// KindRateLimited means the provider rejected the call for rate reasons.
	KindRateLimited ErrorKind = "rate_limited"
	// KindUnknown covers everything else.
	KindUnknown ErrorKind = "unknown"
)

// Error wraps an underlying failure with its kind.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from an error returned by a Client,
// defaulting to KindUnknown.
func KindOf(err error) ErrorKind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindUnknown
}

// Client abstracts the generation service so the orchestrator can be tested
// without network access.
type Client interface {
	// GenerateText performs one text-completion call.
	GenerateText(ctx context.Context, req models.GenerationRequest) (string, error)
	// SynthesizeSpeech converts text to spoken audio bytes.
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}
