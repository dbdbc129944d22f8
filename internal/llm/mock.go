package llm

import (
	"context"

	"littlestar/internal/models"
)

// MockClient is a scriptable Client for tests and local development without
// an API key.
type MockClient struct {
	// Text is returned by GenerateText when Err is nil.
	Text string
	// Audio is returned by SynthesizeSpeech when Err is nil.
	Audio []byte
	// Err, when set, is returned by both calls.
	Err error

	// Requests records every text request received, in order.
	Requests []models.GenerationRequest
}

func (m *MockClient) GenerateText(_ context.Context, req models.GenerationRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

func (m *MockClient) SynthesizeSpeech(_ context.Context, _ string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Audio, nil
}
