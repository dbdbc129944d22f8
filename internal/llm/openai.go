package llm

import (
	"context"
	"errors"
	"io"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"littlestar/internal/models"
)

// ttsVoice is the warm voice used for all read-aloud audio; ttsSpeed slows
// playback slightly for young listeners.
const (
	ttsVoice = openai.AudioSpeechNewParamsVoice("nova")
	ttsSpeed = 0.9
)

// OpenAIClient implements Client using the official openai-go SDK.
type OpenAIClient struct {
	opts []option.RequestOption
	// configured is false when no API key was available at construction;
	// every call then fails with KindUnconfigured instead of reaching the
	// network.
	configured bool
}

// NewOpenAIClient creates a client. An empty apiKey yields a client whose
// calls all fail with KindUnconfigured; construction itself never fails so
// the app can start before a parent has set up a key.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	if apiKey == "" {
		return &OpenAIClient{configured: false}
	}
	return &OpenAIClient{
		opts:       []option.RequestOption{option.WithAPIKey(apiKey)},
		configured: true,
	}
}

// GenerateText performs one chat-completion call.
func (c *OpenAIClient) GenerateText(ctx context.Context, req models.GenerationRequest) (string, error) {
	if !c.configured {
		return "", &Error{Kind: KindUnconfigured, Err: errors.New("no api key configured")}
	}

	client := openai.NewClient(c.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindUnknown, Err: errors.New("empty choices in completion response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// SynthesizeSpeech converts text to MP3 audio using the tts-1 model with the
// nova voice at a slight slowdown.
func (c *OpenAIClient) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	if !c.configured {
		return nil, &Error{Kind: KindUnconfigured, Err: errors.New("no api key configured")}
	}

	client := openai.NewClient(c.opts...)
	resp, err := client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModelTTS1,
		Voice: ttsVoice,
		Input: text,
		Speed: openai.Float(ttsSpeed),
	})
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Err: err}
	}
	return audio, nil
}

// classify maps SDK errors onto the error taxonomy.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return &Error{Kind: KindRateLimited, Err: err}
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return &Error{Kind: KindUnconfigured, Err: err}
		case apiErr.StatusCode >= 500:
			return &Error{Kind: KindUnavailable, Err: err}
		default:
			return &Error{Kind: KindUnknown, Err: err}
		}
	}
	// Transport-level failures (timeouts, DNS, connection refused)
	return &Error{Kind: KindUnavailable, Err: err}
}
