package models

// GenerationRequest is one fully-specified text generation call.
type GenerationRequest struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	Temperature  float64
	MaxTokens    int
}

// StoryRecord is one accepted story as kept in the review history.
// CreatedAt is stored as RFC 3339 text.
type StoryRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Length    string `json:"length"`
	Topic     string `json:"topic"`
	Tone      string `json:"tone"`
	CreatedAt string `json:"created_at"`
}
