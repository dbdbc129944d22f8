package service

import "strings"

// RejectionReason says why generated text was rejected.
type RejectionReason string

const (
	// RejectionCustomWord means the text contained a parent-configured
	// banned word. The word itself is never echoed back to the child.
	RejectionCustomWord RejectionReason = "custom_word"
)

// ContentFilter post-checks generated text against the parent's custom
// banned-word list. It is a best-effort second line of defense behind the
// prompt-level exclusions, not a moderation guarantee: category-level
// exclusions are enforced upstream by the prompt and not re-scanned here.
type ContentFilter struct{}

// NewContentFilter creates a new content filter
func NewContentFilter() *ContentFilter {
	return &ContentFilter{}
}

// Validate scans text case-insensitively for each banned word and returns
// the rejection reason on the first match, or nil when the text is clean.
// Pure and total: same inputs always give the same outcome.
func (f *ContentFilter) Validate(text string, bannedWords []string) *RejectionReason {
	lowered := strings.ToLower(text)
	for _, word := range bannedWords {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		if strings.Contains(lowered, word) {
			reason := RejectionCustomWord
			return &reason
		}
	}
	return nil
}
