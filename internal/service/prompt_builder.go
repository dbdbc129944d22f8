package service

import (
	"errors"
	"fmt"
	"strings"

	"littlestar/internal/models"
)

// ErrEmptyQuestion is returned when a wonder answer is requested without any
// question text. Caught before any external call is made.
var ErrEmptyQuestion = errors.New("wonder question text is empty")

// surpriseTopic stands in for any empty free-text topic so a blank form
// never fails a generation.
const surpriseTopic = "surprise me"

// Fixed generation parameters for activities that should stay short and
// varied regardless of the configured story settings.
const (
	affirmationMaxTokens    = 100
	affirmationTemp         = 0.9
	suggestionMaxTokens     = 100
	suggestionTemp          = 0.9
	wonderAnswerMaxTokens   = 200
	factsMaxTokens          = 300
	feelingSupportMaxTokens = 400
	lessonMaxTokens         = 500
)

// Options carries the user-selected inputs for one activity. Each activity
// kind reads only its own fields.
type Options struct {
	// Story
	Length string
	Topic  string
	Tone   string

	// Feeling support
	Feeling       string
	CharacterName string

	// Wonder answer
	Question string

	// Routine
	TimeOfDay string
}

// lengthGuide bounds output size by paragraph count. Used verbatim in the
// system instructions.
var lengthGuide = map[string]string{
	"short":  "3-4 short paragraphs",
	"medium": "5-7 paragraphs",
	"long":   "8-10 paragraphs",
}

// bannedPhrases maps each enabled banned-topic category to the concrete
// exclusion phrase injected into every generation request.
func bannedPhrases(topics models.BannedTopics) string {
	var banned []string
	if topics.DeathIllness {
		banned = append(banned, "death, illness, disease, or injury")
	}
	if topics.Violence {
		banned = append(banned, "violence, fighting, or hurting")
	}
	if topics.ScaryMonsters {
		banned = append(banned, "scary monsters, ghosts, or frightening creatures")
	}
	if len(banned) == 0 {
		return "anything frightening"
	}
	return strings.Join(banned, ", ")
}

// PromptBuilder turns a small set of user-selected options into a
// fully-specified generation request. Pure: no I/O, deterministic for given
// inputs.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// safetyRules renders the safety block shared by every request: the derived
// exclusion list plus the always-on exclusions that are not configurable.
func (b *PromptBuilder) safetyRules(settings models.Settings) string {
	return fmt.Sprintf(`CRITICAL SAFETY RULES:
- NO %s
- NO bullying, meanness, or cruelty
- NO abandonment or being lost/alone in scary ways
- NO bathroom humor or gross content
- Use simple, clear language at a %s reading level
- Make it cozy, safe, and age-appropriate`,
		bannedPhrases(settings.BannedTopics), settings.ReadingLevel)
}

// persona renders the opening line of the system instructions with the
// child's age band and interests.
func (b *PromptBuilder) persona(role string, profile models.ChildProfile) string {
	return fmt.Sprintf("You are %s for a %d-year-old child named %s who loves %s.",
		role, profile.Age, profile.Name, strings.Join(profile.Interests, ", "))
}

// Build renders the generation request for one activity. It never performs
// I/O; randomness is deliberately left to the generation service.
func (b *PromptBuilder) Build(kind models.ActivityKind, opts Options, profile models.ChildProfile, settings models.Settings) (models.GenerationRequest, error) {
	switch kind {
	case models.ActivityStory:
		return b.buildStory(opts, profile, settings), nil
	case models.ActivityFacts:
		return b.buildFacts(opts, profile, settings), nil
	case models.ActivityFeelingSupport:
		return b.buildFeelingSupport(opts, profile, settings), nil
	case models.ActivityLesson:
		return b.buildLesson(opts, profile, settings), nil
	case models.ActivityDailyAffirmation:
		return b.buildAffirmation(profile, settings), nil
	case models.ActivityWonderAnswer:
		if strings.TrimSpace(opts.Question) == "" {
			return models.GenerationRequest{}, ErrEmptyQuestion
		}
		return b.buildWonderAnswer(opts, profile, settings), nil
	case models.ActivityWonderSuggestion:
		return b.buildWonderSuggestion(profile, settings), nil
	default:
		return models.GenerationRequest{}, fmt.Errorf("no prompt for activity kind %q", kind)
	}
}

func (b *PromptBuilder) buildStory(opts Options, profile models.ChildProfile, settings models.Settings) models.GenerationRequest {
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		topic = surpriseTopic
	}
	tone := strings.TrimSpace(opts.Tone)
	if tone == "" {
		tone = "calm"
	}
	length := opts.Length
	guide, ok := lengthGuide[length]
	if !ok {
		length = settings.MaxStoryLength
		guide = lengthGuide[length]
	}

	system := fmt.Sprintf(`%s

Create a %s, %s-themed story that is %s long.

%s
- Include gentle lessons about kindness, friendship, or wonder
- End on a happy, comforting note

The story should feel like a warm hug.`,
		b.persona("a gentle storyteller", profile), tone, topic, guide, b.safetyRules(settings))

	return models.GenerationRequest{
		SystemPrompt: system,
		UserPrompt:   fmt.Sprintf("Tell me a %s %s story about %s!", length, tone, topic),
		Model:        settings.Model,
		Temperature:  settings.Temperature,
		MaxTokens:    settings.MaxTokens,
	}
}

func (b *PromptBuilder) buildFacts(opts Options, profile models.ChildProfile, settings models.Settings) models.GenerationRequest {
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		topic = surpriseTopic
	}

	system := fmt.Sprintf(`%s

Give 2-3 simple, amazing facts about %s.

%s
- NO scary or sad facts
- Make it exciting and wonder-filled
- Think of facts that would make a child say "WOW!"`,
		b.persona("sharing interesting facts with a curious child, speaking", profile), topic, b.safetyRules(settings))

	return models.GenerationRequest{
		SystemPrompt: system,
		UserPrompt:   fmt.Sprintf("Tell me some amazing facts about %s!", topic),
		Model:        settings.Model,
		Temperature:  settings.Temperature,
		MaxTokens:    factsMaxTokens,
	}
}

func (b *PromptBuilder) buildFeelingSupport(opts Options, profile models.ChildProfile, settings models.Settings) models.GenerationRequest {
	character := strings.TrimSpace(opts.CharacterName)
	if character == "" {
		character = "Little Star Rabbit"
	}

	system := fmt.Sprintf(`%s

%s

Format your response in three parts:
1. VALIDATION: 1-2 sentences validating the feeling warmly. Mention %s is visiting.
2. SUGGESTION: 1 short, gentle idea for something to try (like bunny breaths) - not a command.
3. AFFIRMATIONS: 3 short affirmations as bullet points.

Never shame; only validate. Never say "I love you" or "I'm your friend".`,
		b.persona("a gentle, kid-safe emotional support companion", profile),
		b.safetyRules(settings), character)

	return models.GenerationRequest{
		SystemPrompt: system,
		UserPrompt:   fmt.Sprintf("%s is feeling %s. Please respond with validation, a gentle suggestion, and 3 affirmations.", profile.Name, opts.Feeling),
		Model:        settings.Model,
		Temperature:  settings.Temperature,
		MaxTokens:    feelingSupportMaxTokens,
	}
}

func (b *PromptBuilder) buildLesson(opts Options, profile models.ChildProfile, settings models.Settings) models.GenerationRequest {
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		topic = "being kind to yourself"
	}

	system := fmt.Sprintf(`%s

Explain the selected topic using short paragraphs and tiny examples. Focus on
kindness, self-compassion, boundaries, and small practical ideas. Make it
about "lots of kids", not this child specifically.

%s

Structure:
- A short explanation (3-5 sentences)
- One simple example
- A tiny "Try this" suggestion at the end`,
		b.persona("a gentle, kid-safe teacher", profile), b.safetyRules(settings))

	return models.GenerationRequest{
		SystemPrompt: system,
		UserPrompt:   fmt.Sprintf("Please teach %s about: %s", profile.Name, topic),
		Model:        settings.Model,
		Temperature:  settings.Temperature,
		MaxTokens:    lessonMaxTokens,
	}
}

func (b *PromptBuilder) buildAffirmation(profile models.ChildProfile, settings models.Settings) models.GenerationRequest {
	system := fmt.Sprintf(`%s

Write one short, gentle message of 1-2 sentences. Focus on worth, curiosity,
feelings being okay, and ideas mattering. Warm but not saccharine. Do not use
the word "love" or mention family.

%s`,
		b.persona("a warm daily greeter", profile), b.safetyRules(settings))

	return models.GenerationRequest{
		SystemPrompt: system,
		UserPrompt:   fmt.Sprintf("Write today's gentle message for %s.", profile.Name),
		Model:        settings.Model,
		Temperature:  affirmationTemp,
		MaxTokens:    affirmationMaxTokens,
	}
}

func (b *PromptBuilder) buildWonderAnswer(opts Options, profile models.ChildProfile, settings models.Settings) models.GenerationRequest {
	system := fmt.Sprintf(`%s

Answer the question in 2-4 simple sentences. Be warm, curious, and
non-judgmental. Validate that wondering is good. If the question is
inappropriate or too heavy, gently redirect to something safe.

%s`,
		b.persona("a friendly answerer of wonder questions", profile), b.safetyRules(settings))

	return models.GenerationRequest{
		SystemPrompt: system,
		UserPrompt:   fmt.Sprintf("%s asked: %q", profile.Name, strings.TrimSpace(opts.Question)),
		Model:        settings.Model,
		Temperature:  settings.Temperature,
		MaxTokens:    wonderAnswerMaxTokens,
	}
}

func (b *PromptBuilder) buildWonderSuggestion(profile models.ChildProfile, settings models.Settings) models.GenerationRequest {
	system := fmt.Sprintf(`%s

Generate ONE fun, imaginative question in a single sentence. It should spark
wonder and curiosity. About animals, nature, space, colors, gentle feelings,
or imagination. NOT personal and NOT about family.

%s`,
		b.persona("a playful question inventor", profile), b.safetyRules(settings))

	return models.GenerationRequest{
		SystemPrompt: system,
		UserPrompt:   "Suggest one wonder question to think about.",
		Model:        settings.Model,
		Temperature:  suggestionTemp,
		MaxTokens:    suggestionMaxTokens,
	}
}
