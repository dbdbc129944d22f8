package models

// Lesson is one entry in the gentle-lessons library the child picks from.
// Content is the static fallback text; generation uses Title as the topic.
type Lesson struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Emoji    string   `json:"emoji"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
}

// Affirmations maps a feeling to its static affirmation lines, shown without
// any generation call. The "other" key is the fallback for unknown feelings.
type Affirmations map[string][]string

// DefaultAffirmations seeds the affirmation library.
func DefaultAffirmations() Affirmations {
	return Affirmations{
		"happy": {
			"Your happy is wonderful to see!",
			"You make good moments even brighter.",
			"It's lovely to feel sunny inside.",
		},
		"sad": {
			"It's okay to feel sad sometimes.",
			"Your feelings matter, every one of them.",
			"Sad feelings pass, like clouds in the sky.",
		},
		"angry": {
			"Angry feelings are allowed.",
			"You can be angry and still be kind to yourself.",
			"Big feelings get smaller when you breathe slowly.",
		},
		"worried": {
			"Worries feel smaller when you share them.",
			"You are safe right now.",
			"One small breath at a time.",
		},
		"numb": {
			"It's okay to not know what you feel.",
			"You don't have to feel anything special.",
			"Quiet feelings are feelings too.",
		},
		"other": {
			"Whatever you feel is okay.",
			"You matter, exactly as you are.",
			"Feelings come and go, and you are always you.",
		},
	}
}

// DefaultLessons seeds the lessons library.
func DefaultLessons() []Lesson {
	return []Lesson{
		{
			ID:       1,
			Category: "self-compassion",
			Title:    "Being Kind to Yourself",
			Emoji:    "💛",
			Content:  "When something goes wrong, lots of kids say mean things to themselves. You can practice talking to yourself like you would talk to a friend.",
			Tags:     []string{"kindness", "self-talk"},
		},
		{
			ID:       2,
			Category: "feelings",
			Title:    "Big Feelings Are Okay",
			Emoji:    "🌊",
			Content:  "Feelings can be as big as waves. Waves always come down again. Naming a feeling out loud can make it a little smaller.",
			Tags:     []string{"feelings"},
		},
		{
			ID:       3,
			Category: "boundaries",
			Title:    "It's Okay to Say No",
			Emoji:    "🛑",
			Content:  "Your body and your things belong to you. Saying 'no thank you' is allowed, even to people you like.",
			Tags:     []string{"boundaries"},
		},
		{
			ID:       4,
			Category: "growth",
			Title:    "Mistakes Help Us Grow",
			Emoji:    "🌱",
			Content:  "Every person who is good at something made lots of mistakes learning it. A mistake means you are trying, and trying is how brains grow.",
			Tags:     []string{"learning", "mistakes"},
		},
	}
}
