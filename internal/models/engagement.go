package models

import "time"

// ActivityKind identifies one kind of child activity.
type ActivityKind string

const (
	ActivityStory            ActivityKind = "story"
	ActivityFacts            ActivityKind = "facts"
	ActivityFeelingSupport   ActivityKind = "feeling_support"
	ActivityLesson           ActivityKind = "lesson"
	ActivityDailyAffirmation ActivityKind = "daily_affirmation"
	ActivityWonderAnswer     ActivityKind = "wonder_answer"
	ActivityWonderSuggestion ActivityKind = "wonder_suggestion"
	ActivityRoutine          ActivityKind = "routine"
)

// ActivityKinds lists every valid kind.
var ActivityKinds = []ActivityKind{
	ActivityStory,
	ActivityFacts,
	ActivityFeelingSupport,
	ActivityLesson,
	ActivityDailyAffirmation,
	ActivityWonderAnswer,
	ActivityWonderSuggestion,
	ActivityRoutine,
}

// Valid reports whether k is a known activity kind.
func (k ActivityKind) Valid() bool {
	for _, kind := range ActivityKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Strength is an unlockable badge.
type Strength struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StrengthRule unlocks a strength once the lifetime counter for Kind reaches
// Threshold.
type StrengthRule struct {
	Strength  Strength
	Kind      ActivityKind
	Threshold int
}

// EngagementSnapshot is the child-visible progress state.
type EngagementSnapshot struct {
	WinsToday      []string             `json:"wins_today"`
	Strengths      []Strength           `json:"strengths"`
	NewlyUnlocked  []Strength           `json:"newly_unlocked,omitempty"`
	LifetimeCounts map[ActivityKind]int `json:"lifetime_counts"`
}

// DateKey formats t as the calendar-date key used by the usage ledger and
// the engagement tables.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
