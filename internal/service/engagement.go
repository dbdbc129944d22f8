package service

import (
	"fmt"
	"time"

	"littlestar/internal/models"
)

// EngagementStore is the persistence needed by the tracker. Satisfied by
// repository.EngagementRepository; tests use an in-memory fake.
type EngagementStore interface {
	IncrementActivity(day time.Time, kind models.ActivityKind) error
	AddWin(day time.Time, kind models.ActivityKind) error
	WinsOn(day time.Time) ([]string, error)
	LifetimeCounts() (map[models.ActivityKind]int, error)
	UnlockStrength(strength models.Strength, at time.Time) error
	UnlockedStrengths() ([]models.Strength, error)
}

// DefaultStrengthRules returns the badge ruleset. Thresholds apply to
// lifetime counters, never daily ones, so unlocks survive date rollovers.
func DefaultStrengthRules() []models.StrengthRule {
	return []models.StrengthRule{
		{Strength: models.Strength{ID: "feelings_noticer", Name: "Feelings Noticer"}, Kind: models.ActivityFeelingSupport, Threshold: 3},
		{Strength: models.Strength{ID: "curious_learner", Name: "Curious Learner"}, Kind: models.ActivityStory, Threshold: 5},
		{Strength: models.Strength{ID: "wonder_seeker", Name: "Wonder Seeker"}, Kind: models.ActivityWonderAnswer, Threshold: 3},
		{Strength: models.Strength{ID: "fact_finder", Name: "Fact Finder"}, Kind: models.ActivityFacts, Threshold: 5},
		{Strength: models.Strength{ID: "gentle_mind", Name: "Gentle Mind"}, Kind: models.ActivityLesson, Threshold: 3},
	}
}

// EngagementTracker maintains daily wins, the two counters per activity kind
// (daily and lifetime) and the monotonic strength unlocks.
type EngagementTracker struct {
	store EngagementStore
	rules []models.StrengthRule
}

// NewEngagementTracker creates a tracker with the default strength rules.
func NewEngagementTracker(store EngagementStore) *EngagementTracker {
	return &EngagementTracker{
		store: store,
		rules: DefaultStrengthRules(),
	}
}

// RecordActivity registers one completed activity: bumps both counters, adds
// today's win (idempotent), then evaluates the unlock rules. Returns a
// snapshot with any strengths unlocked by this very activity so the UI can
// celebrate them.
func (t *EngagementTracker) RecordActivity(kind models.ActivityKind, now time.Time) (models.EngagementSnapshot, error) {
	if err := t.store.IncrementActivity(now, kind); err != nil {
		return models.EngagementSnapshot{}, err
	}
	if err := t.store.AddWin(now, kind); err != nil {
		return models.EngagementSnapshot{}, err
	}

	newlyUnlocked, err := t.evaluateUnlocks(now)
	if err != nil {
		return models.EngagementSnapshot{}, err
	}

	snapshot, err := t.Snapshot(now)
	if err != nil {
		return models.EngagementSnapshot{}, err
	}
	snapshot.NewlyUnlocked = newlyUnlocked
	return snapshot, nil
}

// evaluateUnlocks checks every rule against the lifetime counters and
// unlocks anything newly satisfied. Unlocks are monotonic: once present a
// strength is never removed, regardless of later resets.
func (t *EngagementTracker) evaluateUnlocks(now time.Time) ([]models.Strength, error) {
	counts, err := t.store.LifetimeCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load lifetime counts: %w", err)
	}
	unlocked, err := t.store.UnlockedStrengths()
	if err != nil {
		return nil, fmt.Errorf("failed to load strengths: %w", err)
	}

	have := make(map[string]bool, len(unlocked))
	for _, s := range unlocked {
		have[s.ID] = true
	}

	var newly []models.Strength
	for _, rule := range t.rules {
		if have[rule.Strength.ID] {
			continue
		}
		if counts[rule.Kind] >= rule.Threshold {
			if err := t.store.UnlockStrength(rule.Strength, now); err != nil {
				return nil, err
			}
			newly = append(newly, rule.Strength)
		}
	}
	return newly, nil
}

// Snapshot returns today's wins and every strength unlocked so far.
func (t *EngagementTracker) Snapshot(now time.Time) (models.EngagementSnapshot, error) {
	wins, err := t.store.WinsOn(now)
	if err != nil {
		return models.EngagementSnapshot{}, err
	}
	strengths, err := t.store.UnlockedStrengths()
	if err != nil {
		return models.EngagementSnapshot{}, err
	}
	counts, err := t.store.LifetimeCounts()
	if err != nil {
		return models.EngagementSnapshot{}, err
	}
	return models.EngagementSnapshot{
		WinsToday:      wins,
		Strengths:      strengths,
		LifetimeCounts: counts,
	}, nil
}
