package service

import (
	"testing"
	"time"

	"littlestar/internal/models"
)

// fakeEngagementStore is an in-memory EngagementStore for tracker tests.
type fakeEngagementStore struct {
	daily    map[string]map[models.ActivityKind]int
	wins     map[string]map[models.ActivityKind]bool
	unlocked []models.Strength
}

func newFakeEngagementStore() *fakeEngagementStore {
	return &fakeEngagementStore{
		daily: make(map[string]map[models.ActivityKind]int),
		wins:  make(map[string]map[models.ActivityKind]bool),
	}
}

func (f *fakeEngagementStore) IncrementActivity(day time.Time, kind models.ActivityKind) error {
	key := models.DateKey(day)
	if f.daily[key] == nil {
		f.daily[key] = make(map[models.ActivityKind]int)
	}
	f.daily[key][kind]++
	return nil
}

func (f *fakeEngagementStore) AddWin(day time.Time, kind models.ActivityKind) error {
	key := models.DateKey(day)
	if f.wins[key] == nil {
		f.wins[key] = make(map[models.ActivityKind]bool)
	}
	f.wins[key][kind] = true
	return nil
}

func (f *fakeEngagementStore) WinsOn(day time.Time) ([]string, error) {
	var out []string
	for kind := range f.wins[models.DateKey(day)] {
		out = append(out, string(kind))
	}
	return out, nil
}

func (f *fakeEngagementStore) LifetimeCounts() (map[models.ActivityKind]int, error) {
	totals := make(map[models.ActivityKind]int)
	for _, counts := range f.daily {
		for kind, n := range counts {
			totals[kind] += n
		}
	}
	return totals, nil
}

func (f *fakeEngagementStore) UnlockStrength(strength models.Strength, _ time.Time) error {
	for _, s := range f.unlocked {
		if s.ID == strength.ID {
			return nil
		}
	}
	f.unlocked = append(f.unlocked, strength)
	return nil
}

func (f *fakeEngagementStore) UnlockedStrengths() ([]models.Strength, error) {
	return append([]models.Strength(nil), f.unlocked...), nil
}

func TestRecordActivityAddsWinOnce(t *testing.T) {
	tracker := NewEngagementTracker(newFakeEngagementStore())
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	var snapshot models.EngagementSnapshot
	var err error
	for i := 0; i < 3; i++ {
		snapshot, err = tracker.RecordActivity(models.ActivityStory, now)
		if err != nil {
			t.Fatalf("RecordActivity: %v", err)
		}
	}

	if len(snapshot.WinsToday) != 1 {
		t.Errorf("wins today = %v, want exactly one entry", snapshot.WinsToday)
	}
	if snapshot.LifetimeCounts[models.ActivityStory] != 3 {
		t.Errorf("lifetime story count = %d, want 3", snapshot.LifetimeCounts[models.ActivityStory])
	}
}

func TestStrengthUnlocksAtThreshold(t *testing.T) {
	tracker := NewEngagementTracker(newFakeEngagementStore())
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		snapshot, err := tracker.RecordActivity(models.ActivityFeelingSupport, now)
		if err != nil {
			t.Fatalf("RecordActivity: %v", err)
		}
		if len(snapshot.NewlyUnlocked) != 0 {
			t.Fatalf("unlocked %v before threshold", snapshot.NewlyUnlocked)
		}
	}

	snapshot, err := tracker.RecordActivity(models.ActivityFeelingSupport, now)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if len(snapshot.NewlyUnlocked) != 1 || snapshot.NewlyUnlocked[0].ID != "feelings_noticer" {
		t.Fatalf("newly unlocked = %v, want feelings_noticer", snapshot.NewlyUnlocked)
	}

	// Crossing the threshold again must not re-report the unlock.
	snapshot, err = tracker.RecordActivity(models.ActivityFeelingSupport, now)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if len(snapshot.NewlyUnlocked) != 0 {
		t.Errorf("unlock reported twice: %v", snapshot.NewlyUnlocked)
	}
	if len(snapshot.Strengths) != 1 {
		t.Errorf("strengths = %v, want one", snapshot.Strengths)
	}
}

func TestUnlockCountsSpanDays(t *testing.T) {
	tracker := NewEngagementTracker(newFakeEngagementStore())

	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := tracker.RecordActivity(models.ActivityStory, day1); err != nil {
			t.Fatalf("RecordActivity: %v", err)
		}
	}
	if _, err := tracker.RecordActivity(models.ActivityStory, day2); err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	snapshot, err := tracker.RecordActivity(models.ActivityStory, day2)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}

	// 5 lifetime stories across two days unlocks curious_learner.
	if len(snapshot.NewlyUnlocked) != 1 || snapshot.NewlyUnlocked[0].ID != "curious_learner" {
		t.Fatalf("newly unlocked = %v, want curious_learner", snapshot.NewlyUnlocked)
	}
	// Day-2 wins list does not include day 1.
	if len(snapshot.WinsToday) != 1 {
		t.Errorf("wins today = %v, want one entry", snapshot.WinsToday)
	}
}
