package repository

import (
	"path/filepath"
	"testing"
	"time"

	"littlestar/internal/database"
	"littlestar/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func TestWinIdempotence(t *testing.T) {
	repo := NewEngagementRepository(newTestDB(t))
	day := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	// Record the same activity twice on the same day.
	for i := 0; i < 2; i++ {
		if err := repo.AddWin(day, models.ActivityStory); err != nil {
			t.Fatalf("AddWin: %v", err)
		}
		if err := repo.IncrementActivity(day, models.ActivityStory); err != nil {
			t.Fatalf("IncrementActivity: %v", err)
		}
	}

	wins, err := repo.WinsOn(day)
	if err != nil {
		t.Fatalf("WinsOn: %v", err)
	}
	if len(wins) != 1 || wins[0] != "story" {
		t.Errorf("wins = %v, want exactly one story win", wins)
	}

	count, err := repo.DailyCount(day, models.ActivityStory)
	if err != nil {
		t.Fatalf("DailyCount: %v", err)
	}
	if count != 2 {
		t.Errorf("daily count = %d, want 2", count)
	}
}

func TestLifetimeCountsSpanDays(t *testing.T) {
	repo := NewEngagementRepository(newTestDB(t))
	day1 := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	for i := 0; i < 2; i++ {
		if err := repo.IncrementActivity(day1, models.ActivityFeelingSupport); err != nil {
			t.Fatalf("IncrementActivity: %v", err)
		}
	}
	if err := repo.IncrementActivity(day2, models.ActivityFeelingSupport); err != nil {
		t.Fatalf("IncrementActivity: %v", err)
	}

	counts, err := repo.LifetimeCounts()
	if err != nil {
		t.Fatalf("LifetimeCounts: %v", err)
	}
	if counts[models.ActivityFeelingSupport] != 3 {
		t.Errorf("lifetime count = %d, want 3", counts[models.ActivityFeelingSupport])
	}

	// The daily counter for day2 is independent of day1.
	count, err := repo.DailyCount(day2, models.ActivityFeelingSupport)
	if err != nil {
		t.Fatalf("DailyCount: %v", err)
	}
	if count != 1 {
		t.Errorf("day2 count = %d, want 1", count)
	}
}

func TestDailyCountMissingRowIsZero(t *testing.T) {
	repo := NewEngagementRepository(newTestDB(t))
	day := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	count, err := repo.DailyCount(day, models.ActivityStory)
	if err != nil {
		t.Fatalf("DailyCount on empty table: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestDailyCountPropagatesQueryErrors(t *testing.T) {
	db := newTestDB(t)
	repo := NewEngagementRepository(db)
	day := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	// A closed connection must surface as an error, not read as zero activity.
	db.Close()
	if _, err := repo.DailyCount(day, models.ActivityStory); err == nil {
		t.Error("expected error from closed database")
	}
}

func TestStrengthUnlockMonotonic(t *testing.T) {
	repo := NewEngagementRepository(newTestDB(t))
	strength := models.Strength{ID: "feelings_noticer", Name: "Feelings Noticer"}
	now := time.Now()

	if err := repo.UnlockStrength(strength, now); err != nil {
		t.Fatalf("UnlockStrength: %v", err)
	}
	// Unlocking again is a no-op, not an error.
	if err := repo.UnlockStrength(strength, now.Add(time.Hour)); err != nil {
		t.Fatalf("UnlockStrength repeat: %v", err)
	}

	strengths, err := repo.UnlockedStrengths()
	if err != nil {
		t.Fatalf("UnlockedStrengths: %v", err)
	}
	if len(strengths) != 1 {
		t.Fatalf("strengths = %v, want exactly one", strengths)
	}
	if strengths[0].ID != "feelings_noticer" {
		t.Errorf("strength id = %q", strengths[0].ID)
	}
}

func TestStoryHistoryRoundTrip(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))

	id, err := repo.SaveStory("Once upon a time...", "short", "space", "calm", time.Now())
	if err != nil {
		t.Fatalf("SaveStory: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty story id")
	}

	stories, err := repo.RecentStories(10)
	if err != nil {
		t.Fatalf("RecentStories: %v", err)
	}
	if len(stories) != 1 {
		t.Fatalf("stories = %d, want 1", len(stories))
	}
	if stories[0].Topic != "space" || stories[0].Length != "short" {
		t.Errorf("story = %+v", stories[0])
	}
}
