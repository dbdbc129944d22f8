package models

import (
	"testing"
	"time"
)

func TestNormalizeFillsMissingFields(t *testing.T) {
	s := Settings{}
	s.Normalize()

	if s.QuietHoursStart != "21:00" || s.QuietHoursEnd != "07:00" {
		t.Errorf("quiet hours not defaulted: %s-%s", s.QuietHoursStart, s.QuietHoursEnd)
	}
	if s.Model != "gpt-4o-mini" {
		t.Errorf("model not defaulted, got %q", s.Model)
	}
	if s.MaxTokens != 500 {
		t.Errorf("max tokens not defaulted, got %d", s.MaxTokens)
	}
	if s.SessionLengthMinutes != 10 {
		t.Errorf("session length not defaulted, got %d", s.SessionLengthMinutes)
	}
	if s.CustomWordFilters == nil {
		t.Error("custom word filters should be non-nil after Normalize")
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	s := DefaultSettings()
	s.DailyLimitMinutes = 45
	s.QuietHoursStart = "20:30"
	s.Normalize()

	if s.DailyLimitMinutes != 45 {
		t.Errorf("daily limit changed to %d", s.DailyLimitMinutes)
	}
	if s.QuietHoursStart != "20:30" {
		t.Errorf("quiet hours start changed to %s", s.QuietHoursStart)
	}
}

func TestActivityKindValid(t *testing.T) {
	tests := []struct {
		kind  ActivityKind
		valid bool
	}{
		{ActivityStory, true},
		{ActivityWonderSuggestion, true},
		{ActivityRoutine, true},
		{ActivityKind("homework"), false},
		{ActivityKind(""), false},
	}

	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.valid {
			t.Errorf("Valid(%q) = %v, want %v", tt.kind, got, tt.valid)
		}
	}
}

func TestUsageLedger(t *testing.T) {
	ledger := UsageLedger{}
	day := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

	ledger.Add(day, 10)
	ledger.Add(day, 5)
	if got := ledger.MinutesOn(day); got != 15 {
		t.Errorf("MinutesOn = %d, want 15", got)
	}

	// Negative and zero increments are ignored.
	ledger.Add(day, 0)
	ledger.Add(day, -3)
	if got := ledger.MinutesOn(day); got != 15 {
		t.Errorf("MinutesOn after no-op adds = %d, want 15", got)
	}

	other := day.AddDate(0, 0, 1)
	if got := ledger.MinutesOn(other); got != 0 {
		t.Errorf("MinutesOn for untouched day = %d, want 0", got)
	}

	ledger.ResetDay(day)
	if got := ledger.MinutesOn(day); got != 0 {
		t.Errorf("MinutesOn after reset = %d, want 0", got)
	}
}

func TestDefaultLessonsHaveSequentialIDs(t *testing.T) {
	lessons := DefaultLessons()
	if len(lessons) == 0 {
		t.Fatal("no seeded lessons")
	}
	for i, lesson := range lessons {
		if lesson.ID != i+1 {
			t.Errorf("lesson %d has id %d, want %d", i, lesson.ID, i+1)
		}
		if lesson.Title == "" || lesson.Content == "" {
			t.Errorf("lesson %d missing title or content", lesson.ID)
		}
	}
}

func TestDateKey(t *testing.T) {
	got := DateKey(time.Date(2025, 1, 2, 23, 59, 0, 0, time.UTC))
	if got != "2025-01-02" {
		t.Errorf("DateKey = %q, want 2025-01-02", got)
	}
}
