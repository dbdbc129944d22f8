package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"littlestar/internal/database"
	"littlestar/internal/models"
)

// EngagementRepository persists daily wins, activity counters and strength
// unlocks. Daily state is keyed by calendar date; lifetime totals are sums
// over all days and never reset.
type EngagementRepository struct {
	db *database.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *database.DB) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// IncrementActivity bumps both the daily counter row for (day, kind) and,
// implicitly, the lifetime total for kind.
func (r *EngagementRepository) IncrementActivity(day time.Time, kind models.ActivityKind) error {
	query := r.db.Dialect.UpsertActivityCount()
	if _, err := r.db.Exec(query, models.DateKey(day), string(kind)); err != nil {
		return fmt.Errorf("failed to increment activity count: %w", err)
	}
	return nil
}

// AddWin records that the activity kind was completed at least once on day.
// Idempotent: repeating an activity the same day adds no duplicate.
func (r *EngagementRepository) AddWin(day time.Time, kind models.ActivityKind) error {
	query := r.db.Dialect.InsertWin()
	if _, err := r.db.Exec(query, models.DateKey(day), string(kind)); err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}
	return nil
}

// WinsOn returns the set of activity kinds completed on day.
func (r *EngagementRepository) WinsOn(day time.Time) ([]string, error) {
	rows, err := r.db.Query("SELECT kind FROM wins WHERE day = ? ORDER BY kind", models.DateKey(day))
	if err != nil {
		return nil, fmt.Errorf("failed to query wins: %w", err)
	}
	defer rows.Close()

	var wins []string
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, err
		}
		wins = append(wins, kind)
	}
	return wins, rows.Err()
}

// DailyCount returns the counter for (day, kind). A missing row means zero
// activity; any other failure propagates.
func (r *EngagementRepository) DailyCount(day time.Time, kind models.ActivityKind) (int, error) {
	var count int
	query := "SELECT count FROM activity_counts WHERE day = ? AND kind = ?"
	err := r.db.QueryRow(query, models.DateKey(day), string(kind)).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query daily count: %w", err)
	}
	return count, nil
}

// LifetimeCounts returns the all-time counter per activity kind.
func (r *EngagementRepository) LifetimeCounts() (map[models.ActivityKind]int, error) {
	rows, err := r.db.Query("SELECT kind, SUM(count) FROM activity_counts GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("failed to query lifetime counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ActivityKind]int)
	for rows.Next() {
		var kind string
		var total int
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, err
		}
		counts[models.ActivityKind(kind)] = total
	}
	return counts, rows.Err()
}

// UnlockStrength records a strength unlock. Once present it is never removed;
// unlocking twice is a no-op.
func (r *EngagementRepository) UnlockStrength(strength models.Strength, at time.Time) error {
	query := r.db.Dialect.InsertStrength()
	if _, err := r.db.Exec(query, strength.ID, strength.Name, at.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to unlock strength: %w", err)
	}
	return nil
}

// UnlockedStrengths returns every strength unlocked so far.
func (r *EngagementRepository) UnlockedStrengths() ([]models.Strength, error) {
	rows, err := r.db.Query("SELECT strength_id, strength_name FROM unlocked_strengths ORDER BY unlocked_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query strengths: %w", err)
	}
	defer rows.Close()

	var strengths []models.Strength
	for rows.Next() {
		var s models.Strength
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		strengths = append(strengths, s)
	}
	return strengths, rows.Err()
}
