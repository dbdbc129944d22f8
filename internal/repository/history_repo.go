package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"littlestar/internal/database"
	"littlestar/internal/models"
)

// HistoryRepository persists accepted stories so parents can review what was
// generated.
type HistoryRepository struct {
	db *database.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *database.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// SaveStory records an accepted story and returns its id.
func (r *HistoryRepository) SaveStory(text, length, topic, tone string, at time.Time) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO story_history (id, story_text, story_length, story_topic, story_tone, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, id, text, length, topic, tone, at.UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to save story: %w", err)
	}
	return id, nil
}

// RecentStories returns the most recent stories, newest first.
func (r *HistoryRepository) RecentStories(limit int) ([]models.StoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, story_text, story_length, story_topic, story_tone, created_at
		FROM story_history ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query story history: %w", err)
	}
	defer rows.Close()

	var stories []models.StoryRecord
	for rows.Next() {
		var s models.StoryRecord
		if err := rows.Scan(&s.ID, &s.Text, &s.Length, &s.Topic, &s.Tone, &s.CreatedAt); err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}
