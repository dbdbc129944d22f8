package database

import "fmt"

// schemaStatements creates the engagement and history tables. Column types
// stay dialect-neutral: VARCHAR keys (MySQL cannot index bare TEXT) and
// timestamps stored as RFC3339 strings written by the application.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS story_history (
		id VARCHAR(36) PRIMARY KEY,
		story_text TEXT NOT NULL,
		story_length VARCHAR(20),
		story_topic VARCHAR(100),
		story_tone VARCHAR(50),
		created_at VARCHAR(32) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wins (
		day VARCHAR(10) NOT NULL,
		kind VARCHAR(32) NOT NULL,
		UNIQUE (day, kind)
	)`,
	`CREATE TABLE IF NOT EXISTS unlocked_strengths (
		strength_id VARCHAR(100) PRIMARY KEY,
		strength_name VARCHAR(200),
		unlocked_at VARCHAR(32) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activity_counts (
		day VARCHAR(10) NOT NULL,
		kind VARCHAR(32) NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		UNIQUE (day, kind)
	)`,
}

// InitSchema creates all tables if they don't exist
func (db *DB) InitSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
