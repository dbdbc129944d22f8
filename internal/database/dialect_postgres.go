package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, ... placeholders
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func (d *PostgresDialect) UpsertActivityCount() string {
	return `INSERT INTO activity_counts (day, kind, count) VALUES (?, ?, 1)
		ON CONFLICT (day, kind) DO UPDATE SET count = activity_counts.count + 1`
}

func (d *PostgresDialect) InsertWin() string {
	return `INSERT INTO wins (day, kind) VALUES (?, ?) ON CONFLICT (day, kind) DO NOTHING`
}

func (d *PostgresDialect) InsertStrength() string {
	return `INSERT INTO unlocked_strengths (strength_id, strength_name, unlocked_at) VALUES (?, ?, ?)
		ON CONFLICT (strength_id) DO NOTHING`
}
