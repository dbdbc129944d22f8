package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return config.Path
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	// SQLite uses ? placeholders, no rewrite needed
	return query
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// Single-user app; keep the pool tiny
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}

	return nil
}

func (d *SQLiteDialect) UpsertActivityCount() string {
	return `INSERT INTO activity_counts (day, kind, count) VALUES (?, ?, 1)
		ON CONFLICT(day, kind) DO UPDATE SET count = count + 1`
}

func (d *SQLiteDialect) InsertWin() string {
	return `INSERT OR IGNORE INTO wins (day, kind) VALUES (?, ?)`
}

func (d *SQLiteDialect) InsertStrength() string {
	return `INSERT OR IGNORE INTO unlocked_strengths (strength_id, strength_name, unlocked_at) VALUES (?, ?, ?)`
}
