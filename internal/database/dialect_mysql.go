package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders, no rewrite needed
	return query
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func (d *MySQLDialect) UpsertActivityCount() string {
	return `INSERT INTO activity_counts (day, kind, count) VALUES (?, ?, 1)
		ON DUPLICATE KEY UPDATE count = count + 1`
}

func (d *MySQLDialect) InsertWin() string {
	return `INSERT IGNORE INTO wins (day, kind) VALUES (?, ?)`
}

func (d *MySQLDialect) InsertStrength() string {
	return `INSERT IGNORE INTO unlocked_strengths (strength_id, strength_name, unlocked_at) VALUES (?, ?, ?)`
}
