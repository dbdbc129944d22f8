package database

import (
	"strings"
	"testing"
)

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT day FROM wins",
			expected: "SELECT day FROM wins",
		},
		{
			name:     "single placeholder",
			query:    "SELECT kind FROM wins WHERE day = ?",
			expected: "SELECT kind FROM wins WHERE day = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO wins (day, kind) VALUES (?, ?)",
			expected: "INSERT INTO wins (day, kind) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSQLiteDialectPassesQueriesThrough(t *testing.T) {
	d := NewSQLiteDialect()
	query := "SELECT count FROM activity_counts WHERE day = ? AND kind = ?"
	if got := d.RewriteQuery(query); got != query {
		t.Errorf("sqlite rewrite changed query: %q", got)
	}
}

func TestPostgresDialectNumbersPlaceholders(t *testing.T) {
	d := NewPostgresDialect()
	got := d.RewriteQuery("SELECT count FROM activity_counts WHERE day = ? AND kind = ?")
	if !strings.Contains(got, "$1") || !strings.Contains(got, "$2") {
		t.Errorf("postgres rewrite missing numbered placeholders: %q", got)
	}
}

func TestUpsertQueriesArePerDialect(t *testing.T) {
	if q := NewSQLiteDialect().UpsertActivityCount(); !strings.Contains(q, "ON CONFLICT") {
		t.Errorf("sqlite upsert: %q", q)
	}
	if q := NewMySQLDialect().UpsertActivityCount(); !strings.Contains(q, "ON DUPLICATE KEY") {
		t.Errorf("mysql upsert: %q", q)
	}
	if q := NewPostgresDialect().InsertWin(); !strings.Contains(q, "DO NOTHING") {
		t.Errorf("postgres win insert: %q", q)
	}
	if q := NewMySQLDialect().InsertWin(); !strings.Contains(q, "INSERT IGNORE") {
		t.Errorf("mysql win insert: %q", q)
	}
}
