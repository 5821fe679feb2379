// Package history persists lint runs so trends survive process restarts.
// Each run stores its summary plus every diagnostic, which is enough to
// answer "which rules fire most" and "is this codebase getting cleaner"
// without re-linting old revisions.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	// SQL drivers registered for Open. SQLite covers the single-developer
	// default; Postgres covers shared CI history.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded lint pass over a file set
type Run struct {
	ID           uuid.UUID `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	Duration     int64     `json:"duration_ms"`
	Files        int       `json:"files"`
	Problems     int       `json:"problems"`
	Suggestions  int       `json:"suggestions"`
	Fixable      int       `json:"fixable"`
	SyntaxErrors int       `json:"syntax_errors"`
}

// RuleStat aggregates how often one rule fired across recorded runs
type RuleStat struct {
	RuleID string `json:"rule_id"`
	Count  int    `json:"count"`
}

// Open connects to the history database. Supported drivers are "sqlite3"
// (the default, with "sqlite" accepted as an alias) and "postgres".
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "", "sqlite", "sqlite3":
		driver = "sqlite3"
		if dsn == "" {
			dsn = ".aabhalint/history.db"
		}
		// SQLite creates the file but not its directory
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("history: postgres requires a connection string")
		}
	default:
		return nil, fmt.Errorf("history: unknown driver %q (expected sqlite3 or postgres)", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return db, nil
}
