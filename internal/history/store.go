package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

// Store reads and writes run history through database/sql. Placeholders
// use the $N form, which both registered drivers accept.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the history tables when they do not exist yet
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lint_runs (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			duration_ms BIGINT NOT NULL,
			files INTEGER NOT NULL,
			problems INTEGER NOT NULL,
			suggestions INTEGER NOT NULL,
			fixable INTEGER NOT NULL,
			syntax_errors INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS lint_diagnostics (
			run_id TEXT NOT NULL,
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			col INTEGER NOT NULL,
			rule_id TEXT NOT NULL,
			message_id TEXT NOT NULL,
			severity TEXT NOT NULL,
			message TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lint_diagnostics_run ON lint_diagnostics(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_lint_diagnostics_rule ON lint_diagnostics(rule_id)`,
	}

	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to migrate history schema: %w", err)
		}
	}
	return nil
}

// RecordRun stores a run and its diagnostics atomically. A zero run ID is
// assigned a fresh one.
func (s *Store) RecordRun(ctx context.Context, run *Run, results []*lint.FileResult) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO lint_runs (
			id, started_at, duration_ms, files, problems,
			suggestions, fixable, syntax_errors
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID.String(), run.StartedAt, run.Duration, run.Files,
		run.Problems, run.Suggestions, run.Fixable, run.SyntaxErrors,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, result := range results {
		for i := range result.Diagnostics {
			diag := &result.Diagnostics[i]
			_, err = tx.ExecContext(ctx, `
				INSERT INTO lint_diagnostics (
					run_id, file, line, col, rule_id, message_id, severity, message
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				run.ID.String(), diag.Location.File, diag.Location.Line, diag.Location.Column,
				diag.RuleID, diag.MessageID, string(diag.Severity), diag.Message,
			)
			if err != nil {
				return fmt.Errorf("failed to insert diagnostic: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, files, problems,
		       suggestions, fixable, syntax_errors
		FROM lint_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves one run by ID
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, duration_ms, files, problems,
		       suggestions, fixable, syntax_errors
		FROM lint_runs
		WHERE id = $1`, id.String())

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RunDiagnostics returns the stored diagnostics of one run in insertion
// order
func (s *Store) RunDiagnostics(ctx context.Context, id uuid.UUID) ([]lint.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file, line, col, rule_id, message_id, severity, message
		FROM lint_diagnostics
		WHERE run_id = $1`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load diagnostics: %w", err)
	}
	defer rows.Close()

	var diagnostics []lint.Diagnostic
	for rows.Next() {
		var diag lint.Diagnostic
		var severity string
		err := rows.Scan(
			&diag.Location.File, &diag.Location.Line, &diag.Location.Column,
			&diag.RuleID, &diag.MessageID, &severity, &diag.Message,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		diag.Severity = lint.Severity(severity)
		diagnostics = append(diagnostics, diag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diagnostics: %w", err)
	}
	return diagnostics, nil
}

// RuleStats counts diagnostics per rule across runs recorded since the
// cutoff, most frequent first
func (s *Store) RuleStats(ctx context.Context, since time.Time) ([]RuleStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.rule_id, COUNT(*) AS n
		FROM lint_diagnostics d
		JOIN lint_runs r ON r.id = d.run_id
		WHERE r.started_at >= $1
		GROUP BY d.rule_id
		ORDER BY n DESC, d.rule_id ASC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rule stats: %w", err)
	}
	defer rows.Close()

	var stats []RuleStat
	for rows.Next() {
		var stat RuleStat
		if err := rows.Scan(&stat.RuleID, &stat.Count); err != nil {
			return nil, fmt.Errorf("failed to scan rule stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rule stats: %w", err)
	}
	return stats, nil
}

// Purge deletes runs older than the cutoff along with their diagnostics,
// returning how many runs were removed
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM lint_diagnostics
		WHERE run_id IN (SELECT id FROM lint_runs WHERE started_at < $1)`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge diagnostics: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM lint_runs WHERE started_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge runs: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit purge: %w", err)
	}
	return removed, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var id string
	err := row.Scan(
		&id, &run.StartedAt, &run.Duration, &run.Files,
		&run.Problems, &run.Suggestions, &run.Fixable, &run.SyntaxErrors,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	run.ID = parsed
	return &run, nil
}
