package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a queried run does not exist.
var ErrNotFound = errors.New("run not found")

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeMiss          Outcome = "miss"
	OutcomeInvalidPath   Outcome = "invalid_path"
	OutcomeTokenizeError Outcome = "tokenize_error"
	OutcomeLaunchError   Outcome = "launch_error"
	OutcomeExitError     Outcome = "exit_error"
	OutcomeTimeout       Outcome = "timeout"
	OutcomeDryRun        Outcome = "dry_run"
)

// Run is one recorded invocation. Output is not stored; Message holds a short
// error summary for failed runs.
type Run struct {
	ID        string
	Path      string
	Root      string
	Tier      string
	Command   string
	Outcome   Outcome
	ExitCode  int
	Message   string
	StartedAt time.Time
	Duration  time.Duration
}

// Store wraps a SQLite database holding run history.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path with WAL mode.
// Use ":memory:" for in-memory databases in tests.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// SQLite handles one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendRun records a run.
func (s *Store) AppendRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, path, root, tier, command, outcome, exit_code, message, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Path, run.Root, nullString(run.Tier), nullString(run.Command),
		string(run.Outcome), run.ExitCode, nullString(run.Message),
		run.StartedAt.UnixMilli(), run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("appending run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRuns+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}
	runs, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return runs[0], nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return collect(rows)
}

// ListRunsForPath returns up to limit runs of a single path, newest first.
// A limit <= 0 returns all.
func (s *Store) ListRunsForPath(ctx context.Context, path string, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectRuns+` WHERE path = ? ORDER BY started_at DESC, id DESC LIMIT ?`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs for %s: %w", path, err)
	}
	return collect(rows)
}

const selectRuns = `SELECT id, path, root, tier, command, outcome, exit_code, message, started_at, duration_ms FROM runs`

func collect(rows *sql.Rows) ([]*Run, error) {
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var tier, command, message sql.NullString
		var outcome string
		var startedAt, durationMS int64
		if err := rows.Scan(&r.ID, &r.Path, &r.Root, &tier, &command, &outcome,
			&r.ExitCode, &message, &startedAt, &durationMS); err != nil {
			return nil, err
		}
		r.Tier = tier.String
		r.Command = command.String
		r.Message = message.String
		r.Outcome = Outcome(outcome)
		r.StartedAt = time.UnixMilli(startedAt)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
