// Package journal persists every emitted signal to a local SQLite database
// so a session can be replayed or argued about after the fact. Each bridge
// lifetime gets its own run row; signals hang off the run in emission
// order.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Wouter17/f1-light-sync/internal/flags"
)

//go:embed schema.sql
var schemaSQL string

// Journal records signals under the run created when it was opened. Its
// Emit method implements flags.Emitter so it can sit in the emitter stack
// next to the real displays.
type Journal struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

// Option configures a Journal.
type Option func(*Journal)

// WithNow overrides the clock used for run and signal timestamps.
func WithNow(now func() time.Time) Option {
	return func(j *Journal) {
		j.now = now
	}
}

// Open creates or opens the journal database at path and starts a new run.
//
// The database uses WAL mode so the journal can be read while the bridge
// is writing, and a single connection because SQLite allows one writer at
// a time.
func Open(path string, opts ...Option) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	j := &Journal{
		db:    db,
		runID: uuid.Must(uuid.NewV7()).String(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}

	if _, err := db.Exec(
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		j.runID, j.now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("start journal run: %w", err)
	}
	return j, nil
}

// RunID returns the identifier of the run this journal is recording into.
func (j *Journal) RunID() string {
	return j.runID
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Emit implements flags.Emitter by appending the signal to the current run.
func (j *Journal) Emit(signal flags.Signal) error {
	_, err := j.db.Exec(
		`INSERT INTO signals (run_id, emitted_at, code, driver, payload) VALUES (?, ?, ?, ?, ?)`,
		j.runID,
		j.now().UTC().Format(time.RFC3339Nano),
		int(signal.Code),
		signal.Driver,
		signal.Wire(),
	)
	if err != nil {
		return fmt.Errorf("journal signal: %w", err)
	}
	return nil
}

// Run identifies one bridge lifetime in the journal.
type Run struct {
	ID        string
	StartedAt time.Time
}

// Runs lists all recorded runs, oldest first.
func (j *Journal) Runs(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT id, started_at FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Entry is one journalled signal.
type Entry struct {
	EmittedAt time.Time
	Code      flags.Code
	Driver    int
	Payload   string
}

// Signals returns the signals of one run in emission order.
func (j *Journal) Signals(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT emitted_at, code, driver, payload FROM signals WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var emittedAt string
		var code int
		if err := rows.Scan(&emittedAt, &code, &entry.Driver, &entry.Payload); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		entry.Code = flags.Code(code)
		entry.EmittedAt, err = time.Parse(time.RFC3339Nano, emittedAt)
		if err != nil {
			return nil, fmt.Errorf("parse signal timestamp: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}
	return entries, nil
}
