package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/fseq/internal/models"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

var (
	// ErrRunNotFound is returned by GetRun when no run matches the identifier.
	ErrRunNotFound = errors.New("run not found")

	// ErrAmbiguousID is returned by GetRun when an identifier prefix matches
	// more than one run.
	ErrAmbiguousID = errors.New("run identifier is ambiguous")
)

// Run is one operation applied to one target.
type Run struct {
	ID          string
	Operation   string
	Target      string
	DryRun      bool
	StartedAt   time.Time
	FinishedAt  time.Time
	Actions     int
	Temporaries int
	Failures    int
	Interrupted bool
	Steps       []ActionRecord // Populated by GetRun only
}

// ActionRecord is one scheduled rename and what happened to it.
type ActionRecord struct {
	Seq    int
	Src    string
	Dest   string
	Status string // models.Outcome* or "pending" when never attempted
	Error  string
}

// StatusPending marks an action that was scheduled but never attempted.
const StatusPending = "pending"

// NewRun starts a run record with a fresh identifier.
func NewRun(operation, target string, dryRun bool) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Operation: operation,
		Target:    target,
		DryRun:    dryRun,
		StartedAt: time.Now(),
	}
}

// SetPlan records the full scheduled plan. Every step starts out pending.
func (r *Run) SetPlan(plan []models.RenameAction, temporaries int) {
	r.Actions = len(plan)
	r.Temporaries = temporaries
	r.Steps = make([]ActionRecord, len(plan))
	for i, a := range plan {
		r.Steps[i] = ActionRecord{Seq: i + 1, Src: a.Src, Dest: a.Dest, Status: StatusPending}
	}
}

// SetOutcomes fills in step statuses from executor outcomes.
func (r *Run) SetOutcomes(outcomes []models.Outcome) {
	r.Failures = 0
	for _, o := range outcomes {
		if o.Seq < 1 || o.Seq > len(r.Steps) {
			continue
		}
		step := &r.Steps[o.Seq-1]
		step.Status = o.Status
		if o.Err != nil {
			step.Error = o.Err.Error()
		}
		if o.Failed() {
			r.Failures++
		}
	}
}

// Pending returns the steps that were never attempted.
func (r *Run) Pending() []ActionRecord {
	var pending []ActionRecord
	for _, s := range r.Steps {
		if s.Status == StatusPending {
			pending = append(pending, s)
		}
	}
	return pending
}

// ListFilter narrows ListRuns. Zero values mean no restriction.
type ListFilter struct {
	// Target matches runs on this exact path or on any path below it
	Target string
	Limit  int
}

// Store manages the SQLite run journal.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the journal at dbPath and applies
// pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Each connection to :memory: is its own database
	if dbPath == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return store, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun writes the run and its steps in one transaction. Recording the
// same run twice replaces the earlier record.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_actions WHERE run_id = ?`, run.ID); err != nil {
		return fmt.Errorf("clear run actions: %w", err)
	}

	query := `INSERT OR REPLACE INTO runs
		(id, operation, target, dry_run, started_at, finished_at, actions, temporaries, failures, interrupted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, query,
		run.ID,
		run.Operation,
		run.Target,
		run.DryRun,
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
		run.Actions,
		run.Temporaries,
		run.Failures,
		run.Interrupted,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_actions (run_id, seq, src, dest, status, error) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare action insert: %w", err)
	}
	defer stmt.Close()

	for _, step := range run.Steps {
		if _, err := stmt.ExecContext(ctx, run.ID, step.Seq, step.Src, step.Dest, step.Status, step.Error); err != nil {
			return fmt.Errorf("insert action %d: %w", step.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = `id, operation, target, dry_run, started_at, finished_at, actions, temporaries, failures, interrupted`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	run := &Run{}
	var finished sql.NullTime
	err := row.Scan(
		&run.ID,
		&run.Operation,
		&run.Target,
		&run.DryRun,
		&run.StartedAt,
		&finished,
		&run.Actions,
		&run.Temporaries,
		&run.Failures,
		&run.Interrupted,
	)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	return run, nil
}

// ListRuns returns runs newest first, without their steps.
func (s *Store) ListRuns(ctx context.Context, filter ListFilter) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if filter.Target != "" {
		prefix := strings.TrimSuffix(filter.Target, "/") + "/"
		query += ` WHERE target = ? OR substr(target, 1, ?) = ?`
		args = append(args, filter.Target, len(prefix), prefix)
	}
	query += ` ORDER BY started_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun returns one run with its steps. id may be a unique prefix of the
// full identifier.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2`,
		id, len(id), id)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		matches = append(matches, run)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}

	run := matches[0]
	steps, err := s.getSteps(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Steps = steps
	return run, nil
}

func (s *Store) getSteps(ctx context.Context, runID string) ([]ActionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, src, dest, status, error FROM run_actions WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run actions: %w", err)
	}
	defer rows.Close()

	var steps []ActionRecord
	for rows.Next() {
		var step ActionRecord
		var errText sql.NullString
		if err := rows.Scan(&step.Seq, &step.Src, &step.Dest, &step.Status, &errText); err != nil {
			return nil, fmt.Errorf("scan action row: %w", err)
		}
		step.Error = errText.String
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}

	return steps, nil
}
