package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/algority/algority/internal/phase"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("store: not found")

// SessionRecord is a persisted coaching session.
type SessionRecord struct {
	ID             string
	ProblemID      string
	Phases         []phase.Phase
	Initialized    bool
	ElapsedSeconds int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// Completed reports whether the session has finished all phases.
func (r *SessionRecord) Completed() bool {
	return r.CompletedAt != nil
}

// SessionRepo manages coaching session rows.
type SessionRepo interface {
	// Create inserts a new session with the given initial phases.
	Create(ctx context.Context, problemID string, phases []phase.Phase) (*SessionRecord, error)

	// Get returns the session with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*SessionRecord, error)

	// Incomplete returns the most recent unfinished session for the
	// problem, or nil if there is none.
	Incomplete(ctx context.Context, problemID string) (*SessionRecord, error)

	// UpdatePhases replaces the stored phase state.
	UpdatePhases(ctx context.Context, id string, phases []phase.Phase) error

	// MarkInitialized records that the opening messages have been
	// appended, so a resumed session does not repeat them.
	MarkInitialized(ctx context.Context, id string) error

	// AddElapsed adds wall-clock time spent in the session.
	AddElapsed(ctx context.Context, id string, d time.Duration) error

	// Complete marks the session finished.
	Complete(ctx context.Context, id string) error

	// CompletedByProblem returns the number of completed sessions per
	// problem ID.
	CompletedByProblem(ctx context.Context) (map[string]int, error)

	// ListCompleted returns every completed session, oldest first.
	ListCompleted(ctx context.Context) ([]*SessionRecord, error)

	// DeleteAll removes every session and, via cascade, its messages.
	DeleteAll(ctx context.Context) error
}

type sessionRepo struct {
	db *sql.DB
}

const timeLayout = time.RFC3339Nano

func (r *sessionRepo) Create(ctx context.Context, problemID string, phases []phase.Phase) (*SessionRecord, error) {
	phasesJSON, err := json.Marshal(phases)
	if err != nil {
		return nil, fmt.Errorf("marshal phases: %w", err)
	}

	now := time.Now().UTC()
	rec := &SessionRecord{
		ID:        uuid.NewString(),
		ProblemID: problemID,
		Phases:    phases,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, problem_id, phases, initialized, elapsed_seconds, created_at, updated_at)
		 VALUES (?, ?, ?, 0, 0, ?, ?)`,
		rec.ID, rec.ProblemID, string(phasesJSON),
		now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return rec, nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, problem_id, phases, initialized, elapsed_seconds, created_at, updated_at, completed_at
		 FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

func (r *sessionRepo) Incomplete(ctx context.Context, problemID string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, problem_id, phases, initialized, elapsed_seconds, created_at, updated_at, completed_at
		 FROM sessions
		 WHERE problem_id = ? AND completed_at IS NULL
		 ORDER BY created_at DESC LIMIT 1`, problemID)
	rec, err := scanSession(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

func (r *sessionRepo) UpdatePhases(ctx context.Context, id string, phases []phase.Phase) error {
	phasesJSON, err := json.Marshal(phases)
	if err != nil {
		return fmt.Errorf("marshal phases: %w", err)
	}
	return r.update(ctx, id,
		`UPDATE sessions SET phases = ?, updated_at = ? WHERE id = ?`,
		string(phasesJSON), time.Now().UTC().Format(timeLayout), id)
}

func (r *sessionRepo) MarkInitialized(ctx context.Context, id string) error {
	return r.update(ctx, id,
		`UPDATE sessions SET initialized = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(timeLayout), id)
}

func (r *sessionRepo) AddElapsed(ctx context.Context, id string, d time.Duration) error {
	secs := int64(d.Seconds())
	if secs <= 0 {
		return nil
	}
	return r.update(ctx, id,
		`UPDATE sessions SET elapsed_seconds = elapsed_seconds + ?, updated_at = ? WHERE id = ?`,
		secs, time.Now().UTC().Format(timeLayout), id)
}

func (r *sessionRepo) Complete(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(timeLayout)
	return r.update(ctx, id,
		`UPDATE sessions SET completed_at = ?, updated_at = ? WHERE id = ?`,
		now, now, id)
}

func (r *sessionRepo) CompletedByProblem(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT problem_id, COUNT(*) FROM sessions
		 WHERE completed_at IS NOT NULL GROUP BY problem_id`)
	if err != nil {
		return nil, fmt.Errorf("query completed sessions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var problemID string
		var n int
		if err := rows.Scan(&problemID, &n); err != nil {
			return nil, fmt.Errorf("scan completed count: %w", err)
		}
		out[problemID] = n
	}
	return out, rows.Err()
}

func (r *sessionRepo) ListCompleted(ctx context.Context) ([]*SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, problem_id, phases, initialized, elapsed_seconds, created_at, updated_at, completed_at
		 FROM sessions WHERE completed_at IS NOT NULL ORDER BY completed_at`)
	if err != nil {
		return nil, fmt.Errorf("query completed sessions: %w", err)
	}
	defer rows.Close()

	var out []*SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *sessionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}

func (r *sessionRepo) update(ctx context.Context, id, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var rec SessionRecord
	var phasesJSON, createdAt, updatedAt string
	var initialized int
	var completedAt sql.NullString

	err := row.Scan(&rec.ID, &rec.ProblemID, &phasesJSON, &initialized,
		&rec.ElapsedSeconds, &createdAt, &updatedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if err := json.Unmarshal([]byte(phasesJSON), &rec.Phases); err != nil {
		return nil, fmt.Errorf("unmarshal phases: %w", err)
	}
	rec.Initialized = initialized != 0

	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	if completedAt.Valid {
		t, err := time.Parse(timeLayout, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		rec.CompletedAt = &t
	}
	return &rec, nil
}
