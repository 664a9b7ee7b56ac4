package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/algority/algority/internal/llm"
)

// UsageTotals aggregates model usage for the stats view.
type UsageTotals struct {
	Calls        int
	Failures     int
	InputTokens  int64
	OutputTokens int64
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	llm.AuditSink

	// UsageTotals sums recorded model calls.
	UsageTotals(ctx context.Context) (UsageTotals, error)
}

// eventRepo implements EventRepo backed by raw SQL and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// RecordCall implements llm.AuditSink.
func (r *eventRepo) RecordCall(ctx context.Context, rec llm.CallRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	success := 0
	if rec.Success {
		success = 1
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events
		 (sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, rec.Provider, rec.Model, rec.Purpose,
		rec.InputTokens, rec.OutputTokens, rec.LatencyMs,
		success, rec.ErrorMessage, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) UsageTotals(ctx context.Context) (UsageTotals, error) {
	var t UsageTotals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(input_tokens), 0),
		        COALESCE(SUM(output_tokens), 0)
		 FROM llm_request_events`,
	).Scan(&t.Calls, &t.Failures, &t.InputTokens, &t.OutputTokens)
	if err != nil {
		return UsageTotals{}, fmt.Errorf("sum usage: %w", err)
	}
	return t, nil
}
