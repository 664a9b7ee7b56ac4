package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/algority/algority/internal/dialogue"
)

// MessageRepo persists the append-only message log per session.
type MessageRepo interface {
	// Append stores one message. The (session, seq) pair is unique, so
	// replaying an append fails loudly instead of corrupting order.
	Append(ctx context.Context, sessionID string, m dialogue.Message) error

	// List returns the session's messages ordered by seq.
	List(ctx context.Context, sessionID string) ([]dialogue.Message, error)

	// SetFlagged updates the persisted flag bit for one message.
	SetFlagged(ctx context.Context, sessionID, messageID string, flagged bool) error
}

type messageRepo struct {
	db *sql.DB
}

func (r *messageRepo) Append(ctx context.Context, sessionID string, m dialogue.Message) error {
	payload, err := dialogue.Encode(m)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	flagged := 0
	if m.Flagged {
		flagged = 1
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, seq, flagged, payload) VALUES (?, ?, ?, ?, ?)`,
		m.ID, sessionID, m.Seq, flagged, string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *messageRepo) List(ctx context.Context, sessionID string) ([]dialogue.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT flagged, payload FROM messages WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []dialogue.Message
	for rows.Next() {
		var flagged int
		var payload string
		if err := rows.Scan(&flagged, &payload); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m, err := dialogue.Decode([]byte(payload))
		if err != nil {
			return nil, err
		}
		// The column is authoritative: flagging updates it without
		// rewriting the payload.
		m.Flagged = flagged != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *messageRepo) SetFlagged(ctx context.Context, sessionID, messageID string, flagged bool) error {
	val := 0
	if flagged {
		val = 1
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE messages SET flagged = ? WHERE session_id = ? AND id = ?`,
		val, sessionID, messageID)
	if err != nil {
		return fmt.Errorf("update message flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("message %s: %w", messageID, ErrNotFound)
	}
	return nil
}
