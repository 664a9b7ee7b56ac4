package store

import "database/sql"

// migrate creates missing tables. All DDL is idempotent; there is no
// versioned migration history for a single-user local database.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			problem_id TEXT NOT NULL,
			phases TEXT NOT NULL,
			initialized INTEGER NOT NULL DEFAULT 0,
			elapsed_seconds INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			completed_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_problem
			ON sessions (problem_id, completed_at)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions (id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			flagged INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			UNIQUE (session_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS llm_request_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL,
			output_tokens INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
