package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/agentwire/relay/core/protocol"
)

// SQLiteStore persists session history in a SQLite database, so
// conversations survive process restarts. Turn order is the rowid insertion
// order within a session.
type SQLiteStore struct {
	db       *sql.DB
	maxTurns int
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path,
// ensuring the parent directory exists, and initializes the turns table.
// When maxTurns is greater than zero, each append drops the oldest turns
// beyond the cap.
func NewSQLiteStore(path string, maxTurns int) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open db at %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db at %s: %w", path, err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (unixepoch())
		);
		CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, id);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return &SQLiteStore{db: db, maxTurns: maxTurns}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, sessionID string, msgs ...protocol.Message) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin append: %w", err)
	}
	defer tx.Rollback()

	for _, msg := range msgs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO turns (session_id, role, content) VALUES (?, ?, ?)`,
			sessionID, string(msg.Role), msg.Content,
		); err != nil {
			return fmt.Errorf("failed to append turn: %w", err)
		}
	}

	if s.maxTurns > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM turns WHERE session_id = ? AND id NOT IN (
				SELECT id FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?
			)`,
			sessionID, sessionID, s.maxTurns,
		); err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) History(ctx context.Context, sessionID string) ([]protocol.Message, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM turns WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var msgs []protocol.Message
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		msgs = append(msgs, protocol.Message{Role: protocol.Role(role), Content: content})
	}
	return msgs, rows.Err()
}

func (s *SQLiteStore) Len(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, ErrEmptySessionID
	}

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM turns WHERE session_id = ?`, sessionID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return n, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
