// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Used when STORE=sqlite so sessions survive restarts.
//
// Schema (assets/sql/001_game_states.sql):
//   game_states(session_id, game_key, state_json, updated_at)
//   PRIMARY KEY (session_id, game_key)
//
// Notes:
//   - The *sql.DB is opened and migrated by the caller (see db.go).
//   - State is stored as JSON so the logical shape stays the single source of truth.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/cluegame/internal/game"
)

// SQLite is a Store backed by the game_states table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an opened, migrated database.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

// Get loads one record or returns ErrNotFound.
func (s *SQLite) Get(ctx context.Context, sessionID, gameKey string) (*game.State, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT state_json FROM game_states WHERE session_id=? AND game_key=?`,
		sessionID, gameKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query game state: %w", err)
	}
	var st game.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}
	return &st, nil
}

// Put upserts one record.
func (s *SQLite) Put(ctx context.Context, sessionID, gameKey string, st *game.State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO game_states (session_id, game_key, state_json, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(session_id, game_key)
        DO UPDATE SET state_json=excluded.state_json, updated_at=excluded.updated_at`,
		sessionID, gameKey, string(b), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert game state: %w", err)
	}
	return nil
}

// Delete removes one record.
func (s *SQLite) Delete(ctx context.Context, sessionID, gameKey string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM game_states WHERE session_id=? AND game_key=?`, sessionID, gameKey,
	); err != nil {
		return fmt.Errorf("delete game state: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }
