// Package store persists per-session game state.
//
// One record per (session ID, game key). Implementations: memory (this
// package, default) and SQLite (sqlite.go).
package store

import (
	"context"
	"errors"

	"github.com/robalobadob/cluegame/internal/game"
)

// ErrNotFound is returned by Get when no record exists.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game state.
type Store interface {
	// Get retrieves the state for one game in one session.
	// Returns ErrNotFound if the game has not been played in the session.
	Get(ctx context.Context, sessionID, gameKey string) (*game.State, error)

	// Put creates or replaces the record.
	Put(ctx context.Context, sessionID, gameKey string, st *game.State) error

	// Delete removes the record. Missing records are not an error.
	Delete(ctx context.Context, sessionID, gameKey string) error

	// Close releases underlying resources.
	Close() error
}
