// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used when durability is not required (default) and in tests.
//
// Characteristics:
//   - Records keyed by session ID, then game key.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get/Put copy the state so callers never alias stored slices.
//   - State is lost when the process restarts.
//   - Nothing is evicted; long-running production servers should use STORE=sqlite.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/cluegame/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                     // guards sessions
	sessions map[string]map[string]game.State // sessionID -> gameKey -> state
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]map[string]game.State)}
}

// Get returns a copy of the stored state or ErrNotFound.
func (m *memory) Get(ctx context.Context, sessionID, gameKey string) (*game.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.sessions[sessionID][gameKey]; ok {
		c := clone(st)
		return &c, nil
	}
	return nil, ErrNotFound
}

// Put stores a copy of st.
func (m *memory) Put(ctx context.Context, sessionID, gameKey string, st *game.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	games, ok := m.sessions[sessionID]
	if !ok {
		games = make(map[string]game.State)
		m.sessions[sessionID] = games
	}
	games[gameKey] = clone(*st)
	return nil
}

// Delete removes the record; deleting an absent record is not an error.
func (m *memory) Delete(ctx context.Context, sessionID, gameKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	games, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(games, gameKey)
	if len(games) == 0 {
		delete(m.sessions, sessionID)
	}
	return nil
}

// Close is a no-op for the memory store.
func (m *memory) Close() error { return nil }

func clone(st game.State) game.State {
	out := st
	out.Attempts = append([]game.Attempt(nil), st.Attempts...)
	out.RevealedHints = append([]game.HintKind(nil), st.RevealedHints...)
	return out
}
