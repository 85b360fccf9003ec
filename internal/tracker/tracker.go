// internal/tracker/tracker.go
//
// Session game tracker.
// Responsibilities:
//   - Gate every request on the token codec (decode failures never reach the store).
//   - Derive the game key and load the per-session state (absent = fresh game).
//   - Dispatch one game.Action as a single read-modify-write of one record.
//   - Persist the result (Reset deletes the record).
//
// Concurrency:
//   - Each (session, game key) record is updated under one of a fixed set of
//     striped mutexes, picked by xxhash of the record key.

package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cluegame/internal/clue"
	"github.com/robalobadob/cluegame/internal/game"
	"github.com/robalobadob/cluegame/internal/store"
)

const lockStripes = 64

// Snapshot is a read-only view of one game in one session.
type Snapshot struct {
	Key        string
	Definition clue.Definition
	State      game.State
}

// Hints lists the hint kinds the author supplied.
func (s Snapshot) Hints() []game.HintKind { return game.AvailableHints(s.Definition) }

// Outcome is the result of Apply. Correct is only meaningful for SubmitGuess.
type Outcome struct {
	Snapshot
	Correct bool
}

// Tracker applies player actions against an injected store.
type Tracker struct {
	store store.Store
	now   func() time.Time
	locks [lockStripes]sync.Mutex
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the attempt timestamp source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New constructs a Tracker over st.
func New(st store.Store, opts ...Option) *Tracker {
	t := &Tracker{store: st, now: time.Now}
	for _, o := range opts {
		o(t)
	}
	return t
}

// View returns the definition and current state without changing anything.
func (t *Tracker) View(ctx context.Context, sessionID, token string) (Snapshot, error) {
	def, key, err := open(token)
	if err != nil {
		return Snapshot{}, err
	}
	st, err := t.load(ctx, sessionID, key)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Key: key, Definition: def, State: st}, nil
}

// Apply runs one action for sessionID against the game named by token.
// Decode errors are *clue.DecodeError; rejected actions return game errors
// (ErrEmptyGuess, ErrUnknownHintKind) and leave the record untouched.
func (t *Tracker) Apply(ctx context.Context, sessionID, token string, a game.Action) (Outcome, error) {
	def, key, err := open(token)
	if err != nil {
		return Outcome{}, err
	}

	mu := t.lockFor(sessionID, key)
	mu.Lock()
	defer mu.Unlock()

	if _, ok := a.(game.Reset); ok {
		if err := t.store.Delete(ctx, sessionID, key); err != nil {
			return Outcome{}, fmt.Errorf("reset game: %w", err)
		}
		log.Debug().Str("game", key).Msg("game reset")
		return Outcome{Snapshot: Snapshot{Key: key, Definition: def}}, nil
	}

	st, err := t.load(ctx, sessionID, key)
	if err != nil {
		return Outcome{}, err
	}
	correct, err := st.Apply(def, a, t.now())
	if err != nil {
		return Outcome{}, err
	}
	if err := t.store.Put(ctx, sessionID, key, &st); err != nil {
		return Outcome{}, fmt.Errorf("save game state: %w", err)
	}

	log.Debug().
		Str("game", key).
		Str("phase", string(st.Phase())).
		Int("attempts", st.AttemptCount()).
		Msg("action applied")

	return Outcome{Snapshot: Snapshot{Key: key, Definition: def, State: st}, Correct: correct}, nil
}

// open runs the codec gate.
func open(token string) (clue.Definition, string, error) {
	def, err := clue.Decode(token)
	if err != nil {
		return clue.Definition{}, "", err
	}
	return def, clue.Key(token), nil
}

// load returns the stored state, or a fresh one if absent.
func (t *Tracker) load(ctx context.Context, sessionID, key string) (game.State, error) {
	st, err := t.store.Get(ctx, sessionID, key)
	if errors.Is(err, store.ErrNotFound) {
		return game.State{}, nil
	}
	if err != nil {
		return game.State{}, fmt.Errorf("load game state: %w", err)
	}
	return *st, nil
}

func (t *Tracker) lockFor(sessionID, key string) *sync.Mutex {
	h := xxhash.Sum64String(sessionID + "|" + key)
	return &t.locks[h%lockStripes]
}
