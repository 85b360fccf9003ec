package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/cluegame/assets"
	"github.com/robalobadob/cluegame/internal/game"
)

func openTestSQLite(t *testing.T) Store {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	migs, err := assets.Migrations()
	if err != nil {
		t.Fatalf("migrations: %v", err)
	}
	for _, m := range migs {
		if _, err := db.Exec(m.SQL); err != nil {
			t.Fatalf("apply %s: %v", m.Name, err)
		}
	}
	s := NewSQLite(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func implementations(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openTestSQLite(t),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for name, s := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "sess", "key"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get on empty store err = %v, want ErrNotFound", err)
			}

			st := &game.State{
				Attempts:      []game.Attempt{{Guess: "wick", Correct: false, Time: when}},
				RevealedHints: []game.HintKind{game.HintFodder},
			}
			if err := s.Put(ctx, "sess", "key", st); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := s.Get(ctx, "sess", "key")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.AttemptCount() != 1 || got.Attempts[0].Guess != "wick" || !got.Attempts[0].Time.Equal(when) {
				t.Errorf("unexpected attempts %+v", got.Attempts)
			}
			if !got.HintRevealed(game.HintFodder) || got.Solved {
				t.Errorf("unexpected state %+v", got)
			}

			st.Solved = true
			if err := s.Put(ctx, "sess", "key", st); err != nil {
				t.Fatalf("Put (replace): %v", err)
			}
			got, _ = s.Get(ctx, "sess", "key")
			if !got.Solved {
				t.Error("replace did not persist")
			}

			if _, err := s.Get(ctx, "other", "key"); !errors.Is(err, ErrNotFound) {
				t.Errorf("sessions are not isolated: %v", err)
			}
			if _, err := s.Get(ctx, "sess", "other"); !errors.Is(err, ErrNotFound) {
				t.Errorf("game keys are not isolated: %v", err)
			}

			if err := s.Delete(ctx, "sess", "key"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, "sess", "key"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete err = %v", err)
			}
			if err := s.Delete(ctx, "sess", "key"); err != nil {
				t.Errorf("Delete of absent record: %v", err)
			}
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	st := &game.State{Attempts: []game.Attempt{{Guess: "a"}}}
	_ = s.Put(ctx, "s", "k", st)

	st.Attempts[0].Guess = "mutated"
	got, _ := s.Get(ctx, "s", "k")
	if got.Attempts[0].Guess != "a" {
		t.Error("Put aliased the caller's slice")
	}

	got.Attempts = append(got.Attempts, game.Attempt{Guess: "b"})
	again, _ := s.Get(ctx, "s", "k")
	if again.AttemptCount() != 1 {
		t.Error("Get returned the stored slice")
	}
}
