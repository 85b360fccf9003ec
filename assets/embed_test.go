package assets

import (
	"strings"
	"testing"

	"github.com/robalobadob/cluegame/internal/clue"
)

func TestExamplesEncode(t *testing.T) {
	ex, err := Examples()
	if err != nil {
		t.Fatalf("Examples: %v", err)
	}
	if len(ex) == 0 {
		t.Fatal("no examples embedded")
	}
	for _, e := range ex {
		if e.Title == "" {
			t.Errorf("example without title: %+v", e)
		}
		if _, err := clue.Encode(e.Definition); err != nil {
			t.Errorf("example %q does not encode: %v", e.Title, err)
		}
	}
}

func TestMigrations(t *testing.T) {
	m, err := Migrations()
	if err != nil {
		t.Fatalf("Migrations: %v", err)
	}
	if len(m) == 0 || !strings.HasPrefix(m[0].Name, "sql/") {
		t.Fatalf("unexpected migrations %v", m)
	}
	if !strings.Contains(m[0].SQL, "game_states") {
		t.Errorf("first migration should create game_states")
	}
}
