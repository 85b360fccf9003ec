// Package assets embeds the example games and the SQL migrations.
package assets

import (
	"embed"
	"encoding/json"
	"io/fs"
	"sort"

	"github.com/robalobadob/cluegame/internal/clue"
)

//go:embed examples.json sql/*.sql
var FS embed.FS

// Example is one built-in game offered to new players and authors.
type Example struct {
	Title      string          `json:"title"`
	Definition clue.Definition `json:"definition"`
}

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Examples returns the built-in example games in file order.
func Examples() ([]Example, error) {
	b, err := FS.ReadFile("examples.json")
	if err != nil {
		return nil, err
	}
	var out []Example
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Migrations returns the embedded *.sql files in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := FS.ReadFile(n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: n, SQL: string(b)})
	}
	return out, nil
}
