// internal/clue/definition.go
//
// Author-facing game definition.
// Defines:
//   - Definition: clue, answer and the optional hint fields.
//   - Validate: the single validity rule (clue and answer non-blank).
//
// Absent vs. empty:
//   - Optional strings use "" for absent; Indicators uses nil.
//   - Blank (whitespace-only) optional values are treated as absent by the codec.

package clue

import (
	"strings"
	"unicode/utf8"
)

// Definition is one authored puzzle. It is immutable once encoded.
// Encode drops blank optional fields and blank entries of Indicators, so
// {Indicators: ["x", " "]} decodes back as ["x"].
type Definition struct {
	Clue       string   `json:"clue"`
	Answer     string   `json:"answer"`
	Definition string   `json:"definition,omitempty"`
	Fodder     string   `json:"fodder,omitempty"`
	Indicators []string `json:"indicators,omitempty"`
}

// Validate reports a *ValidationError when Clue or Answer is blank or any
// field is not valid UTF-8.
func (d Definition) Validate() error {
	if blank(d.Clue) {
		return &ValidationError{Field: "clue"}
	}
	if blank(d.Answer) {
		return &ValidationError{Field: "answer"}
	}
	for _, f := range []struct{ name, v string }{
		{"clue", d.Clue},
		{"answer", d.Answer},
		{"definition", d.Definition},
		{"fodder", d.Fodder},
	} {
		if !utf8.ValidString(f.v) {
			return &ValidationError{Field: f.name, Reason: "is not valid UTF-8"}
		}
	}
	for _, s := range d.Indicators {
		if !utf8.ValidString(s) {
			return &ValidationError{Field: "indicators", Reason: "is not valid UTF-8"}
		}
	}
	return nil
}

// HasDefinition reports whether the definition hint was supplied.
func (d Definition) HasDefinition() bool { return !blank(d.Definition) }

// HasFodder reports whether the fodder hint was supplied.
func (d Definition) HasFodder() bool { return !blank(d.Fodder) }

// HasIndicators reports whether at least one non-blank indicator was supplied.
func (d Definition) HasIndicators() bool {
	for _, s := range d.Indicators {
		if !blank(s) {
			return true
		}
	}
	return false
}

// compact returns a copy with blank optional fields removed, ready for serialization.
func (d Definition) compact() Definition {
	out := Definition{Clue: d.Clue, Answer: d.Answer}
	if d.HasDefinition() {
		out.Definition = d.Definition
	}
	if d.HasFodder() {
		out.Fodder = d.Fodder
	}
	for _, s := range d.Indicators {
		if !blank(s) {
			out.Indicators = append(out.Indicators, s)
		}
	}
	return out
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
