// internal/game/types.go
//
// Core type definitions for the clue game state machine.
// Defines:
//   - HintKind: the optional clue-assist categories a player may reveal.
//   - Attempt: one submitted guess (append-only).
//   - State: one player's progress against one game token.
//   - Phase: coarse state derived from State.

package game

import (
	"errors"
	"time"
)

// HintKind names an optional hint category.
type HintKind string

const (
	HintDefinition HintKind = "definition"
	HintFodder     HintKind = "fodder"
	HintIndicators HintKind = "indicators"
)

// HintKinds lists every kind in display order.
var HintKinds = []HintKind{HintDefinition, HintFodder, HintIndicators}

// ParseHintKind converts a wire name to a HintKind.
func ParseHintKind(s string) (HintKind, error) {
	for _, k := range HintKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrUnknownHintKind
}

var (
	ErrUnknownHintKind = errors.New("unknown hint kind")
	ErrEmptyGuess      = errors.New("empty guess")
	ErrUnknownAction   = errors.New("unknown action")
)

// Attempt is one recorded guess. Never mutated once appended.
type Attempt struct {
	Guess   string    `json:"guess"`
	Correct bool      `json:"correct"`
	Time    time.Time `json:"time"`
}

// Clock renders the attempt's time of day.
func (a Attempt) Clock() string { return a.Time.Format("15:04:05") }

// State is the per-session, per-game record. The zero value is a fresh game.
type State struct {
	Attempts       []Attempt  `json:"attempts"`
	Solved         bool       `json:"solved"`
	SolvedByReveal bool       `json:"solvedByReveal"`
	RevealedHints  []HintKind `json:"revealedHints"`
}

// Phase is the coarse position of a State in its lifecycle.
type Phase string

const (
	PhaseFresh          Phase = "fresh"
	PhaseInProgress     Phase = "in_progress"
	PhaseSolvedByGuess  Phase = "solved_by_guess"
	PhaseSolvedByReveal Phase = "solved_by_reveal"
)

// Terminal reports whether no further guesses are accepted.
func (p Phase) Terminal() bool {
	return p == PhaseSolvedByGuess || p == PhaseSolvedByReveal
}
