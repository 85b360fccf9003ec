// internal/game/engine.go
//
// State machine for one player's progress against one clue.
// Responsibilities:
//   - Apply guesses (trim, compare case-insensitively, append attempt).
//   - Reveal hints the author actually supplied (idempotent).
//   - Reveal the answer (terminal, no attempt recorded).
//   - Derived queries used by the presentation layer.
//
// State transitions:
//   fresh → in_progress → solved_by_guess | solved_by_reveal
//   Reset lives in the tracker: it deletes the stored record.

package game

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/cluegame/internal/clue"
)

// SubmitGuess records guess against def.
// Solved games are left untouched and report false.
// A blank guess is rejected with ErrEmptyGuess and not recorded.
func (s *State) SubmitGuess(def clue.Definition, guess string, now time.Time) (bool, error) {
	if s.Solved {
		return false, nil
	}
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return false, ErrEmptyGuess
	}
	correct := Matches(def.Answer, guess)
	s.Attempts = append(s.Attempts, Attempt{Guess: guess, Correct: correct, Time: now})
	if correct {
		s.Solved, s.SolvedByReveal = true, false
	}
	return correct, nil
}

// RevealHint marks kind as revealed. The kind must be present in def.
func (s *State) RevealHint(def clue.Definition, kind HintKind) error {
	if !HasHint(def, kind) {
		return ErrUnknownHintKind
	}
	if s.HintRevealed(kind) {
		return nil
	}
	s.RevealedHints = append(s.RevealedHints, kind)
	return nil
}

// RevealAnswer ends an unsolved game as solved-by-reveal.
func (s *State) RevealAnswer() {
	if s.Solved {
		return
	}
	s.Solved, s.SolvedByReveal = true, true
}

// HintRevealed reports whether kind has been revealed.
func (s *State) HintRevealed(kind HintKind) bool {
	for _, k := range s.RevealedHints {
		if k == kind {
			return true
		}
	}
	return false
}

func (s *State) AttemptCount() int       { return len(s.Attempts) }
func (s *State) IsSolved() bool          { return s.Solved }
func (s *State) WasSolvedByReveal() bool { return s.Solved && s.SolvedByReveal }
func (s *State) RevealedHintCount() int  { return len(s.RevealedHints) }

// Phase derives the lifecycle phase.
func (s *State) Phase() Phase {
	switch {
	case s.Solved && s.SolvedByReveal:
		return PhaseSolvedByReveal
	case s.Solved:
		return PhaseSolvedByGuess
	case len(s.Attempts) > 0:
		return PhaseInProgress
	}
	return PhaseFresh
}

// HasHint reports whether def supplies the hint kind.
func HasHint(def clue.Definition, kind HintKind) bool {
	switch kind {
	case HintDefinition:
		return def.HasDefinition()
	case HintFodder:
		return def.HasFodder()
	case HintIndicators:
		return def.HasIndicators()
	}
	return false
}

// AvailableHints lists the kinds def supplies, in display order.
func AvailableHints(def clue.Definition) []HintKind {
	out := make([]HintKind, 0, len(HintKinds))
	for _, k := range HintKinds {
		if HasHint(def, k) {
			out = append(out, k)
		}
	}
	return out
}

// Matches compares a guess with the answer: whitespace-trimmed,
// Unicode case-folded and NFC-normalised.
func Matches(answer, guess string) bool {
	return canonical(answer) == canonical(guess)
}

func canonical(s string) string {
	// Casers keep state; one per call.
	return norm.NFC.String(cases.Fold().String(strings.TrimSpace(s)))
}
