package game

import (
	"time"

	"github.com/robalobadob/cluegame/internal/clue"
)

// Action is a player action against one game. The set is closed:
// SubmitGuess, RevealHint, RevealAnswer and Reset.
type Action interface {
	action()
}

type (
	SubmitGuess  struct{ Text string }
	RevealHint   struct{ Kind HintKind }
	RevealAnswer struct{}
	Reset        struct{}
)

func (SubmitGuess) action()  {}
func (RevealHint) action()   {}
func (RevealAnswer) action() {}
func (Reset) action()        {}

// ParseAction builds an Action from its wire name and argument
// ("guess" takes the guess text, "hint" takes the hint kind). Whether the
// definition actually carries that hint is checked on Apply.
func ParseAction(name, arg string) (Action, error) {
	switch name {
	case "guess":
		return SubmitGuess{Text: arg}, nil
	case "hint":
		k, err := ParseHintKind(arg)
		if err != nil {
			return nil, err
		}
		return RevealHint{Kind: k}, nil
	case "reveal":
		return RevealAnswer{}, nil
	case "reset":
		return Reset{}, nil
	}
	return nil, ErrUnknownAction
}

// Apply dispatches a to s. Reset clears s in place; callers that persist
// state should delete the record instead. The bool is the guess result and
// is false for every other action.
func (s *State) Apply(def clue.Definition, a Action, now time.Time) (bool, error) {
	switch a := a.(type) {
	case SubmitGuess:
		return s.SubmitGuess(def, a.Text, now)
	case RevealHint:
		return false, s.RevealHint(def, a.Kind)
	case RevealAnswer:
		s.RevealAnswer()
		return false, nil
	case Reset:
		*s = State{}
		return false, nil
	}
	return false, ErrUnknownAction
}
