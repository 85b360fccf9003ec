// internal/httpserver/routes_play.go
//
// HTTP routes for playing a game. The token travels in the `data` query
// parameter on every request; the session comes from the cookie.
//   - GET  /play?data=           → current view (no state change)
//   - POST /play/guess?data=     → {"guess": "..."}; view + correct
//   - POST /play/hint?data=      → {"kind": "definition|fodder|indicators"}
//   - POST /play/reveal?data=    → reveal the answer
//   - POST /play/reset?data=     → forget this game for this session
//
// The answer is only included in the view once the game is solved.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/cluegame/internal/game"
	"github.com/robalobadob/cluegame/internal/tracker"
)

// mountPlay registers all /play routes.
func (s *Server) mountPlay(r chi.Router) {
	r.Route("/play", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Post("/{action}", s.handleAction)
	})
}

// actionReq carries the optional argument of an action.
type actionReq struct {
	Guess string `json:"guess"`
	Kind  string `json:"kind"`
}

type attemptRes struct {
	Guess   string `json:"guess"`
	Correct bool   `json:"correct"`
	Time    string `json:"time"` // HH:MM:SS
}

type hintRes struct {
	Kind     game.HintKind `json:"kind"`
	Revealed bool          `json:"revealed"`
	Text     string        `json:"text,omitempty"`
	Items    []string      `json:"items,omitempty"` // indicators
}

// playRes is the player-facing view of one game.
type playRes struct {
	Key               string       `json:"key"`
	Clue              string       `json:"clue"`
	Phase             game.Phase   `json:"phase"`
	Solved            bool         `json:"solved"`
	SolvedByReveal    bool         `json:"solvedByReveal"`
	AttemptCount      int          `json:"attemptCount"`
	RevealedHintCount int          `json:"revealedHintCount"`
	Attempts          []attemptRes `json:"attempts"`
	Hints             []hintRes    `json:"hints"`
	Answer            string       `json:"answer,omitempty"`
	Correct           *bool        `json:"correct,omitempty"`
}

// handleView returns the current state of the game for this session.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	tok, ok := tokenParam(w, r)
	if !ok {
		return
	}
	sid := s.sessions.ensure(w, r)
	snap, err := s.tracker.View(r.Context(), sid, tok)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(snap))
}

// handleAction applies one of guess|hint|reveal|reset.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	tok, ok := tokenParam(w, r)
	if !ok {
		return
	}
	var req actionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Message: err.Error()})
		return
	}

	name := chi.URLParam(r, "action")
	arg := req.Guess
	if name == "hint" {
		arg = req.Kind
	}
	a, err := game.ParseAction(name, arg)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sid := s.sessions.ensure(w, r)
	out, err := s.tracker.Apply(r.Context(), sid, tok, a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res := viewOf(out.Snapshot)
	if _, isGuess := a.(game.SubmitGuess); isGuess {
		res.Correct = &out.Correct
	}
	writeJSON(w, http.StatusOK, res)
}

// tokenParam reads the `data` query parameter, writing 400 when absent.
func tokenParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	tok := r.URL.Query().Get("data")
	if tok == "" {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "missing_token", Message: "data query parameter is required"})
		return "", false
	}
	return tok, true
}

// viewOf builds the response for a snapshot. Hint text is only included once revealed.
func viewOf(snap tracker.Snapshot) playRes {
	st := snap.State
	def := snap.Definition
	res := playRes{
		Key:               snap.Key,
		Clue:              def.Clue,
		Phase:             st.Phase(),
		Solved:            st.IsSolved(),
		SolvedByReveal:    st.WasSolvedByReveal(),
		AttemptCount:      st.AttemptCount(),
		RevealedHintCount: st.RevealedHintCount(),
		Attempts:          make([]attemptRes, 0, len(st.Attempts)),
		Hints:             []hintRes{},
	}
	for _, a := range st.Attempts {
		res.Attempts = append(res.Attempts, attemptRes{Guess: a.Guess, Correct: a.Correct, Time: a.Clock()})
	}
	for _, k := range snap.Hints() {
		h := hintRes{Kind: k, Revealed: st.HintRevealed(k)}
		if h.Revealed {
			switch k {
			case game.HintDefinition:
				h.Text = def.Definition
			case game.HintFodder:
				h.Text = def.Fodder
			case game.HintIndicators:
				h.Items = def.Indicators
			}
		}
		res.Hints = append(res.Hints, h)
	}
	if st.Solved {
		res.Answer = def.Answer
	}
	return res
}
