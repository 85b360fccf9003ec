// internal/httpserver/server.go
//
// HTTP server wiring for the clue game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/examples".
//   - Author endpoint: POST /author (definition -> token + share URL).
//   - Player endpoints: GET /play, POST /play/{guess|hint|reveal|reset} (routes_play.go).
//   - Session cookie identity (session.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every error body is {"error": code, "message": text}.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cluegame/assets"
	"github.com/robalobadob/cluegame/internal/clue"
	"github.com/robalobadob/cluegame/internal/config"
	"github.com/robalobadob/cluegame/internal/game"
	"github.com/robalobadob/cluegame/internal/tracker"
)

// Server bundles router, tracker and session issuer.
type Server struct {
	r        *chi.Mux
	tracker  *tracker.Tracker
	sessions *sessions
	cfg      *config.Config
	examples []exampleRes
}

// New constructs a Server, installs middleware, and registers routes.
func New(tr *tracker.Tracker, cfg *config.Config) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		tracker: tr,
		cfg:     cfg,
		sessions: &sessions{
			secret: []byte(cfg.SessionSecret),
			cookie: cfg.SessionCookie,
			ttl:    cfg.SessionTTL,
			secure: cfg.IsProduction(),
		},
	}
	s.examples = s.loadExamples()

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"clue-game","endpoints":["/health","/examples","POST /author","GET /play?data=","POST /play/{guess,hint,reveal,reset}?data="]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/examples", s.handleExamples)
	s.r.Post("/author", s.handleAuthor)
	s.mountPlay(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found", Message: r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("reqId", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("took", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// ------------------------------ AUTHOR -------------------------------------

// authorReq is the authoring form payload.
type authorReq struct {
	Clue       string   `json:"clue"`
	Answer     string   `json:"answer"`
	Definition string   `json:"definition"`
	Fodder     string   `json:"fodder"`
	Indicators []string `json:"indicators"`
}

// definition trims every field and drops blank indicators, like the authoring form.
func (a authorReq) definition() clue.Definition {
	d := clue.Definition{
		Clue:       strings.TrimSpace(a.Clue),
		Answer:     strings.TrimSpace(a.Answer),
		Definition: strings.TrimSpace(a.Definition),
		Fodder:     strings.TrimSpace(a.Fodder),
	}
	for _, s := range a.Indicators {
		if s = strings.TrimSpace(s); s != "" {
			d.Indicators = append(d.Indicators, s)
		}
	}
	return d
}

type authorRes struct {
	Token string `json:"token"`
	Key   string `json:"key"`
	URL   string `json:"url"`
}

// handleAuthor encodes a definition into a shareable token.
func (s *Server) handleAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Message: err.Error()})
		return
	}
	tok, err := clue.Encode(req.definition())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authorRes{Token: tok, Key: clue.Key(tok), URL: s.playURL(tok)})
}

func (s *Server) playURL(token string) string {
	return s.cfg.PublicURL + "/play?data=" + url.QueryEscape(token)
}

// ----------------------------- EXAMPLES ------------------------------------

type exampleRes struct {
	Title string `json:"title"`
	Clue  string `json:"clue"`
	Token string `json:"token"`
	URL   string `json:"url"`
}

// loadExamples encodes the embedded example games once at start-up.
func (s *Server) loadExamples() []exampleRes {
	ex, err := assets.Examples()
	if err != nil {
		log.Error().Err(err).Msg("load examples")
		return []exampleRes{}
	}
	out := make([]exampleRes, 0, len(ex))
	for _, e := range ex {
		tok, err := clue.Encode(e.Definition)
		if err != nil {
			log.Warn().Err(err).Str("title", e.Title).Msg("skip invalid example")
			continue
		}
		out = append(out, exampleRes{Title: e.Title, Clue: e.Definition.Clue, Token: tok, URL: s.playURL(tok)})
	}
	return out
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.examples)
}

// ------------------------------ helpers ------------------------------------

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP responses; anything unknown is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		de *clue.DecodeError
		ve *clue.ValidationError
	)
	switch {
	case errors.As(err, &de):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: de.Kind.String(), Message: de.Error(), Field: de.Field})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "validation_error", Message: ve.Error(), Field: ve.Field})
	case errors.Is(err, game.ErrEmptyGuess):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "empty_guess", Message: err.Error()})
	case errors.Is(err, game.ErrUnknownHintKind):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "unknown_hint_kind", Message: err.Error()})
	case errors.Is(err, game.ErrUnknownAction):
		writeJSON(w, http.StatusNotFound, errorRes{Error: "unknown_action", Message: err.Error()})
	default:
		log.Error().Err(err).Str("reqId", chimw.GetReqID(r.Context())).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "store_failed"})
	}
}
