// internal/httpserver/server.go
//
// HTTP server wiring for the puzzle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints: create (seed, random or daily), guess, shuffle,
//     hints, save and load.
//   - High-score endpoints: mounted under /scores (routes_scores.go).
//
// Notes:
//   - Every puzzle lives in a session.Session registered in the session store;
//     the server itself keeps no "current puzzle".
//   - Errors are JSON objects {"error": code, "message": text}.
package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hive/internal/daily"
	"github.com/robalobadob/hive/internal/highscore"
	"github.com/robalobadob/hive/internal/puzzle"
	"github.com/robalobadob/hive/internal/save"
	"github.com/robalobadob/hive/internal/session"
	"github.com/robalobadob/hive/internal/store"
	"github.com/robalobadob/hive/internal/words"
)

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Words        *words.Source
	Sessions     store.Store
	Scores       *highscore.Store // nil disables score submission
	SaveDir      string
	Cipher       save.Cipher
	DailySalt    string
	ClientOrigin string
}

// Server bundles the router and its dependencies.
type Server struct {
	r    *chi.Mux
	deps Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps) *Server {
	s := &Server{r: chi.NewRouter(), deps: deps}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(deps.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"hive","endpoints":["/health","POST /puzzle/new","POST /puzzle/load","POST /puzzle/{id}/guess","/scores","POST /scores"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		d, roots := deps.Words.Stats()
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "dictionary": d, "roots": roots})
	})

	s.r.Route("/puzzle", func(r chi.Router) {
		r.Post("/new", s.handleNew)
		r.Post("/load", s.handleLoad)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/guess", s.handleGuess)
			r.Post("/shuffle", s.handleShuffle)
			r.Get("/help", s.handleHelp)
			r.Post("/save", s.handleSave)
			r.Post("/score", s.handleSubmitScore)
		})
	})

	s.mountScores(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

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
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ PUZZLE -------------------------------------

// newPuzzleReq is the payload for POST /puzzle/new.
// With no seed a random puzzle is built; Daily selects the puzzle of the day.
type newPuzzleReq struct {
	Seed     string `json:"seed"`
	Required string `json:"required"`
	Daily    bool   `json:"daily"`
}

// puzzleRes carries a session id and its state.
type puzzleRes struct {
	ID     string           `json:"id"`
	Puzzle session.Snapshot `json:"puzzle"`
}

// handleNew builds a puzzle and registers a session for it.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newPuzzleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	var (
		p   *puzzle.Puzzle
		err error
	)
	switch {
	case req.Daily:
		p, err = daily.Puzzle(time.Now(), s.deps.DailySalt, s.deps.Words)
	case req.Seed != "":
		if utf8.RuneCountInString(req.Required) != 1 {
			writeError(w, http.StatusBadRequest, "bad_required_letter", "required must be a single letter")
			return
		}
		letter, _ := utf8.DecodeRuneInString(req.Required)
		p, err = puzzle.Build(puzzle.Params{Seed: strings.TrimSpace(req.Seed), Required: letter}, s.deps.Words)
	default:
		p, err = puzzle.Random(s.deps.Words, nil)
	}
	if err != nil {
		writeBuildError(w, err)
		return
	}
	s.register(w, r, p, http.StatusCreated)
}

// register stores a new session for p and writes its id and state.
func (s *Server) register(w http.ResponseWriter, r *http.Request, p *puzzle.Puzzle, status int) {
	sess := session.New(p, session.Options{
		SaveDir: s.deps.SaveDir,
		Cipher:  s.deps.Cipher,
		Scores:  s.deps.Scores,
	})
	id, err := s.deps.Sessions.Add(r.Context(), sess)
	if err != nil {
		log.Error().Err(err).Msg("add session")
		writeError(w, http.StatusInternalServerError, "session_failed", err.Error())
		return
	}
	log.Info().Str("session", id).Str("letters", p.Letters()).Int("words", len(p.ValidWords())).Msg("puzzle created")
	writeJSON(w, status, puzzleRes{ID: id, Puzzle: sess.Snapshot()})
}

// session looks up the {id} session or writes a 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.deps.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no such puzzle")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, puzzleRes{ID: chi.URLParam(r, "id"), Puzzle: sess.Snapshot()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	_ = s.deps.Sessions.Delete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// guessReq/Res payloads for POST /puzzle/{id}/guess.
type guessReq struct {
	Word string `json:"word"`
}
type guessRes struct {
	session.GuessResult
	Puzzle session.Snapshot `json:"puzzle"`
}

// handleGuess scores a word. Already-found and invalid words are normal
// results (points -1 and 0), not errors.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	res := sess.Guess(req.Word)
	writeJSON(w, http.StatusOK, guessRes{GuessResult: res, Puzzle: sess.Snapshot()})
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"letters": sess.Shuffle()})
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Help())
}

// saveRes reports the outcome of POST /puzzle/{id}/save.
type saveRes struct {
	Status  string `json:"status"` // created | overwritten | failed
	File    string `json:"file"`
	Message string `json:"message"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	out := sess.Save()
	status := http.StatusOK
	if !out.OK() {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, saveRes{Status: out.Status.String(), File: filepath.Base(out.Path), Message: out.String()})
}

// loadReq names a save file. Only the base name is used: files are always
// read from the save directory, whatever directories the path names.
type loadReq struct {
	Path string `json:"path"`
}

// handleLoad restores a saved puzzle into a new session.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "path is required")
		return
	}
	path := filepath.Join(s.deps.SaveDir, filepath.Base(req.Path))
	p, err := save.Load(path, s.deps.Cipher)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("load puzzle")
		writeError(w, http.StatusUnprocessableEntity, "load_failed", err.Error())
		return
	}
	s.register(w, r, p, http.StatusOK)
}

// ------------------------------- helpers -----------------------------------

// errorRes is the body of every error response.
type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorRes{Error: code, Message: msg})
}

// writeBuildError maps puzzle construction errors to 4xx codes.
func writeBuildError(w http.ResponseWriter, err error) {
	codes := []struct {
		err  error
		code string
	}{
		{puzzle.ErrSeedTooShort, "seed_too_short"},
		{puzzle.ErrRequiredLetterAbsent, "required_letter_absent"},
		{puzzle.ErrTooFewUniqueLetters, "too_few_unique_letters"},
		{puzzle.ErrNotARootWord, "not_a_root_word"},
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			writeError(w, http.StatusBadRequest, c.code, err.Error())
			return
		}
	}
	log.Error().Err(err).Msg("build puzzle")
	writeError(w, http.StatusServiceUnavailable, "no_puzzle", err.Error())
}
