// internal/httpserver/routes_scores.go
//
// HTTP routes for the high-score table:
//   - GET  /scores                → the table in rank order
//   - GET  /scores/check?score=N  → whether N would enter the table
//   - POST /scores                → record {name, score} directly
//   - POST /puzzle/{id}/score     → submit a session's points under a name
//                                   (registered in server.go)
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hive/internal/highscore"
	"github.com/robalobadob/hive/internal/session"
)

// mountScores registers all /scores routes.
func (s *Server) mountScores(r chi.Router) {
	r.Route("/scores", func(r chi.Router) {
		r.Get("/", s.handleScores)
		r.Get("/check", s.handleCheckScore)
		r.Post("/", s.handleRecordScore)
	})
}

// scoresRes is returned by GET /scores.
type scoresRes struct {
	Top    []highscore.Entry `json:"top"`
	Lowest int               `json:"lowest"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.deps.Scores == nil {
		writeError(w, http.StatusServiceUnavailable, "no_scores", "high scores are disabled")
		return
	}
	writeJSON(w, http.StatusOK, scoresRes{Top: s.deps.Scores.Entries(), Lowest: s.deps.Scores.Lowest()})
}

func (s *Server) handleCheckScore(w http.ResponseWriter, r *http.Request) {
	if s.deps.Scores == nil {
		writeError(w, http.StatusServiceUnavailable, "no_scores", "high scores are disabled")
		return
	}
	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_score", "score must be an integer")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isHighScore": s.deps.Scores.IsHighScore(score)})
}

// recordScoreReq is the payload for POST /scores.
type recordScoreReq struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// handleRecordScore records a score that was earned outside a server session.
func (s *Server) handleRecordScore(w http.ResponseWriter, r *http.Request) {
	if s.deps.Scores == nil {
		writeError(w, http.StatusServiceUnavailable, "no_scores", "high scores are disabled")
		return
	}
	var req recordScoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if req.Score < 0 {
		writeError(w, http.StatusBadRequest, "bad_score", "score must not be negative")
		return
	}
	recorded, err := s.deps.Scores.Record(r.Context(), req.Name, req.Score)
	s.writeRecorded(w, recorded, err)
}

// submitScoreReq is the payload for POST /puzzle/{id}/score.
type submitScoreReq struct {
	Name string `json:"name"`
}

// handleSubmitScore records the session's earned points under a name.
func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req submitScoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	recorded, err := sess.SubmitScore(r.Context(), req.Name)
	s.writeRecorded(w, recorded, err)
}

// writeRecorded answers a score submission with the updated table.
func (s *Server) writeRecorded(w http.ResponseWriter, recorded bool, err error) {
	switch {
	case errors.Is(err, highscore.ErrEmptyName):
		writeError(w, http.StatusBadRequest, "empty_name", err.Error())
		return
	case errors.Is(err, session.ErrNoScoreTable):
		writeError(w, http.StatusServiceUnavailable, "no_scores", err.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("record score")
		writeError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recorded": recorded, "top": s.deps.Scores.Entries()})
}
