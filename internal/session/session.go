// internal/session/session.go
//
// A Session owns exactly one puzzle and routes the player's actions to the
// engine, the rank table, persistence and the high-score table.
//
// The puzzle itself has no locking; Session serializes every call so that
// one Session can be shared by an event loop or HTTP handlers.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/hive/internal/highscore"
	"github.com/robalobadob/hive/internal/puzzle"
	"github.com/robalobadob/hive/internal/rank"
	"github.com/robalobadob/hive/internal/save"
)

// ErrNoScoreTable is returned by SubmitScore when no table is configured.
var ErrNoScoreTable = errors.New("session: no high-score table")

// Options wires a session to its collaborators. All fields are optional.
type Options struct {
	SaveDir string           // directory for save files ("" = working dir)
	Cipher  save.Cipher      // nil writes plain saves
	Scores  *highscore.Store // nil disables SubmitScore
}

// Session is one player's game.
type Session struct {
	mu   sync.Mutex
	p    *puzzle.Puzzle
	opts Options
}

// New starts a session on p.
func New(p *puzzle.Puzzle, opts Options) *Session {
	return &Session{p: p, opts: opts}
}

// Snapshot is a read-only view of the session's puzzle.
type Snapshot struct {
	Letters   string        `json:"letters"`   // secondary letters in display order, then primary
	Primary   string        `json:"primary"`
	Secondary string        `json:"secondary"`
	Found     []string      `json:"found"`
	Earned    int           `json:"earned"`
	Total     int           `json:"total"`
	WordCount int           `json:"wordCount"`
	Rank      rank.Progress `json:"rank"`
}

// GuessResult reports the outcome of one guess.
type GuessResult struct {
	Word    string    `json:"word"`
	Points  int       `json:"points"` // -1 already found, 0 not a word
	Pangram bool      `json:"pangram"`
	Rank    rank.Tier `json:"rank"`
	RankUp  bool      `json:"rankUp"`
	Message string    `json:"message"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.p)
}

func snapshot(p *puzzle.Puzzle) Snapshot {
	return Snapshot{
		Letters:   p.Letters(),
		Primary:   string(p.Primary()),
		Secondary: string(p.Secondary()),
		Found:     p.Found(),
		Earned:    p.EarnedPoints(),
		Total:     p.TotalPoints(),
		WordCount: p.Help().WordCount,
		Rank:      rank.ProgressFor(p.EarnedPoints(), p.TotalPoints()),
	}
}

// Guess scores word and reports any rank change.
func (s *Session) Guess(word string) GuessResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := rank.For(s.p.EarnedPoints(), s.p.TotalPoints())
	points := s.p.Guess(word)
	after := rank.For(s.p.EarnedPoints(), s.p.TotalPoints())

	res := GuessResult{Word: word, Points: points, Rank: after, RankUp: after != before}
	switch {
	case points < 0:
		res.Message = fmt.Sprintf("Already found %q", word)
	case points == 0:
		res.Message = fmt.Sprintf("%q is not a valid word", word)
	default:
		res.Pangram = s.p.IsPangram(word)
		res.Message = fmt.Sprintf("+%d", points)
		if res.Pangram {
			res.Message = "Pangram! " + res.Message
		}
		if res.RankUp {
			res.Message += fmt.Sprintf(". New rank: %s", after.Name)
		}
	}
	return res
}

// Shuffle reorders the secondary letters and returns the new letter order.
func (s *Session) Shuffle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Shuffle()
	return s.p.Letters()
}

// Help returns the hint statistics for the puzzle.
func (s *Session) Help() puzzle.HelpData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Help()
}

// Replace swaps in a new puzzle, discarding the current one.
func (s *Session) Replace(p *puzzle.Puzzle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

// Save writes the puzzle to the session's save directory.
func (s *Session) Save() save.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save.Save(s.opts.SaveDir, s.p, s.opts.Cipher)
}

// Load replaces the puzzle with the one saved at path. On error the current
// puzzle is kept.
func (s *Session) Load(path string) error {
	p, err := save.Load(path, s.opts.Cipher)
	if err != nil {
		return err
	}
	s.Replace(p)
	return nil
}

// SubmitScore records the session's earned points for name.
func (s *Session) SubmitScore(ctx context.Context, name string) (bool, error) {
	if s.opts.Scores == nil {
		return false, ErrNoScoreTable
	}
	s.mu.Lock()
	earned := s.p.EarnedPoints()
	s.mu.Unlock()
	return s.opts.Scores.Record(ctx, name, earned)
}
