// internal/highscore/highscore.go
//
// Capped leaderboard of the best score per player name.
//
// Characteristics:
//   - At most Capacity entries, kept sorted: score descending, then name
//     ascending. On overflow the last entry is dropped, except that a
//     newly recorded score tied with the lowest evicts the older entry.
//   - One entry per name; a name's score only ever goes up.
//   - The whole table is handed to the Persister after every change.
//   - Safe for concurrent use.
package highscore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Capacity is the maximum number of stored entries.
const Capacity = 10

// ErrEmptyName is returned when recording a score without a name.
var ErrEmptyName = errors.New("highscore: empty player name")

// Entry is one player's best score.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Persister stores the table as a flat name → score mapping.
// Save always receives the full table and replaces what was stored.
type Persister interface {
	Load(ctx context.Context) (map[string]int, error)
	Save(ctx context.Context, scores map[string]int) error
}

// Store is the in-memory leaderboard backed by a Persister.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	persist Persister
}

// Open loads the table from p. Oversized tables are trimmed to Capacity.
func Open(ctx context.Context, p Persister) (*Store, error) {
	scores, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load high scores: %w", err)
	}
	s := &Store{persist: p}
	for name, score := range scores {
		if name == "" {
			continue
		}
		s.entries = append(s.entries, Entry{Name: name, Score: score})
	}
	s.sortAndTrim()
	return s, nil
}

// IsHighScore reports whether score would enter the table.
func (s *Store) IsHighScore(score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) < Capacity || score >= s.lowest()
}

// Record stores score for name if it enters the table. It reports whether
// the table changed; an unchanged table is not persisted.
func (s *Store) Record(ctx context.Context, name string, score int) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := append([]Entry(nil), s.entries...)
	if i := s.indexOf(name); i >= 0 {
		if score <= s.entries[i].Score {
			return false, nil
		}
		s.entries[i].Score = score
	} else {
		s.entries = append(s.entries, Entry{Name: name, Score: score})
	}
	s.sortEntries()
	if len(s.entries) > Capacity {
		drop := len(s.entries) - 1
		if s.entries[drop].Name == name {
			if score < s.entries[drop-1].Score {
				s.entries = prev
				return false, nil
			}
			drop--
		}
		s.entries = append(s.entries[:drop], s.entries[drop+1:]...)
	}

	if err := s.persist.Save(ctx, s.asMap()); err != nil {
		s.entries = prev
		return false, fmt.Errorf("save high scores: %w", err)
	}
	log.Info().Str("name", name).Int("score", score).Msg("high score recorded")
	return true, nil
}

// Entries returns a copy of the table in rank order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry{}, s.entries...)
}

// Lowest returns the minimum stored score, or 0 for an empty table.
func (s *Store) Lowest() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lowest()
}

func (s *Store) lowest() int {
	if len(s.entries) == 0 {
		return 0
	}
	return s.entries[len(s.entries)-1].Score
}

func (s *Store) indexOf(name string) int {
	for i, e := range s.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) sortAndTrim() {
	s.sortEntries()
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}
}

func (s *Store) sortEntries() {
	sort.Slice(s.entries, func(i, j int) bool {
		if s.entries[i].Score != s.entries[j].Score {
			return s.entries[i].Score > s.entries[j].Score
		}
		return s.entries[i].Name < s.entries[j].Name
	})
}

func (s *Store) asMap() map[string]int {
	m := make(map[string]int, len(s.entries))
	for _, e := range s.entries {
		m[e.Name] = e.Score
	}
	return m
}
