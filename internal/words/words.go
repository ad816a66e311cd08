// internal/words/words.go
//
// Word list management for the puzzle engine.
//
// Responsibilities:
//   - Load the full dictionary and the root (seed) list from files, or fall
//     back to the embedded defaults in the assets package.
//   - Answer root-membership queries case-insensitively.
//
// Word lists:
//   - "dictionary": every word that may be an answer, one per line.
//   - "roots":      words allowed to seed a puzzle. Membership in the
//                   dictionary is not enforced.
//
// Load behavior:
//   1. If a path is given for a list, read it from disk. Missing or
//      unreadable files fail with ErrSourceUnavailable.
//   2. If a path is empty, use the embedded copy of that list.
//
// Blank lines are dropped while reading; the engine treats any that slip
// through as non-matching.
package words

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hive/assets"
)

// ErrSourceUnavailable reports a dictionary or root file that could not be read.
var ErrSourceUnavailable = errors.New("words: source unavailable")

// Source supplies the full dictionary and the root word subset.
type Source struct {
	dictionary []string
	roots      []string
	rootSet    map[string]struct{}
}

// New builds a Source from in-memory lists. Words are lowercased and trimmed.
func New(dictionary, roots []string) *Source {
	s := &Source{
		dictionary: normalize(dictionary),
		roots:      normalize(roots),
	}
	s.rootSet = toSet(s.roots)
	return s
}

// Load reads the dictionary and root lists. An empty path selects the
// embedded default for that list.
func Load(dictionaryPath, rootsPath string) (*Source, error) {
	dict, err := readList(dictionaryPath, assets.DictionaryList)
	if err != nil {
		return nil, err
	}
	roots, err := readList(rootsPath, assets.RootList)
	if err != nil {
		return nil, err
	}
	s := New(dict, roots)
	log.Info().
		Int("dictionary", len(s.dictionary)).
		Int("roots", len(s.roots)).
		Bool("embedded_dictionary", dictionaryPath == "").
		Bool("embedded_roots", rootsPath == "").
		Msg("word lists loaded")
	return s, nil
}

// readList loads one word per line from path, or from fallback when path is empty.
func readList(path string, fallback func() ([]string, error)) ([]string, error) {
	if path == "" {
		list, err := fallback()
		if err != nil {
			return nil, fmt.Errorf("%w: embedded list: %v", ErrSourceUnavailable, err)
		}
		return list, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()
	list, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, path, err)
	}
	return list, nil
}

// Dictionary returns the full dictionary in file order.
// The slice is shared; callers must not modify it.
func (s *Source) Dictionary() []string { return s.dictionary }

// Roots returns a copy of the root words in file order.
func (s *Source) Roots() []string {
	return append([]string(nil), s.roots...)
}

// IsRoot reports whether w appears in the root list (case-insensitive).
func (s *Source) IsRoot(w string) bool {
	_, ok := s.rootSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Stats returns counts of loaded words: (dictionary, roots).
func (s *Source) Stats() (dictionaryCount int, rootCount int) {
	return len(s.dictionary), len(s.roots)
}

// normalize lowercases and trims every entry, dropping blanks.
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}
