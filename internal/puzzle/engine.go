// internal/puzzle/engine.go
//
// Core rules engine for a single letter-set puzzle.
// Responsibilities:
//   - Build puzzles from a seed word (Build) or at random (Random).
//   - Classify dictionary words against the letter set in one scan.
//   - Score guesses (WordValue, Guess) including the pangram bonus.
//   - Shuffle the display order of the secondary letters.
//   - Rebuild a puzzle from saved state (Restore).
//
// Notes:
//   - Words are compared lowercase; callers may pass any case.
//   - The four-letter floor is a property of the dictionary, not the engine.
package puzzle

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Build validates params and constructs a puzzle from src.
//
// Validation order:
//  1. Seed has at least LetterCount letters.
//  2. Required letter occurs in the seed.
//  3. Seed has at least LetterCount distinct letters.
//  4. Seed is a root word, unless params.KnownRoot is set.
//
// The secondary letters are the first six distinct seed letters other than
// the required one, in first-occurrence order.
func Build(params Params, src WordSource) (*Puzzle, error) {
	seed := []rune(strings.ToLower(strings.TrimSpace(params.Seed)))
	req := unicode.ToLower(params.Required)

	if len(seed) < LetterCount {
		return nil, fmt.Errorf("%w: %q", ErrSeedTooShort, string(seed))
	}
	if !containsRune(seed, req) {
		return nil, fmt.Errorf("%w: %q not in %q", ErrRequiredLetterAbsent, req, string(seed))
	}
	distinct := distinctRunes(seed)
	if len(distinct) < LetterCount {
		return nil, fmt.Errorf("%w: %q has %d", ErrTooFewUniqueLetters, string(seed), len(distinct))
	}
	if !params.KnownRoot && !src.IsRoot(string(seed)) {
		return nil, fmt.Errorf("%w: %q", ErrNotARootWord, string(seed))
	}

	secondary := make([]rune, 0, SecondaryCount)
	for _, r := range distinct {
		if r == req {
			continue
		}
		secondary = append(secondary, r)
		if len(secondary) == SecondaryCount {
			break
		}
	}

	p := &Puzzle{primary: req, secondary: secondary, valid: make(map[string]struct{})}
	for _, w := range src.Dictionary() {
		w = strings.ToLower(strings.TrimSpace(w))
		if p.allows(w) {
			p.valid[w] = struct{}{}
		}
	}
	p.finish()
	for _, w := range p.validList {
		p.total += p.WordValue(w)
	}
	return p, nil
}

// Random builds a puzzle from a uniformly drawn root word and a uniformly
// drawn letter of it. Root words that cannot seed a puzzle are discarded
// and another is drawn until one succeeds or none remain.
//
// rng may be nil, in which case the package-level source is used.
func Random(src RootSource, rng *rand.Rand) (*Puzzle, error) {
	candidates := src.Roots()
	for len(candidates) > 0 {
		i := intN(rng, len(candidates))
		word := []rune(candidates[i])
		if len(word) == 0 {
			candidates = removeAt(candidates, i)
			continue
		}
		req := word[intN(rng, len(word))]

		p, err := Build(Params{Seed: string(word), Required: req, KnownRoot: true}, src)
		if err == nil {
			return p, nil
		}
		// Only structural failures can occur here; the letter was drawn
		// from the word itself and root membership is assumed.
		candidates = removeAt(candidates, i)
	}
	return nil, ErrNoRootWords
}

// Restore rebuilds a puzzle from saved state without consulting a dictionary.
// Points are taken from the state as given; letters and answers are checked
// against the puzzle invariants.
func Restore(st State) (*Puzzle, error) {
	primary := unicode.ToLower(st.Primary)
	secondary := make([]rune, len(st.Secondary))
	for i, r := range st.Secondary {
		secondary[i] = unicode.ToLower(r)
	}
	if len(secondary) != SecondaryCount {
		return nil, fmt.Errorf("%w: %d secondary letters", ErrInvalidState, len(secondary))
	}
	if len(distinctRunes(append([]rune{primary}, secondary...))) != LetterCount {
		return nil, fmt.Errorf("%w: letters are not distinct", ErrInvalidState)
	}
	if st.Earned < 0 || st.Total < 0 || st.Earned > st.Total {
		return nil, fmt.Errorf("%w: points %d/%d", ErrInvalidState, st.Earned, st.Total)
	}

	p := &Puzzle{primary: primary, secondary: secondary, valid: make(map[string]struct{}, len(st.ValidWords))}
	for _, w := range st.ValidWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if !p.allows(w) {
			return nil, fmt.Errorf("%w: %q does not fit the letters", ErrInvalidState, w)
		}
		p.valid[w] = struct{}{}
	}
	for _, w := range st.Found {
		w = strings.ToLower(strings.TrimSpace(w))
		if _, ok := p.valid[w]; !ok {
			return nil, fmt.Errorf("%w: found word %q is not an answer", ErrInvalidState, w)
		}
		if !p.IsFound(w) {
			p.insertFound(w)
		}
	}
	p.finish()
	p.total = st.Total
	p.earned = st.Earned
	return p, nil
}

// finish sorts the answers and computes the hint statistics.
func (p *Puzzle) finish() {
	p.validList = make([]string, 0, len(p.valid))
	for w := range p.valid {
		p.validList = append(p.validList, w)
	}
	sort.Strings(p.validList)
	if p.found == nil {
		p.found = []string{}
	}
	p.help = computeHelp(p.validList, p.IsPangram)
}

// Guess applies a guess and reports its result:
//   - -1 if the word was already found (no change),
//   - 0 if the word is not an answer (no change),
//   - otherwise the word's value, which is added to the earned points.
func (p *Puzzle) Guess(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if p.IsFound(w) {
		return -1
	}
	v := p.WordValue(w)
	if v == 0 {
		return 0
	}
	p.insertFound(w)
	p.earned += v
	return v
}

// WordValue scores a word: 0 if it is not an answer, 1 for four letters,
// otherwise its length, plus PangramBonus for a pangram.
func (p *Puzzle) WordValue(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if _, ok := p.valid[w]; !ok {
		return 0
	}
	n := utf8.RuneCountInString(w)
	v := n
	if n == 4 {
		v = 1
	}
	if p.IsPangram(w) {
		v += PangramBonus
	}
	return v
}

// IsPangram reports whether word uses every puzzle letter at least once.
// It does not check that word is an answer.
func (p *Puzzle) IsPangram(word string) bool {
	w := strings.ToLower(word)
	if !strings.ContainsRune(w, p.primary) {
		return false
	}
	for _, r := range p.secondary {
		if !strings.ContainsRune(w, r) {
			return false
		}
	}
	return true
}

// IsFound reports whether word has already been guessed.
func (p *Puzzle) IsFound(word string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	i := sort.SearchStrings(p.found, w)
	return i < len(p.found) && p.found[i] == w
}

// Shuffle permutes the secondary letters in place (Fisher–Yates).
// Answers and points are unaffected.
func (p *Puzzle) Shuffle() {
	for i := len(p.secondary) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		p.secondary[i], p.secondary[j] = p.secondary[j], p.secondary[i]
	}
}

// Primary returns the required letter.
func (p *Puzzle) Primary() rune { return p.primary }

// Secondary returns a copy of the secondary letters in display order.
func (p *Puzzle) Secondary() []rune { return append([]rune(nil), p.secondary...) }

// Letters returns the six secondary letters in display order followed by
// the primary letter.
func (p *Puzzle) Letters() string { return string(p.secondary) + string(p.primary) }

// Found returns a sorted copy of the guessed answers.
func (p *Puzzle) Found() []string { return append([]string{}, p.found...) }

// ValidWords returns a sorted copy of all answers.
func (p *Puzzle) ValidWords() []string { return append([]string{}, p.validList...) }

// TotalPoints is the sum of all answer values.
func (p *Puzzle) TotalPoints() int { return p.total }

// EarnedPoints is the sum of found answer values.
func (p *Puzzle) EarnedPoints() int { return p.earned }

// Help returns the cached hint statistics.
func (p *Puzzle) Help() HelpData { return p.help }

// allows reports whether w contains the primary letter and no letter
// outside the puzzle set. Empty strings never match.
func (p *Puzzle) allows(w string) bool {
	if w == "" || !strings.ContainsRune(w, p.primary) {
		return false
	}
	for _, r := range w {
		if r != p.primary && !containsRune(p.secondary, r) {
			return false
		}
	}
	return true
}

// insertFound adds w to found, keeping it sorted.
func (p *Puzzle) insertFound(w string) {
	i := sort.SearchStrings(p.found, w)
	p.found = append(p.found, "")
	copy(p.found[i+1:], p.found[i:])
	p.found[i] = w
}

// distinctRunes returns the distinct runes of s in first-occurrence order.
func distinctRunes(s []rune) []rune {
	seen := make(map[rune]bool, len(s))
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func containsRune(s []rune, r rune) bool {
	for _, x := range s {
		if x == r {
			return true
		}
	}
	return false
}

// removeAt drops element i without preserving order.
func removeAt(s []string, i int) []string {
	s[i] = s[len(s)-1]
	return s[:len(s)-1]
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
