package puzzle

import (
	"errors"
	"math/rand/v2"
	"sort"
	"strings"
	"testing"
)

// fixtureSource is an in-memory word source for tests.
type fixtureSource struct {
	dict  []string
	roots []string
}

func (f fixtureSource) Dictionary() []string { return f.dict }
func (f fixtureSource) Roots() []string      { return append([]string(nil), f.roots...) }
func (f fixtureSource) IsRoot(w string) bool {
	for _, r := range f.roots {
		if strings.EqualFold(r, w) {
			return true
		}
	}
	return false
}

var violentDict = []string{
	"live", "lentil", "violent", "liven", "novel", "little", "olive", "lint",
	"tile", "evil", "", "vole", "lent", "love", "lion", "note", "plan",
	"violently", "tell", "lentil",
}

func violentSource() fixtureSource {
	return fixtureSource{dict: violentDict, roots: []string{"violent", "balloon", "tiny"}}
}

func mustBuild(t *testing.T, seed string, req rune) *Puzzle {
	t.Helper()
	p, err := Build(Params{Seed: seed, Required: req}, violentSource())
	if err != nil {
		t.Fatalf("Build(%q, %q): %v", seed, req, err)
	}
	return p
}

func TestBuildSecondaryLetters(t *testing.T) {
	p := mustBuild(t, "violent", 'l')
	if got := string(p.Secondary()); got != "vioent" {
		t.Errorf("Secondary = %q, want %q", got, "vioent")
	}
	if p.Primary() != 'l' {
		t.Errorf("Primary = %q, want 'l'", p.Primary())
	}
	if got := p.Letters(); got != "vioentl" {
		t.Errorf("Letters = %q, want %q", got, "vioentl")
	}
	if p.EarnedPoints() != 0 || len(p.Found()) != 0 {
		t.Errorf("new puzzle has progress: %d points, %v", p.EarnedPoints(), p.Found())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   error
	}{
		{"short", Params{Seed: "lion", Required: 'l'}, ErrSeedTooShort},
		{"absent", Params{Seed: "violent", Required: 'z'}, ErrRequiredLetterAbsent},
		{"few unique", Params{Seed: "balloon", Required: 'l'}, ErrTooFewUniqueLetters},
		{"few unique known root", Params{Seed: "balloons", Required: 'l', KnownRoot: true}, ErrTooFewUniqueLetters},
		{"not root", Params{Seed: "novelties", Required: 'n'}, ErrNotARootWord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(tt.params, violentSource())
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if p != nil {
				t.Errorf("puzzle returned alongside error")
			}
		})
	}
}

func TestBuildKnownRootSkipsMembership(t *testing.T) {
	p, err := Build(Params{Seed: "novelties", Required: 'n', KnownRoot: true}, violentSource())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// n o v e l t i s: first six distinct letters other than n.
	if got := string(p.Secondary()); got != "ovelti" {
		t.Errorf("Secondary = %q, want %q", got, "ovelti")
	}
}

func TestBuildCaseInsensitiveSeed(t *testing.T) {
	p, err := Build(Params{Seed: "VIOLENT", Required: 'L'}, violentSource())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Primary() != 'l' {
		t.Errorf("Primary = %q, want 'l'", p.Primary())
	}
}

func TestValidWordsContainment(t *testing.T) {
	p := mustBuild(t, "violent", 'l')
	letters := p.Letters()
	for _, w := range p.ValidWords() {
		if !strings.ContainsRune(w, p.Primary()) {
			t.Errorf("%q lacks primary letter", w)
		}
		for _, r := range w {
			if !strings.ContainsRune(letters, r) {
				t.Errorf("%q uses %q outside the letter set", w, r)
			}
		}
	}
	want := []string{"evil", "lent", "lentil", "lint", "lion", "little", "live", "liven", "love", "novel", "olive", "tell", "tile", "violent", "vole"}
	got := p.ValidWords()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ValidWords = %v, want %v", got, want)
	}
}

// independentValue scores a word without using the engine.
func independentValue(w, letters string, primary rune) int {
	if w == "" || !strings.ContainsRune(w, primary) {
		return 0
	}
	for _, r := range w {
		if !strings.ContainsRune(letters, r) {
			return 0
		}
	}
	v := len(w)
	if v == 4 {
		v = 1
	}
	pangram := true
	for _, r := range letters {
		if !strings.ContainsRune(w, r) {
			pangram = false
		}
	}
	if pangram {
		v += 7
	}
	return v
}

func TestTotalPointsMatchesIndependentSum(t *testing.T) {
	p := mustBuild(t, "violent", 'l')
	seen := map[string]bool{}
	sum := 0
	for _, w := range violentDict {
		if seen[w] {
			continue
		}
		seen[w] = true
		sum += independentValue(w, "violent", 'l')
	}
	if p.TotalPoints() != sum {
		t.Errorf("TotalPoints = %d, want %d", p.TotalPoints(), sum)
	}
}

func TestWordValue(t *testing.T) {
	p := mustBuild(t, "violent", 'l')
	tests := []struct {
		word string
		want int
	}{
		{"live", 1},
		{"LIVE", 1},
		{"lentil", 6},
		{"liven", 5},
		{"violent", 14},
		{"note", 0},
		{"violently", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := p.WordValue(tt.word); got != tt.want {
			t.Errorf("WordValue(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestGuess(t *testing.T) {
	p := mustBuild(t, "violent", 'l')

	if got := p.Guess("live"); got != 1 {
		t.Fatalf("Guess(live) = %d, want 1", got)
	}
	if got := p.Guess("lentil"); got != 6 {
		t.Fatalf("Guess(lentil) = %d, want 6", got)
	}
	if got := p.Guess("Live"); got != -1 {
		t.Errorf("repeat Guess(Live) = %d, want -1", got)
	}
	if got := p.Guess("note"); got != 0 {
		t.Errorf("Guess(note) = %d, want 0", got)
	}
	if p.EarnedPoints() != 7 {
		t.Errorf("EarnedPoints = %d, want 7", p.EarnedPoints())
	}
	found := p.Found()
	if !sort.StringsAreSorted(found) || len(found) != 2 {
		t.Errorf("Found = %v, want two sorted words", found)
	}
}

func TestShufflePreservesLetters(t *testing.T) {
	p := mustBuild(t, "violent", 'l')
	total, valid := p.TotalPoints(), len(p.ValidWords())
	sorted := func(rs []rune) string {
		s := []string{}
		for _, r := range rs {
			s = append(s, string(r))
		}
		sort.Strings(s)
		return strings.Join(s, "")
	}
	want := sorted(p.Secondary())
	orders := map[string]bool{}
	for i := 0; i < 50; i++ {
		p.Shuffle()
		if got := sorted(p.Secondary()); got != want {
			t.Fatalf("Shuffle changed letter set: %q, want %q", got, want)
		}
		orders[string(p.Secondary())] = true
	}
	if len(orders) < 2 {
		t.Errorf("50 shuffles produced %d distinct orders", len(orders))
	}
	if p.Primary() != 'l' || p.TotalPoints() != total || len(p.ValidWords()) != valid {
		t.Errorf("Shuffle changed puzzle state")
	}
}

func TestRandom(t *testing.T) {
	src := violentSource()
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5; i++ {
		p, err := Random(src, rng)
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		if p.EarnedPoints() != 0 {
			t.Errorf("EarnedPoints = %d, want 0", p.EarnedPoints())
		}
		sec := p.Secondary()
		if len(sec) != SecondaryCount {
			t.Fatalf("Secondary = %q, want %d letters", string(sec), SecondaryCount)
		}
		seen := map[rune]bool{p.Primary(): true}
		for _, r := range sec {
			if seen[r] {
				t.Errorf("letter %q repeated in %q", r, p.Letters())
			}
			seen[r] = true
		}
	}
}

func TestRandomNoUsableRoots(t *testing.T) {
	src := fixtureSource{dict: violentDict, roots: []string{"balloon", "tiny", ""}}
	if _, err := Random(src, nil); !errors.Is(err, ErrNoRootWords) {
		t.Fatalf("err = %v, want ErrNoRootWords", err)
	}
}

func TestRestore(t *testing.T) {
	p, err := Restore(State{
		Primary:    'l',
		Secondary:  []rune("vioent"),
		ValidWords: []string{"live", "lentil", "violent"},
		Found:      []string{"violent", "live"},
		Earned:     15,
		Total:      1700,
	})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if p.TotalPoints() != 1700 || p.EarnedPoints() != 15 {
		t.Errorf("points = %d/%d, want 15/1700", p.EarnedPoints(), p.TotalPoints())
	}
	if got := strings.Join(p.Found(), ","); got != "live,violent" {
		t.Errorf("Found = %q, want sorted", got)
	}
	if got := p.Guess("lentil"); got != 6 {
		t.Errorf("Guess(lentil) = %d, want 6", got)
	}
}

func TestRestoreRejectsInconsistentState(t *testing.T) {
	base := func() State {
		return State{
			Primary:    'l',
			Secondary:  []rune("vioent"),
			ValidWords: []string{"live", "lentil"},
			Total:      7,
		}
	}
	tests := []struct {
		name   string
		mutate func(*State)
	}{
		{"short letters", func(s *State) { s.Secondary = []rune("vioen") }},
		{"duplicate letters", func(s *State) { s.Secondary = []rune("vioenl") }},
		{"bad answer", func(s *State) { s.ValidWords = append(s.ValidWords, "note") }},
		{"found not answer", func(s *State) { s.Found = []string{"olive"} }},
		{"negative", func(s *State) { s.Earned = -1 }},
		{"earned over total", func(s *State) { s.Earned = 8 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := base()
			tt.mutate(&st)
			if _, err := Restore(st); !errors.Is(err, ErrInvalidState) {
				t.Fatalf("err = %v, want ErrInvalidState", err)
			}
		})
	}
}
