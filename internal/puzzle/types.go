// internal/puzzle/types.go
//
// Core type definitions for the puzzle engine.
// Defines:
//   - Params:    validated input for building a puzzle from a seed word.
//   - Puzzle:    state for a single puzzle (letters, answers, progress).
//   - State:     raw saved state accepted by Restore.
//   - HelpData:  read-only hint statistics derived from the answers.
//   - WordSource / RootSource: what the engine needs from the word lists.

package puzzle

const (
	// LetterCount is the number of distinct letters in every puzzle.
	LetterCount = 7
	// SecondaryCount is the number of letters besides the primary one.
	SecondaryCount = LetterCount - 1
	// PangramBonus is added to the value of any pangram.
	PangramBonus = 7
)

// WordSource supplies the full dictionary and root-membership checks.
type WordSource interface {
	Dictionary() []string
	IsRoot(w string) bool
}

// RootSource additionally lists the root words for random construction.
type RootSource interface {
	WordSource
	Roots() []string
}

// Params describes a puzzle to build from a seed word.
type Params struct {
	Seed      string // seed word; needs at least seven distinct letters
	Required  rune   // primary letter, must occur in Seed
	KnownRoot bool   // skip the root-list membership check
}

// Puzzle holds the state of a single letter-set puzzle.
//
// The letter set and the answers are fixed at construction. Only Guess
// (grows found/earned) and Shuffle (reorders secondary) mutate a Puzzle,
// and neither is safe for concurrent use.
type Puzzle struct {
	primary   rune
	secondary []rune              // display order, always SecondaryCount letters
	valid     map[string]struct{} // answers
	validList []string            // answers, sorted
	found     []string            // guessed answers, sorted
	total     int                 // Σ WordValue over answers
	earned    int                 // Σ WordValue over found
	help      HelpData
}

// State is the raw progress of a puzzle as stored in a save record.
type State struct {
	Primary    rune
	Secondary  []rune
	ValidWords []string
	Found      []string
	Earned     int
	Total      int
}

// HelpData summarises the answers of a puzzle for hints.
type HelpData struct {
	WordCount       int                    `json:"wordCount"`
	Pangrams        int                    `json:"pangrams"`
	PerfectPangrams int                    `json:"perfectPangrams"`
	Grid            map[string]map[int]int `json:"grid"`     // first letter → length → count
	Prefixes        map[string]int         `json:"prefixes"` // two-letter prefix → count
}
