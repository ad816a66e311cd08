package puzzle

import "errors"

// Construction errors. All are caller-correctable; no puzzle is returned.
var (
	ErrSeedTooShort         = errors.New("seed word is shorter than seven letters")
	ErrRequiredLetterAbsent = errors.New("required letter does not occur in seed word")
	ErrTooFewUniqueLetters  = errors.New("seed word has fewer than seven distinct letters")
	ErrNotARootWord         = errors.New("seed word is not a root word")
)

var (
	// ErrNoRootWords is returned by Random when no root word yields a puzzle.
	ErrNoRootWords = errors.New("no usable root words")
	// ErrInvalidState is returned by Restore for inconsistent saved state.
	ErrInvalidState = errors.New("invalid puzzle state")
)
