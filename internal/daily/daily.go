// internal/daily/daily.go
//
// Deterministic "puzzle of the day" selection.
//
// The root word is picked with HMAC-SHA256(salt, YYYY-MM-DD) modulo the
// root count, and the required letter with the next bytes of the same MAC.
// Roots that cannot seed a puzzle are skipped by walking forward through
// the list, so every player with the same lists and salt gets the same puzzle.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/hive/internal/puzzle"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func mac(date time.Time, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	return h.Sum(nil)
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	sum := mac(date, salt)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// letterIndex picks a position inside a word of length n for the date.
func letterIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	sum := mac(date, salt)
	return int(binary.BigEndian.Uint64(sum[8:16]) % uint64(n))
}

// Puzzle builds the puzzle of the day from src.
func Puzzle(date time.Time, salt string, src puzzle.RootSource) (*puzzle.Puzzle, error) {
	roots := src.Roots()
	start := WordIndex(date, salt, len(roots))
	for k := 0; k < len(roots); k++ {
		word := []rune(roots[(start+k)%len(roots)])
		if len(word) == 0 {
			continue
		}
		req := word[letterIndex(date, salt, len(word))]
		p, err := puzzle.Build(puzzle.Params{Seed: string(word), Required: req, KnownRoot: true}, src)
		if err == nil {
			return p, nil
		}
	}
	return nil, puzzle.ErrNoRootWords
}
