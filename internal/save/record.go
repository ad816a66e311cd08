// internal/save/record.go
//
// On-disk save record for a puzzle.
//
// A record carries the letters, progress and answers of a puzzle. The
// answers are stored in one of two variants:
//   - "plain":     ValidWords holds the word list as-is.
//   - "encrypted": Payload holds the newline-joined word list sealed by a
//                  caller-supplied Cipher (base64 in JSON).
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/hive/internal/puzzle"
)

// Variant tags how the answers are stored in a record.
type Variant string

const (
	VariantPlain     Variant = "plain"
	VariantEncrypted Variant = "encrypted"
)

// Record is the serialized form of a puzzle.
type Record struct {
	BaseWord       string   `json:"baseWord"`       // 6 secondary letters then the primary
	RequiredLetter string   `json:"requiredLetter"` // the primary letter
	FoundWords     []string `json:"foundWords"`
	PlayerPoints   int      `json:"playerPoints"`
	MaxPoints      int      `json:"maxPoints"`
	Variant        Variant  `json:"variant"`
	ValidWords     []string `json:"validWords,omitempty"`
	Payload        []byte   `json:"payload,omitempty"`
}

// NewRecord captures p. With a nil cipher the plain variant is produced.
func NewRecord(p *puzzle.Puzzle, c Cipher) (Record, error) {
	r := Record{
		BaseWord:       p.Letters(),
		RequiredLetter: string(p.Primary()),
		FoundWords:     p.Found(),
		PlayerPoints:   p.EarnedPoints(),
		MaxPoints:      p.TotalPoints(),
		Variant:        VariantPlain,
	}
	if c == nil {
		r.ValidWords = p.ValidWords()
		return r, nil
	}
	sealed, err := c.Encrypt([]byte(strings.Join(p.ValidWords(), "\n")))
	if err != nil {
		return Record{}, fmt.Errorf("encrypt word list: %w", err)
	}
	r.Variant = VariantEncrypted
	r.Payload = sealed
	return r, nil
}

// Puzzle rebuilds the puzzle described by r. The encrypted variant needs c.
func (r Record) Puzzle(c Cipher) (*puzzle.Puzzle, error) {
	if utf8.RuneCountInString(r.BaseWord) != puzzle.LetterCount {
		return nil, fmt.Errorf("base word %q: want %d letters", r.BaseWord, puzzle.LetterCount)
	}
	letters := []rune(strings.ToLower(r.BaseWord))
	req := []rune(strings.ToLower(r.RequiredLetter))
	if len(req) != 1 || req[0] != letters[puzzle.SecondaryCount] {
		return nil, fmt.Errorf("required letter %q does not end base word %q", r.RequiredLetter, r.BaseWord)
	}

	var words []string
	switch r.Variant {
	case VariantPlain:
		words = r.ValidWords
	case VariantEncrypted:
		if c == nil {
			return nil, errors.New("encrypted record needs a cipher")
		}
		plain, err := c.Decrypt(r.Payload)
		if err != nil {
			return nil, fmt.Errorf("decrypt word list: %w", err)
		}
		if len(plain) > 0 {
			words = strings.Split(string(plain), "\n")
		}
	default:
		return nil, fmt.Errorf("unknown variant %q", r.Variant)
	}

	return puzzle.Restore(puzzle.State{
		Primary:    req[0],
		Secondary:  letters[:puzzle.SecondaryCount],
		ValidWords: words,
		Found:      r.FoundWords,
		Earned:     r.PlayerPoints,
		Total:      r.MaxPoints,
	})
}

// Encode marshals r as indented JSON.
func Encode(r Record) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Decode parses a JSON record.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}
