// assets/embed.go
//
// Embedded default word lists. Used when no dictionary files are configured
// so the engine can always build a puzzle.
//
//   - dictionary.txt: full dictionary, one lowercase word per line.
//   - roots.txt:      words eligible to seed a puzzle.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed dictionary.txt roots.txt
var FS embed.FS

// ReadLines reads newline-delimited words, lowercasing and trimming each.
// Blank lines and "#" comments are skipped.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readEmbedded(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// DictionaryList returns the embedded full dictionary.
func DictionaryList() ([]string, error) {
	return readEmbedded("dictionary.txt")
}

// RootList returns the embedded root (seed) words.
func RootList() ([]string, error) {
	return readEmbedded("roots.txt")
}
