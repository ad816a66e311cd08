// internal/save/save.go
//
// Save and load puzzles as JSON files.
//
// Save names the file after the puzzle letters, so saving the same puzzle
// twice (with the same display order) overwrites the earlier file in full.
// Load never touches any in-memory puzzle; it returns a new one or ErrLoad.
package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hive/internal/puzzle"
)

// ErrLoad wraps every failure to read or rebuild a saved puzzle.
var ErrLoad = errors.New("load puzzle")

// Ext is the file extension of save files.
const Ext = ".json"

// Status is the result kind of a save.
type Status int

const (
	StatusCreated Status = iota
	StatusOverwritten
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusOverwritten:
		return "overwritten"
	default:
		return "failed"
	}
}

// Outcome reports what a save did.
type Outcome struct {
	Path   string
	Status Status
	Err    error
}

// OK reports whether the file was written.
func (o Outcome) OK() bool { return o.Status != StatusFailed }

// String is the message shown to the player.
func (o Outcome) String() string {
	switch o.Status {
	case StatusCreated:
		return fmt.Sprintf("Puzzle saved to %s", o.Path)
	case StatusOverwritten:
		return fmt.Sprintf("Puzzle saved to %s (overwrote previous save)", o.Path)
	default:
		return fmt.Sprintf("Could not save puzzle to %s: %v", o.Path, o.Err)
	}
}

// FileName derives the save file name from the puzzle letters.
func FileName(p *puzzle.Puzzle) string {
	return p.Letters() + Ext
}

// Save writes p into dir. A nil cipher writes the plain variant.
func Save(dir string, p *puzzle.Puzzle, c Cipher) Outcome {
	path := filepath.Join(dir, FileName(p))
	fail := func(err error) Outcome {
		log.Warn().Err(err).Str("path", path).Msg("save puzzle")
		return Outcome{Path: path, Status: StatusFailed, Err: err}
	}

	rec, err := NewRecord(p, c)
	if err != nil {
		return fail(err)
	}
	data, err := Encode(rec)
	if err != nil {
		return fail(err)
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(fmt.Errorf("mkdir %s: %w", dir, err))
		}
	}

	status := StatusCreated
	if _, err := os.Stat(path); err == nil {
		status = StatusOverwritten
	}
	if err := writeFile(path, data); err != nil {
		return fail(err)
	}
	log.Info().Str("path", path).Str("status", status.String()).Str("variant", string(rec.Variant)).Msg("puzzle saved")
	return Outcome{Path: path, Status: status}
}

// saveFileMode is the permission of every save file.
const saveFileMode = 0o644

// writeFile replaces path with data via a temp file in the same directory.
// CreateTemp opens the file 0600, so it is widened before the rename.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".save-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Chmod(saveFileMode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}

// Load reads the record at path and rebuilds its puzzle. The answers come
// from the record itself; no dictionary is consulted.
func Load(path string, c Cipher) (*puzzle.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	rec, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	p, err := rec.Puzzle(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	log.Info().Str("path", path).Str("variant", string(rec.Variant)).Msg("puzzle loaded")
	return p, nil
}
