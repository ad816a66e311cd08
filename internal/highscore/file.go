package highscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilePersister keeps the table as a JSON object in a single file.
// The file is rewritten in full on every save.
type FilePersister struct {
	Path string
}

// DefaultPath returns the per-user location of the high-score file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hive", "highscores.json"), nil
}

// Load reads the table. A missing file is an empty table.
func (f *FilePersister) Load(ctx context.Context) (map[string]int, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, err
	}
	scores := map[string]int{}
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return scores, nil
}

// Save replaces the file with scores.
func (f *FilePersister) Save(ctx context.Context, scores map[string]int) error {
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(f.Path), err)
	}
	// Each writer gets its own temp file so concurrent saves never share one.
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".highscores-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(0o644)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(name, f.Path)
	}
	if err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}
