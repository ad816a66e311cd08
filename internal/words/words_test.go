package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	s, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d, r := s.Stats()
	if d == 0 || r == 0 {
		t.Fatalf("Stats = (%d, %d), want non-empty lists", d, r)
	}
	if !s.IsRoot("violent") {
		t.Errorf("IsRoot(violent) = false, want true")
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "dict.txt")
	roots := filepath.Join(dir, "roots.txt")
	if err := os.WriteFile(dict, []byte("Live\n\n  lentil \nviolent\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(roots, []byte("VIOLENT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(dict, roots)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := s.Dictionary()
	want := []string{"live", "lentil", "violent"}
	if len(got) != len(want) {
		t.Fatalf("Dictionary = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dictionary[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !s.IsRoot("Violent") {
		t.Errorf("IsRoot is not case-insensitive")
	}
	if s.IsRoot("live") {
		t.Errorf("IsRoot(live) = true, want false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), "")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestRootsReturnsCopy(t *testing.T) {
	s := New(nil, []string{"violent"})
	r := s.Roots()
	r[0] = "changed"
	if s.Roots()[0] != "violent" {
		t.Errorf("Roots exposed internal slice")
	}
}
