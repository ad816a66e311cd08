package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/robalobadob/hive/internal/highscore"
	"github.com/robalobadob/hive/internal/store"
	"github.com/robalobadob/hive/internal/words"
)

type nopPersister struct{}

func (nopPersister) Load(context.Context) (map[string]int, error) { return map[string]int{}, nil }
func (nopPersister) Save(context.Context, map[string]int) error   { return nil }

func testServer(t *testing.T) *Server {
	t.Helper()
	scores, err := highscore.Open(context.Background(), nopPersister{})
	if err != nil {
		t.Fatal(err)
	}
	return New(Deps{
		Words: words.New(
			[]string{"live", "lentil", "violent", "liven", "novel", "little", "note"},
			[]string{"violent"},
		),
		Sessions:  store.NewMemoryStore(),
		Scores:    scores,
		SaveDir:   t.TempDir(),
		DailySalt: "test",
	})
}

func do(t *testing.T, s *Server, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if out != nil {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return rec.Code
}

func newViolent(t *testing.T, s *Server) puzzleRes {
	t.Helper()
	var res puzzleRes
	if code := do(t, s, http.MethodPost, "/puzzle/new", `{"seed":"violent","required":"l"}`, &res); code != http.StatusCreated {
		t.Fatalf("new puzzle: status %d", code)
	}
	return res
}

func TestNewAndGuess(t *testing.T) {
	s := testServer(t)
	res := newViolent(t, s)
	if res.ID == "" || res.Puzzle.Letters != "vioentl" {
		t.Fatalf("new = %+v", res)
	}

	var g guessRes
	if code := do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/guess", `{"word":"live"}`, &g); code != http.StatusOK {
		t.Fatalf("guess status %d", code)
	}
	if g.Points != 1 || g.Puzzle.Earned != 1 {
		t.Errorf("guess = %+v", g)
	}
	do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/guess", `{"word":"live"}`, &g)
	if g.Points != -1 {
		t.Errorf("repeat guess points = %d, want -1", g.Points)
	}
}

func TestNewErrors(t *testing.T) {
	s := testServer(t)
	var e errorRes
	if code := do(t, s, http.MethodPost, "/puzzle/new", `{"seed":"lion","required":"l"}`, &e); code != http.StatusBadRequest || e.Error != "seed_too_short" {
		t.Errorf("short seed = %d %+v", code, e)
	}
	if code := do(t, s, http.MethodPost, "/puzzle/new", `{"seed":"violent","required":"z"}`, &e); code != http.StatusBadRequest || e.Error != "required_letter_absent" {
		t.Errorf("absent letter = %d %+v", code, e)
	}
	if code := do(t, s, http.MethodPost, "/puzzle/new", `{"seed":"novelties","required":"n"}`, &e); code != http.StatusBadRequest || e.Error != "not_a_root_word" {
		t.Errorf("not root = %d %+v", code, e)
	}
}

func TestRandomAndDaily(t *testing.T) {
	s := testServer(t)
	var res puzzleRes
	if code := do(t, s, http.MethodPost, "/puzzle/new", "", &res); code != http.StatusCreated {
		t.Fatalf("random status %d", code)
	}
	if res.Puzzle.Earned != 0 || res.Puzzle.Rank.Current.Name != "Beginner" {
		t.Errorf("random = %+v", res.Puzzle)
	}
	if code := do(t, s, http.MethodPost, "/puzzle/new", `{"daily":true}`, &res); code != http.StatusCreated {
		t.Fatalf("daily status %d", code)
	}
}

func TestShuffleAndHelp(t *testing.T) {
	s := testServer(t)
	res := newViolent(t, s)

	var sh map[string]string
	do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/shuffle", "", &sh)
	if got := sh["letters"]; len(got) != 7 || got[6] != 'l' {
		t.Errorf("shuffle letters = %q", got)
	}

	var help struct {
		WordCount int `json:"wordCount"`
		Pangrams  int `json:"pangrams"`
	}
	do(t, s, http.MethodGet, "/puzzle/"+res.ID+"/help", "", &help)
	if help.WordCount != 6 || help.Pangrams != 1 {
		t.Errorf("help = %+v", help)
	}
}

func TestSaveLoad(t *testing.T) {
	s := testServer(t)
	res := newViolent(t, s)
	do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/guess", `{"word":"violent"}`, nil)

	var out saveRes
	if code := do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/save", "", &out); code != http.StatusOK || out.Status != "created" {
		t.Fatalf("save = %d %+v", code, out)
	}
	do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/save", "", &out)
	if out.Status != "overwritten" {
		t.Errorf("second save status = %q", out.Status)
	}

	var loaded puzzleRes
	if code := do(t, s, http.MethodPost, "/puzzle/load", `{"path":"`+out.File+`"}`, &loaded); code != http.StatusOK {
		t.Fatalf("load status %d", code)
	}
	if loaded.ID == res.ID || loaded.Puzzle.Earned != 14 {
		t.Errorf("loaded = %+v", loaded)
	}

	// Directories in the path are ignored; the file comes from the save dir.
	var elsewhere puzzleRes
	if code := do(t, s, http.MethodPost, "/puzzle/load", `{"path":"../../elsewhere/`+out.File+`"}`, &elsewhere); code != http.StatusOK {
		t.Fatalf("load with directories = %d", code)
	}
	if elsewhere.Puzzle.Earned != 14 {
		t.Errorf("loaded = %+v", elsewhere)
	}

	var e errorRes
	if code := do(t, s, http.MethodPost, "/puzzle/load", `{"path":"nope.json"}`, &e); code != http.StatusUnprocessableEntity {
		t.Errorf("missing load = %d %+v", code, e)
	}
	if code := do(t, s, http.MethodPost, "/puzzle/load", `{"path":"/etc/passwd"}`, &e); code != http.StatusUnprocessableEntity {
		t.Errorf("outside save dir = %d %+v", code, e)
	}
	if code := do(t, s, http.MethodPost, "/puzzle/load", `{}`, &e); code != http.StatusBadRequest {
		t.Errorf("no path = %d %+v", code, e)
	}
}

func TestScores(t *testing.T) {
	s := testServer(t)
	res := newViolent(t, s)
	do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/guess", `{"word":"lentil"}`, nil)

	var e errorRes
	if code := do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/score", `{"name":""}`, &e); code != http.StatusBadRequest {
		t.Errorf("empty name = %d", code)
	}
	if code := do(t, s, http.MethodPost, "/puzzle/"+res.ID+"/score", `{"name":"ann"}`, nil); code != http.StatusOK {
		t.Fatalf("submit status %d", code)
	}

	var top scoresRes
	do(t, s, http.MethodGet, "/scores", "", &top)
	if len(top.Top) != 1 || top.Top[0].Name != "ann" || top.Top[0].Score != 6 {
		t.Errorf("scores = %+v", top)
	}

	var check map[string]bool
	do(t, s, http.MethodGet, "/scores/check?score=0", "", &check)
	if !check["isHighScore"] {
		t.Errorf("check = %v, want true with a non-full table", check)
	}
}

func TestRecordScore(t *testing.T) {
	s := testServer(t)
	var e errorRes
	if code := do(t, s, http.MethodPost, "/scores", `{"name":"","score":5}`, &e); code != http.StatusBadRequest || e.Error != "empty_name" {
		t.Errorf("empty name = %d %+v", code, e)
	}
	if code := do(t, s, http.MethodPost, "/scores", `{"name":"bob","score":-1}`, &e); code != http.StatusBadRequest || e.Error != "bad_score" {
		t.Errorf("negative score = %d %+v", code, e)
	}

	var res struct {
		Recorded bool              `json:"recorded"`
		Top      []highscore.Entry `json:"top"`
	}
	if code := do(t, s, http.MethodPost, "/scores", `{"name":"bob","score":42}`, &res); code != http.StatusOK {
		t.Fatalf("record status %d", code)
	}
	if !res.Recorded || len(res.Top) != 1 || res.Top[0].Name != "bob" || res.Top[0].Score != 42 {
		t.Errorf("record = %+v", res)
	}
	do(t, s, http.MethodPost, "/scores", `{"name":"bob","score":10}`, &res)
	if res.Recorded || res.Top[0].Score != 42 {
		t.Errorf("lower score = %+v, want table unchanged", res)
	}
}

func TestUnknownSession(t *testing.T) {
	s := testServer(t)
	var e errorRes
	if code := do(t, s, http.MethodGet, "/puzzle/nope", "", &e); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}
