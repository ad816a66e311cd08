// cmd/play.go
//
// Line-oriented terminal session. Every input line is a guess, except:
//   !shuffle  reorder the outer letters
//   !found    list the words found so far
//   !help     show hint statistics
//   !save     write a save file
//   !load F   replace the puzzle with save file F (bare names are looked
//             up in the save directory)
//   !quit     leave (recording the score when --name is given)
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/robalobadob/hive/internal/daily"
	"github.com/robalobadob/hive/internal/puzzle"
	"github.com/robalobadob/hive/internal/save"
	"github.com/robalobadob/hive/internal/session"
)

var (
	playSeed     string
	playRequired string
	playDaily    bool
	playLoad     string
	playName     string
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a puzzle in the terminal",
		Long: `Play a puzzle in the terminal.

Examples:
  hive play
  hive play --seed violent --required l
  hive play --daily --name ann
  hive play --load saves/vioentl.json`,
		RunE: runPlay,
	}
	playCmd.Flags().StringVarP(&playSeed, "seed", "s", "", "Seed word (random puzzle when empty)")
	playCmd.Flags().StringVarP(&playRequired, "required", "r", "", "Required letter for --seed")
	playCmd.Flags().BoolVar(&playDaily, "daily", false, "Play today's puzzle")
	playCmd.Flags().StringVar(&playLoad, "load", "", "Resume a saved puzzle")
	playCmd.Flags().StringVarP(&playName, "name", "n", "", "Player name for the high-score table")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cipher, err := saveCipher()
	if err != nil {
		return err
	}
	p, err := playPuzzle(cipher)
	if err != nil {
		return err
	}
	scores, closeScores, err := openScores(cmd.Context())
	if err != nil {
		return err
	}
	defer closeScores()

	sess := session.New(p, session.Options{SaveDir: cfg.SaveDir, Cipher: cipher, Scores: scores})
	out := cmd.OutOrStdout()
	printBoard(out, sess.Snapshot())

	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "!quit":
			return finishPlay(cmd, sess)
		case "!shuffle":
			sess.Shuffle()
			printBoard(out, sess.Snapshot())
		case "!found":
			found := sess.Snapshot().Found
			fmt.Fprintf(out, "%d found: %s\n", len(found), strings.Join(found, ", "))
		case "!help":
			printHelp(out, sess.Help())
		case "!save":
			fmt.Fprintln(out, sess.Save().String())
		case "!load":
			fmt.Fprintln(out, "usage: !load <file>")
		default:
			if name, ok := strings.CutPrefix(line, "!load "); ok {
				if err := sess.Load(savePath(strings.TrimSpace(name))); err != nil {
					fmt.Fprintf(out, "Load failed: %v\n", err)
					continue
				}
				printBoard(out, sess.Snapshot())
				continue
			}
			res := sess.Guess(line)
			snap := sess.Snapshot()
			fmt.Fprintf(out, "%s  [%s %d/%d]\n", res.Message, res.Rank.Name, snap.Earned, snap.Total)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return finishPlay(cmd, sess)
}

// playPuzzle builds the puzzle selected by the flags.
func playPuzzle(cipher save.Cipher) (*puzzle.Puzzle, error) {
	if playLoad != "" {
		return save.Load(savePath(playLoad), cipher)
	}
	src, err := loadWords()
	if err != nil {
		return nil, err
	}
	switch {
	case playDaily:
		return daily.Puzzle(time.Now(), cfg.DailySalt, src)
	case playSeed != "":
		if utf8.RuneCountInString(playRequired) != 1 {
			return nil, errors.New("--required must be a single letter")
		}
		req, _ := utf8.DecodeRuneInString(playRequired)
		return puzzle.Build(puzzle.Params{Seed: playSeed, Required: req}, src)
	default:
		return puzzle.Random(src, nil)
	}
}

// savePath resolves a bare file name against the save directory.
func savePath(name string) string {
	if filepath.Base(name) == name {
		return filepath.Join(cfg.SaveDir, name)
	}
	return name
}

func finishPlay(cmd *cobra.Command, sess *session.Session) error {
	out := cmd.OutOrStdout()
	snap := sess.Snapshot()
	fmt.Fprintf(out, "Final: %d/%d points, %s\n", snap.Earned, snap.Total, snap.Rank.Current.Name)
	if playName == "" {
		return nil
	}
	ok, err := sess.SubmitScore(cmd.Context(), playName)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(out, "New high score for %s!\n", playName)
	}
	return nil
}

func printBoard(w io.Writer, snap session.Snapshot) {
	outer := strings.Join(strings.Split(snap.Secondary, ""), " ")
	fmt.Fprintf(w, "[%s]  %s   (%d words, %d points)\n", strings.ToUpper(snap.Primary), strings.ToUpper(outer), snap.WordCount, snap.Total)
}

func printHelp(w io.Writer, h puzzle.HelpData) {
	fmt.Fprintf(w, "words: %d  pangrams: %d  perfect: %d\n", h.WordCount, h.Pangrams, h.PerfectPangrams)

	letters := make([]string, 0, len(h.Grid))
	for l := range h.Grid {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	for _, l := range letters {
		lengths := make([]int, 0, len(h.Grid[l]))
		for n := range h.Grid[l] {
			lengths = append(lengths, n)
		}
		sort.Ints(lengths)
		parts := make([]string, 0, len(lengths))
		for _, n := range lengths {
			parts = append(parts, fmt.Sprintf("%d×%d", h.Grid[l][n], n))
		}
		fmt.Fprintf(w, "  %s: %s\n", strings.ToUpper(l), strings.Join(parts, " "))
	}

	prefixes := make([]string, 0, len(h.Prefixes))
	for p := range h.Prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	parts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		parts = append(parts, fmt.Sprintf("%s-%d", strings.ToUpper(p), h.Prefixes[p]))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, " "))
}
