package puzzle

import (
	"runtime"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// helpChunk is the minimum number of answers handed to one worker.
const helpChunk = 256

// computeHelp derives hint statistics from the sorted answers. Each worker
// fills its own partial result; partials are merged after Wait.
func computeHelp(words []string, isPangram func(string) bool) HelpData {
	workers := min(runtime.GOMAXPROCS(0), len(words)/helpChunk+1)
	size := (len(words) + workers - 1) / workers
	partials := make([]HelpData, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		lo := min(i*size, len(words))
		hi := min(lo+size, len(words))
		out := &partials[i]
		g.Go(func() error {
			*out = summarize(words[lo:hi], isPangram)
			return nil
		})
	}
	// Workers never fail; Wait only joins them.
	_ = g.Wait()

	merged := newHelpData()
	for _, part := range partials {
		merged.WordCount += part.WordCount
		merged.Pangrams += part.Pangrams
		merged.PerfectPangrams += part.PerfectPangrams
		for first, lengths := range part.Grid {
			row := merged.Grid[first]
			if row == nil {
				row = make(map[int]int)
				merged.Grid[first] = row
			}
			for n, c := range lengths {
				row[n] += c
			}
		}
		for prefix, c := range part.Prefixes {
			merged.Prefixes[prefix] += c
		}
	}
	return merged
}

// summarize computes the statistics for one slice of answers.
func summarize(words []string, isPangram func(string) bool) HelpData {
	h := newHelpData()
	for _, w := range words {
		runes := []rune(w)
		if len(runes) == 0 {
			continue
		}
		h.WordCount++
		if isPangram(w) {
			h.Pangrams++
			if len(runes) == LetterCount {
				h.PerfectPangrams++
			}
		}

		first := string(runes[0])
		row := h.Grid[first]
		if row == nil {
			row = make(map[int]int)
			h.Grid[first] = row
		}
		row[utf8.RuneCountInString(w)]++

		if len(runes) >= 2 {
			h.Prefixes[string(runes[:2])]++
		}
	}
	return h
}

func newHelpData() HelpData {
	return HelpData{
		Grid:     make(map[string]map[int]int),
		Prefixes: make(map[string]int),
	}
}
