package state

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/mux-launcher/internal/catalog"
)

// FilterEntries returns the entries whose labels fuzzily match needle,
// best-ranked first. Ties keep catalog order. An empty needle returns the
// catalog unchanged.
func FilterEntries(entries catalog.Catalog, needle string) catalog.Catalog {
	if needle == "" {
		return entries
	}
	type ranked struct {
		entry catalog.Entry
		score int
	}
	matches := make([]ranked, 0, len(entries))
	for _, e := range entries {
		if !fuzzy.MatchNormalizedFold(needle, e.Label) {
			continue
		}
		matches = append(matches, ranked{entry: e, score: Score(needle, e.Label)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	out := make(catalog.Catalog, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}

// Score rates how well needle matches haystack as a subsequence. Matched
// runes earn points, runs of adjacent matches and matches on word
// boundaries earn more, and every skipped haystack rune costs one. Good
// scores cluster the needle near the start of the label.
func Score(needle, haystack string) int {
	n := []rune(strings.ToLower(needle))
	h := []rune(strings.ToLower(haystack))
	if len(n) == 0 {
		return 0
	}
	score := 0
	ni := 0
	prevMatched := false
	for hi := 0; hi < len(h) && ni < len(n); hi++ {
		if h[hi] != n[ni] {
			score--
			prevMatched = false
			continue
		}
		score += 2
		if prevMatched {
			score += 3
		}
		if hi == 0 || isBoundary(h[hi-1]) {
			score += 4
		}
		prevMatched = true
		ni++
	}
	if ni < len(n) {
		return 0
	}
	return score
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}
