// Package search ranks media titles against free-text queries.
package search

import (
	"sort"
	"strings"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Index implements sahilm/fuzzy.Source over pre-lowercased titles
type Index struct {
	titles      []string
	lowerTitles []string
}

// NewIndex builds an index over titles, keeping their order
func NewIndex(titles []string) *Index {
	lower := make([]string, len(titles))
	for i, t := range titles {
		lower[i] = strings.ToLower(t)
	}
	return &Index{titles: titles, lowerTitles: lower}
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of titles (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.titles) }

// Match is a ranked search result
type Match struct {
	Index          int    // Index in the source slice
	Title          string // Original title
	Score          int    // Lower is better
	MatchedIndexes []int  // Character positions that matched, for highlighting
}

// Score bands
const (
	scoreExact    = 0
	scorePrefix   = 10
	scoreContains = 50
	scoreFuzzy    = 100
)

// Rank returns the titles matching query, best first.
// Subsequence matches come from sahilm/fuzzy; whole-title typos within a
// small edit distance are also accepted.
func Rank(query string, titles []string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(titles) == 0 {
		return nil
	}

	idx := NewIndex(titles)
	found := make(map[int]Match)

	for _, m := range fuzzy.FindFrom(query, idx) {
		found[m.Index] = Match{
			Index:          m.Index,
			Title:          titles[m.Index],
			Score:          score(idx.lowerTitles[m.Index], query),
			MatchedIndexes: m.MatchedIndexes,
		}
	}

	limit := typoLimit(query)
	for i, title := range idx.lowerTitles {
		if _, ok := found[i]; ok {
			continue
		}
		if d := fuzzysearch.LevenshteinDistance(query, title); d <= limit {
			found[i] = Match{Index: i, Title: titles[i], Score: scoreFuzzy + d}
		}
	}

	matches := make([]Match, 0, len(found))
	for _, m := range found {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		if len(matches[i].Title) != len(matches[j].Title) {
			return len(matches[i].Title) < len(matches[j].Title)
		}
		return matches[i].Index < matches[j].Index
	})
	return matches
}

// Closest returns the candidate nearest to name, for "did you mean" hints.
// It reports false when nothing is reasonably close.
func Closest(name string, candidates []string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || len(candidates) == 0 {
		return "", false
	}

	// Prefer candidates that contain the input as a subsequence
	if ranks := fuzzysearch.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target, true
	}

	best, bestDist := "", -1
	for _, c := range candidates {
		d := fuzzysearch.LevenshteinDistance(name, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist > max(2, len([]rune(name))/2) {
		return "", false
	}
	return best, true
}

// score ranks a lowercase title against a lowercase query, lower is better
func score(title, query string) int {
	switch {
	case title == query:
		return scoreExact
	case strings.HasPrefix(title, query):
		return scorePrefix
	case strings.Contains(title, query):
		return scoreContains
	default:
		return scoreFuzzy + fuzzysearch.LevenshteinDistance(query, title)
	}
}

// typoLimit is the edit distance tolerated for a query of this length
func typoLimit(query string) int {
	n := len([]rune(query))
	switch {
	case n < 4:
		return 0
	case n < 8:
		return 1
	default:
		return 2
	}
}
