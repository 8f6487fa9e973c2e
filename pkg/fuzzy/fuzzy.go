package fuzzy

import (
	"sort"
	"strings"
)

// LevenshteinDistance calculates the edit distance between two strings
// This measures how many single-character edits (insertions, deletions, or substitutions)
// are required to change one string into another
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalizeString(s1)
	s2 = normalizeString(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}

	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

// TitleScore scores how well a query matches a task title, 0-100.
// Word order is ignored: both strings are tokenized, sorted and rejoined
// before comparison, so "math homework" matches "Homework Math 3".
func TitleScore(query, title string) int {
	q := sortedTokens(query)
	t := sortedTokens(title)
	if q == "" || t == "" {
		return 0
	}
	if q == t {
		return 100
	}

	// Containment of the whole query counts as a strong match.
	if strings.Contains(normalizeString(title), normalizeString(query)) {
		return 90
	}

	dist := LevenshteinDistance(q, t)
	maxLen := len(q)
	if len(t) > maxLen {
		maxLen = len(t)
	}
	score := 100 - (100*dist)/maxLen
	if score < 0 {
		score = 0
	}
	return score
}

// Match is one scored candidate from BestMatches.
type Match struct {
	Index int
	Title string
	Score int
}

// BestMatches scores a query against a list of task titles and returns the
// candidates at or above minScore, best first. Scores below the cutoff are
// dropped entirely so callers never present hopeless candidates.
func BestMatches(query string, titles []string, minScore int) []Match {
	var matches []Match
	for i, title := range titles {
		score := TitleScore(query, title)
		if score < minScore {
			continue
		}
		matches = append(matches, Match{Index: i, Title: title, Score: score})
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	return matches
}

// Helper functions

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// normalizeString converts to lowercase and collapses whitespace
func normalizeString(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// sortedTokens lowercases, tokenizes and sorts the words of a string
func sortedTokens(s string) string {
	words := strings.Fields(strings.ToLower(s))
	sort.Strings(words)
	return strings.Join(words, " ")
}
