// Package fuzzy implements typo-tolerant matching for the summary search box.
package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Distance is the Levenshtein edit distance between the normalized forms of a and b
func Distance(a, b string) int {
	r1 := []rune(Normalize(a))
	r2 := []rune(Normalize(b))
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// two rows are enough
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// Threshold is the edit distance tolerated for a query of this length
func Threshold(query string) int {
	n := len([]rune(Normalize(query)))
	switch {
	case n <= 3:
		return 0
	case n <= 5:
		return 1
	case n >= 8:
		return 3
	default:
		return 2
	}
}

// Match reports whether query appears in text, either as a substring, a
// word prefix, or a word within Threshold edits.
func Match(query, text string) bool {
	q := Normalize(query)
	t := Normalize(text)
	if q == "" {
		return true
	}
	if strings.Contains(t, q) {
		return true
	}

	limit := Threshold(q)
	for _, word := range strings.FieldsFunc(t, isSeparator) {
		if strings.HasPrefix(word, q) {
			return true
		}
		if limit > 0 && Distance(q, word) <= limit {
			return true
		}
	}
	return false
}

// MatchAny is Match over several fields
func MatchAny(query string, fields ...string) bool {
	for _, f := range fields {
		if Match(query, f) {
			return true
		}
	}
	return false
}

// Normalize lowercases s, strips diacritics and collapses whitespace
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '-' && r != '_')
}
