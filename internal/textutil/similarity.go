package textutil

import (
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCutoff is the minimum similarity for CloseMatch to accept a candidate.
const DefaultCutoff = 0.6

// Lower lowercases s using Unicode rules rather than ASCII only.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Fold returns the case-folded form of s for caseless equality checks.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Similarity returns the sequence matcher ratio of candidate against word in
// the range [0, 1]. Inputs are compared as given; callers lowercase first when
// they want a case-insensitive score.
func Similarity(word, candidate string) float64 {
	return difflib.NewMatcher(splitRunes(candidate), splitRunes(word)).Ratio()
}

// Scorer rates how similar candidate is to word. Both arguments are already
// lowercased when called from CloseMatchFunc.
type Scorer func(word, candidate string) float64

// CloseMatch returns the candidate most similar to word, comparing lowercased
// forms, provided its score reaches cutoff. Ties go to the higher score and
// then to the lexicographically greater lowercased candidate. The returned
// string is the original candidate, not its lowercased form.
func CloseMatch(word string, candidates []string, cutoff float64) (string, float64, bool) {
	return CloseMatchFunc(word, candidates, cutoff, nil)
}

// CloseMatchFunc is CloseMatch with a custom scorer. A nil scorer uses
// Similarity.
func CloseMatchFunc(word string, candidates []string, cutoff float64, score Scorer) (string, float64, bool) {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultCutoff
	}
	if score == nil {
		score = Similarity
	}
	target := Lower(word)

	var (
		best      string
		bestKey   string
		bestScore float64
		found     bool
	)
	for _, candidate := range candidates {
		key := Lower(candidate)
		s := score(target, key)
		if s < cutoff {
			continue
		}
		if !found || s > bestScore || (s == bestScore && key > bestKey) {
			best, bestKey, bestScore, found = candidate, key, s, true
		}
	}
	return best, bestScore, found
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
