// Package textmatch provides pure text tokenization and set-similarity
// helpers used by the document index and the relevance scorer. All
// functions are deterministic and side-effect free.
package textmatch

import "strings"

// EmptyJaccard is the similarity returned when both inputs tokenize to
// the empty set. Two fields that both carry no usable text are treated
// as a perfect match rather than no signal; this mirrors the historical
// behaviour the rest of the scoring model is calibrated against.
const EmptyJaccard = 1.0

// Tokenize returns the lowercased, whitespace-delimited words of s,
// with empty entries removed. Order follows the input; duplicates are
// kept.
func Tokenize(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(f)
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// TokenSet returns the distinct lowercased words of s.
func TokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Jaccard computes the intersection-over-union similarity between the
// token sets of a and b. The result is always in [0,1]. If both inputs
// tokenize to the empty set the result is EmptyJaccard; if exactly one
// is empty the result is 0.
func Jaccard(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return EmptyJaccard
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
