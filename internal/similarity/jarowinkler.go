// Package similarity implements the case-aware Jaro-Winkler scorer used
// to rank suggestions when a path segment or crate name fails to resolve
// (§4.D). It is core resolver logic, hand-implemented rather than pulled
// from a library, the way small self-contained scoring algorithms (term
// weighting, string distance) are typically written in place.
package similarity

import "strings"

// WinklerPrefixWeight scales the common-prefix bonus.
const WinklerPrefixWeight = 0.1

// maxPrefixLength caps the common-prefix bonus length, as in the
// standard Jaro-Winkler formulation.
const maxPrefixLength = 4

// casePattern classifies a string's ASCII case shape so identifiers that
// share a pattern (e.g. two CamelCase names, or two snake_case names)
// score a deliberate bonus over a same-letters-different-case match.
type casePattern int

const (
	patternLower casePattern = iota
	patternUpper
	patternTitle // first letter upper, remainder lower
	patternMixed
)

func classify(s string) casePattern {
	if s == "" {
		return patternLower
	}
	hasUpper, hasLower := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		} else if c >= 'a' && c <= 'z' {
			hasLower = true
		}
	}
	switch {
	case hasUpper && !hasLower:
		return patternUpper
	case hasLower && !hasUpper:
		return patternLower
	case s[0] >= 'A' && s[0] <= 'Z':
		rest := s[1:]
		if strings.ToLower(rest) == rest {
			return patternTitle
		}
		return patternMixed
	default:
		return patternMixed
	}
}

// jaro computes the unweighted Jaro distance between a and b.
func jaro(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	matchDist := max(la, lb)/2 - 1
	if matchDist < 0 {
		matchDist = 0
	}

	aMatches := make([]bool, la)
	bMatches := make([]bool, lb)
	matches := 0

	for i := 0; i < la; i++ {
		start := max(0, i-matchDist)
		end := min(i+matchDist+1, lb)
		for j := start; j < end; j++ {
			if bMatches[j] || a[i] != b[j] {
				continue
			}
			aMatches[i] = true
			bMatches[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0
	for i := 0; i < la; i++ {
		if !aMatches[i] {
			continue
		}
		for !bMatches[k] {
			k++
		}
		if a[i] != b[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	return (m/float64(la) + m/float64(lb) + (m-float64(transpositions)/2)/m) / 3
}

// Score returns a case-aware Jaro-Winkler similarity in [0, 1] between
// query and candidate. Identifiers that share an ASCII-case pattern (both
// CamelCase, both snake_case, …) are boosted slightly, per §4.D
// ("identifiers that share ASCII-case pattern score higher").
func Score(query, candidate string) float64 {
	base := jaro(query, candidate)
	prefix := 0
	max := min(len(query), len(candidate))
	if max > maxPrefixLength {
		max = maxPrefixLength
	}
	for prefix < max && query[prefix] == candidate[prefix] {
		prefix++
	}
	base += float64(prefix) * WinklerPrefixWeight * (1 - base)

	if classify(query) == classify(candidate) {
		base += (1 - base) * 0.05
	}
	if base > 1 {
		base = 1
	}
	return base
}

// Suggestion pairs a candidate name with its score against some query.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every candidate against query and returns the top n in
// descending score order (ties broken by candidate order). Used both for
// crate-name suggestions (§4.D load_crate failure) and sibling-name
// suggestions (§4.D resolve_path segment failure).
func Rank(query string, candidates []string, n int) []Suggestion {
	out := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Suggestion{Name: c, Score: Score(query, c)})
	}
	// Stable insertion sort: the candidate lists here are small (crate
	// counts, sibling counts), and stability preserves source order for
	// tied scores without pulling in sort.Slice's reflection overhead.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
