// Package semverreq parses and matches the version requirement embedded
// in a symbol path's crate segment, e.g. "tokio@1.49.0" or "serde@^1".
// Comparison of well-formed "vX.Y.Z" strings is delegated to
// golang.org/x/mod/semver (grounded on the ProjectSerenity-firefly
// kbuild tool's dependency on golang.org/x/mod); the cargo-style range
// grammar (^, ~, *, bare exact) on top of it is hand-parsed since no
// retrieved example carries a full semver-range library.
package semverreq

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Kind discriminates the requirement operator.
type Kind int

const (
	KindAny Kind = iota // "*"
	KindCaret           // "^1.2.3" (default when no operator is given)
	KindTilde           // "~1.2"
	KindExact           // "=1.2.3"
)

// Req is a parsed version requirement.
type Req struct {
	Kind  Kind
	Major int
	Minor int
	Patch int
	Raw   string
}

// Any is the wildcard requirement ("*"), matching any version.
var Any = Req{Kind: KindAny, Raw: "*"}

// Parse parses a cargo-style requirement string. An empty string is
// equivalent to "*".
func Parse(s string) (Req, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return Any, nil
	}

	kind := KindCaret
	switch {
	case strings.HasPrefix(s, "^"):
		kind, s = KindCaret, s[1:]
	case strings.HasPrefix(s, "~"):
		kind, s = KindTilde, s[1:]
	case strings.HasPrefix(s, "="):
		kind, s = KindExact, s[1:]
	}

	parts := strings.SplitN(s, ".", 3)
	nums := make([]int, 3)
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Req{}, fmt.Errorf("semverreq: invalid version requirement %q: %w", s, err)
		}
		nums[i] = n
	}
	return Req{Kind: kind, Major: nums[0], Minor: nums[1], Patch: nums[2], Raw: s}, nil
}

// canonical renders (major, minor, patch) as the "vX.Y.Z" form
// golang.org/x/mod/semver expects.
func canonical(major, minor, patch int) string {
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch)
}

// Matches reports whether version (a bare "X.Y.Z" string, no leading 'v')
// satisfies r.
func (r Req) Matches(version string) bool {
	v := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(v) {
		return false
	}
	switch r.Kind {
	case KindAny:
		return true
	case KindExact:
		return semver.Compare(v, canonical(r.Major, r.Minor, r.Patch)) == 0
	case KindTilde:
		// ~1.2.3 := >=1.2.3, <1.3.0 ; ~1.2 := >=1.2.0, <1.3.0
		lower := canonical(r.Major, r.Minor, r.Patch)
		upper := canonical(r.Major, r.Minor+1, 0)
		return semver.Compare(v, lower) >= 0 && semver.Compare(v, upper) < 0
	case KindCaret:
		lower := canonical(r.Major, r.Minor, r.Patch)
		var upper string
		switch {
		case r.Major > 0:
			upper = canonical(r.Major+1, 0, 0)
		case r.Minor > 0:
			upper = canonical(0, r.Minor+1, 0)
		default:
			upper = canonical(0, 0, r.Patch+1)
		}
		return semver.Compare(v, lower) >= 0 && semver.Compare(v, upper) < 0
	default:
		return false
	}
}

// Greatest returns the greatest version in versions that satisfies r, or
// ("", false) if none does. Used by the remote client's resolve() to pick
// the best published version for a requirement (§4.E).
func Greatest(r Req, versions []string) (string, bool) {
	best := ""
	for _, v := range versions {
		if !r.Matches(v) {
			continue
		}
		if best == "" || semver.Compare("v"+v, "v"+best) > 0 {
			best = v
		}
	}
	return best, best != ""
}
