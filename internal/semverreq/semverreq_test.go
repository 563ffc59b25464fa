package semverreq

import "testing"

func TestParseWildcard(t *testing.T) {
	r, err := Parse("")
	if err != nil || r.Kind != KindAny {
		t.Fatalf("Parse(\"\") = %+v, %v", r, err)
	}
}

func TestCaretMatches(t *testing.T) {
	r, err := Parse("1.49.0")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Matches("1.49.0") {
		t.Error("expected 1.49.0 to match ^1.49.0")
	}
	if !r.Matches("1.50.3") {
		t.Error("expected 1.50.3 to match ^1.49.0")
	}
	if r.Matches("2.0.0") {
		t.Error("did not expect 2.0.0 to match ^1.49.0")
	}
	if r.Matches("1.48.9") {
		t.Error("did not expect 1.48.9 to match ^1.49.0")
	}
}

func TestTildeMatches(t *testing.T) {
	r, err := Parse("~1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Matches("1.2.9") {
		t.Error("expected 1.2.9 to match ~1.2.3")
	}
	if r.Matches("1.3.0") {
		t.Error("did not expect 1.3.0 to match ~1.2.3")
	}
}

func TestGreatestPicksHighestSatisfying(t *testing.T) {
	r, _ := Parse("^1")
	best, ok := Greatest(r, []string{"0.9.0", "1.2.0", "1.5.3", "2.0.0"})
	if !ok || best != "1.5.3" {
		t.Fatalf("Greatest = %q, %v, want 1.5.3", best, ok)
	}
}
