package highlight

import "testing"

func TestHighlightProducesOneLinePerInputLine(t *testing.T) {
	code := "fn main() {\n    println!(\"hi\");\n}"
	lines := Highlight(code, "rust")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
}

func TestHighlightFallsBackOnUnknownLang(t *testing.T) {
	lines := Highlight("let x = 1;", "")
	if len(lines) == 0 {
		t.Fatal("expected at least one line")
	}
}
