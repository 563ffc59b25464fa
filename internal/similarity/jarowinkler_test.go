package similarity

import "testing"

func TestScoreIdenticalIsOne(t *testing.T) {
	if got := Score("Vec", "Vec"); got != 1 {
		t.Fatalf("Score(Vec, Vec) = %v, want 1", got)
	}
}

func TestScoreCloseTypoRanksHigh(t *testing.T) {
	got := Score("Vek", "Vec")
	if got < 0.7 {
		t.Fatalf("Score(Vek, Vec) = %v, want >= 0.7", got)
	}
}

func TestRankOrdersDescending(t *testing.T) {
	ranked := Rank("Vek", []string{"Vec", "VecDeque", "HashMap", "String"}, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	if ranked[0].Name != "Vec" {
		t.Fatalf("expected Vec to rank first, got %q", ranked[0].Name)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("ranking not descending at index %d", i)
		}
	}
}

func TestNotFoundScenarioTopThreeAboveThreshold(t *testing.T) {
	candidates := []string{"Vec", "VecDeque", "Veccy", "HashMap", "BTreeMap"}
	ranked := Rank("Vek", candidates, 3)
	for _, r := range ranked {
		if r.Score < 0.7 {
			t.Fatalf("suggestion %q scored %v, want >= 0.7 (scenario D)", r.Name, r.Score)
		}
	}
	found := false
	for _, r := range ranked {
		if r.Name == "Vec" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Vec among top suggestions")
	}
}
