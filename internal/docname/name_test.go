package docname

import "testing"

func TestDashUnderscoreEquivalence(t *testing.T) {
	cases := [][2]string{
		{"tokio-macros", "tokio_macros"},
		{"std-detect", "std_detect"},
		{"Serde-Json", "serde_json"},
		{"a-b-c", "A_B_C"},
	}
	for _, c := range cases {
		n1 := From(c[0])
		n2 := From(c[1])
		if !n1.Equal(n2) {
			t.Errorf("From(%q) != From(%q)", c[0], c[1])
		}
		if n1.Hash() != n2.Hash() {
			t.Errorf("Hash(%q) != Hash(%q)", c[0], c[1])
		}
		if HashRaw(c[0]) != HashRaw(c[1]) {
			t.Errorf("HashRaw(%q) != HashRaw(%q)", c[0], c[1])
		}
	}
}

func TestDistinctNamesNotEqual(t *testing.T) {
	a := From("serde")
	b := From("serde_json")
	if a.Equal(b) {
		t.Fatalf("unrelated names compared equal")
	}
}

func TestDisplayPreservesFirstRawForm(t *testing.T) {
	// The intern table is process-wide, so this test uses a name no other
	// test interns; otherwise an earlier test's spelling would be first.
	n1 := From("Display-Probe-Crate")
	n2 := From("display_probe_crate")
	if n1.String() != "Display-Probe-Crate" {
		t.Fatalf("display form changed: got %q", n1.String())
	}
	if n2.String() != "Display-Probe-Crate" {
		t.Fatalf("aliasing Name did not return the first-seen display form: got %q", n2.String())
	}
}

func TestCanonicalForm(t *testing.T) {
	n := From("My-Crate")
	if got := n.Canonical(); got != "my_crate" {
		t.Fatalf("Canonical() = %q, want %q", got, "my_crate")
	}
}
