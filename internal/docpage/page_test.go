package docpage

import (
	"strings"
	"testing"

	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
	"rdoc/internal/docmd"
	"rdoc/internal/docrender"
)

func buildStructFixture(t *testing.T) docgraph.Ref {
	t.Helper()
	index := map[uint32]*docgraph.Item{
		1: {ID: 1, Name: "crate", Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}, Children: []uint32{2, 3}},
		2: {
			ID: 2, Name: "Vec", Kind: docgraph.KindStruct,
			Docs:  "See also [push].",
			Links: map[string]docgraph.LinkTarget{"push": {LocalID: 3}},
			Inner: docgraph.StructInner{Fields: []uint32{}},
		},
		3: {ID: 3, Name: "push", Kind: docgraph.KindFunction, Inner: docgraph.FunctionInner{Return: "()"}},
	}
	s, err := docgraph.NewStore(docgraph.StoreData{
		FormatVersion:  docgraph.CurrentFormatVersion,
		CrateName:      "alloc",
		RootID:         1,
		Index:          index,
		Paths:          map[uint32]docgraph.ItemSummary{},
		ExternalCrates: map[uint32]docgraph.ExternalCrate{},
	})
	if err != nil {
		t.Fatal(err)
	}
	ref, _ := s.Get(2)
	return ref
}

func TestFormatProducesTitleDeclarationAndProse(t *testing.T) {
	ref := buildStructFixture(t)
	doc := Format(ref)
	if len(doc) < 2 {
		t.Fatalf("expected at least a title and a declaration node, got %d", len(doc))
	}
	heading, ok := doc[0].(docir.Heading)
	if !ok || heading.Level != docir.HeadingTitle {
		t.Fatalf("expected a title heading first, got %+v", doc[0])
	}

	rendered := docrender.Plain(doc)
	if !strings.Contains(rendered, "Vec") {
		t.Fatalf("expected struct name in rendered output, got %q", rendered)
	}
}

func TestResolverFollowsLocalDocLink(t *testing.T) {
	ref := buildStructFixture(t)
	resolve := resolverFor(ref)
	target := resolve("push")
	resolved, ok := target.(docmd.Resolved)
	if !ok {
		t.Fatalf("expected a resolved link target, got %T", target)
	}
	nav, ok := resolved.Action.(docir.Navigate)
	if !ok || nav.Target.Item.Name != "push" {
		t.Fatalf("expected Navigate to the push function, got %+v", resolved.Action)
	}
}
