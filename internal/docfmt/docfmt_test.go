package docfmt

import (
	"strings"
	"testing"

	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
)

func buildFnFixture(t *testing.T) docgraph.Ref {
	t.Helper()
	index := map[uint32]*docgraph.Item{
		1: {ID: 1, Name: "crate", Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}, Children: []uint32{2}},
		2: {ID: 2, Name: "push", Kind: docgraph.KindFunction, Inner: docgraph.FunctionInner{
			SelfKind: docgraph.SelfByRefMut,
			Params:   []docgraph.Param{{Name: "self", Type: "&mut Self"}, {Name: "value", Type: "T"}},
			Return:   "()",
		}},
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

func genCodeText(t *testing.T, n docir.Node) string {
	t.Helper()
	gc, ok := n.(docir.GeneratedCode)
	if !ok {
		t.Fatalf("expected a GeneratedCode node, got %T", n)
	}
	var b strings.Builder
	for _, s := range gc.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestFunctionSignatureCollapsesSelf(t *testing.T) {
	ref := buildFnFixture(t)
	text := genCodeText(t, FunctionSignature(ref))
	if !strings.Contains(text, "&mut self") {
		t.Fatalf("expected collapsed &mut self receiver, got %q", text)
	}
	if strings.Contains(text, "&mut Self") {
		t.Fatalf("self receiver type should not appear verbatim, got %q", text)
	}
	if !strings.Contains(text, "value: T") {
		t.Fatalf("expected remaining parameter, got %q", text)
	}
}

func buildFnTypeRefFixture(t *testing.T) docgraph.Ref {
	t.Helper()
	index := map[uint32]*docgraph.Item{
		1: {ID: 1, Name: "crate", Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}, Children: []uint32{2, 3}},
		2: {ID: 2, Name: "get", Kind: docgraph.KindFunction, Inner: docgraph.FunctionInner{
			SelfKind: docgraph.SelfByRef,
			Params:   []docgraph.Param{{Name: "index", Type: "usize"}},
			Return:   "Option<T>",
			TypeRefs: map[string]docgraph.LinkTarget{
				"Option": {LocalID: 3},
			},
		}},
		3: {ID: 3, Name: "Option", Kind: docgraph.KindEnum, Inner: docgraph.EnumInner{}},
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

func TestFunctionSignatureTagsNavigableTypeReferences(t *testing.T) {
	ref := buildFnTypeRefFixture(t)
	node := FunctionSignature(ref)
	gc, ok := node.(docir.GeneratedCode)
	if !ok {
		t.Fatalf("expected a GeneratedCode node, got %T", node)
	}

	var full strings.Builder
	var sawNavigable bool
	for _, span := range gc.Spans {
		full.WriteString(span.Text)
		if span.Text != "Option" {
			continue
		}
		if span.Style != docir.StyleTypeName {
			t.Fatalf("expected Option span to carry StyleTypeName, got %v", span.Style)
		}
		nav, ok := span.Action.(docir.Navigate)
		if !ok {
			t.Fatalf("expected Option span to carry a Navigate action, got %#v", span.Action)
		}
		if nav.Target.Item.Name != "Option" {
			t.Fatalf("expected Navigate target to be the Option enum, got %+v", nav.Target.Item)
		}
		sawNavigable = true
	}
	if !sawNavigable {
		t.Fatal("expected an Option type-name span in the signature")
	}
	if !strings.Contains(full.String(), "index: usize") {
		t.Fatalf("expected unresolved parameter type to render as plain text, got %q", full.String())
	}
	if !strings.Contains(full.String(), "-> Option<T>") {
		t.Fatalf("expected return type rendered in order, got %q", full.String())
	}
}

// stubResolver satisfies docgraph.CrossGraphResolver with a fixed table of
// pre-built stores, standing in for the Navigator's working set in tests
// that need TraverseToCrateByID to reach a real external Store.
type stubResolver map[string]*docgraph.Store

func (s stubResolver) LoadGraphByName(name string) (*docgraph.Store, bool) {
	st, ok := s[name]
	return st, ok
}

func buildStdStore(t *testing.T) *docgraph.Store {
	t.Helper()
	st, err := docgraph.NewStore(docgraph.StoreData{
		FormatVersion: docgraph.CurrentFormatVersion,
		CrateName:     "std",
		Provenance:    docgraph.ProvenanceStd,
		RootID:        1,
		Index: map[uint32]*docgraph.Item{
			1: {ID: 1, Name: "std", Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}},
		},
		Paths:          map[uint32]docgraph.ItemSummary{},
		ExternalCrates: map[uint32]docgraph.ExternalCrate{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func buildTraitImplFixture(t *testing.T) docgraph.Ref {
	t.Helper()
	index := map[uint32]*docgraph.Item{
		1: {ID: 1, Name: "crate", Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}, Children: []uint32{2, 3, 4}},
		2: {ID: 2, Name: "MyTrait", Kind: docgraph.KindTrait, Inner: docgraph.TraitInner{
			Implementors: []uint32{3, 4},
		}},
		3: {ID: 3, Name: "impl Clone for Foo", Kind: docgraph.KindTraitImpl, Inner: docgraph.TraitImplInner{
			ForType: "Foo", TraitCrateID: 0,
		}},
		4: {ID: 4, Name: "impl Clone for Bar", Kind: docgraph.KindTraitImpl, Inner: docgraph.TraitImplInner{
			ForType: "Bar", TraitCrateID: 1,
		}},
	}
	s, err := docgraph.NewStore(docgraph.StoreData{
		FormatVersion: docgraph.CurrentFormatVersion,
		CrateName:     "mycrate",
		Provenance:    docgraph.ProvenanceWorkspace,
		RootID:        1,
		Index:         index,
		Paths:         map[uint32]docgraph.ItemSummary{},
		ExternalCrates: map[uint32]docgraph.ExternalCrate{
			1: {DisplayName: "std"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	s.SetResolver(1, stubResolver{"std": buildStdStore(t)})
	ref, _ := s.Get(2)
	return ref
}

func TestTraitImplementationsCategorizesCrateLocal(t *testing.T) {
	ref := buildTraitImplFixture(t)
	inner := ref.Item.Inner.(docgraph.TraitInner)
	node := TraitImplementations(ref, inner.Implementors)
	section, ok := node.(docir.Section)
	if !ok {
		t.Fatalf("expected a Section, got %T", node)
	}
	if section.Title != "Trait Implementations" {
		t.Fatalf("got title %q", section.Title)
	}
	if len(section.Body) == 0 {
		t.Fatal("expected at least one category body")
	}
	local, ok := section.Body[0].(docir.List)
	if !ok || len(local.Items) != 1 {
		t.Fatalf("expected the first category to be a one-item crate-local list, got %#v", section.Body[0])
	}
	para, ok := local.Items[0][0].(docir.Paragraph)
	if !ok || len(para.Spans) != 1 || para.Spans[0].Text != "Foo" {
		t.Fatalf("expected crate-local list to hold Foo, got %#v", local.Items[0])
	}
}

// buildVecStructFixture models §8 scenario A: a struct implementing a
// handful of std-defined traits, plus one associated type contributed by
// one of those impls.
func buildVecStructFixture(t *testing.T) docgraph.Ref {
	t.Helper()
	index := map[uint32]*docgraph.Item{
		1: {ID: 1, Name: "alloc", Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}, Children: []uint32{2}},
		2: {
			ID: 2, Name: "Vec", Kind: docgraph.KindStruct,
			Inner: docgraph.StructInner{
				Fields:     []uint32{},
				AssocTypes: []uint32{10},
				Impls:      []uint32{20, 21, 22, 23},
			},
		},
		10: {ID: 10, Name: "Item", Kind: docgraph.KindAssocType},
		20: {ID: 20, Name: "impl Clone for Vec", Kind: docgraph.KindTraitImpl, Inner: docgraph.TraitImplInner{
			TraitPath: "Clone", ForType: "Vec", TraitCrateID: 1,
		}},
		21: {ID: 21, Name: "impl Debug for Vec", Kind: docgraph.KindTraitImpl, Inner: docgraph.TraitImplInner{
			TraitPath: "Debug", ForType: "Vec", TraitCrateID: 1,
		}},
		22: {ID: 22, Name: "impl Default for Vec", Kind: docgraph.KindTraitImpl, Inner: docgraph.TraitImplInner{
			TraitPath: "Default", ForType: "Vec", TraitCrateID: 1,
		}},
		23: {ID: 23, Name: "impl IntoIterator for Vec", Kind: docgraph.KindTraitImpl, Inner: docgraph.TraitImplInner{
			TraitPath: "IntoIterator", ForType: "Vec", TraitCrateID: 1,
		}},
	}
	s, err := docgraph.NewStore(docgraph.StoreData{
		FormatVersion: docgraph.CurrentFormatVersion,
		CrateName:     "alloc",
		Provenance:    docgraph.ProvenanceWorkspace,
		RootID:        1,
		Index:         index,
		Paths:         map[uint32]docgraph.ItemSummary{},
		ExternalCrates: map[uint32]docgraph.ExternalCrate{
			1: {DisplayName: "std"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	s.SetResolver(1, stubResolver{"std": buildStdStore(t)})
	ref, _ := s.Get(2)
	return ref
}

func TestStructEmitsAssociatedTypesBeforeTraitImplementations(t *testing.T) {
	ref := buildVecStructFixture(t)
	nodes := Struct(ref)
	if len(nodes) != 4 {
		t.Fatalf("expected decl, fields, assoc types, trait impls; got %d nodes", len(nodes))
	}

	assocSection, ok := nodes[2].(docir.Section)
	if !ok || assocSection.Title != "Associated Types" {
		t.Fatalf("expected an Associated Types section at index 2, got %+v", nodes[2])
	}

	implSection, ok := nodes[3].(docir.Section)
	if !ok || implSection.Title != "Trait Implementations" {
		t.Fatalf("expected a Trait Implementations section at index 3, got %+v", nodes[3])
	}

	var stdList docir.List
	found := false
	for _, n := range implSection.Body {
		sub, ok := n.(docir.Section)
		if !ok || sub.Title != "Std" {
			continue
		}
		for _, body := range sub.Body {
			if l, ok := body.(docir.List); ok {
				stdList = l
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected a Std implementation list")
	}
	want := map[string]bool{"Clone": false, "Debug": false, "Default": false, "IntoIterator": false}
	for _, item := range stdList.Items {
		for _, n := range item {
			if p, ok := n.(docir.Paragraph); ok {
				for _, span := range p.Spans {
					if _, ok := want[span.Text]; ok {
						want[span.Text] = true
					}
				}
			}
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("expected %q among Std trait implementations, got %+v", name, stdList)
		}
	}
}
