package docgraph

import "testing"

// buildFixture constructs a tiny graph: root -> mod "vec" -> struct "Vec",
// plus a re-export "VecDeque" pointing at a sibling struct, to exercise
// Use-following.
func buildFixture(t *testing.T) *Store {
	t.Helper()
	structID := uint32(3)
	realDequeID := uint32(4)
	useID := uint32(5)
	modID := uint32(2)
	rootID := uint32(1)

	index := map[uint32]*Item{
		rootID: {ID: rootID, Name: "alloc", Kind: KindModule, Inner: ModuleInner{}, Children: []uint32{modID}},
		modID:  {ID: modID, Name: "vec", Kind: KindModule, Inner: ModuleInner{}, Children: []uint32{structID, realDequeID, useID}},
		structID: {ID: structID, Name: "Vec", Kind: KindStruct, Inner: StructInner{}, Visibility: VisibilityPublic},
		realDequeID: {ID: realDequeID, Name: "RealDeque", Kind: KindStruct, Inner: StructInner{}, Visibility: VisibilityPublic},
		useID:  {ID: useID, Name: "VecDeque", Kind: KindUse, Inner: UseInner{TargetID: realDequeID}},
	}

	s, err := NewStore(StoreData{
		FormatVersion: CurrentFormatVersion,
		CrateName:     "alloc",
		RootID:        rootID,
		Index:         index,
		Paths:         map[uint32]ItemSummary{},
		ExternalCrates: map[uint32]ExternalCrate{},
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestFindByPathDescends(t *testing.T) {
	s := buildFixture(t)
	ref, ok := s.FindByPath([]string{"vec", "Vec"})
	if !ok {
		t.Fatal("expected to find vec::Vec")
	}
	if ref.Item.Name != "Vec" {
		t.Fatalf("got %q", ref.Item.Name)
	}
}

func TestChildByNameFollowsUseTransparently(t *testing.T) {
	s := buildFixture(t)
	modRef, ok := s.FindByPath([]string{"vec"})
	if !ok {
		t.Fatal("expected vec module")
	}
	ref, ok := modRef.ChildByName("VecDeque")
	if !ok {
		t.Fatal("expected to resolve re-export VecDeque")
	}
	if ref.Item.Name != "RealDeque" {
		t.Fatalf("re-export did not resolve to target: got %q", ref.Item.Name)
	}
}

func TestInvariant2HoldsOnFixture(t *testing.T) {
	s := buildFixture(t)
	if err := s.Invariant2Holds(); err != nil {
		t.Fatalf("invariant 2 violated: %v", err)
	}
}

func TestNewStoreRejectsWrongFormatVersion(t *testing.T) {
	_, err := NewStore(StoreData{
		FormatVersion: CurrentFormatVersion - 1,
		RootID:        1,
		Index:         map[uint32]*Item{1: {ID: 1}},
	})
	if err == nil {
		t.Fatal("expected a ParseError for mismatched format version")
	}
}

func TestNewStoreRejectsMissingRoot(t *testing.T) {
	_, err := NewStore(StoreData{
		FormatVersion: CurrentFormatVersion,
		RootID:        99,
		Index:         map[uint32]*Item{1: {ID: 1}},
	})
	if err == nil {
		t.Fatal("expected a ParseError for missing root")
	}
}
