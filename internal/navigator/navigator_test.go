package navigator

import (
	"context"
	"testing"

	"rdoc/internal/docgraph"
	"rdoc/internal/docname"
	"rdoc/internal/docsource"
	"rdoc/internal/semverreq"
)

// fakeSource is a minimal in-memory docsource.Source for exercising the
// Navigator without any real Std/Local/Remote backend.
type fakeSource struct {
	crates map[string]docsource.CrateInfo // keyed by canonical name
	graphs map[string]docgraph.StoreData  // keyed by canonical name
	loads  int
}

func newFakeSource() *fakeSource {
	return &fakeSource{crates: map[string]docsource.CrateInfo{}, graphs: map[string]docgraph.StoreData{}}
}

func (f *fakeSource) add(name string, provenance docgraph.Provenance, data docgraph.StoreData) {
	canon := docname.From(name).Canonical()
	f.crates[canon] = docsource.CrateInfo{Name: docname.From(name), Provenance: provenance}
	f.graphs[canon] = data
}

func (f *fakeSource) Lookup(ctx context.Context, name string, req semverreq.Req) (docsource.CrateInfo, bool) {
	info, ok := f.crates[docname.From(name).Canonical()]
	return info, ok
}

func (f *fakeSource) Load(ctx context.Context, name, version string) (*docgraph.Store, bool) {
	data, ok := f.graphs[docname.From(name).Canonical()]
	if !ok {
		return nil, false
	}
	f.loads++
	store, err := docgraph.NewStore(data)
	if err != nil {
		return nil, false
	}
	return store, true
}

func (f *fakeSource) ListAvailable() []docsource.CrateInfo {
	out := make([]docsource.CrateInfo, 0, len(f.crates))
	for _, c := range f.crates {
		out = append(out, c)
	}
	return out
}

func (f *fakeSource) Canonicalize(input string) (docname.Name, bool) {
	info, ok := f.crates[docname.From(input).Canonical()]
	return info.Name, ok
}

func vecGraph(crateName string) docgraph.StoreData {
	return docgraph.StoreData{
		FormatVersion: docgraph.CurrentFormatVersion,
		CrateName:     crateName,
		RootID:        1,
		Index: map[uint32]*docgraph.Item{
			1: {ID: 1, Name: crateName, Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}, Children: []uint32{2}},
			2: {ID: 2, Name: "Vec", Kind: docgraph.KindStruct, Inner: docgraph.StructInner{}, Visibility: docgraph.VisibilityPublic},
		},
		Paths:          map[uint32]docgraph.ItemSummary{},
		ExternalCrates: map[uint32]docgraph.ExternalCrate{},
	}
}

func TestResolvePathFindsItem(t *testing.T) {
	src := newFakeSource()
	src.add("alloc", docgraph.ProvenanceStd, vecGraph("alloc"))
	nav := New(src)

	result := nav.ResolvePath(context.Background(), "alloc::Vec")
	if !result.Found {
		t.Fatal("expected alloc::Vec to resolve")
	}
	if result.Ref.Item.Name != "Vec" {
		t.Fatalf("got %q", result.Ref.Item.Name)
	}
}

func TestLoadCrateMemoizesSuccess(t *testing.T) {
	src := newFakeSource()
	src.add("alloc", docgraph.ProvenanceStd, vecGraph("alloc"))
	nav := New(src)

	_, ok1 := nav.LoadCrate(context.Background(), "alloc", semverreq.Any)
	_, ok2 := nav.LoadCrate(context.Background(), "alloc", semverreq.Any)
	if !ok1 || !ok2 {
		t.Fatal("expected both loads to succeed")
	}
	if src.loads != 1 {
		t.Fatalf("expected exactly 1 underlying load (memoized), got %d", src.loads)
	}
}

func TestLoadCrateMemoizesFailure(t *testing.T) {
	src := newFakeSource()
	nav := New(src)

	_, ok1 := nav.LoadCrate(context.Background(), "nonexistent", semverreq.Any)
	_, ok2 := nav.LoadCrate(context.Background(), "nonexistent", semverreq.Any)
	if ok1 || ok2 {
		t.Fatal("expected both loads to fail")
	}
	if s, ok := nav.workingSet["nonexistent"]; !ok || !s.failed {
		t.Fatal("expected the failure to be memoised in the working set")
	}
}

func TestLoadCrateRejectsFilteredName(t *testing.T) {
	src := newFakeSource()
	src.add("rustc_middle", docgraph.ProvenanceStd, vecGraph("rustc_middle"))
	nav := New(src)

	_, ok := nav.LoadCrate(context.Background(), "rustc_middle", semverreq.Any)
	if ok {
		t.Fatal("expected rustc_* crate to be rejected")
	}
}

func TestResolvePathFailureYieldsSuggestions(t *testing.T) {
	src := newFakeSource()
	src.add("alloc", docgraph.ProvenanceStd, vecGraph("alloc"))
	nav := New(src)

	result := nav.ResolvePath(context.Background(), "alloc::Vek")
	if result.Found {
		t.Fatal("expected alloc::Vek to fail to resolve")
	}
	found := false
	for _, s := range result.Suggestions {
		if s.Name == "Vec" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Vec among suggestions, got %+v", result.Suggestions)
	}
}

func reexportedVecGraph(crateName string) docgraph.StoreData {
	return docgraph.StoreData{
		FormatVersion: docgraph.CurrentFormatVersion,
		CrateName:     crateName,
		RootID:        1,
		Index: map[uint32]*docgraph.Item{
			1: {ID: 1, Name: crateName, Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}, Children: []uint32{2}},
			2: {ID: 2, Name: "Vec", Kind: docgraph.KindUse, Inner: docgraph.UseInner{TargetID: 3}},
			3: {ID: 3, Name: "Vec", Kind: docgraph.KindStruct, Inner: docgraph.StructInner{}, Visibility: docgraph.VisibilityPublic},
		},
		Paths:          map[uint32]docgraph.ItemSummary{},
		ExternalCrates: map[uint32]docgraph.ExternalCrate{},
	}
}

func TestGetItemFromIDPathFollowsUse(t *testing.T) {
	src := newFakeSource()
	src.add("alloc", docgraph.ProvenanceStd, reexportedVecGraph("alloc"))
	nav := New(src)

	ref, names, ok := nav.GetItemFromIDPath(context.Background(), "alloc", []uint32{2})
	if !ok {
		t.Fatal("expected id path [2] to resolve")
	}
	if ref.Item.Kind != docgraph.KindStruct {
		t.Fatalf("expected descent to land on the re-export's struct target, got kind %v", ref.Item.Kind)
	}
	if ref.Item.ID != 3 {
		t.Fatalf("expected the resolved struct's id, got %d", ref.Item.ID)
	}
	if len(names) != 2 || names[1] != "Vec" {
		t.Fatalf("expected the walked name path to include Vec, got %+v", names)
	}
}

func TestDashUnderscoreCanonicalEquivalenceInResolvePath(t *testing.T) {
	src := newFakeSource()
	src.add("my-crate", docgraph.ProvenanceLocalDependency, vecGraph("my-crate"))
	nav := New(src)

	a := nav.ResolvePath(context.Background(), "my-crate::Vec")
	b := nav.ResolvePath(context.Background(), "my_crate::Vec")
	if !a.Found || !b.Found {
		t.Fatalf("expected both dash and underscore forms to resolve: %+v %+v", a, b)
	}
}
