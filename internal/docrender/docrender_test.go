package docrender

import (
	"io"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
	"rdoc/internal/docpage"
)

// sampleDoc drives the real docpage.Format pipeline over a small struct
// fixture rather than hand-building IR nodes, so these golden tests catch
// drift in the production title/declaration/prose assembly instead of
// only exercising the renderers against a fixture that could fall out of
// sync with what Format actually emits.
func sampleDoc(t *testing.T) []docir.Node {
	t.Helper()
	index := map[uint32]*docgraph.Item{
		1: {ID: 1, Name: "alloc", Kind: docgraph.KindModule, Inner: docgraph.ModuleInner{}, Children: []uint32{2}},
		2: {
			ID:    2,
			Name:  "Vec",
			Kind:  docgraph.KindStruct,
			Docs:  "A contiguous growable array type.",
			Inner: docgraph.StructInner{Fields: []uint32{}},
		},
	}
	store, err := docgraph.NewStore(docgraph.StoreData{
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
	ref, ok := store.Get(2)
	if !ok {
		t.Fatal("expected item 2 to resolve")
	}
	return docpage.Format(ref)
}

func TestPlainRendersHeadingAndParagraph(t *testing.T) {
	out := Plain(sampleDoc(t))
	if !strings.Contains(out, "Item: Vec") {
		t.Fatalf("missing heading text: %q", out)
	}
	if !strings.Contains(out, "====") {
		t.Fatalf("expected title rule of '=', got %q", out)
	}
	if !strings.Contains(out, "A contiguous growable array type.") {
		t.Fatalf("missing paragraph text: %q", out)
	}
}

func TestTestRendererEmitsStructuralTags(t *testing.T) {
	out := Test(sampleDoc(t))
	if !strings.Contains(out, `<heading level="title">`) {
		t.Fatalf("missing heading tag: %q", out)
	}
	if !strings.Contains(out, "<paragraph>") {
		t.Fatalf("missing paragraph tag: %q", out)
	}
}

func TestTTYRendersWithoutPanicking(t *testing.T) {
	out := TTY(sampleDoc(t), DefaultPalette(), termenv.NewOutput(io.Discard))
	if !strings.Contains(out, "Item: Vec") {
		t.Fatalf("expected heading text preserved, got %q", out)
	}
}

func TestTruncatedBlockEmitsElidedMarkerInTestRenderer(t *testing.T) {
	body := []docir.Node{
		docir.Paragraph{Spans: []docir.Span{{Text: "first"}}},
		docir.List{},
	}
	doc := []docir.Node{docir.TruncatedBlock{Level: docir.LevelSingleLine, Body: body}}
	out := Test(doc)
	if !strings.Contains(out, `level="single-line"`) {
		t.Fatalf("missing truncated level attribute: %q", out)
	}
	if !strings.Contains(out, "<elided") {
		t.Fatalf("expected an elided marker, got %q", out)
	}
}
