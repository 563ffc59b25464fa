package docir

import "testing"

func oneLinePerNode(Node, int) int { return 1 }

func TestVisibleChildrenFullKeepsEverything(t *testing.T) {
	body := []Node{Paragraph{}, Paragraph{}, Paragraph{}}
	kept, truncated := VisibleChildren(LevelFull, body, 80, oneLinePerNode)
	if truncated {
		t.Fatal("Full must never truncate")
	}
	if len(kept) != 3 {
		t.Fatalf("expected all 3 kept, got %d", len(kept))
	}
}

func TestVisibleChildrenSingleLineKeepsFirstOnly(t *testing.T) {
	body := []Node{Paragraph{}, List{}, Paragraph{}}
	kept, truncated := VisibleChildren(LevelSingleLine, body, 80, oneLinePerNode)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if len(kept) != 1 {
		t.Fatalf("expected 1 kept, got %d", len(kept))
	}
}

func TestVisibleChildrenSkipsListAsNonFirstChild(t *testing.T) {
	body := []Node{Paragraph{}, List{}}
	kept, truncated := VisibleChildren(LevelBrief, body, 80, oneLinePerNode)
	if !truncated {
		t.Fatal("expected truncation at the List boundary")
	}
	if len(kept) != 1 {
		t.Fatalf("expected only the leading paragraph kept, got %d", len(kept))
	}
}

func TestNodePathPushAndEqual(t *testing.T) {
	a := NodePath{}.Push(1).Push(2)
	b := NodePath{}.Push(1).Push(2)
	c := NodePath{}.Push(1).Push(3)
	if !a.Equal(b) {
		t.Fatal("expected equal paths to compare equal")
	}
	if a.Equal(c) {
		t.Fatal("expected different paths to compare unequal")
	}
	if a.Len() != 2 {
		t.Fatalf("expected length 2, got %d", a.Len())
	}
}

func TestTruncationLevelNextSaturatesAtFull(t *testing.T) {
	if LevelFull.Next() != LevelFull {
		t.Fatal("expected Full to saturate")
	}
	if LevelSingleLine.Next() != LevelBrief {
		t.Fatal("expected SingleLine -> Brief")
	}
}
