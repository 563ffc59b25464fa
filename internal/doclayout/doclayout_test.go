package doclayout

import "testing"

func TestWrapLineBreaksOnWhitespace(t *testing.T) {
	line, rest := WrapLine("the quick brown fox jumps", 10)
	if line == "" || rest == "" {
		t.Fatalf("expected a split, got line=%q rest=%q", line, rest)
	}
	if len([]rune(line)) > 10 {
		t.Fatalf("line exceeds width: %q", line)
	}
}

func TestWrapLineNoSplitWhenFits(t *testing.T) {
	line, rest := WrapLine("short", 10)
	if rest != "" {
		t.Fatalf("expected no remainder, got %q", rest)
	}
	if line != "short" {
		t.Fatalf("got %q", line)
	}
}

func TestWrapAllCoversAllText(t *testing.T) {
	lines := WrapAll("the quick brown fox jumps over the lazy dog", 10)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d: %v", len(lines), lines)
	}
}

func TestCursorMoveDownFromVirtualTop(t *testing.T) {
	var c Cursor
	visible := func(int) bool { return true }
	c.MoveDown(3, visible)
	if c.State != CursorFocused || c.Index != 0 {
		t.Fatalf("expected Focused{0}, got %+v", c)
	}
}

func TestCursorMoveDownPastLastGoesToVirtualBottom(t *testing.T) {
	c := Cursor{State: CursorFocused, Index: 2}
	visible := func(int) bool { return true }
	c.MoveDown(3, visible)
	if c.State != CursorVirtualBottom {
		t.Fatalf("expected VirtualBottom, got %+v", c)
	}
}

func TestCursorResetGoesToVirtualTop(t *testing.T) {
	c := Cursor{State: CursorFocused, Index: 5}
	c.Reset()
	if c.State != CursorVirtualTop {
		t.Fatalf("expected VirtualTop, got %+v", c)
	}
}

func TestScrollClampsToDocumentHeight(t *testing.T) {
	s := Scroll{Offset: 1000}
	s.Clamp(50, 20)
	if s.Offset != 30 {
		t.Fatalf("expected clamp to 30, got %d", s.Offset)
	}
}

func TestScrollEndSaturates(t *testing.T) {
	var s Scroll
	s.End(50, 20)
	if s.Offset != 30 {
		t.Fatalf("expected 30, got %d", s.Offset)
	}
}

func TestBlockquoteStackPushPop(t *testing.T) {
	var s BlockquoteStack
	s.Push(0)
	s.Push(4)
	if len(s.Columns()) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(s.Columns()))
	}
	s.Pop()
	if len(s.Columns()) != 1 {
		t.Fatalf("expected 1 marker after pop, got %d", len(s.Columns()))
	}
}
