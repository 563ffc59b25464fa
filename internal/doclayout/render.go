// Render lowers a Document into the interactive terminal grid (§4.J):
// the hardest renderer, since it must soft-wrap, track an indent and
// blockquote marker stack, frame code blocks, and record the hit
// regions mouse/keyboard input later consult, wrapping styled text into
// a fixed-width pane and tracking per-line regions as it goes.
package doclayout

import (
	"strings"

	"rdoc/internal/docir"
	"rdoc/internal/docrender"
)

// Result is Render's output: the styled lines to paint into the
// viewport, the hit regions recorded while laying them out, and the
// total document height those lines occupy.
type Result struct {
	Lines   []string
	Regions []HitRegion
	Height  int
}

// grid accumulates completed lines plus the current in-progress one;
// its width is the content width (indent + wrapped text), never the
// full viewport width (the scrollbar column is added by the caller).
type grid struct {
	lines []string
	cur   strings.Builder
}

func (g *grid) newline() {
	g.lines = append(g.lines, g.cur.String())
	g.cur.Reset()
}

func (g *grid) write(s string) { g.cur.WriteString(s) }

// Render lowers nodes into a Result at the given content width. depth
// tracks list nesting for bullet glyph selection, matching the other
// renderers' shared bulletFor cycle.
func Render(nodes []docir.Node, palette docrender.StylePalette, width int) Result {
	f := NewFrame()
	g := &grid{}
	renderBlocks(f, g, nodes, width, palette, 0)
	g.newline()
	// Drop the trailing blank line EndBlock leaves after the final node.
	if len(g.lines) > 0 && g.lines[len(g.lines)-1] == "" {
		g.lines = g.lines[:len(g.lines)-1]
	}
	return Result{Lines: g.lines, Regions: f.Regions, Height: len(g.lines)}
}

func markerPrefix(f *Frame) string {
	return strings.Repeat("  ┃ ", len(f.Quotes.Columns()))
}

// startLine writes the current indent and blockquote-marker prefix
// into the grid and positions the frame's cursor after it. Every new
// line begins with this, so markers are redrawn "on every subsequent
// line, including blank spacer lines and wrapped continuations" (§4.J).
func (f *Frame) startLine(g *grid) {
	g.write(strings.Repeat(" ", f.Indent))
	g.write(markerPrefix(f))
	f.X = f.Indent + len([]rune(markerPrefix(f)))
}

// advance closes the current line, advances the frame's y, and opens
// the next line with the correct indent/marker prefix. Centralizing
// this sequence avoids startLine/EndBlock ordering bugs since EndBlock
// resets X to the bare indent, which startLine then overwrites anyway.
func advance(f *Frame, g *grid) {
	g.newline()
	f.EndBlock()
	f.startLine(g)
}

func renderBlocks(f *Frame, g *grid, nodes []docir.Node, width int, palette docrender.StylePalette, depth int) {
	for i, n := range nodes {
		if i > 0 {
			advance(f, g)
		}
		f.Path = f.Path.Push(i)
		renderNode(f, g, n, width, palette, depth)
		f.Path = dropLast(f.Path)
	}
}

// renderNode lowers one node, leaving the grid positioned at the end
// of the node's last line (EndBlock/newline is the caller's job, per
// §4.J: "Every block node ends with y += 1").
func renderNode(f *Frame, g *grid, n docir.Node, width int, palette docrender.StylePalette, depth int) {
	switch v := n.(type) {
	case docir.Paragraph:
		renderWrappedSpans(f, g, v.Spans, width, palette)

	case docir.Heading:
		renderWrappedSpans(f, g, v.Spans, width, palette)
		advance(f, g)
		rule := '┄'
		if v.Level == docir.HeadingTitle {
			rule = '═'
		}
		g.write(strings.Repeat(string(rule), width-f.Indent))

	case docir.Section:
		if v.Title != "" {
			f.startLine(g)
			g.write(palette[docir.StyleHeading].Render(v.Title))
			advance(f, g)
			advance(f, g)
		}
		renderBlocks(f, g, v.Body, width, palette, depth)

	case docir.List:
		for i, item := range v.Items {
			if i > 0 {
				advance(f, g)
				advance(f, g)
			}
			bullet := string(bulletGlyph(depth))
			g.write(bullet + " ")
			f.X += 2
			f.Indent += 2
			f.Path = f.Path.Push(i)
			renderPacked(f, g, item, width, palette, depth+1)
			f.Path = dropLast(f.Path)
			f.Indent -= 2
		}

	case docir.CodeBlock:
		renderCodeBlock(f, g, v, width, palette)

	case docir.GeneratedCode:
		renderSpansNoWrap(f, g, v.Spans, palette)

	case docir.HorizontalRule:
		g.write(strings.Repeat("─", width-f.Indent))

	case docir.BlockQuote:
		f.Quotes.Push(f.Indent)
		f.Indent += 4
		renderBlocks(f, g, v.Body, width, palette, depth)
		f.Indent -= 4
		f.Quotes.Pop()

	case docir.Table:
		renderTable(f, g, v, palette)

	case docir.TruncatedBlock:
		kept, truncated := docir.VisibleChildren(v.Level, v.Body, width, interactiveLineWidth)
		renderBlocks(f, g, kept, width, palette, depth)
		if truncated {
			advance(f, g)
			f.Path = f.Path.Push(len(kept))
			label := "╰─[...]"
			f.EmitRegion(docir.ExpandBlock{Path: f.Path}, len([]rune(label)))
			g.write(palette[docir.StyleComment].Render(label))
			f.Path = dropLast(f.Path)
		}

	case docir.Conditional:
		if v.For == docir.ModeAny || v.For == docir.ModeInteractive {
			renderBlocks(f, g, v.Body, width, palette, depth)
		}
	}
}

// renderPacked renders a List item's blocks packed (no blank line
// between nodes within one item, §4.J: "Within a List item, nodes are
// packed").
func renderPacked(f *Frame, g *grid, nodes []docir.Node, width int, palette docrender.StylePalette, depth int) {
	for i, n := range nodes {
		if i > 0 {
			advance(f, g)
		}
		f.Path = f.Path.Push(i)
		renderNode(f, g, n, width, palette, depth)
		f.Path = dropLast(f.Path)
	}
}

// dropLast pops the last index off a NodePath, used to restore the
// parent path after recording a truncation ellipsis's child index.
func dropLast(p docir.NodePath) docir.NodePath {
	segs := p.Segments()
	if len(segs) == 0 {
		return p
	}
	var out docir.NodePath
	for _, s := range segs[:len(segs)-1] {
		out = out.Push(s)
	}
	return out
}

func bulletGlyph(depth int) rune {
	glyphs := []rune{'•', '◦', '▪'}
	return glyphs[depth%len(glyphs)]
}

// renderWrappedSpans soft-wraps a run of spans at width, recording a
// hit region for each action-bearing span on its first rendered line
// (§4.J: "multi-line wrapped action spans record the first-line rect
// only").
func renderWrappedSpans(f *Frame, g *grid, spans []docir.Span, width int, palette docrender.StylePalette) {
	for si, s := range spans {
		if si > 0 {
			g.write(" ")
			f.X++
		}
		text := s.Text
		first := true
		for {
			avail := width - f.X
			if avail < 1 {
				avail = 1
			}
			line, rest := WrapLine(text, avail)
			if first && s.Action != nil {
				f.EmitRegion(s.Action, len([]rune(line)))
			}
			g.write(renderStyled(line, s.Style, palette))
			f.X += len([]rune(line))
			if rest == "" {
				break
			}
			advance(f, g)
			text = rest
			first = false
		}
	}
}

// renderSpansNoWrap renders GeneratedCode's single line without word
// wrapping inside identifiers (§3: "GeneratedCode ... never
// word-wrapped inside identifiers").
func renderSpansNoWrap(f *Frame, g *grid, spans []docir.Span, palette docrender.StylePalette) {
	for _, s := range spans {
		if s.Action != nil {
			f.EmitRegion(s.Action, len([]rune(s.Text)))
		}
		g.write(renderStyled(s.Text, s.Style, palette))
		f.X += len([]rune(s.Text))
	}
}

func renderStyled(text string, style docir.Style, palette docrender.StylePalette) string {
	if st, ok := palette[style]; ok {
		return st.Render(text)
	}
	return text
}

// renderCodeBlock frames a CodeBlock with a rounded border drawn at the
// current indent column, with a "❬lang❭" tab inset into the top edge
// (§4.F, §4.J "Code block framing"). The border is not outdented, so the
// code text sits 2 columns to the right of the surrounding prose.
func renderCodeBlock(f *Frame, g *grid, v docir.CodeBlock, width int, palette docrender.StylePalette) {
	innerWidth := width - f.Indent - 2
	if innerWidth < 4 {
		innerWidth = 4
	}
	top := "╭─"
	if v.Lang != "" {
		top += "❬" + v.Lang + "❭"
	}
	top += strings.Repeat("─", max(0, innerWidth-len([]rune(top))+2)) + "╮"

	g.write(top)
	for _, line := range v.Lines {
		advance(f, g)
		g.write("│ ")
		for _, run := range line {
			g.write(renderStyled(run.Text, run.Style, palette))
		}
	}
	advance(f, g)
	g.write("╰" + strings.Repeat("─", innerWidth+1) + "╯")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func renderTable(f *Frame, g *grid, t docir.Table, palette docrender.StylePalette) {
	writeRow := func(row docir.TableRow, bold bool) {
		g.write("┃ ")
		for ci, c := range row.Cells {
			if ci > 0 {
				g.write(" ┃ ")
			}
			text := plainSpanText(c.Spans)
			if bold || c.Bold {
				text = palette[docir.StyleStrong].Render(text)
			}
			g.write(text)
		}
		g.write(" ┃")
	}
	writeRow(t.Header, true)
	for _, row := range t.Rows {
		advance(f, g)
		writeRow(row, false)
	}
}

func plainSpanText(spans []docir.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// interactiveLineWidth is the WidthFunc docir.VisibleChildren uses when
// truncating for the interactive renderer. Paragraphs are measured by
// soft-wrapping them with WrapAll at the viewport width; every other node
// kind gets a fixed per-kind line estimate.
func interactiveLineWidth(n docir.Node, width int) int {
	switch v := n.(type) {
	case docir.Paragraph:
		return len(WrapAll(plainSpanText(v.Spans), width))
	case docir.Heading:
		return 2
	case docir.CodeBlock:
		return len(v.Lines) + 2
	case docir.List:
		return len(v.Items)
	default:
		return 1
	}
}
