// Package docrender implements the Plain, TTY, and Test renderers
// (§4.I); the interactive renderer is internal/doclayout since it owns
// a terminal grid rather than producing a text stream. Each renderer
// walks the full docir.Node type switch and lowers it to its own
// output form.
package docrender

import (
	"strings"

	"rdoc/internal/docir"
)

const headingWidth = 80

// Plain renders IR as markdown-like text with no ANSI (§4.I).
func Plain(nodes []docir.Node) string {
	var b strings.Builder
	renderPlainBlocks(&b, nodes, 0)
	return b.String()
}

func renderPlainBlocks(b *strings.Builder, nodes []docir.Node, depth int) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		renderPlainNode(b, n, depth)
	}
}

func renderPlainNode(b *strings.Builder, n docir.Node, depth int) {
	switch v := n.(type) {
	case docir.Paragraph:
		b.WriteString(plainSpans(v.Spans))
		b.WriteByte('\n')

	case docir.Heading:
		text := plainSpans(v.Spans)
		b.WriteString(text)
		b.WriteByte('\n')
		rule := byte('-')
		if v.Level == docir.HeadingTitle {
			rule = '='
		}
		b.WriteString(strings.Repeat(string(rule), headingWidth))
		b.WriteByte('\n')

	case docir.Section:
		if v.Title != "" {
			b.WriteString(v.Title)
			b.WriteString("\n\n")
		}
		renderPlainContainer(b, v.Body, depth)

	case docir.List:
		for i, item := range v.Items {
			bullet := bulletFor(depth)
			b.WriteString(bullet)
			b.WriteByte(' ')
			itemText := renderPlainItem(item, depth+1)
			b.WriteString(itemText)
			if i < len(v.Items)-1 {
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')

	case docir.CodeBlock:
		for _, line := range v.Lines {
			for _, run := range line {
				b.WriteString(run.Text)
			}
			b.WriteByte('\n')
		}

	case docir.GeneratedCode:
		b.WriteString(plainSpans(v.Spans))
		b.WriteByte('\n')

	case docir.HorizontalRule:
		b.WriteString(strings.Repeat("─", headingWidth))
		b.WriteByte('\n')

	case docir.BlockQuote:
		inner := Plain(v.Body)
		for _, line := range strings.Split(strings.TrimRight(inner, "\n"), "\n") {
			b.WriteString("> ")
			b.WriteString(line)
			b.WriteByte('\n')
		}

	case docir.Table:
		renderPlainTable(b, v)

	case docir.TruncatedBlock:
		kept, truncated := docir.VisibleChildren(v.Level, v.Body, headingWidth, plainLineWidth)
		renderPlainContainer(b, kept, depth)
		if truncated {
			b.WriteString("[...]\n")
		}

	case docir.Conditional:
		if v.For == docir.ModeAny || v.For == docir.ModePlain {
			renderPlainContainer(b, v.Body, depth)
		}
	}
}

func renderPlainContainer(b *strings.Builder, body []docir.Node, depth int) {
	for i, n := range body {
		if i > 0 {
			b.WriteByte('\n')
		}
		renderPlainNode(b, n, depth)
	}
}

func renderPlainItem(blocks []docir.Node, depth int) string {
	var b strings.Builder
	for i, n := range blocks {
		if i > 0 {
			b.WriteByte(' ')
		}
		renderPlainNode(&b, n, depth)
	}
	return strings.TrimRight(b.String(), "\n")
}

func bulletFor(depth int) string {
	glyphs := []string{"•", "◦", "▪"}
	return glyphs[depth%len(glyphs)]
}

func plainSpans(spans []docir.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func renderPlainTable(b *strings.Builder, t docir.Table) {
	writeRow := func(row docir.TableRow) {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = plainSpans(c.Spans)
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteByte('\n')
	}
	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
}

// plainLineWidth is the WidthFunc docir.VisibleChildren uses for Plain
// rendering: a coarse line-count estimate, not a true soft-wrap
// simulation (that lives in doclayout for the interactive renderer).
func plainLineWidth(n docir.Node, width int) int {
	switch v := n.(type) {
	case docir.Paragraph:
		return wrappedLineCount(plainSpans(v.Spans), width)
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

func wrappedLineCount(text string, width int) int {
	if width <= 0 {
		width = headingWidth
	}
	if len(text) == 0 {
		return 1
	}
	lines := (len(text) + width - 1) / width
	if lines < 1 {
		lines = 1
	}
	return lines
}
