package docrender

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"rdoc/internal/docir"
)

// StylePalette maps a docir.Style to its rendered lipgloss style; the
// interactive renderer's theme and the TTY renderer share this shape
// (§4.I: "ANSI SGR sequences derived from a fixed mapping of semantic
// styles to 24-bit colours and text attributes").
type StylePalette map[docir.Style]lipgloss.Style

// DefaultPalette is a reasonable baseline; tuitheme supplies the
// themed variants actually wired into the CLI.
func DefaultPalette() StylePalette {
	return StylePalette{
		docir.StyleKeyword:    lipgloss.NewStyle().Foreground(lipgloss.Color("#c678dd")).Bold(true),
		docir.StyleTypeName:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e5c07b")),
		docir.StyleIdent:      lipgloss.NewStyle().Foreground(lipgloss.Color("#61afef")),
		docir.StyleString:     lipgloss.NewStyle().Foreground(lipgloss.Color("#98c379")),
		docir.StyleNumber:     lipgloss.NewStyle().Foreground(lipgloss.Color("#d19a66")),
		docir.StyleComment:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6370")).Italic(true),
		docir.StyleMacro:      lipgloss.NewStyle().Foreground(lipgloss.Color("#56b6c2")),
		docir.StyleLifetime:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e06c75")),
		docir.StyleAttribute:  lipgloss.NewStyle().Foreground(lipgloss.Color("#d19a66")),
		docir.StyleOperator:   lipgloss.NewStyle(),
		docir.StyleEmphasis:   lipgloss.NewStyle().Italic(true),
		docir.StyleStrong:     lipgloss.NewStyle().Bold(true),
		docir.StyleInlineCode: lipgloss.NewStyle().Foreground(lipgloss.Color("#e5c07b")),
		docir.StyleHeading:    lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

// TTY renders IR with ANSI SGR and OSC-8 hyperlinks for action-bearing
// spans (§4.I). output should be the target terminal's termenv.Output
// (callers typically pass termenv.NewOutput(os.Stdout)), so
// hyperlink support detection matches the real terminal.
func TTY(nodes []docir.Node, palette StylePalette, output *termenv.Output) string {
	r := &ttyRenderer{palette: palette, output: output}
	var b strings.Builder
	r.renderBlocks(&b, nodes, 0)
	return b.String()
}

type ttyRenderer struct {
	palette StylePalette
	output  *termenv.Output
}

func (r *ttyRenderer) renderBlocks(b *strings.Builder, nodes []docir.Node, depth int) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.renderNode(b, n, depth)
	}
}

func (r *ttyRenderer) renderNode(b *strings.Builder, n docir.Node, depth int) {
	switch v := n.(type) {
	case docir.Paragraph:
		b.WriteString(r.spans(v.Spans))
		b.WriteByte('\n')

	case docir.Heading:
		style := r.palette[docir.StyleHeading]
		b.WriteString(style.Render(r.spansPlain(v.Spans)))
		b.WriteByte('\n')
		rule := '─'
		b.WriteString(strings.Repeat(string(rule), headingWidth))
		b.WriteByte('\n')

	case docir.Section:
		if v.Title != "" {
			b.WriteString(r.palette[docir.StyleHeading].Render(v.Title))
			b.WriteString("\n\n")
		}
		r.renderBlocks(b, v.Body, depth)

	case docir.List:
		for i, item := range v.Items {
			b.WriteString(bulletFor(depth))
			b.WriteByte(' ')
			var ib strings.Builder
			r.renderBlocks(&ib, item, depth+1)
			b.WriteString(strings.TrimRight(ib.String(), "\n"))
			if i < len(v.Items)-1 {
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')

	case docir.CodeBlock:
		for _, line := range v.Lines {
			for _, run := range line {
				style, ok := r.palette[run.Style]
				if !ok {
					b.WriteString(run.Text)
					continue
				}
				b.WriteString(style.Render(run.Text))
			}
			b.WriteByte('\n')
		}

	case docir.GeneratedCode:
		b.WriteString(r.spans(v.Spans))
		b.WriteByte('\n')

	case docir.HorizontalRule:
		b.WriteString(strings.Repeat("─", headingWidth))
		b.WriteByte('\n')

	case docir.BlockQuote:
		var ib strings.Builder
		r.renderBlocks(&ib, v.Body, depth)
		for _, line := range strings.Split(strings.TrimRight(ib.String(), "\n"), "\n") {
			b.WriteString("  ┃ ")
			b.WriteString(line)
			b.WriteByte('\n')
		}

	case docir.Table:
		r.renderTable(b, v)

	case docir.TruncatedBlock:
		kept, truncated := docir.VisibleChildren(v.Level, v.Body, headingWidth, plainLineWidth)
		r.renderBlocks(b, kept, depth)
		if truncated {
			b.WriteString(r.palette[docir.StyleComment].Render("╰─[...]"))
			b.WriteByte('\n')
		}

	case docir.Conditional:
		if v.For == docir.ModeAny || v.For == docir.ModeTTY {
			r.renderBlocks(b, v.Body, depth)
		}
	}
}

func (r *ttyRenderer) renderTable(b *strings.Builder, t docir.Table) {
	writeRow := func(row docir.TableRow, bold bool) {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			text := r.spansPlain(c.Spans)
			if bold || c.Bold {
				text = lipgloss.NewStyle().Bold(true).Render(text)
			}
			cells[i] = text
		}
		b.WriteString("┃ ")
		b.WriteString(strings.Join(cells, " ┃ "))
		b.WriteString(" ┃\n")
	}
	writeRow(t.Header, true)
	for _, row := range t.Rows {
		writeRow(row, false)
	}
}

// spans renders a run of spans, applying style and wrapping
// action-bearing spans as OSC-8 hyperlinks when the output supports it
// (§4.I: "Links are emitted as OSC-8 hyperlinks when url() is available
// on the action; otherwise inline text").
func (r *ttyRenderer) spans(spans []docir.Span) string {
	var b strings.Builder
	for _, s := range spans {
		text := s.Text
		if style, ok := r.palette[s.Style]; ok {
			text = style.Render(text)
		}
		if url, ok := actionURL(s.Action); ok && r.output != nil && r.output.ColorProfile() != termenv.Ascii {
			text = r.output.Hyperlink(url, text)
		}
		b.WriteString(text)
	}
	return b.String()
}

func (r *ttyRenderer) spansPlain(spans []docir.Span) string {
	return plainSpans(spans)
}

// actionURL extracts a navigable URL from an action, if any (only
// OpenUrl actions carry a literal URL; Navigate/NavigateToPath targets
// aren't web URLs).
func actionURL(a docir.Action) (string, bool) {
	if u, ok := a.(docir.OpenUrl); ok {
		return u.URL, true
	}
	return "", false
}
