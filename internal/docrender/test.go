package docrender

import (
	"fmt"
	"strings"

	"rdoc/internal/docir"
)

// Test renders IR as a structurally-tagged XML-like form for
// deterministic golden tests (§4.I).
func Test(nodes []docir.Node) string {
	var b strings.Builder
	renderTestBlocks(&b, nodes)
	return b.String()
}

func renderTestBlocks(b *strings.Builder, nodes []docir.Node) {
	for _, n := range nodes {
		renderTestNode(b, n)
	}
}

func renderTestNode(b *strings.Builder, n docir.Node) {
	switch v := n.(type) {
	case docir.Paragraph:
		fmt.Fprintf(b, "<paragraph>%s</paragraph>", escapeXML(plainSpans(v.Spans)))

	case docir.Heading:
		level := "section"
		if v.Level == docir.HeadingTitle {
			level = "title"
		}
		fmt.Fprintf(b, "<heading level=%q>%s</heading>", level, escapeXML(plainSpans(v.Spans)))

	case docir.Section:
		fmt.Fprintf(b, "<section title=%q>", v.Title)
		renderTestBlocks(b, v.Body)
		b.WriteString("</section>")

	case docir.List:
		b.WriteString("<list>")
		for _, item := range v.Items {
			b.WriteString("<item>")
			renderTestBlocks(b, item)
			b.WriteString("</item>")
		}
		b.WriteString("</list>")

	case docir.CodeBlock:
		fmt.Fprintf(b, "<code-block lang=%q>", v.Lang)
		for _, line := range v.Lines {
			for _, run := range line {
				b.WriteString(escapeXML(run.Text))
			}
			b.WriteByte('\n')
		}
		b.WriteString("</code-block>")

	case docir.GeneratedCode:
		fmt.Fprintf(b, "<generated-code>%s</generated-code>", escapeXML(plainSpans(v.Spans)))

	case docir.HorizontalRule:
		b.WriteString("<hr/>")

	case docir.BlockQuote:
		b.WriteString("<blockquote>")
		renderTestBlocks(b, v.Body)
		b.WriteString("</blockquote>")

	case docir.Table:
		b.WriteString("<table>")
		renderTestRow(b, v.Header, true)
		for _, row := range v.Rows {
			renderTestRow(b, row, false)
		}
		b.WriteString("</table>")

	case docir.TruncatedBlock:
		levelName := [...]string{"single-line", "brief", "full"}[v.Level]
		fmt.Fprintf(b, "<truncated level=%q>", levelName)
		kept, truncated := docir.VisibleChildren(v.Level, v.Body, headingWidth, plainLineWidth)
		renderTestBlocks(b, kept)
		if truncated {
			elided := len(v.Body) - len(kept)
			fmt.Fprintf(b, "<elided chars=%q/>", fmt.Sprint(elided))
		}
		b.WriteString("</truncated>")

	case docir.Conditional:
		if v.For == docir.ModeAny || v.For == docir.ModeTest {
			renderTestBlocks(b, v.Body)
		}
	}
}

func renderTestRow(b *strings.Builder, row docir.TableRow, header bool) {
	tag := "row"
	if header {
		tag = "header-row"
	}
	fmt.Fprintf(b, "<%s>", tag)
	for _, c := range row.Cells {
		fmt.Fprintf(b, "<cell>%s</cell>", escapeXML(plainSpans(c.Spans)))
	}
	fmt.Fprintf(b, "</%s>", tag)
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
