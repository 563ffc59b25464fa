// Package docmd implements Markdown → IR lowering (§4.G), built on
// goldmark's AST rather than hand-rolling a markdown parser. rdoc walks
// the AST itself to produce docir nodes, rather than asking a
// higher-level renderer for finished terminal output.
package docmd

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"rdoc/internal/docir"
	"rdoc/internal/highlight"
)

// LinkTarget is what a Resolver callback returns for a given URL
// (§4.G: "a resolver callback link(url) -> LinkTarget where LinkTarget
// in {Resolved(DocRef), Path(string), None}").
type LinkTarget interface{ isLinkTarget() }

type Resolved struct{ Action docir.Navigate }

func (Resolved) isLinkTarget() {}

type PathTarget struct{ Path string }

func (PathTarget) isLinkTarget() {}

type NoTarget struct{}

func (NoTarget) isLinkTarget() {}

// Resolver looks up a link URL, as written in the doc comment, against
// the Navigator. docpage's resolver falls back to RewriteRelativeHTMLURL
// for a URL its link table cannot resolve.
type Resolver func(url string) LinkTarget

// isRustPseudoTag recognises the "rust-like" fence language set (§4.G):
// an empty tag, no_run, ignore, compile_fail, should_panic, or any tag
// matching editionTag becomes a highlighted CodeBlock{lang=rust}.
var editionTag = regexp.MustCompile(`^edition`)

func isRustPseudoTag(lang string) bool {
	switch lang {
	case "", "no_run", "ignore", "compile_fail", "should_panic":
		return true
	}
	return editionTag.MatchString(lang)
}

// backtickLink matches a backtick-wrapped link target, e.g. [`Foo`]
// (§4.G: "rewritten to bare link targets before parsing").
var backtickLink = regexp.MustCompile(`\[` + "`" + `([^` + "`" + `]+)` + "`" + `\]`)

// ToIR lowers a documentation string to IR nodes, given a link resolver
// (§4.G contract).
func ToIR(source string, resolve Resolver) []docir.Node {
	rewritten := backtickLink.ReplaceAllString(source, "[$1]")

	md := goldmark.New()
	reader := text.NewReader([]byte(rewritten))
	root := md.Parser().Parse(reader)

	var out []docir.Node
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if node, ok := lowerBlock(child, []byte(rewritten), resolve); ok {
			out = append(out, node)
		}
	}
	return out
}

func lowerBlock(n ast.Node, src []byte, resolve Resolver) (docir.Node, bool) {
	switch v := n.(type) {
	case *ast.Heading:
		level := docir.HeadingSection
		if v.Level == 1 {
			level = docir.HeadingTitle
		}
		return docir.Heading{Level: level, Spans: lowerInlines(v, src, resolve)}, true

	case *ast.Paragraph:
		return docir.Paragraph{Spans: lowerInlines(v, src, resolve)}, true

	case *ast.TextBlock:
		return docir.Paragraph{Spans: lowerInlines(v, src, resolve)}, true

	case *ast.List:
		items := make([][]docir.Node, 0)
		for item := v.FirstChild(); item != nil; item = item.NextSibling() {
			var blocks []docir.Node
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if node, ok := lowerBlock(c, src, resolve); ok {
					blocks = append(blocks, node)
				}
			}
			items = append(items, blocks)
		}
		return docir.List{Items: items, Ordered: v.IsOrdered()}, true

	case *ast.FencedCodeBlock:
		lang := string(v.Language(src))
		code := extractCodeText(v, src)
		if isRustPseudoTag(lang) {
			return docir.CodeBlock{Lang: "rust", Lines: highlight.Highlight(stripHiddenLines(code), "rust")}, true
		}
		return docir.CodeBlock{Lang: lang, Lines: highlight.Highlight(code, lang)}, true

	case *ast.CodeBlock:
		code := extractCodeText(v, src)
		return docir.CodeBlock{Lang: "", Lines: highlight.Highlight(code, "")}, true

	case *ast.Blockquote:
		var body []docir.Node
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			if node, ok := lowerBlock(c, src, resolve); ok {
				body = append(body, node)
			}
		}
		return docir.BlockQuote{Body: body}, true

	case *ast.ThematicBreak:
		return docir.HorizontalRule{}, true

	default:
		return nil, false
	}
}

// extractCodeText reads a code block's literal lines from the source
// buffer via goldmark's segment-based API (code blocks don't carry
// their text as child Text nodes).
func extractCodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// stripHiddenLines removes rustdoc's "# " / bare "#" hidden-line markers
// from a rust code fence, keeping "#[...]" and "#![...]" attributes
// intact (§4.G).
func stripHiddenLines(code string) string {
	lines := strings.Split(code, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "#" || strings.HasPrefix(trimmed, "# ") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func lowerInlines(n ast.Node, src []byte, resolve Resolver) []docir.Span {
	var spans []docir.Span
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch v := c.(type) {
			case *ast.Text:
				text := string(v.Segment.Value(src))
				if v.HardLineBreak() || v.SoftLineBreak() {
					text += "\n"
				}
				spans = append(spans, docir.Span{Text: text})
			case *ast.CodeSpan:
				spans = append(spans, docir.Span{Text: string(textOf(v, src)), Style: docir.StyleInlineCode})
			case *ast.Emphasis:
				style := docir.StyleEmphasis
				if v.Level >= 2 {
					style = docir.StyleStrong
				}
				for _, s := range lowerInlines(v, src, resolve) {
					if s.Style == docir.StyleNone {
						s.Style = style
					}
					spans = append(spans, s)
				}
			case *ast.Link:
				target := resolve(string(v.Destination))
				linkSpans := lowerInlines(v, src, resolve)
				action := actionFor(target)
				for i := range linkSpans {
					linkSpans[i].Action = action
				}
				spans = append(spans, linkSpans...)
			case *ast.AutoLink:
				urlText := string(v.URL(src))
				spans = append(spans, docir.Span{Text: urlText, Action: docir.OpenUrl{URL: urlText}})
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return spans
}

func textOf(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
		}
	}
	return buf.Bytes()
}

func actionFor(target LinkTarget) docir.Action {
	switch t := target.(type) {
	case Resolved:
		return t.Action
	case PathTarget:
		return docir.NavigateToPath{Path: t.Path}
	default:
		return nil
	}
}

// RewriteRelativeHTMLURL heuristically parses a relative rustdoc HTML
// URL into an item path (§4.G): "module/index.html" -> "crate::module";
// "kind.Name.html" -> "crate::Name". Fragment-only and absolute
// http(s) URLs pass through unchanged.
func RewriteRelativeHTMLURL(crate, url string) string {
	if url == "" || strings.HasPrefix(url, "#") || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	clean := strings.TrimSuffix(url, "/")
	if strings.HasSuffix(clean, "/index.html") {
		modPath := strings.TrimSuffix(clean, "/index.html")
		segments := strings.Split(modPath, "/")
		return crate + "::" + strings.Join(segments, "::")
	}
	if strings.HasSuffix(clean, ".html") {
		base := strings.TrimSuffix(clean, ".html")
		segments := strings.Split(base, "/")
		last := segments[len(segments)-1]
		dotIdx := strings.LastIndex(last, ".")
		name := last
		if dotIdx >= 0 {
			name = last[dotIdx+1:]
		}
		dir := segments[:len(segments)-1]
		parts := append([]string{crate}, dir...)
		parts = append(parts, name)
		return strings.Join(parts, "::")
	}
	return url
}
