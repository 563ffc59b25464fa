// Package docfmt implements the formatters (§4.H): pure functions
// (docgraph.Ref, ...) -> IR fragment, formatting structured item facts
// into presentation blocks by a switch over docgraph.Kind/Inner's
// closed set.
package docfmt

import (
	"sort"
	"strings"
	"unicode"

	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
)

// abiQuoted is the fixed table of bit-exact ABI strings (§4.H).
var abiQuoted = map[string]string{
	"C":         `"C"`,
	"C-unwind":  `"C-unwind"`,
	"cdecl":     `"cdecl"`,
	"stdcall":   `"stdcall"`,
	"fastcall":  `"fastcall"`,
	"system":    `"system"`,
	"win64":     `"win64"`,
	"sysv64":    `"sysv64"`,
	"rust-call": `"rust-call"`,
}

// selfSpelling maps a FunctionInner.SelfKind to its collapsed spelling
// (§4.H: "self parameters are collapsed to self, &self, &mut self, &'a
// self, &'a mut self when the declared type matches the canonical
// self-types").
func selfSpelling(kind docgraph.SelfKind) (string, bool) {
	switch kind {
	case docgraph.SelfByValue:
		return "self", true
	case docgraph.SelfByRef:
		return "&self", true
	case docgraph.SelfByRefMut:
		return "&mut self", true
	case docgraph.SelfByRefLifetime:
		return "&'a self", true
	case docgraph.SelfByRefMutLifetime:
		return "&'a mut self", true
	default:
		return "", false
	}
}

// sigParam is one rendered parameter: prefix is plain text (a collapsed
// self spelling, or "name: "), typ is the navigable type text that
// follows it ("" when prefix already is the whole parameter, as for a
// collapsed self receiver).
type sigParam struct {
	prefix string
	typ    string
}

// FunctionSignature formats a function/method's signature as a
// GeneratedCode block whose parameter and return-type tokens carry a
// Navigate/NavigateToPath action when they resolve through the
// function's TypeRefs table, so every type/path reference in the
// signature is independently navigable (§4.H).
func FunctionSignature(ref docgraph.Ref) docir.Node {
	fn, ok := ref.Item.Inner.(docgraph.FunctionInner)
	if !ok {
		return docir.GeneratedCode{}
	}

	var spans []docir.Span
	plain := func(s string) {
		if s != "" {
			spans = append(spans, docir.Span{Text: s})
		}
	}

	var prefix strings.Builder
	if fn.Const {
		prefix.WriteString("const ")
	}
	if fn.Async {
		prefix.WriteString("async ")
	}
	if fn.Unsafe {
		prefix.WriteString("unsafe ")
	}
	if fn.ABI != "" {
		quoted, ok := abiQuoted[fn.ABI]
		if !ok {
			quoted = `"` + fn.ABI + `"`
		}
		prefix.WriteString("extern ")
		prefix.WriteString(quoted)
		prefix.WriteByte(' ')
	}
	plain(prefix.String())
	plain("fn " + ref.Item.Name + formatGenerics(fn.Generics) + "(")

	var entries []sigParam
	start := 0
	if spelling, ok := selfSpelling(fn.SelfKind); ok {
		entries = append(entries, sigParam{prefix: spelling})
		if len(fn.Params) > 0 && fn.Params[0].Name == "self" {
			start = 1
		}
	} else if fn.SelfKind == docgraph.SelfTyped && len(fn.Params) > 0 {
		entries = append(entries, sigParam{prefix: fn.Params[0].Name + ": ", typ: fn.Params[0].Type})
		start = 1
	}
	for _, p := range fn.Params[start:] {
		entries = append(entries, sigParam{prefix: p.Name + ": ", typ: p.Type})
	}

	for i, e := range entries {
		if i > 0 {
			plain(", ")
		}
		plain(e.prefix)
		if e.typ != "" {
			spans = append(spans, typeSpans(ref, fn.TypeRefs, e.typ)...)
		}
	}
	plain(")")

	if fn.Return != "" {
		plain(" -> ")
		spans = append(spans, typeSpans(ref, fn.TypeRefs, fn.Return)...)
	}
	if len(fn.Where) > 0 {
		plain("\nwhere\n    " + strings.Join(fn.Where, ",\n    "))
	}

	return docir.GeneratedCode{Spans: spans}
}

// typeSpans tokenizes typ into identifier and punctuation runs, tagging
// any identifier found in refs as StyleTypeName with a Navigate action
// when it resolves within ref's graph, or a NavigateToPath action as a
// resolve-later fallback. Tokens absent from refs (generic parameter
// names, primitives, punctuation) render as plain text, unchanged.
func typeSpans(ref docgraph.Ref, refs map[string]docgraph.LinkTarget, typ string) []docir.Span {
	tokens := tokenizeType(typ)
	spans := make([]docir.Span, 0, len(tokens))
	for _, tok := range tokens {
		target, ok := refs[tok]
		if !ok {
			spans = append(spans, docir.Span{Text: tok})
			continue
		}
		span := docir.Span{Text: tok, Style: docir.StyleTypeName}
		if dest, ok := ref.ResolveLink(target); ok {
			span.Action = docir.Navigate{Target: dest}
		} else {
			span.Action = docir.NavigateToPath{Path: tok}
		}
		spans = append(spans, span)
	}
	return spans
}

// tokenizeType splits a formatted type string into maximal identifier
// runs and single-rune punctuation/whitespace tokens, so the original
// text reconstructs exactly by concatenating the tokens in order.
func tokenizeType(s string) []string {
	var tokens []string
	var ident strings.Builder
	flush := func() {
		if ident.Len() > 0 {
			tokens = append(tokens, ident.String())
			ident.Reset()
		}
	}
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			ident.WriteRune(r)
			continue
		}
		flush()
		tokens = append(tokens, string(r))
	}
	flush()
	return tokens
}

func formatGenerics(generics []docgraph.GenericParam) string {
	if len(generics) == 0 {
		return ""
	}
	parts := make([]string, 0, len(generics))
	for _, g := range generics {
		if len(g.Bounds) == 0 {
			parts = append(parts, g.Name)
			continue
		}
		parts = append(parts, g.Name+": "+strings.Join(g.Bounds, " + "))
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// sortAssocItems implements the associated-item sort rule (§4.H):
// (span.filename, span.begin.line, span.begin.col) then name; items
// without a span sort after items with one.
func sortAssocItems(items []docgraph.Ref) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Item, items[j].Item
		if (a.Span == nil) != (b.Span == nil) {
			return a.Span != nil // item with a span sorts first
		}
		if a.Span != nil && b.Span != nil {
			if a.Span.Filename != b.Span.Filename {
				return a.Span.Filename < b.Span.Filename
			}
			if a.Span.BeginLine != b.Span.BeginLine {
				return a.Span.BeginLine < b.Span.BeginLine
			}
			if a.Span.BeginCol != b.Span.BeginCol {
				return a.Span.BeginCol < b.Span.BeginCol
			}
		}
		return a.Name < b.Name
	})
}
