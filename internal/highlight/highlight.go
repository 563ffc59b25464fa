// Package highlight implements the external "library producing coloured
// runs" collaborator named in §1/§4.J: a thin seam over chroma's
// lexer/tokenizer, mapping its token categories onto docir.Style so
// docir.CodeBlock lines arrive pre-tokenized. Calls the tokenizer API
// directly rather than going through a markdown-renderer wrapper.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"rdoc/internal/docir"
)

// Highlight tokenizes code under lang (falling back to the Rust lexer
// when lang is empty or names no lexer chroma knows; docmd passes "rust"
// for rust-like pseudo-tags and the fence's own tag otherwise) and returns one []docir.Span
// per line, ready to become a docir.CodeBlock's Lines directly.
func Highlight(code, lang string) [][]docir.Span {
	lexerName := lang
	if lexerName == "" {
		lexerName = "rust"
	}
	lex := lexers.Get(lexerName)
	if lex == nil {
		lex = lexers.Get("rust")
	}
	if lex == nil {
		return plainLines(code)
	}
	lex = chroma.Coalesce(lex)

	iterator, err := lex.Tokenise(nil, code)
	if err != nil {
		return plainLines(code)
	}

	var lines [][]docir.Span
	var current []docir.Span
	for _, tok := range iterator.Tokens() {
		segments := strings.SplitAfter(tok.Value, "\n")
		for i, seg := range segments {
			if seg == "" {
				continue
			}
			current = append(current, docir.Span{Text: strings.TrimSuffix(seg, "\n"), Style: styleFor(tok.Type)})
			if i < len(segments)-1 {
				lines = append(lines, current)
				current = nil
			}
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func plainLines(code string) [][]docir.Span {
	var lines [][]docir.Span
	for _, line := range strings.Split(code, "\n") {
		lines = append(lines, []docir.Span{{Text: line, Style: docir.StyleNone}})
	}
	return lines
}

// styleFor maps a chroma token type to a docir.Style; unmapped
// categories fall back to StyleNone rather than erroring, since the IR
// is resilient to an under-styled token (it just renders as plain
// text).
func styleFor(t chroma.TokenType) docir.Style {
	switch {
	case t.InCategory(chroma.Keyword):
		return docir.StyleKeyword
	case t.InCategory(chroma.NameFunction), t.InCategory(chroma.NameClass):
		return docir.StyleTypeName
	case t.InCategory(chroma.NameBuiltin), t.InCategory(chroma.NameVariable):
		return docir.StyleIdent
	case t.InCategory(chroma.LiteralString):
		return docir.StyleString
	case t.InCategory(chroma.LiteralNumber):
		return docir.StyleNumber
	case t.InCategory(chroma.Comment):
		return docir.StyleComment
	case t.InCategory(chroma.NameTag), t.InCategory(chroma.NameAttribute):
		return docir.StyleAttribute
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return docir.StyleOperator
	default:
		return docir.StyleNone
	}
}
