// Package docpage assembles the end-to-end "format an item" pipeline
// (§4.H/§4.G): it dispatches a resolved docgraph.Ref through the
// docfmt declaration/signature formatters for structured facts, lowers
// its doc comment through docmd for prose, and concatenates both into
// one Document. It is the single place callers turn a resolved item
// into rendered text.
package docpage

import (
	"rdoc/internal/docfmt"
	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
	"rdoc/internal/docmd"
)

// Format builds the full Document for ref: a title heading, the
// structured declaration/signature, and the lowered doc comment.
func Format(ref docgraph.Ref) []docir.Node {
	var doc []docir.Node
	doc = append(doc, docir.Heading{
		Level: docir.HeadingTitle,
		Spans: []docir.Span{{Text: "Item: " + ref.Item.Name, Style: docir.StyleHeading}},
	})

	doc = append(doc, declarationNodes(ref)...)

	if ref.Item.Docs != "" {
		doc = append(doc, docmd.ToIR(ref.Item.Docs, resolverFor(ref))...)
	}

	return doc
}

// declarationNodes dispatches ref's Kind to the matching docfmt
// formatter. Kinds with no standalone declaration (module, field,
// variant, associated type/const, use, extern crate) contribute
// nothing here — their facts surface through their parent's listing.
func declarationNodes(ref docgraph.Ref) []docir.Node {
	switch ref.Item.Kind {
	case docgraph.KindStruct:
		return docfmt.Struct(ref)
	case docgraph.KindEnum:
		return docfmt.Enum(ref)
	case docgraph.KindUnion:
		return docfmt.Union(ref)
	case docgraph.KindTrait:
		return docfmt.Trait(ref)
	case docgraph.KindFunction, docgraph.KindMethod:
		return []docir.Node{docfmt.FunctionSignature(ref)}
	case docgraph.KindTypeAlias:
		return []docir.Node{docfmt.TypeAlias(ref)}
	case docgraph.KindStatic:
		return []docir.Node{docfmt.Static(ref)}
	case docgraph.KindConstant:
		return []docir.Node{docfmt.Constant(ref)}
	case docgraph.KindMacro:
		return []docir.Node{docfmt.Macro(ref)}
	default:
		return nil
	}
}

// resolverFor builds a docmd.Resolver closure over ref's doc-comment
// links, delegating the external-id-then-local-id traversal to
// docgraph.Ref.ResolveLink (§4.G: "a resolver callback link(url) ->
// LinkTarget").
func resolverFor(ref docgraph.Ref) docmd.Resolver {
	links := ref.Item.Links
	return func(url string) docmd.LinkTarget {
		target, ok := links[url]
		if !ok {
			return docmd.PathTarget{Path: docmd.RewriteRelativeHTMLURL(ref.Graph.CrateName.String(), url)}
		}
		destRef, ok := ref.ResolveLink(target)
		if !ok {
			return docmd.PathTarget{Path: docmd.RewriteRelativeHTMLURL(ref.Graph.CrateName.String(), url)}
		}
		return docmd.Resolved{Action: docir.Navigate{Target: destRef}}
	}
}
