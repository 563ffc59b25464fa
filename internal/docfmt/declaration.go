package docfmt

import (
	"fmt"
	"strings"

	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
)

// Struct emits a framed declaration, a Fields section, an Associated
// Types section, and a Trait Implementations section (§4.H, §8 scenario
// A).
func Struct(ref docgraph.Ref) []docir.Node {
	inner, ok := ref.Item.Inner.(docgraph.StructInner)
	if !ok {
		return nil
	}
	var b strings.Builder
	b.WriteString("struct ")
	b.WriteString(ref.Item.Name)
	b.WriteString(formatGenerics(inner.Generics))
	if len(inner.Where) > 0 {
		b.WriteString(" where ")
		b.WriteString(strings.Join(inner.Where, ", "))
	}
	b.WriteString(" { ... }")

	decl := docir.GeneratedCode{Spans: []docir.Span{{Text: b.String()}}}

	var fieldItems [][]docir.Node
	for _, id := range inner.Fields {
		if child, ok := ref.Child(id); ok {
			fieldItems = append(fieldItems, []docir.Node{fieldLine(child)})
		}
	}
	fieldsSection := docir.Section{Title: "Fields", Body: []docir.Node{docir.List{Items: fieldItems}}}
	if inner.HiddenFields > 0 {
		fieldsSection.Body = append(fieldsSection.Body, docir.Paragraph{
			Spans: []docir.Span{{Text: fmt.Sprintf("/* %d private field(s) */", inner.HiddenFields), Style: docir.StyleComment}},
		})
	}
	return []docir.Node{
		decl,
		fieldsSection,
		assocTypesSection(ref, inner.AssocTypes),
		TypeTraitImplementations(ref, inner.Impls),
	}
}

func fieldLine(ref docgraph.Ref) docir.Node {
	typ := ""
	if fi, ok := ref.Item.Inner.(docgraph.FieldInner); ok {
		typ = fi.Type
	}
	return docir.Paragraph{Spans: []docir.Span{
		{Text: ref.Item.Name + ": " + typ},
	}}
}

// Enum emits a framed declaration plus a Variants section (§4.H).
func Enum(ref docgraph.Ref) []docir.Node {
	inner, ok := ref.Item.Inner.(docgraph.EnumInner)
	if !ok {
		return nil
	}
	var b strings.Builder
	b.WriteString("enum ")
	b.WriteString(ref.Item.Name)
	b.WriteString(formatGenerics(inner.Generics))
	if len(inner.Where) > 0 {
		b.WriteString(" where ")
		b.WriteString(strings.Join(inner.Where, ", "))
	}
	b.WriteString(" { ... }")
	decl := docir.GeneratedCode{Spans: []docir.Span{{Text: b.String()}}}

	var variantItems [][]docir.Node
	for _, id := range inner.Variants {
		if child, ok := ref.Child(id); ok {
			variantItems = append(variantItems, []docir.Node{docir.Paragraph{Spans: []docir.Span{{Text: child.Item.Name}}}})
		}
	}
	return []docir.Node{
		decl,
		docir.Section{Title: "Variants", Body: []docir.Node{docir.List{Items: variantItems}}},
		assocTypesSection(ref, inner.AssocTypes),
		TypeTraitImplementations(ref, inner.Impls),
	}
}

// Union is analogous to Struct (§4.H).
func Union(ref docgraph.Ref) []docir.Node {
	inner, ok := ref.Item.Inner.(docgraph.UnionInner)
	if !ok {
		return nil
	}
	var b strings.Builder
	b.WriteString("union ")
	b.WriteString(ref.Item.Name)
	b.WriteString(formatGenerics(inner.Generics))
	b.WriteString(" { ... }")
	decl := docir.GeneratedCode{Spans: []docir.Span{{Text: b.String()}}}

	var fieldItems [][]docir.Node
	for _, id := range inner.Fields {
		if child, ok := ref.Child(id); ok {
			fieldItems = append(fieldItems, []docir.Node{fieldLine(child)})
		}
	}
	return []docir.Node{
		decl,
		docir.Section{Title: "Fields", Body: []docir.Node{docir.List{Items: fieldItems}}},
		assocTypesSection(ref, inner.AssocTypes),
		TypeTraitImplementations(ref, inner.Impls),
	}
}

// assocTypesSection lists the associated-type items a struct/enum/union's
// impls contribute, a section that always precedes Trait Implementations
// on a type's page (§8 scenario A).
func assocTypesSection(ref docgraph.Ref, ids []uint32) docir.Node {
	var items [][]docir.Node
	for _, id := range ids {
		if child, ok := ref.Child(id); ok {
			items = append(items, []docir.Node{docir.Paragraph{Spans: []docir.Span{{Text: child.Item.Name}}}})
		}
	}
	return docir.Section{Title: "Associated Types", Body: []docir.Node{docir.List{Items: items}}}
}

// TypeAlias formats "type Name<...> = Target;" (§4.H).
func TypeAlias(ref docgraph.Ref) docir.Node {
	inner, ok := ref.Item.Inner.(docgraph.TypeAliasInner)
	if !ok {
		return docir.GeneratedCode{}
	}
	text := "type " + ref.Item.Name + formatGenerics(inner.Generics) + " = " + inner.Target + ";"
	return docir.GeneratedCode{Spans: []docir.Span{{Text: text}}}
}

// Static formats "static [mut] NAME: Type" (§4.H).
func Static(ref docgraph.Ref) docir.Node {
	inner, ok := ref.Item.Inner.(docgraph.StaticInner)
	if !ok {
		return docir.GeneratedCode{}
	}
	text := "static "
	if inner.Mutable {
		text += "mut "
	}
	text += ref.Item.Name + ": " + inner.Type
	return docir.GeneratedCode{Spans: []docir.Span{{Text: text}}}
}

// Constant formats "const NAME: Type = Value" (§4.H).
func Constant(ref docgraph.Ref) docir.Node {
	inner, ok := ref.Item.Inner.(docgraph.ConstantInner)
	if !ok {
		return docir.GeneratedCode{}
	}
	text := "const " + ref.Item.Name + ": " + inner.Type
	if inner.Value != "" {
		text += " = " + inner.Value
	}
	return docir.GeneratedCode{Spans: []docir.Span{{Text: text}}}
}

// Macro emits a macro's Rules verbatim as a single StyleMacro span, since
// rustdoc macros are emitted as macro_rules! source (§4.H); the item name
// is not emitted separately.
func Macro(ref docgraph.Ref) docir.Node {
	inner, ok := ref.Item.Inner.(docgraph.MacroInner)
	if !ok {
		return docir.GeneratedCode{}
	}
	return docir.GeneratedCode{Spans: []docir.Span{{Text: inner.Rules, Style: docir.StyleMacro}}}
}

// Trait emits a framed declaration plus an Associated Items section,
// sorted per the associated-item rule (§4.H).
func Trait(ref docgraph.Ref) []docir.Node {
	inner, ok := ref.Item.Inner.(docgraph.TraitInner)
	if !ok {
		return nil
	}
	var b strings.Builder
	b.WriteString("trait ")
	b.WriteString(ref.Item.Name)
	b.WriteString(formatGenerics(inner.Generics))
	if len(inner.Where) > 0 {
		b.WriteString(" where ")
		b.WriteString(strings.Join(inner.Where, ", "))
	}
	decl := docir.GeneratedCode{Spans: []docir.Span{{Text: b.String()}}}

	items := make([]docgraph.Ref, 0, len(inner.Items))
	for _, id := range inner.Items {
		if child, ok := ref.Child(id); ok {
			items = append(items, child)
		}
	}
	sortAssocItems(items)
	var itemBlocks [][]docir.Node
	for _, item := range items {
		itemBlocks = append(itemBlocks, []docir.Node{docir.Paragraph{Spans: []docir.Span{{Text: item.Item.Name}}}})
	}
	assoc := docir.Section{Title: "Associated Items", Body: []docir.Node{docir.List{Items: itemBlocks}}}

	impls := TraitImplementations(ref, inner.Implementors)

	return []docir.Node{decl, assoc, impls}
}

// ImplCategory is the trait-impl provenance bucket (§4.H).
type ImplCategory int

const (
	CategoryCrateLocal ImplCategory = iota
	CategoryExternal
	CategoryStd
)

// TraitImplementations lists the types implementing a trait (the trait
// page's "who implements me" listing), categorised and alphabetised by
// the provenance of each impl's *trait's defining* crate, exactly as
// traitImplSection does for every listing: untitled CrateLocal and
// External lists come first, then a titled "Std" list.
func TraitImplementations(ref docgraph.Ref, implementorIDs []uint32) docir.Node {
	return traitImplSection(ref, implementorIDs, func(i docgraph.TraitImplInner) string { return i.ForType })
}

// TypeTraitImplementations lists the traits a struct/enum/union
// implements (a type page's "Trait Implementations" section), one entry
// per implemented trait's name, categorised and alphabetised by the
// provenance of the *trait's defining* crate (§4.H, §8 scenario A: "a
// section 'Trait Implementations' whose Std list contains at least
// Clone, Debug, Default, IntoIterator").
func TypeTraitImplementations(ref docgraph.Ref, implIDs []uint32) docir.Node {
	return traitImplSection(ref, implIDs, func(i docgraph.TraitImplInner) string { return i.TraitPath })
}

// traitImplSection walks implIDs as docgraph.TraitImplInner children of
// ref, buckets each by the provenance of the trait's defining crate, and
// projects each surviving impl to display text via project — ForType for
// an "implementors of this trait" listing, TraitPath for a "traits this
// type implements" listing.
func traitImplSection(ref docgraph.Ref, implIDs []uint32, project func(docgraph.TraitImplInner) string) docir.Node {
	buckets := map[ImplCategory][]string{}
	for _, id := range implIDs {
		implRef, ok := ref.Child(id)
		if !ok {
			continue
		}
		impl, ok := implRef.Item.Inner.(docgraph.TraitImplInner)
		if !ok {
			continue
		}
		category := categorize(implRef, impl.TraitCrateID)
		buckets[category] = append(buckets[category], project(impl))
	}
	for cat := range buckets {
		sortStrings(buckets[cat])
	}

	section := docir.Section{Title: "Trait Implementations"}
	appendImplList(&section, "", buckets[CategoryCrateLocal])
	appendImplList(&section, "", buckets[CategoryExternal])
	appendImplList(&section, "Std", buckets[CategoryStd])
	return section
}

func appendImplList(section *docir.Section, title string, types []string) {
	if len(types) == 0 && title == "" {
		return
	}
	var items [][]docir.Node
	for _, t := range types {
		items = append(items, []docir.Node{docir.Paragraph{Spans: []docir.Span{{Text: t}}}})
	}
	if title != "" {
		section.Body = append(section.Body, docir.Section{Title: title, Body: []docir.Node{docir.List{Items: items}}})
		return
	}
	section.Body = append(section.Body, docir.List{Items: items})
}

func categorize(implRef docgraph.Ref, traitCrateID uint32) ImplCategory {
	name, store, ok := implRef.ExternalCrateOf(traitCrateID)
	if !ok {
		return CategoryExternal
	}
	switch store.Provenance {
	case docgraph.ProvenanceStd:
		return CategoryStd
	case docgraph.ProvenanceWorkspace:
		return CategoryCrateLocal
	default:
		_ = name
		return CategoryExternal
	}
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
