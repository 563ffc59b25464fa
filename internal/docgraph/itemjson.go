package docgraph

import (
	"encoding/json"
	"fmt"
)

// itemWire is Item's on-wire shape. encoding/json can't unmarshal an
// object directly into Inner (a closed non-empty interface), so the wire
// form spells out one optional field per concrete Inner type — the same
// one-of-many-optional-fields pattern rustdoc's own ItemEnum uses on the
// Rust side, adapted here purely for the Go decode, not to mirror its
// field names.
type itemWire struct {
	ID         uint32                `json:"id"`
	Name       string                `json:"name"`
	Visibility Visibility            `json:"visibility"`
	Kind       Kind                  `json:"kind"`
	Docs       string                `json:"docs,omitempty"`
	Span       *Span                 `json:"span,omitempty"`
	Links      map[string]LinkTarget `json:"links,omitempty"`
	Children   []uint32              `json:"children,omitempty"`

	Function  *FunctionInner  `json:"function,omitempty"`
	Struct    *StructInner    `json:"struct,omitempty"`
	Enum      *EnumInner      `json:"enum,omitempty"`
	Union     *UnionInner     `json:"union,omitempty"`
	Trait     *TraitInner     `json:"trait,omitempty"`
	TraitImpl *TraitImplInner `json:"trait_impl,omitempty"`
	TypeAlias *TypeAliasInner `json:"type_alias,omitempty"`
	Constant  *ConstantInner  `json:"constant,omitempty"`
	Static    *StaticInner    `json:"static,omitempty"`
	Macro     *MacroInner     `json:"macro,omitempty"`
	Use       *UseInner       `json:"use,omitempty"`
	Field     *FieldInner     `json:"field,omitempty"`
	Variant   *VariantInner   `json:"variant,omitempty"`
}

// UnmarshalJSON decodes the wire shape and selects whichever one of the
// per-kind optional fields was populated as Inner. A missing/unknown
// variant decodes to ModuleInner, matching Kind's zero value.
func (it *Item) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("docgraph: decode item: %w", err)
	}
	*it = Item{
		ID:         w.ID,
		Name:       w.Name,
		Visibility: w.Visibility,
		Kind:       w.Kind,
		Docs:       w.Docs,
		Span:       w.Span,
		Links:      w.Links,
		Children:   w.Children,
	}
	switch {
	case w.Function != nil:
		it.Inner = *w.Function
	case w.Struct != nil:
		it.Inner = *w.Struct
	case w.Enum != nil:
		it.Inner = *w.Enum
	case w.Union != nil:
		it.Inner = *w.Union
	case w.Trait != nil:
		it.Inner = *w.Trait
	case w.TraitImpl != nil:
		it.Inner = *w.TraitImpl
	case w.TypeAlias != nil:
		it.Inner = *w.TypeAlias
	case w.Constant != nil:
		it.Inner = *w.Constant
	case w.Static != nil:
		it.Inner = *w.Static
	case w.Macro != nil:
		it.Inner = *w.Macro
	case w.Use != nil:
		it.Inner = *w.Use
	case w.Field != nil:
		it.Inner = *w.Field
	case w.Variant != nil:
		it.Inner = *w.Variant
	default:
		it.Inner = ModuleInner{}
	}
	return nil
}

// MarshalJSON is UnmarshalJSON's inverse, used when writing a
// self-produced cache entry (as opposed to caching the registry's own
// bytes verbatim, which is the normal path — see remotecache.DiskCache).
func (it Item) MarshalJSON() ([]byte, error) {
	w := itemWire{
		ID:         it.ID,
		Name:       it.Name,
		Visibility: it.Visibility,
		Kind:       it.Kind,
		Docs:       it.Docs,
		Span:       it.Span,
		Links:      it.Links,
		Children:   it.Children,
	}
	switch v := it.Inner.(type) {
	case FunctionInner:
		w.Function = &v
	case StructInner:
		w.Struct = &v
	case EnumInner:
		w.Enum = &v
	case UnionInner:
		w.Union = &v
	case TraitInner:
		w.Trait = &v
	case TraitImplInner:
		w.TraitImpl = &v
	case TypeAliasInner:
		w.TypeAlias = &v
	case ConstantInner:
		w.Constant = &v
	case StaticInner:
		w.Static = &v
	case MacroInner:
		w.Macro = &v
	case UseInner:
		w.Use = &v
	case FieldInner:
		w.Field = &v
	case VariantInner:
		w.Variant = &v
	}
	return json.Marshal(w)
}
