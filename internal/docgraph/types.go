// Package docgraph implements GraphStore: an immutable, parsed rustdoc-json
// documentation graph for a single (crate, version), plus the DocRef
// capability handle used to traverse it: an in-process graph of
// nodes/edges with identity/provenance fields attached to each stored
// unit, held entirely in memory rather than behind a database.
package docgraph

// GraphID identifies a node across the whole Navigator session: a
// crate-local node id paired with the stable hash of the owning crate's
// canonical name (§3 GraphId). It is only meaningful within the
// Navigator session that produced it.
type GraphID struct {
	Local uint32
	Crate uint64
}

// Provenance is the origin of a symbol graph.
type Provenance int

const (
	ProvenanceStd Provenance = iota
	ProvenanceWorkspace
	ProvenanceLocalDependency
	ProvenanceRemote
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceStd:
		return "std"
	case ProvenanceWorkspace:
		return "workspace"
	case ProvenanceLocalDependency:
		return "local-dependency"
	case ProvenanceRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Kind enumerates the item kinds the graph can hold.
type Kind int

const (
	KindModule Kind = iota
	KindStruct
	KindEnum
	KindUnion
	KindTrait
	KindFunction
	KindMethod
	KindTypeAlias
	KindConstant
	KindStatic
	KindMacro
	KindUse // re-export; must be followed transparently
	KindTraitImpl
	KindField
	KindVariant
	KindAssocType
	KindAssocConst
	KindExternCrate
)

func (k Kind) String() string {
	names := [...]string{
		"module", "struct", "enum", "union", "trait", "function", "method",
		"type alias", "constant", "static", "macro", "use", "impl", "field",
		"variant", "associated type", "associated constant", "extern crate",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Visibility is an item's visibility.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityCrate
	VisibilityPrivate
	VisibilityRestricted // pub(in path)
)

// Span locates an item's definition in its source file.
type Span struct {
	Filename   string
	BeginLine  int
	BeginCol   int
}

// LinkTarget is a resolved intra-doc link discovered while parsing a doc
// comment: either a local id in this graph, or an external id resolved
// through ExternalCrates.
type LinkTarget struct {
	LocalID    uint32
	ExternalID uint32 // index into the owning graph's ExternalCrates; 0 if LocalID is authoritative
	IsExternal bool
}

// Item is a single node's payload.
type Item struct {
	ID         uint32
	Name       string
	Visibility Visibility
	Kind       Kind
	Docs       string
	Span       *Span
	Inner      Inner
	Links      map[string]LinkTarget // doc-comment link text -> resolved target
	Children   []uint32              // for Module/Struct/Enum/Trait: contained item ids, in source order
}

// Inner carries kind-specific structured data formatters consume. It is a
// closed set of concrete structs rather than interface{} so docfmt can
// type-switch exhaustively.
type Inner interface {
	isInner()
}

type FunctionInner struct {
	Const, Async, Unsafe bool
	ABI                  string // "" means default/Rust ABI
	Generics             []GenericParam
	Params               []Param
	Return               string // "" means unit return; else the formatted type
	Where                []string
	SelfKind             SelfKind
	// TypeRefs resolves an identifier token appearing in a Param.Type or
	// in Return to the item it names, so docfmt can render that token as
	// a navigable Span::type_name (§4.H). Tokens absent from this map
	// (generic parameter names, primitives) render as plain text.
	TypeRefs map[string]LinkTarget
}

func (FunctionInner) isInner() {}

type SelfKind int

const (
	SelfNone SelfKind = iota
	SelfByValue
	SelfByRef
	SelfByRefMut
	SelfByRefLifetime
	SelfByRefMutLifetime
	SelfTyped // other explicitly typed receiver, spelled out in full
)

type GenericParam struct {
	Name   string
	Bounds []string
}

type Param struct {
	Name string
	Type string
}

type StructInner struct {
	Generics     []GenericParam
	Where        []string
	Fields       []uint32 // ids of KindField children that are visible
	HiddenFields int       // count of non-visible fields
	AssocTypes   []uint32  // ids of KindAssocType items contributed by this type's impls
	Impls        []uint32  // ids of KindTraitImpl items whose ForType is this struct
}

func (StructInner) isInner() {}

type EnumInner struct {
	Generics   []GenericParam
	Where      []string
	Variants   []uint32
	AssocTypes []uint32
	Impls      []uint32
}

func (EnumInner) isInner() {}

type UnionInner struct {
	Generics   []GenericParam
	Fields     []uint32
	AssocTypes []uint32
	Impls      []uint32
}

func (UnionInner) isInner() {}

type TraitInner struct {
	Generics       []GenericParam
	Where          []string
	Items          []uint32 // associated items, unsorted; docfmt sorts by span
	Implementors   []uint32 // ids of TraitImpl items in (possibly external) graphs
}

func (TraitInner) isInner() {}

type TraitImplInner struct {
	TraitPath    string
	TraitCrateID uint32 // index into ExternalCrates, or 0 for this crate
	ForType      string
	Generics     []GenericParam
	Where        []string
	Items        []uint32
}

func (TraitImplInner) isInner() {}

type TypeAliasInner struct {
	Generics []GenericParam
	Target   string
}

func (TypeAliasInner) isInner() {}

type ConstantInner struct {
	Type  string
	Value string
}

func (ConstantInner) isInner() {}

type StaticInner struct {
	Type     string
	Mutable  bool
}

func (StaticInner) isInner() {}

type MacroInner struct {
	Rules string
}

func (MacroInner) isInner() {}

type UseInner struct {
	// TargetID is the id this re-export resolves to in the owning graph
	// (possibly itself a Use, possibly external — see ExternalTarget).
	TargetID       uint32
	ExternalTarget *LinkTarget
	Glob           bool
}

func (UseInner) isInner() {}

type ModuleInner struct{}

func (ModuleInner) isInner() {}

type FieldInner struct {
	Type string
}

func (FieldInner) isInner() {}

type VariantInner struct {
	Fields []uint32 // empty for a unit variant
}

func (VariantInner) isInner() {}

// ItemSummary is the only resolvable surface for items outside the
// current graph: a crate discriminator, kind, and dotted path.
type ItemSummary struct {
	CrateDiscriminator uint64
	Kind               Kind
	Path               []string
}

// ExternalCrate records another crate a graph's items can point into.
type ExternalCrate struct {
	DisplayName string
	HTMLRootURL string
}
