package docgraph

import (
	"fmt"

	"rdoc/internal/docname"
	"rdoc/internal/logging"
)

// CurrentFormatVersion is the rustdoc-json format version this build
// expects on construction. Older bytes must be normalized to this shape
// before reaching NewStore (§4.B, §4.E).
const CurrentFormatVersion = 45

// ParseError is returned by NewStore when the embedded format version
// doesn't match, or the payload fails a structural invariant.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "docgraph: parse error: " + e.Reason }

// Store is an owned, immutable parse of one crate's documentation graph
// (§3 GraphStore). Once constructed it never mutates; callers hold
// *Store references for as long as they like — the Navigator's working
// set never reallocates a Store once inserted (see internal/navigator).
type Store struct {
	CrateName      docname.Name
	Version        string // "" if unversioned (e.g. a workspace member)
	Provenance     Provenance
	ArtifactPath   string
	CrateDiscrim   uint64
	RootID         uint32
	index          map[uint32]*Item
	paths          map[uint32]ItemSummary
	externalCrates map[uint32]ExternalCrate
	resolver       CrossGraphResolver
}

// CrossGraphResolver is the capability a Store needs to jump from an
// external id into the graph that defines it. *navigator.Navigator
// implements this; defining the interface here (the consumer side) avoids
// an import cycle between docgraph and navigator.
type CrossGraphResolver interface {
	LoadGraphByName(name string) (*Store, bool)
}

// StoreData is the parsed-but-unvalidated shape NewStore accepts. A real
// rustdoc-json unmarshaler (out of scope per spec §1) would produce this;
// tests and the remote/local sources build it directly or via
// internal/remotecache's normalizer.
type StoreData struct {
	FormatVersion  int
	CrateName      string
	Version        string
	Provenance     Provenance
	ArtifactPath   string
	RootID         uint32
	Index          map[uint32]*Item
	Paths          map[uint32]ItemSummary
	ExternalCrates map[uint32]ExternalCrate
}

// NewStore validates d and constructs an immutable Store. The resolver is
// attached after construction via SetResolver once the owning Navigator
// has assigned the crate's discriminator (a Store doesn't know its own
// discriminator until the Navigator computes it from CrateName).
func NewStore(d StoreData) (*Store, error) {
	if d.FormatVersion != CurrentFormatVersion {
		return nil, &ParseError{Reason: fmt.Sprintf("unsupported format version %d, want %d (normalize first)", d.FormatVersion, CurrentFormatVersion)}
	}
	if _, ok := d.Index[d.RootID]; !ok {
		return nil, &ParseError{Reason: "root_id not present in index"}
	}
	for id, summary := range d.Paths {
		if len(summary.Path) < 1 {
			return nil, &ParseError{Reason: fmt.Sprintf("path for id %d has zero length", id)}
		}
	}

	s := &Store{
		CrateName:      docname.From(d.CrateName),
		Version:        d.Version,
		Provenance:     d.Provenance,
		ArtifactPath:   d.ArtifactPath,
		RootID:         d.RootID,
		index:          d.Index,
		paths:          d.Paths,
		externalCrates: d.ExternalCrates,
	}
	logging.Get(logging.CategorySource).Debug("parsed graph for %s (%d items, %d external crates)", d.CrateName, len(d.Index), len(d.ExternalCrates))
	return s, nil
}

// SetResolver attaches the cross-graph resolver and discriminator once
// the Navigator has computed them. Called exactly once, before the Store
// is published to any reader.
func (s *Store) SetResolver(discrim uint64, resolver CrossGraphResolver) {
	s.CrateDiscrim = discrim
	s.resolver = resolver
}

// ExternalCrates returns the external-crate table (read-only view).
func (s *Store) ExternalCrates() map[uint32]ExternalCrate { return s.externalCrates }

// Root returns a Ref to the crate root module.
func (s *Store) Root() (Ref, bool) {
	return s.Get(s.RootID)
}

// Get looks up a local id in this graph.
func (s *Store) Get(id uint32) (Ref, bool) {
	item, ok := s.index[id]
	if !ok {
		return Ref{}, false
	}
	return Ref{Graph: s, Item: item}, true
}

// PathOf returns the resolvable summary for id, if this graph records
// one (only external-facing items have a path entry).
func (s *Store) PathOf(id uint32) (ItemSummary, bool) {
	p, ok := s.paths[id]
	return p, ok
}

// TraverseToCrateByID follows an external id to the Store that defines
// it. The sentinel id 0 means "this crate" per §4.B.
func (s *Store) TraverseToCrateByID(externalID uint32) (*Store, bool) {
	if externalID == 0 {
		return s, true
	}
	ext, ok := s.externalCrates[externalID]
	if !ok || s.resolver == nil {
		return nil, false
	}
	return s.resolver.LoadGraphByName(ext.DisplayName)
}

// FindByPath descends from the root by display-name segments, the same
// child-matching rule resolve_path uses (§4.D), but scoped to this graph
// only (no crate-part, no cross-graph Use following of the final
// segment's target crate — that's Navigator's job).
func (s *Store) FindByPath(segments []string) (Ref, bool) {
	cur, ok := s.Root()
	if !ok {
		return Ref{}, false
	}
	for _, seg := range segments {
		next, ok := cur.ChildByName(seg)
		if !ok {
			return Ref{}, false
		}
		cur = next
	}
	return cur, true
}

// Invariant2Holds checks §8 property 2 for every id reachable from root:
// resolvable locally, via paths, or via an external crate entry. Exposed
// for tests; not called on the hot path.
func (s *Store) Invariant2Holds() error {
	seen := map[uint32]bool{}
	var walk func(id uint32) error
	walk = func(id uint32) error {
		if seen[id] {
			return nil
		}
		seen[id] = true
		if item, ok := s.index[id]; ok {
			for _, child := range item.Children {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		}
		if _, ok := s.paths[id]; ok {
			return nil
		}
		if _, ok := s.externalCrates[id]; ok {
			return nil
		}
		return fmt.Errorf("id %d unreachable: not in index, paths, or external_crates", id)
	}
	return walk(s.RootID)
}
