// Package navigator implements the Navigator (§4.D): the central
// coordinator that canonicalises names, dispatches loads across Std,
// Local, and Remote sources in priority order, memoises both successful
// and permanently-failed loads in an append-only working set, indexes
// cross-graph references discovered at load time, and resolves dotted
// paths to a docgraph.Ref with similarity-scored suggestions on failure.
// The working set is a provenance-aware, append-only store keyed by
// canonical id, fronting a priority chain of three pluggable sources.
package navigator

import (
	"context"
	"hash/maphash"
	"net/url"
	"strings"
	"sync"

	"rdoc/internal/docgraph"
	"rdoc/internal/docname"
	"rdoc/internal/docsource"
	"rdoc/internal/logging"
	"rdoc/internal/semverreq"
)

// externalRef is what the external-crate index remembers about a name
// seen via some loaded graph's external_crates table (§4.D step 3/5).
type externalRef struct {
	realName string
	version  string
}

// slot is a working-set entry: either a loaded graph (store != nil) or a
// memoised permanent failure (store == nil, failed == true). The zero
// slot (failed == false, store == nil) means "not yet attempted", and is
// never observed outside the working set's own map — its presence in
// the map IS the "attempted" signal.
type slot struct {
	store  *docgraph.Store
	failed bool
}

// Navigator is single-threaded during a render per §4.D; the mutex exists
// only so the worker-thread ownership model (§5 Concurrency) can be
// swapped later for a layout where Navigator calls are cheap to guard
// defensively. It is never contended in normal operation.
type Navigator struct {
	sources []docsource.Source // priority order: Std, Local, Remote

	mu          sync.Mutex
	workingSet  map[string]*slot // keyed by canonical name
	externalIdx map[string]externalRef

	seed maphash.Seed
}

// New builds a Navigator over sources in priority order (Std, Local,
// Remote per §4.C/§4.D).
func New(sources ...docsource.Source) *Navigator {
	return &Navigator{
		sources:     sources,
		workingSet:  make(map[string]*slot),
		externalIdx: make(map[string]externalRef),
		seed:        maphash.MakeSeed(),
	}
}

// discriminator computes the stable hash of a crate's canonical name
// (§3 GraphId: "Crate discriminator is the stable hash of the crate's
// canonical name").
func (n *Navigator) discriminator(canon string) uint64 {
	var h maphash.Hash
	h.SetSeed(n.seed)
	h.WriteString(canon)
	return h.Sum64()
}

// ListAvailableCrates unions every source's enumeration; Remote.ListAvailable
// always returns nil (§4.D: Remote's universe is unbounded), so in
// practice this unions only Std and Local.
func (n *Navigator) ListAvailableCrates() []docsource.CrateInfo {
	var out []docsource.CrateInfo
	for _, src := range n.sources {
		out = append(out, src.ListAvailable()...)
	}
	return out
}

// LookupCrate performs a priority scan across sources (§4.D lookup_crate).
func (n *Navigator) LookupCrate(ctx context.Context, name string, req semverreq.Req) (docsource.CrateInfo, bool) {
	if docsource.IsFiltered(name) {
		return docsource.CrateInfo{}, false
	}
	for _, src := range n.sources {
		if info, ok := src.Lookup(ctx, name, req); ok {
			return info, true
		}
	}
	return docsource.CrateInfo{}, false
}

// Canonicalize performs a priority scan for an owning source's preferred
// display form, falling back to a fresh canonical built from the raw
// input when no source claims the name (§4.D canonicalize).
func (n *Navigator) Canonicalize(name string) docname.Name {
	for _, src := range n.sources {
		if canon, ok := src.Canonicalize(name); ok {
			return canon
		}
	}
	return docname.From(name)
}

// LoadCrate implements load_crate (§4.D): canonicalise, consult the
// working set, else the external-crate index, else lookup_crate;
// dispatch to the identified source (or try all three in priority order
// when provenance is unknown); on success index newly discovered
// external references and store the result; on failure memoise None.
func (n *Navigator) LoadCrate(ctx context.Context, name string, req semverreq.Req) (*docgraph.Store, bool) {
	if docsource.IsFiltered(name) {
		return nil, false
	}
	canon := n.Canonicalize(name).Canonical()

	n.mu.Lock()
	if s, ok := n.workingSet[canon]; ok {
		n.mu.Unlock()
		return s.store, s.store != nil
	}
	ext, hasExt := n.externalIdx[canon]
	n.mu.Unlock()

	var store *docgraph.Store
	if hasExt {
		store = n.loadFromAnySource(ctx, ext.realName, ext.version)
	} else {
		info, ok := n.LookupCrate(ctx, name, req)
		if !ok {
			n.memoizeFailure(canon)
			return nil, false
		}
		store = n.loadFromProvenance(ctx, info)
	}

	if store == nil {
		n.memoizeFailure(canon)
		return nil, false
	}

	n.mu.Lock()
	store.SetResolver(n.discriminator(store.CrateName.Canonical()), n)
	n.workingSet[canon] = &slot{store: store}
	n.mu.Unlock()

	n.indexExternalReferences(store)
	return store, true
}

func (n *Navigator) memoizeFailure(canon string) {
	n.mu.Lock()
	n.workingSet[canon] = &slot{failed: true}
	n.mu.Unlock()
}

// loadFromProvenance dispatches to the single source indicated by info's
// provenance, falling back to trying every source in priority order if
// that fails (covers the case where provenance was inferred rather than
// exact, e.g. a Std pseudo-crate whose Load still lives on Std only).
func (n *Navigator) loadFromProvenance(ctx context.Context, info docsource.CrateInfo) *docgraph.Store {
	for _, src := range n.sources {
		if candidate, ok := src.Lookup(ctx, info.Name.String(), semverreq.Any); ok && candidate.Provenance == info.Provenance {
			if store, ok := src.Load(ctx, info.Name.String(), info.Version); ok {
				return store
			}
		}
	}
	return n.loadFromAnySource(ctx, info.Name.String(), info.Version)
}

// loadFromAnySource tries Std, Local, Remote in order (§4.D step 4:
// "if provenance is unknown, try Std, Local, Remote in order").
func (n *Navigator) loadFromAnySource(ctx context.Context, name, version string) *docgraph.Store {
	for _, src := range n.sources {
		if store, ok := src.Load(ctx, name, version); ok {
			return store
		}
	}
	return nil
}

// indexExternalReferences implements §4.D step 5: for every external
// crate whose html_root_url parses as a registry URL, remember the exact
// (name, version) it was built against so future lookups of that name
// prefer this pin over "latest".
func (n *Navigator) indexExternalReferences(store *docgraph.Store) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ext := range store.ExternalCrates() {
		name, version, ok := parseRegistryRootURL(ext.HTMLRootURL)
		if !ok {
			continue
		}
		canon := docname.From(ext.DisplayName).Canonical()
		n.externalIdx[canon] = externalRef{realName: name, version: version}
		logging.Get(logging.CategoryNavigator).Debug("indexed external ref %s -> %s@%s", canon, name, version)
	}
}

// parseRegistryRootURL extracts (name, version) from an html_root_url of
// the form "https://{registry-host}/{name}/{version}/…" (§4.D step 5).
func parseRegistryRootURL(raw string) (name, version string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", false
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 {
		return "", "", false
	}
	return segs[0], segs[1], true
}

// LoadGraphByName implements docgraph.CrossGraphResolver, letting any
// Store reached through this Navigator follow an external crate id back
// into the working set (§4.B TraverseToCrateByID).
func (n *Navigator) LoadGraphByName(name string) (*docgraph.Store, bool) {
	return n.LoadCrate(context.Background(), name, semverreq.Any)
}
