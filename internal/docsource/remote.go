package docsource

import (
	"context"

	"rdoc/internal/docgraph"
	"rdoc/internal/docname"
	"rdoc/internal/logging"
	"rdoc/internal/remotecache"
	"rdoc/internal/semverreq"
)

// Remote implements Source over a registry + docs host, via
// internal/remotecache. Per the Open Question resolved in SPEC_FULL.md
// §9, every graph this source produces is tagged ProvenanceRemote even
// when the underlying crate happens to also be a workspace dependency —
// provenance reflects where THIS graph came from, not where the crate
// could have come from.
type Remote struct {
	Client  *remotecache.Client
	Offline bool // set from --offline / config; Remote reports unavailable
}

func (r *Remote) Available() bool { return !r.Offline && r.Client != nil }

func (r *Remote) Lookup(ctx context.Context, name string, req semverreq.Req) (CrateInfo, bool) {
	if !r.Available() || IsFiltered(name) {
		return CrateInfo{}, false
	}
	meta, ok, err := r.Client.Resolve(ctx, name, req)
	if err != nil {
		logging.Get(logging.CategoryRemote).Warn("resolve %s failed: %v", name, err)
		return CrateInfo{}, false
	}
	if !ok {
		return CrateInfo{}, false
	}
	return CrateInfo{
		Name:        docname.From(meta.Name),
		Version:     meta.Version,
		Provenance:  docgraph.ProvenanceRemote,
		Description: meta.Description,
	}, true
}

func (r *Remote) Load(ctx context.Context, name, version string) (*docgraph.Store, bool) {
	if !r.Available() {
		return nil, false
	}
	if version == "" {
		info, ok := r.Lookup(ctx, name, semverreq.Any)
		if !ok {
			return nil, false
		}
		version = info.Version
	}
	data, err := r.Client.GetCrate(ctx, name, version)
	if err != nil {
		logging.Get(logging.CategoryRemote).Warn("fetch %s@%s failed: %v", name, version, err)
		return nil, false
	}
	store, err := docgraph.NewStore(data)
	if err != nil {
		logging.Get(logging.CategoryRemote).Error("parse %s@%s failed: %v", name, version, err)
		return nil, false
	}
	return store, true
}

// ListAvailable is empty: Remote's universe is the whole registry, not
// enumerable up front (§4.C).
func (r *Remote) ListAvailable() []CrateInfo { return nil }

func (r *Remote) Canonicalize(input string) (docname.Name, bool) {
	info, ok := r.Lookup(context.Background(), input, semverreq.Any)
	if !ok {
		return docname.Name{}, false
	}
	return info.Name, true
}
