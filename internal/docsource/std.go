package docsource

import (
	"context"

	"rdoc/internal/docgraph"
	"rdoc/internal/docname"
	"rdoc/internal/logging"
	"rdoc/internal/semverreq"
)

// GraphLoader loads a parsed graph given a crate name and version. Real
// rustdoc-json unmarshaling is out of scope (§1); this seam lets Std,
// Local, and Remote each plug in whatever loader fits their artifact
// location without docsource depending on a concrete JSON schema.
type GraphLoader interface {
	LoadGraph(ctx context.Context, crateName, version, artifactPath string) (docgraph.StoreData, error)
}

// stdCrates is the fixed pseudo-crate universe Std enumerates (§4.C:
// "Std matches a fixed set of pseudo-crate names").
var stdCrates = []string{"std", "core", "alloc", "proc_macro", "test"}

// Std implements Source for the standard library, sourced from a local
// rustup-like toolchain directory (§6 Environment).
type Std struct {
	ToolchainVersion string // the active compiler's version, e.g. "1.82.0"
	ToolchainDir     string // "" means Std is unavailable
	Loader           GraphLoader
}

// Available reports whether a toolchain directory was found (§6
// Environment: "A rustup-like toolchain directory determines Std
// availability").
func (s *Std) Available() bool { return s.ToolchainDir != "" }

func (s *Std) Lookup(ctx context.Context, name string, req semverreq.Req) (CrateInfo, bool) {
	if !s.Available() || IsFiltered(name) {
		return CrateInfo{}, false
	}
	canon := docname.From(name).Canonical()
	for _, c := range stdCrates {
		if docname.From(c).Canonical() == canon {
			if !req.Matches(s.ToolchainVersion) && req != semverreq.Any {
				return CrateInfo{}, false
			}
			return CrateInfo{
				Name:        docname.From(c),
				Version:     s.ToolchainVersion,
				Provenance:  docgraph.ProvenanceStd,
				Description: "part of the Rust standard distribution",
			}, true
		}
	}
	return CrateInfo{}, false
}

func (s *Std) Load(ctx context.Context, name, version string) (*docgraph.Store, bool) {
	info, ok := s.Lookup(ctx, name, semverreq.Any)
	if !ok || s.Loader == nil {
		return nil, false
	}
	data, err := s.Loader.LoadGraph(ctx, info.Name.String(), info.Version, s.ToolchainDir)
	if err != nil {
		logging.Get(logging.CategorySource).Warn("std: load %s failed: %v", name, err)
		return nil, false
	}
	data.Provenance = docgraph.ProvenanceStd
	store, err := docgraph.NewStore(data)
	if err != nil {
		logging.Get(logging.CategorySource).Error("std: parse %s failed: %v", name, err)
		return nil, false
	}
	return store, true
}

func (s *Std) ListAvailable() []CrateInfo {
	if !s.Available() {
		return nil
	}
	out := make([]CrateInfo, 0, len(stdCrates))
	for _, c := range stdCrates {
		out = append(out, CrateInfo{
			Name:        docname.From(c),
			Version:     s.ToolchainVersion,
			Provenance:  docgraph.ProvenanceStd,
			Description: "part of the Rust standard distribution",
		})
	}
	return out
}

func (s *Std) Canonicalize(input string) (docname.Name, bool) {
	if !s.Available() || IsFiltered(input) {
		return docname.Name{}, false
	}
	canon := docname.From(input).Canonical()
	for _, c := range stdCrates {
		if docname.From(c).Canonical() == canon {
			return docname.From(c), true
		}
	}
	return docname.Name{}, false
}
