// Package docsource implements the Source trait (§4.C): Std, Local, and
// Remote crate sources, each able to enumerate known crates, resolve a
// (name, VersionReq) to a CrateInfo, and load the corresponding graph,
// as three interchangeable, provenance-tagged backends behind one
// interface.
package docsource

import (
	"context"
	"strings"

	"rdoc/internal/docgraph"
	"rdoc/internal/docname"
	"rdoc/internal/semverreq"
)

// CrateInfo is a cheap descriptor produced by Source.Lookup (§3).
type CrateInfo struct {
	Name                  docname.Name
	Version               string // "" if unresolved/unversioned
	Provenance            docgraph.Provenance
	Description           string
	DependentWorkspacePkgs []string // workspace packages depending on this crate; empty for Std/Remote
	ArtifactPath          string   // "" if unknown
}

// Source is implemented by Std, Local, and Remote.
type Source interface {
	// Lookup resolves name (honoring req) to a CrateInfo, or reports
	// false if this source doesn't know the crate.
	Lookup(ctx context.Context, name string, req semverreq.Req) (CrateInfo, bool)

	// Load parses and returns the graph for (name, version). version
	// may be empty to mean "whatever this source considers current".
	Load(ctx context.Context, name string, version string) (*docgraph.Store, bool)

	// ListAvailable enumerates crates this source knows about without
	// fetching anything. Remote returns nil: its universe is unbounded.
	ListAvailable() []CrateInfo

	// Canonicalize returns the stored Name with its original
	// dash/underscore form if this source owns the crate, or reports
	// false.
	Canonicalize(input string) (docname.Name, bool)
}

// rejectedExact, together with the "rustc_" prefix check in IsFiltered,
// implements the filtering rule shared by every source and by
// Navigator.LoadCrate: certain internal compiler crate names are treated
// as nonexistent everywhere (§4.D).
var rejectedExact = map[string]bool{
	"std_detect":            true,
	"rustc_literal_escaper": true,
}

// IsFiltered reports whether name must be rejected by every source.
func IsFiltered(name string) bool {
	canon := docname.From(name).Canonical()
	if rejectedExact[canon] {
		return true
	}
	return strings.HasPrefix(canon, "rustc_")
}
