package docsource

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"rdoc/internal/docgraph"
	"rdoc/internal/docname"
	"rdoc/internal/logging"
	"rdoc/internal/semverreq"
)

// manifest is the shape of workspace.toml (§6 Environment: "The presence
// of a local workspace.toml/manifest determines Local availability").
type manifest struct {
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies map[string]dependencySpec `toml:"dependencies"`
}

type dependencySpec struct {
	Version string `toml:"version"`
	Path    string `toml:"path"`
}

// member describes one crate the Local source can serve: either the root
// workspace package itself, or one of its direct dependencies.
type member struct {
	name         string
	version      string
	provenance   docgraph.Provenance
	artifactPath string
	dependents   []string // workspace packages depending on this crate
}

// Local implements Source for the current workspace, parsed from a
// workspace.toml manifest at Root.
type Local struct {
	Root   string // directory containing workspace.toml; "" means unavailable
	Loader GraphLoader

	loaded   bool
	members  map[string]member // keyed by canonical name
	rootName string
}

// Available reports whether a workspace manifest was found.
func (l *Local) Available() bool {
	l.ensureLoaded()
	return l.Root != "" && l.members != nil
}

func (l *Local) manifestPath() string { return filepath.Join(l.Root, "workspace.toml") }

// ensureLoaded parses workspace.toml once, lazily. Per the Open Question
// resolved in SPEC_FULL.md §9: the dependency list surfaced for the root
// package is restricted to dependencies declared directly in its own
// manifest (the conservative policy), not every crate in the lockfile.
func (l *Local) ensureLoaded() {
	if l.loaded || l.Root == "" {
		return
	}
	l.loaded = true

	var m manifest
	if _, err := toml.DecodeFile(l.manifestPath(), &m); err != nil {
		if !os.IsNotExist(err) {
			logging.Get(logging.CategorySource).Warn("local: failed to parse workspace.toml: %v", err)
		}
		return
	}

	l.members = make(map[string]member)
	l.rootName = m.Package.Name
	if m.Package.Name != "" {
		l.members[docname.From(m.Package.Name).Canonical()] = member{
			name:         m.Package.Name,
			version:      m.Package.Version,
			provenance:   docgraph.ProvenanceWorkspace,
			artifactPath: l.Root,
		}
	}
	for depName, dep := range m.Dependencies {
		path := dep.Path
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(l.Root, path)
		}
		l.members[docname.From(depName).Canonical()] = member{
			name:         depName,
			version:      dep.Version,
			provenance:   docgraph.ProvenanceLocalDependency,
			artifactPath: path,
			dependents:   []string{m.Package.Name},
		}
	}
}

func (l *Local) Lookup(ctx context.Context, name string, req semverreq.Req) (CrateInfo, bool) {
	l.ensureLoaded()
	if IsFiltered(name) || l.members == nil {
		return CrateInfo{}, false
	}
	m, ok := l.members[docname.From(name).Canonical()]
	if !ok {
		return CrateInfo{}, false
	}
	if m.version != "" && req != semverreq.Any && !req.Matches(m.version) {
		return CrateInfo{}, false
	}
	return CrateInfo{
		Name:                  docname.From(m.name),
		Version:               m.version,
		Provenance:            m.provenance,
		ArtifactPath:          m.artifactPath,
		DependentWorkspacePkgs: m.dependents,
	}, true
}

func (l *Local) Load(ctx context.Context, name, version string) (*docgraph.Store, bool) {
	info, ok := l.Lookup(ctx, name, semverreq.Any)
	if !ok || l.Loader == nil {
		return nil, false
	}
	data, err := l.Loader.LoadGraph(ctx, info.Name.String(), info.Version, info.ArtifactPath)
	if err != nil {
		logging.Get(logging.CategorySource).Warn("local: build/load %s failed: %v", name, err)
		return nil, false
	}
	data.Provenance = info.Provenance
	store, err := docgraph.NewStore(data)
	if err != nil {
		logging.Get(logging.CategorySource).Error("local: parse %s failed: %v", name, err)
		return nil, false
	}
	return store, true
}

func (l *Local) ListAvailable() []CrateInfo {
	l.ensureLoaded()
	if l.members == nil {
		return nil
	}
	out := make([]CrateInfo, 0, len(l.members))
	for _, m := range l.members {
		out = append(out, CrateInfo{
			Name:                  docname.From(m.name),
			Version:               m.version,
			Provenance:            m.provenance,
			ArtifactPath:          m.artifactPath,
			DependentWorkspacePkgs: m.dependents,
		})
	}
	return out
}

func (l *Local) Canonicalize(input string) (docname.Name, bool) {
	l.ensureLoaded()
	if IsFiltered(input) || l.members == nil {
		return docname.Name{}, false
	}
	if m, ok := l.members[docname.From(input).Canonical()]; ok {
		return docname.From(m.name), true
	}
	return docname.Name{}, false
}
