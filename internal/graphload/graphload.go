// Package graphload implements docsource.GraphLoader by reading rustdoc
// JSON off the local filesystem, the artifact location both Std (a
// toolchain's sysroot) and Local (a workspace member's target dir) hand
// docsource.GraphLoader.LoadGraph (§1 explicitly scopes the compiler's
// own JSON schema out, so this package only needs to find bytes and hand
// them to remotecache.Normalize, not parse rustdoc's schema itself).
package graphload

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rdoc/internal/docgraph"
	"rdoc/internal/remotecache"
)

// FS loads a crate's rustdoc JSON from a cargo-doc-style artifact tree:
// <artifactPath>/target/doc/<crate_name>.json, falling back to
// <artifactPath>/<crate_name>.json for a flatter layout (how the
// fixtures under testdata/ are laid out).
type FS struct{}

// formatProbe reads just enough of the payload to learn its embedded
// format version before handing the whole thing to remotecache.Normalize.
type formatProbe struct {
	FormatVersion int `json:"format_version"`
}

func (FS) LoadGraph(ctx context.Context, crateName, version, artifactPath string) (docgraph.StoreData, error) {
	if artifactPath == "" {
		return docgraph.StoreData{}, fmt.Errorf("graphload: empty artifact path for %s", crateName)
	}
	path, err := locate(artifactPath, crateName)
	if err != nil {
		return docgraph.StoreData{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return docgraph.StoreData{}, fmt.Errorf("graphload: read %s: %w", path, err)
	}

	var probe formatProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return docgraph.StoreData{}, fmt.Errorf("graphload: %s: %w", path, err)
	}

	data, err := remotecache.Normalize(raw, probe.FormatVersion)
	if err != nil {
		return docgraph.StoreData{}, fmt.Errorf("graphload: %s: %w", path, err)
	}
	if data.ArtifactPath == "" {
		data.ArtifactPath = path
	}
	return data, nil
}

func locate(artifactPath, crateName string) (string, error) {
	candidates := []string{
		filepath.Join(artifactPath, "target", "doc", crateName+".json"),
		filepath.Join(artifactPath, crateName+".json"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("graphload: no rustdoc json for %s under %s", crateName, artifactPath)
}
