// Package remotecache implements the Remote cache client (§4.E): registry
// version resolution, a content-addressed on-disk cache keyed by
// (crate, version, graph-format-version), zstd-compressed transport, and
// normalization to the current graph format. The cache-staleness check
// mirrors an mtime-based invalidation scheme over a disk-backed,
// format-versioned store rather than an in-memory TTL cache.
package remotecache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"rdoc/internal/docgraph"
	"rdoc/internal/logging"
	"rdoc/internal/semverreq"
)

// Fetcher is the Fetch(URL) -> Bytes boundary (§1, §6): HTTP transport is
// a named external boundary rather than a core concern, so it's a
// pluggable interface with a net/http-backed default (see DESIGN.md).
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (body []byte, headers http.Header, status int, err error)
}

// HTTPFetcher is the default Fetcher, a thin net/http client.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, http.Header, int, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, 0, err
	}
	defer resp.Body.Close()
	buf := make([]byte, 0, 64*1024)
	chunk := make([]byte, 32*1024)
	for {
		n, rerr := resp.Body.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if rerr != nil {
			break
		}
	}
	return buf, resp.Header, resp.StatusCode, nil
}

// ResolvedMeta is what registry version resolution yields (§4.E resolve).
type ResolvedMeta struct {
	Name        string
	Version     string
	Description string
}

// Client is stateless except for the disk cache it points at.
type Client struct {
	RegistryHost string // e.g. "https://crates.io"
	DocsHost     string // e.g. "https://docs.rs"
	Fetcher      Fetcher
	Cache        *DiskCache
}

type registryVersionsResponse struct {
	Crate struct {
		Name           string `json:"name"`
		DefaultVersion string `json:"default_version"`
		Description    string `json:"description"`
	} `json:"crate"`
	Versions []struct {
		Num string `json:"num"`
	} `json:"versions"`
}

// Resolve fetches registry metadata and selects the greatest version
// satisfying req, preferring the registry's default when it matches
// (§4.E). Returns (meta, false, nil) on a 404 ("not found" is not an
// error); any other transport/decode failure is returned as err.
func (c *Client) Resolve(ctx context.Context, name string, req semverreq.Req) (ResolvedMeta, bool, error) {
	include := "default_version"
	if req != semverreq.Any {
		include = "versions"
	}
	u := fmt.Sprintf("%s/api/v1/crates/%s?include=%s", c.RegistryHost, url.PathEscape(name), include)

	body, _, status, err := c.Fetcher.Fetch(ctx, u)
	if err != nil {
		return ResolvedMeta{}, false, fmt.Errorf("remotecache: registry fetch failed: %w", err)
	}
	if status == http.StatusNotFound {
		return ResolvedMeta{}, false, nil
	}
	if status != http.StatusOK {
		return ResolvedMeta{}, false, fmt.Errorf("remotecache: registry returned status %d", status)
	}

	var parsed registryVersionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ResolvedMeta{}, false, fmt.Errorf("remotecache: bad registry response: %w", err)
	}

	meta := ResolvedMeta{Name: parsed.Crate.Name, Description: parsed.Crate.Description}
	if req == semverreq.Any {
		meta.Version = parsed.Crate.DefaultVersion
		return meta, meta.Version != "", nil
	}

	versions := make([]string, 0, len(parsed.Versions))
	for _, v := range parsed.Versions {
		versions = append(versions, v.Num)
	}
	best, ok := semverreq.Greatest(req, versions)
	if !ok {
		return ResolvedMeta{}, false, nil
	}
	if req.Matches(parsed.Crate.DefaultVersion) && parsed.Crate.DefaultVersion != "" {
		best = parsed.Crate.DefaultVersion
	}
	meta.Version = best
	return meta, true, nil
}

// supportedFormats lists graph-format-versions this build can read,
// newest first. GetCrate probes the cache in this order and, on a docs
// host miss, retries the fetch across the same range (§4.E step 2).
var supportedFormats = []int{docgraph.CurrentFormatVersion, docgraph.CurrentFormatVersion - 1}

// GetCrate resolves (name, version) to a normalized StoreData, consulting
// the disk cache across all supported formats before touching the
// network (§4.E get_crate).
func (c *Client) GetCrate(ctx context.Context, name, version string) (docgraph.StoreData, error) {
	log := logging.Get(logging.CategoryRemote)

	for _, format := range supportedFormats {
		raw, ok := c.Cache.Read(name, version, format)
		if !ok {
			continue
		}
		log.Debug("cache hit for %s@%s format=%d", name, version, format)
		return Normalize(raw, format)
	}

	raw, embeddedFormat, err := c.fetchFromDocsHost(ctx, name, version)
	if err != nil {
		// Retry once with a semver-range surrogate, per §4.E step 3.
		major := strings.SplitN(version, ".", 2)[0]
		surrogate := "~" + major
		log.Warn("direct fetch of %s@%s failed (%v); retrying with %s", name, version, err, surrogate)
		raw, embeddedFormat, err = c.fetchFromDocsHost(ctx, name, surrogate)
		if err != nil {
			return docgraph.StoreData{}, fmt.Errorf("remotecache: %s@%s not published in any supported format: %w", name, version, err)
		}
	}

	if err := c.Cache.Write(name, version, embeddedFormat, raw); err != nil {
		log.Warn("failed to write cache for %s@%s: %v", name, version, err)
	}
	return Normalize(raw, embeddedFormat)
}

// fetchFromDocsHost requests each supported format from newest to oldest
// until one is published, decompresses the zstd payload, and extracts
// the embedded format/version headers (§4.E step 2).
func (c *Client) fetchFromDocsHost(ctx context.Context, name, version string) ([]byte, int, error) {
	var lastErr error
	for _, format := range supportedFormats {
		u := fmt.Sprintf("%s/crate/%s/%s/json/%d", c.DocsHost, url.PathEscape(name), url.PathEscape(version), format)
		body, headers, status, err := c.Fetcher.Fetch(ctx, u)
		if err != nil {
			lastErr = err
			continue
		}
		if status == http.StatusMovedPermanently || status == http.StatusFound || status == http.StatusTemporaryRedirect {
			loc := headers.Get("Location")
			redirected, err := resolveRedirect(c.DocsHost, loc)
			if err != nil {
				lastErr = err
				continue
			}
			body, _, status, err = c.Fetcher.Fetch(ctx, redirected)
			if err != nil {
				lastErr = err
				continue
			}
		}
		if status != http.StatusOK {
			lastErr = fmt.Errorf("docs host returned status %d for format %d", status, format)
			continue
		}
		decompressed, err := decompressZstd(body)
		if err != nil {
			lastErr = fmt.Errorf("zstd decode failed: %w", err)
			continue
		}
		return decompressed, format, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no supported format published")
	}
	return nil, 0, lastErr
}

// resolveRedirect rewrites a relative Location header against the docs
// host (§4.E: "Follow a single redirect level (rewriting relative
// Location headers against the docs host)").
func resolveRedirect(docsHost, location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return location, nil
	}
	base, err := url.Parse(docsHost)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
