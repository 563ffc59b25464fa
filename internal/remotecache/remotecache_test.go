package remotecache

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"rdoc/internal/docgraph"
	"rdoc/internal/semverreq"
)

// memBlobStore is an in-memory BlobStore for tests, avoiding real disk I/O.
type memBlobStore struct {
	data  map[string][]byte
	mtime map[string]time.Time
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{data: map[string][]byte{}, mtime: map[string]time.Time{}}
}

func (m *memBlobStore) ReadBlob(path string) ([]byte, bool) {
	b, ok := m.data[path]
	return b, ok
}

func (m *memBlobStore) WriteBlob(path string, data []byte) error {
	m.data[path] = data
	m.mtime[path] = time.Unix(1700000000, 0)
	return nil
}

func (m *memBlobStore) ModTime(path string) (time.Time, bool) {
	t, ok := m.mtime[path]
	return t, ok
}

// scriptedFetcher returns a canned response for any URL, recording calls.
type scriptedFetcher struct {
	body   []byte
	status int
	calls  []string
}

func (f *scriptedFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, http.Header, int, error) {
	f.calls = append(f.calls, rawURL)
	return f.body, http.Header{}, f.status, nil
}

func zstdCompress(t *testing.T, raw []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	return enc.EncodeAll(raw, nil)
}

func TestGetCrateCacheHitAvoidsFetch(t *testing.T) {
	blob := newMemBlobStore()
	cache := &DiskCache{Root: "/cache", Blob: blob}

	raw := []byte(`{"format_version":45,"crate_name":"rand","version":"0.8.5","root_id":1,"index":{"1":{"id":1,"name":"rand"}},"paths":{},"external_crates":{}}`)
	require.NoError(t, cache.Write("rand", "0.8.5", docgraph.CurrentFormatVersion, raw))

	fetcher := &scriptedFetcher{status: 500}
	client := &Client{Fetcher: fetcher, Cache: cache, DocsHost: "https://docs.rs"}

	data, err := client.GetCrate(context.Background(), "rand", "0.8.5")
	require.NoError(t, err)
	require.Equal(t, "rand", data.CrateName)
	require.Empty(t, fetcher.calls, "cache hit must not touch the network")
}

func TestGetCrateFetchesAndCachesOnMiss(t *testing.T) {
	blob := newMemBlobStore()
	cache := &DiskCache{Root: "/cache", Blob: blob}

	raw := []byte(`{"format_version":45,"crate_name":"rand","version":"0.8.5","root_id":1,"index":{"1":{"id":1,"name":"rand"}},"paths":{},"external_crates":{}}`)
	compressed := zstdCompress(t, raw)
	fetcher := &scriptedFetcher{status: http.StatusOK, body: compressed}
	client := &Client{Fetcher: fetcher, Cache: cache, DocsHost: "https://docs.rs"}

	data, err := client.GetCrate(context.Background(), "rand", "0.8.5")
	require.NoError(t, err)
	require.Equal(t, "rand", data.CrateName)
	require.NotEmpty(t, fetcher.calls)

	cached, ok := cache.Read("rand", "0.8.5", docgraph.CurrentFormatVersion)
	require.True(t, ok)
	require.True(t, bytes.Equal(cached, raw))
}

func TestResolveReturnsFalseOn404(t *testing.T) {
	fetcher := &scriptedFetcher{status: http.StatusNotFound}
	client := &Client{Fetcher: fetcher, RegistryHost: "https://crates.io"}

	_, ok, err := client.Resolve(context.Background(), "nonexistent-crate", semverreq.Any)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveSelectsDefaultVersion(t *testing.T) {
	body := []byte(`{"crate":{"name":"rand","default_version":"0.8.5","description":"random number generation"},"versions":[]}`)
	fetcher := &scriptedFetcher{status: http.StatusOK, body: body}
	client := &Client{Fetcher: fetcher, RegistryHost: "https://crates.io"}

	meta, ok, err := client.Resolve(context.Background(), "rand", semverreq.Any)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "0.8.5", meta.Version)
}

func TestNormalizeWidensOlderFormat(t *testing.T) {
	raw := []byte(`{"format_version":44,"crate_name":"rand","version":"0.8.5","root_id":1,"index":{"1":{"id":1,"name":"rand"}},"paths":{"1":{"crate_discriminator":0,"kind":0,"path":["rand"]}}}`)
	data, err := Normalize(raw, 44)
	require.NoError(t, err)
	require.Equal(t, docgraph.CurrentFormatVersion, data.FormatVersion)
	require.Equal(t, docgraph.ProvenanceRemote, data.Provenance)
	require.NotNil(t, data.ExternalCrates)
	require.Len(t, data.Index, 1)
	require.Len(t, data.Paths, 1)
}
