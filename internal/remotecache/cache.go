package remotecache

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// BlobStore is the ReadBlob/WriteBlob boundary (§1, §6): disk I/O is a
// named external boundary, so it's pluggable with an os-backed default
// (again, stdlib is correct here — see DESIGN.md for the boundary list).
type BlobStore interface {
	ReadBlob(path string) ([]byte, bool)
	WriteBlob(path string, data []byte) error
	ModTime(path string) (time.Time, bool)
}

// OSBlobStore is the default BlobStore, backed directly by the local
// filesystem.
type OSBlobStore struct{}

func (OSBlobStore) ReadBlob(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (OSBlobStore) WriteBlob(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (OSBlobStore) ModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// DiskCache is the content-addressed on-disk store keyed by
// (format-version, crate name, version): "{root}/{format}/{name}/{version}.json"
// (§4.E: "cached under a path keyed by the graph format version so a
// later format bump can't collide with stale entries").
type DiskCache struct {
	Root  string
	Blob  BlobStore
	MaxAge time.Duration // 0 means cache entries never expire by age
}

func (c *DiskCache) pathFor(name, version string, format int) string {
	return filepath.Join(c.Root, formatDir(format), name, version+".json")
}

func formatDir(format int) string {
	return "v" + strconv.Itoa(format)
}

// Read returns the cached payload for (name, version, format), or false
// if absent or stale past MaxAge.
func (c *DiskCache) Read(name, version string, format int) ([]byte, bool) {
	if c == nil || c.Blob == nil {
		return nil, false
	}
	path := c.pathFor(name, version, format)
	if c.MaxAge > 0 {
		mtime, ok := c.Blob.ModTime(path)
		if !ok || time.Since(mtime) > c.MaxAge {
			return nil, false
		}
	}
	return c.Blob.ReadBlob(path)
}

// Write stores a fetched payload under its content-addressed path.
func (c *DiskCache) Write(name, version string, format int, data []byte) error {
	if c == nil || c.Blob == nil {
		return nil
	}
	return c.Blob.WriteBlob(c.pathFor(name, version, format), data)
}

// Stats describes cache occupancy for the `cache stats` CLI subcommand
// (SPEC_FULL.md §6.1). Walking the tree is delegated to the caller
// (cmd/rdoc) since DiskCache itself only needs point reads/writes. The
// CLI computes the same fields into its own local cacheStats type and
// does not use this one.
type Stats struct {
	EntryCount int
	TotalBytes int64
	OldestEntry time.Time
	NewestEntry time.Time
}
