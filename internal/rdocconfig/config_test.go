package rdocconfig

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("expected default theme, got %q", cfg.Theme)
	}
	if cfg.SearchResultCount != defaultSearchResultCount {
		t.Fatalf("expected default search result count, got %d", cfg.SearchResultCount)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Config{
		Theme:             "light",
		SourcePriority:    []string{"local", "std"},
		Offline:           true,
		SearchResultCount: 3,
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme != "light" || !loaded.Offline || loaded.SearchResultCount != 3 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if len(loaded.SourcePriority) != 2 || loaded.SourcePriority[0] != "local" {
		t.Fatalf("source priority mismatch: %+v", loaded.SourcePriority)
	}
}

func TestWithDefaultsFillsOnlyZeroFields(t *testing.T) {
	cfg := Config{Theme: "light"}.WithDefaults()
	if cfg.Theme != "light" {
		t.Fatalf("expected explicit theme preserved, got %q", cfg.Theme)
	}
	if cfg.DocsHost != "docs.rs" {
		t.Fatalf("expected default docs host filled in, got %q", cfg.DocsHost)
	}
}
