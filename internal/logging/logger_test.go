package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeDisabledIsNoop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Config{DebugMode: false}))

	Get(CategoryNavigator).Info("should not be written")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestInitializeWritesCategoryFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Config{DebugMode: true, Level: "debug"}))
	t.Cleanup(CloseAll)

	Get(CategoryNavigator).Info("resolved %s", "std::vec::Vec")

	matches, err := filepath.Glob(filepath.Join(dir, "logs", "*_navigator.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "resolved std::vec::Vec"))
}

func TestCategoryFilterDisablesOneCategory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, Config{
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"cache": false},
	}))
	t.Cleanup(CloseAll)

	Get(CategoryCache).Info("should be suppressed")
	Get(CategoryRemote).Info("should be written")

	cacheMatches, _ := filepath.Glob(filepath.Join(dir, "logs", "*_cache.log"))
	require.Empty(t, cacheMatches)

	remoteMatches, _ := filepath.Glob(filepath.Join(dir, "logs", "*_remote.log"))
	require.Len(t, remoteMatches, 1)
}
