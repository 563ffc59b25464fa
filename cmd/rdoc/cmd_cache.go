package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the on-disk remote crate cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report cache entry count, total size, and age range",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := walkCache(cacheRoot())
		if err != nil {
			return err
		}
		if stats.EntryCount == 0 {
			fmt.Println("cache is empty")
			return nil
		}
		fmt.Printf("entries:  %d\n", stats.EntryCount)
		fmt.Printf("size:     %s\n", humanize.Bytes(uint64(stats.TotalBytes)))
		fmt.Printf("oldest:   %s\n", humanize.Time(stats.OldestEntry))
		fmt.Printf("newest:   %s\n", humanize.Time(stats.NewestEntry))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached crate graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cacheRoot()
		if _, err := os.Stat(root); os.IsNotExist(err) {
			fmt.Println("cache is already empty")
			return nil
		}
		if err := os.RemoveAll(root); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Println("cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
}

// walkCache computes remotecache.Stats by walking the cache root, since
// DiskCache itself only exposes point reads/writes (see
// internal/remotecache/cache.go's Stats doc comment).
func walkCache(root string) (cacheStats, error) {
	var stats cacheStats
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		stats.EntryCount++
		stats.TotalBytes += info.Size()
		if stats.OldestEntry.IsZero() || info.ModTime().Before(stats.OldestEntry) {
			stats.OldestEntry = info.ModTime()
		}
		if info.ModTime().After(stats.NewestEntry) {
			stats.NewestEntry = info.ModTime()
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return cacheStats{}, err
	}
	return stats, nil
}

// cacheStats mirrors remotecache.Stats; kept as a local type since
// walkCache computes it from raw os.FileInfo rather than through
// DiskCache/BlobStore, which have no directory-listing capability.
type cacheStats struct {
	EntryCount  int
	TotalBytes  int64
	OldestEntry time.Time
	NewestEntry time.Time
}
