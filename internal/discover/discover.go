// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover walks the input root, filters candidates by extension,
// and establishes the processing order for the merge pipeline.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/snapmerge/pkg/types"
)

// ErrNotDirectory is returned when the input root does not resolve to an
// accessible directory.
var ErrNotDirectory = errors.New("not a directory")

// Discover returns the files under root as absolute paths. With recurse
// set it walks the whole tree; otherwise only direct children are
// returned. Directories are never included. The order of the result is
// filesystem-dependent; ordering is FilterSort's job.
func Discover(root string, recurse bool) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving input root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("accessing input root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input root %s: %w", abs, ErrNotDirectory)
	}

	if !recurse {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return nil, fmt.Errorf("reading input root %s: %w", abs, err)
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			files = append(files, filepath.Join(abs, e.Name()))
		}
		return files, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking input root %s: %w", abs, err)
	}
	return files, nil
}

// FilterSort restricts files to those whose lower-cased extension is in
// allowed and orders the result by the given key. The sort is stable, so
// equal keys keep their discovery order; desc reverses the final ordering
// exactly. An unknown key falls back to name ordering.
func FilterSort(files []string, allowed []string, key types.SortKey, desc bool) []string {
	allowSet := make(map[string]bool, len(allowed))
	for _, e := range allowed {
		allowSet[strings.ToLower(e)] = true
	}

	var pool []string
	for _, f := range files {
		if allowSet[strings.ToLower(filepath.Ext(f))] {
			pool = append(pool, f)
		}
	}

	switch key {
	case types.SortByCreated:
		sortByTime(pool, createdTime)
	case types.SortByModified:
		sortByTime(pool, modifiedTime)
	default:
		// name ordering, also the documented fallback for unknown keys
		sort.SliceStable(pool, func(i, j int) bool {
			return strings.ToLower(filepath.Base(pool[i])) < strings.ToLower(filepath.Base(pool[j]))
		})
	}

	if desc {
		for i, j := 0, len(pool)-1; i < j; i, j = i+1, j-1 {
			pool[i], pool[j] = pool[j], pool[i]
		}
	}
	return pool
}

// sortByTime orders paths by a per-file timestamp, stat-ing each path
// once. Files that cannot be stat-ed sort first with a zero timestamp.
func sortByTime(paths []string, stamp func(os.FileInfo) time.Time) {
	times := make(map[string]time.Time, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			times[p] = stamp(info)
		}
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return times[paths[i]].Before(times[paths[j]])
	})
}

// modifiedTime returns the last-modified timestamp.
func modifiedTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
