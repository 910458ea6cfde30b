// Package domain contains the core domain types of the prebundler: entries, the registry and bundle caches.
package domain

import (
	"path/filepath"
	"slices"
	"time"
)

// FileSet is an immutable, sorted set of cleaned file paths.
type FileSet struct {
	paths []string
}

// NewFileSet builds a set from the given paths, cleaning and deduplicating them.
func NewFileSet(paths ...string) FileSet {
	if len(paths) == 0 {
		return FileSet{}
	}

	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(p))
	}
	slices.Sort(cleaned)
	return FileSet{paths: slices.Compact(cleaned)}
}

// Contains reports whether path is in the set.
func (s FileSet) Contains(path string) bool {
	_, found := slices.BinarySearch(s.paths, filepath.Clean(path))
	return found
}

// Len returns the number of paths in the set.
func (s FileSet) Len() int {
	return len(s.paths)
}

// Paths returns a copy of the paths in sorted order.
func (s FileSet) Paths() []string {
	return slices.Clone(s.paths)
}

// Cache is the most recent successful bundle of one entry.
// A Cache is never mutated after construction; re-bundling replaces it.
type Cache struct {
	// Code is the bundled JavaScript served for the entry.
	Code string
	// BundledFiles is every source file that contributed to Code, including the entry itself.
	BundledFiles FileSet
	// Sourcemap is the optional source map produced alongside Code.
	Sourcemap []byte
	// Time is when the bundle was produced.
	Time time.Time
	// Hash is a content hash of Code, used as the HTTP entity tag.
	Hash uint64
}
