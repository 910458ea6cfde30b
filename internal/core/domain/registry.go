package domain

import (
	"iter"
	"path/filepath"
	"slices"
	"sync/atomic"

	"go.trai.ch/zerr"
)

// ResolvedEntry is a normalized entry bound to its absolute path, plus its cache slot.
type ResolvedEntry struct {
	// Options are the normalized entry options.
	Options EntryOptions
	// ResolvedFilepath is the absolute, cleaned path used as the module identity.
	ResolvedFilepath string

	cache atomic.Pointer[Cache]
}

// Cache returns the current cache snapshot, or nil when the entry has not been bundled
// (or was invalidated since).
func (e *ResolvedEntry) Cache() *Cache {
	return e.cache.Load()
}

// StoreCache replaces the cache slot with c.
func (e *ResolvedEntry) StoreCache(c *Cache) {
	e.cache.Store(c)
}

// InvalidateCache empties the cache slot only if it still holds c.
// A cache stored after c was observed is left in place.
func (e *ResolvedEntry) InvalidateCache(c *Cache) bool {
	return c != nil && e.cache.CompareAndSwap(c, nil)
}

// Registry maps resolved entry paths to their entries.
// The set of entries is fixed at construction; only cache slots change afterwards.
type Registry struct {
	root    string
	entries map[string]*ResolvedEntry
	order   []string
}

// NewRegistry normalizes every declaration over defaults and resolves its path against root.
func NewRegistry(root string, decls []EntryDeclaration, defaults EntryOptions) (*Registry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrFailedToGetRoot.Error()), "root", root)
	}

	r := &Registry{
		root:    absRoot,
		entries: make(map[string]*ResolvedEntry, len(decls)),
		order:   make([]string, 0, len(decls)),
	}

	for _, decl := range decls {
		opts := Normalize(decl, defaults)
		if opts.Filepath == "" {
			return nil, ErrEmptyEntryPath
		}

		resolved := ResolvePath(absRoot, opts.Filepath)
		if _, exists := r.entries[resolved]; exists {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateEntry, "failed to build entry registry"), "filepath", resolved)
		}

		r.entries[resolved] = &ResolvedEntry{
			Options:          opts,
			ResolvedFilepath: resolved,
		}
		r.order = append(r.order, resolved)
	}
	slices.Sort(r.order)

	return r, nil
}

// ResolvePath resolves p against root and cleans the result.
func ResolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// Root returns the absolute project root.
func (r *Registry) Root() string {
	return r.root
}

// Get returns the entry registered under the resolved path id.
func (r *Registry) Get(id string) (*ResolvedEntry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries yields every entry ordered by resolved path.
func (r *Registry) Entries() iter.Seq[*ResolvedEntry] {
	return func(yield func(*ResolvedEntry) bool) {
		for _, id := range r.order {
			if !yield(r.entries[id]) {
				return
			}
		}
	}
}
