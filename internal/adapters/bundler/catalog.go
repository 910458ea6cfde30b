// Package bundler implements the built-in bundling strategies and the catalog that resolves bundler selectors.
package bundler

import (
	"maps"
	"slices"
	"sync"

	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/prebundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BundlerResolver = (*Catalog)(nil)

const (
	// EsbuildName is the catalog name of the esbuild strategy.
	EsbuildName = domain.DefaultBundler
	// PassthroughName is the catalog name of the passthrough strategy.
	PassthroughName = "passthrough"
)

// Catalog maps built-in bundler names to bundle functions.
type Catalog struct {
	mu         sync.RWMutex
	strategies map[string]domain.BundleFunc
}

// NewCatalog creates a catalog with the built-in strategies registered.
func NewCatalog() *Catalog {
	c := &Catalog{strategies: make(map[string]domain.BundleFunc)}
	c.Register(EsbuildName, Esbuild)
	c.Register(PassthroughName, Passthrough)
	return c
}

// Register adds or replaces the strategy stored under name.
func (c *Catalog) Register(name string, fn domain.BundleFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategies[name] = fn
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.strategies))
}

// Resolve returns the bundle function for the selector.
// An unset selector resolves to the default bundler.
func (c *Catalog) Resolve(selector domain.Bundler) (domain.BundleFunc, error) {
	if selector.IsCustom() {
		return selector.Func(), nil
	}

	name := selector.String()

	c.mu.RLock()
	fn, ok := c.strategies[name]
	c.mu.RUnlock()

	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedBundler, "failed to resolve bundler"), "bundler", name)
	}
	return fn, nil
}
