// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/prebundle/internal/core/domain"

// BundlerResolver turns a bundler selector into a callable bundle function.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type BundlerResolver interface {
	// Resolve returns the function for the selector.
	// Custom selectors resolve to their own function; built-in names are looked up in a catalog.
	// It returns domain.ErrUnsupportedBundler for unknown names.
	Resolve(selector domain.Bundler) (domain.BundleFunc, error)
}
