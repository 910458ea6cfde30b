package domain

import "context"

// DefaultBundler is the built-in bundler used when neither the entry nor the defaults select one.
const DefaultBundler = "esbuild"

// BundleFunc turns one entry into a single bundled artifact.
// Implementations must not cache; caching belongs to the prebundler.
type BundleFunc func(ctx context.Context, bc BundleContext) (*BundleResult, error)

// BundleContext is the input handed to a BundleFunc.
type BundleContext struct {
	// Host is the resolved dev server configuration.
	Host HostConfig
	// Options are the global prebundle options.
	Options PluginOptions
	// Entry is the registry entry being bundled.
	Entry *ResolvedEntry
}

// BundleResult is the output of a BundleFunc.
type BundleResult struct {
	// Code is the bundled JavaScript.
	Code string
	// BundledFiles lists every source file inlined into Code.
	BundledFiles []string
	// Sourcemap is the optional source map for Code.
	Sourcemap []byte
}

// Bundler selects the function used to bundle an entry.
// It is either a built-in name resolved through a catalog or a custom function.
// The zero value means "not set".
type Bundler struct {
	name string
	fn   BundleFunc
}

// BuiltinBundler selects a built-in bundler by name.
func BuiltinBundler(name string) Bundler {
	return Bundler{name: name}
}

// CustomBundler selects a caller supplied bundle function.
func CustomBundler(fn BundleFunc) Bundler {
	return Bundler{fn: fn}
}

// IsZero reports whether no bundler was selected.
func (b Bundler) IsZero() bool {
	return b.name == "" && b.fn == nil
}

// IsCustom reports whether the selector carries its own function.
func (b Bundler) IsCustom() bool {
	return b.fn != nil
}

// Name returns the built-in name, or "custom" for custom functions.
func (b Bundler) Name() string {
	if b.fn != nil {
		return "custom"
	}
	return b.name
}

// Func returns the custom function, or nil for built-in selectors.
func (b Bundler) Func() BundleFunc {
	return b.fn
}

// String implements fmt.Stringer.
func (b Bundler) String() string {
	if b.IsZero() {
		return DefaultBundler
	}
	return b.Name()
}
