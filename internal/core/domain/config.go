package domain

import (
	"time"
)

// DefaultConfigFilename is the name of the project configuration file.
const DefaultConfigFilename = "prebundle.yaml"

// DefaultServerAddr is the address the dev server listens on when none is configured.
const DefaultServerAddr = "127.0.0.1:5173"

// HostConfig is the dev server configuration visible to bundlers.
type HostConfig struct {
	// Root is the absolute project root.
	Root string
	// Sourcemap enables source map generation in bundlers that support it.
	Sourcemap bool
	// Define holds global identifier replacements (e.g. process.env.NODE_ENV).
	Define map[string]string
}

// PluginOptions are the global prebundle options.
type PluginOptions struct {
	// Entries are the declared entries.
	Entries []EntryDeclaration
	// Bundler is the default bundler selector.
	Bundler Bundler
	// PersistentCache is reserved for a cross-session cache and has no effect yet.
	PersistentCache *bool
	// BundleDependencies is the default dependency policy.
	BundleDependencies DependencyPolicy
	// WarnOnDuplicate enables the duplicate import diagnostic.
	WarnOnDuplicate bool
}

// Defaults returns the subset of options that act as per-entry defaults.
func (o PluginOptions) Defaults() EntryOptions {
	return EntryOptions{
		Bundler:            o.Bundler,
		PersistentCache:    o.PersistentCache,
		BundleDependencies: o.BundleDependencies,
	}
}

// ServerConfig configures the HTTP side of the dev server.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Config is a fully loaded project configuration.
type Config struct {
	// Path is the absolute path of the config file it was loaded from.
	Path   string
	Host   HostConfig
	Plugin PluginOptions
	Server ServerConfig
}
