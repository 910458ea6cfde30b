package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedBundler is returned when an entry selects a bundler name that is not in the catalog.
	ErrUnsupportedBundler = zerr.New("bundler is not supported")

	// ErrBundleFailed is returned by the built-in bundlers when the bundling step itself fails.
	ErrBundleFailed = zerr.New("bundling failed")

	// ErrEmptyEntryPath is returned when an entry declaration has no filepath.
	ErrEmptyEntryPath = zerr.New("entry filepath is empty")

	// ErrDuplicateEntry is returned when two entry declarations resolve to the same file.
	ErrDuplicateEntry = zerr.New("duplicate entry")

	// ErrEntryNotFound is returned when a requested entry is not part of the registry.
	ErrEntryNotFound = zerr.New("entry not found")

	// ErrSessionNotStarted is returned when the prebundler is used before Start or after Stop.
	ErrSessionNotStarted = zerr.New("prebundle session not started")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrConfigNotFound is returned when no prebundle.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find prebundle config")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidEntry is returned when an entry in the config file has an unexpected shape.
	ErrInvalidEntry = zerr.New("invalid entry declaration")

	// ErrInvalidDependencyPolicy is returned when bundleDependencies is neither a bool nor a list of patterns.
	ErrInvalidDependencyPolicy = zerr.New("bundleDependencies must be a bool or a list of patterns")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrServerFailed is returned when the dev server stops with an error.
	ErrServerFailed = zerr.New("dev server failed")

	// ErrOutputWriteFailed is returned when a bundle cannot be written to its destination.
	ErrOutputWriteFailed = zerr.New("failed to write bundle output")
)
