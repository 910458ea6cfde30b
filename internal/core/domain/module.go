package domain

import "time"

// ModuleNode is a record in the dev server's module graph.
type ModuleNode struct {
	// URL is the request path the module was served under.
	URL string
	// File is the absolute path of the module source.
	File string
	// Version increases every time the module is invalidated.
	Version uint64
	// LastInvalidated is when the module was last invalidated.
	LastInvalidated time.Time
}
