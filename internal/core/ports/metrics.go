package ports

import "time"

// Metrics records prebundler activity.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveBundle records one bundling run for an entry.
	ObserveBundle(entry string, duration time.Duration, err error)
	// CacheHit records a load served from cache.
	CacheHit(entry string)
	// Invalidated records an entry whose cache was cleared by a file change.
	Invalidated(entry string)
	// DuplicateImport records a prebundled file imported outside its entry.
	DuplicateImport()
}
