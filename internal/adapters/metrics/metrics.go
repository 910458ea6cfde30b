// Package metrics implements ports.Metrics with Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/prebundle/internal/core/ports"
)

var _ ports.Metrics = (*Recorder)(nil)

const namespace = "prebundle"

// Result label values.
const (
	resultSuccess = "success"
	resultError   = "error"
)

// Recorder records prebundler activity into its own Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	bundles       *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	cacheHits     *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	duplicates    prometheus.Counter
}

// New creates a Recorder with a fresh registry that also exposes Go runtime metrics.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		bundles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bundles_total",
			Help:      "Bundling runs per entry and result.",
		}, []string{"entry", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bundle_duration_seconds",
			Help:      "Time spent bundling an entry.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"entry"}),
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Loads served from an entry's cache.",
		}, []string{"entry"}),
		invalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalidations_total",
			Help:      "Entry caches cleared by file changes.",
		}, []string{"entry"}),
		duplicates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_imports_total",
			Help:      "Prebundled files that were imported again outside their entry.",
		}),
	}
}

// ObserveBundle records one bundling run.
func (r *Recorder) ObserveBundle(entry string, duration time.Duration, err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	r.bundles.WithLabelValues(entry, result).Inc()
	r.duration.WithLabelValues(entry).Observe(duration.Seconds())
}

// CacheHit records a load served from cache.
func (r *Recorder) CacheHit(entry string) {
	r.cacheHits.WithLabelValues(entry).Inc()
}

// Invalidated records a cleared entry cache.
func (r *Recorder) Invalidated(entry string) {
	r.invalidations.WithLabelValues(entry).Inc()
}

// DuplicateImport records a duplicate import of a prebundled file.
func (r *Recorder) DuplicateImport() {
	r.duplicates.Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
