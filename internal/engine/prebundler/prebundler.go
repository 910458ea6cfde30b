// Package prebundler implements on-demand pre-bundling of configured entries.
package prebundler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/prebundle/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.Prebundler = (*Prebundler)(nil)

// maxRebundles bounds how often a bundle is redone because its sources changed while it was built.
const maxRebundles = 3

// Prebundler bundles registered entries on first request and keeps the result until a bundled file changes.
// It is safe for concurrent use once started.
type Prebundler struct {
	resolver ports.BundlerResolver
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics
	now      func() time.Time

	session atomic.Pointer[session]
}

// session is the state of one Start/Stop cycle.
type session struct {
	host     domain.HostConfig
	opts     domain.PluginOptions
	registry *domain.Registry
	inflight singleflight.Group
	changes  changeLog
}

// New creates a Prebundler. It must be started before use.
func New(
	resolver ports.BundlerResolver,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *Prebundler {
	return &Prebundler{
		resolver: resolver,
		logger:   logger,
		tracer:   tracer,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Start builds the entry registry for a new session, replacing any previous one.
// Every entry starts without a cache.
func (p *Prebundler) Start(host domain.HostConfig, opts domain.PluginOptions) error {
	registry, err := domain.NewRegistry(host.Root, opts.Entries, opts.Defaults())
	if err != nil {
		return err
	}
	host.Root = registry.Root()

	for entry := range registry.Entries() {
		if entry.Options.PersistentCache != nil && *entry.Options.PersistentCache {
			p.logger.Debug(fmt.Sprintf("persistent cache is not supported yet, ignoring it for %s", entry.ResolvedFilepath))
		}
	}

	p.session.Store(&session{host: host, opts: opts, registry: registry})
	p.logger.Debug(fmt.Sprintf("registered %d prebundle entries under %s", registry.Len(), host.Root))
	return nil
}

// Stop ends the session and drops every cache.
func (p *Prebundler) Stop() {
	p.session.Store(nil)
}

// Registry returns the registry of the running session, or nil when not started.
func (p *Prebundler) Registry() *domain.Registry {
	s := p.session.Load()
	if s == nil {
		return nil
	}
	return s.registry
}

// Load returns the bundle for the module id.
// It returns nil, nil when id is not a registered entry so the host can fall back to its own loading.
func (p *Prebundler) Load(ctx context.Context, id string) (*domain.Cache, error) {
	s := p.session.Load()
	if s == nil {
		return nil, domain.ErrSessionNotStarted
	}

	id = filepath.Clean(id)
	entry, ok := s.registry.Get(id)
	if !ok {
		if s.opts.WarnOnDuplicate {
			p.checkDuplicate(s, id)
		}
		return nil, nil
	}

	if cache := entry.Cache(); cache != nil {
		p.metrics.CacheHit(id)
		return cache, nil
	}

	// Concurrent first requests share one bundling run; it outlives any single request.
	bundleCtx := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(id, func() (any, error) {
		if cache := entry.Cache(); cache != nil {
			return cache, nil
		}
		return p.bundleFresh(bundleCtx, s, entry)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Cache), nil //nolint:forcetypeassert // Only *domain.Cache is stored
	}
}

// HandleFileChange clears the cache of every entry that bundled file and returns
// the host modules backing those entries. It returns nothing when no entry is affected.
func (p *Prebundler) HandleFileChange(file string, graph ports.ModuleGraph) []*domain.ModuleNode {
	s := p.session.Load()
	if s == nil {
		return nil
	}

	file = filepath.Clean(file)
	s.changes.record(file)

	var modules []*domain.ModuleNode
	for entry := range s.registry.Entries() {
		cache := entry.Cache()
		if cache == nil || !cache.BundledFiles.Contains(file) {
			continue
		}

		if entry.InvalidateCache(cache) {
			p.metrics.Invalidated(entry.ResolvedFilepath)
			p.logger.Debug(fmt.Sprintf("%s changed, invalidated %s", file, entry.ResolvedFilepath))
		}

		if graph != nil {
			modules = append(modules, graph.GetModulesByFile(entry.ResolvedFilepath)...)
		}
	}
	return modules
}

func (p *Prebundler) checkDuplicate(s *session, id string) {
	for entry := range s.registry.Entries() {
		cache := entry.Cache()
		if cache == nil || !cache.BundledFiles.Contains(id) {
			continue
		}
		p.logger.Warn(fmt.Sprintf("%s is prebundled, but imported again", id))
		p.metrics.DuplicateImport()
		return
	}
}

// bundleFresh bundles entry and stores the result, bundling again when one of the
// files it read changed before the result could be stored.
func (p *Prebundler) bundleFresh(ctx context.Context, s *session, entry *domain.ResolvedEntry) (*domain.Cache, error) {
	id := entry.ResolvedFilepath
	for attempt := 1; ; attempt++ {
		s.changes.begin(id)
		cache, err := p.bundle(ctx, s, entry)
		if err != nil {
			s.changes.abort(id)
			return nil, err
		}

		changed, stored := s.changes.commit(entry, cache)
		if stored {
			return cache, nil
		}
		if attempt > maxRebundles {
			p.logger.Warn(fmt.Sprintf("%s keeps changing while %s is bundled, serving it uncached", changed, id))
			return cache, nil
		}
		p.logger.Debug(fmt.Sprintf("%s changed while bundling %s, bundling again", changed, id))
	}
}

func (p *Prebundler) bundle(ctx context.Context, s *session, entry *domain.ResolvedEntry) (*domain.Cache, error) {
	id := entry.ResolvedFilepath

	ctx, span := p.tracer.Start(ctx, "prebundle.bundle")
	defer span.End()
	span.SetAttribute("prebundle.entry", id)
	span.SetAttribute("prebundle.bundler", entry.Options.Bundler.String())

	fn, err := p.resolver.Resolve(entry.Options.Bundler)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := p.now()
	result, err := fn(ctx, domain.BundleContext{
		Host:    s.host,
		Options: s.opts,
		Entry:   entry,
	})
	elapsed := p.now().Sub(start)
	if err == nil && result == nil {
		err = zerr.With(zerr.Wrap(domain.ErrBundleFailed, "bundler returned no result"), "entry", id)
	}
	p.metrics.ObserveBundle(id, elapsed, err)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	cache := p.newCache(s.host.Root, entry, result)

	span.SetAttribute("prebundle.files", cache.BundledFiles.Len())
	p.logger.Debug(fmt.Sprintf("bundled %s", id))
	p.logger.Debug(fmt.Sprintf("finished in %dms, %d files into %.2f KB",
		elapsed.Milliseconds(), cache.BundledFiles.Len(), float64(len(cache.Code))/1024))

	return cache, nil
}

// newCache snapshots a bundle result. The entry itself is always part of BundledFiles.
func (p *Prebundler) newCache(root string, entry *domain.ResolvedEntry, result *domain.BundleResult) *domain.Cache {
	files := make([]string, 0, len(result.BundledFiles)+1)
	for _, f := range result.BundledFiles {
		if f == "" {
			continue
		}
		files = append(files, domain.ResolvePath(root, f))
	}
	files = append(files, entry.ResolvedFilepath)

	return &domain.Cache{
		Code:         result.Code,
		BundledFiles: domain.NewFileSet(files...),
		Sourcemap:    result.Sourcemap,
		Time:         p.now(),
		Hash:         xxhash.Sum64String(result.Code),
	}
}
