package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/prebundle/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// EntriesPath serves the registry status as JSON.
	EntriesPath = "/__prebundle/entries"
	// MetricsPath serves Prometheus metrics.
	MetricsPath = "/metrics"

	sourcemapSuffix   = ".map"
	readHeaderTimeout = 10 * time.Second
)

// Server serves files under the project root, replacing registered entries with their bundle.
type Server struct {
	cfg     domain.ServerConfig
	root    string
	loader  ports.Prebundler
	graph   *ModuleGraph
	logger  ports.Logger
	handler http.Handler
}

// NewServer creates a dev server. metrics may be nil to disable MetricsPath.
func NewServer(
	cfg domain.ServerConfig,
	root string,
	loader ports.Prebundler,
	graph *ModuleGraph,
	logger ports.Logger,
	metrics http.Handler,
) *Server {
	s := &Server{
		cfg:    cfg,
		root:   root,
		loader: loader,
		graph:  graph,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+EntriesPath, s.handleEntries)
	if metrics != nil {
		mux.Handle("GET "+MetricsPath, metrics)
	}
	mux.HandleFunc("GET /", s.handleModule)

	s.handler = otelhttp.NewHandler(mux, "prebundle.devserver")
	return s
}

// Handler returns the instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Graph returns the module graph the server records served modules in.
func (s *Server) Graph() *ModuleGraph {
	return s.graph
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrServerFailed, err.Error()), "addr", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info(fmt.Sprintf("listening on http://%s", ln.Addr()))

	select {
	case err := <-errCh:
		return zerr.Wrap(domain.ErrServerFailed, err.Error())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(domain.ErrServerFailed, err.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(domain.ErrServerFailed, err.Error())
	}
	return nil
}

// HandleChanges invalidates the modules affected by a batch of changed files.
// Files that no entry bundled fall back to invalidating their own modules.
func (s *Server) HandleChanges(paths []string) {
	for _, file := range paths {
		modules := s.loader.HandleFileChange(file, s.graph)
		if len(modules) == 0 {
			modules = s.graph.GetModulesByFile(file)
		}
		for _, node := range modules {
			s.graph.Invalidate(node)
		}
		if len(modules) > 0 {
			s.logger.Debug(fmt.Sprintf("%s changed, invalidated %d modules", file, len(modules)))
		}
	}
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean("/" + r.URL.Path)

	if mapped, ok := strings.CutSuffix(urlPath, sourcemapSuffix); ok {
		if s.serveSourcemap(w, r, mapped) {
			return
		}
	}

	file := filepath.Join(s.root, filepath.FromSlash(urlPath))
	cache, err := s.loader.Load(r.Context(), file)
	if cache != nil || isFile(file) {
		s.graph.Ensure(urlPath, file)
	}
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.logger.Error(zerr.With(zerr.Wrap(err, "failed to load module"), "url", urlPath))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if cache == nil {
		http.ServeFile(w, r, file)
		return
	}

	etag := ETag(cache)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(cache.Code)))
	if len(cache.Sourcemap) > 0 {
		w.Header().Set("SourceMap", urlPath+sourcemapSuffix)
	}
	_, _ = w.Write([]byte(cache.Code))
}

// isFile reports whether path names a regular file. Only those become graph nodes.
func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// serveSourcemap writes the sourcemap of the entry served under url, if it has one.
func (s *Server) serveSourcemap(w http.ResponseWriter, r *http.Request, url string) bool {
	registry := s.loader.Registry()
	if registry == nil {
		return false
	}
	file := filepath.Join(s.root, filepath.FromSlash(url))
	if _, ok := registry.Get(file); !ok {
		return false
	}

	cache, err := s.loader.Load(r.Context(), file)
	if err != nil || cache == nil || len(cache.Sourcemap) == 0 {
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(cache.Sourcemap)
	return true
}

// ETag returns the strong entity tag of a bundle.
func ETag(cache *domain.Cache) string {
	return fmt.Sprintf(`"%016x"`, cache.Hash)
}

// EntryStatus is one element of the EntriesPath response.
type EntryStatus struct {
	Filepath           string     `json:"filepath"`
	Bundler            string     `json:"bundler"`
	BundleDependencies string     `json:"bundleDependencies"`
	Cached             bool       `json:"cached"`
	BundledFiles       []string   `json:"bundledFiles,omitempty"`
	ETag               string     `json:"etag,omitempty"`
	BundledAt          *time.Time `json:"bundledAt,omitempty"`
}

// Statuses describes every registered entry of registry.
func Statuses(registry *domain.Registry) []EntryStatus {
	statuses := make([]EntryStatus, 0, registry.Len())
	for entry := range registry.Entries() {
		status := EntryStatus{
			Filepath:           entry.ResolvedFilepath,
			Bundler:            entry.Options.Bundler.String(),
			BundleDependencies: entry.Options.BundleDependencies.String(),
		}
		if cache := entry.Cache(); cache != nil {
			bundledAt := cache.Time
			status.Cached = true
			status.BundledFiles = cache.BundledFiles.Paths()
			status.ETag = ETag(cache)
			status.BundledAt = &bundledAt
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (s *Server) handleEntries(w http.ResponseWriter, _ *http.Request) {
	registry := s.loader.Registry()
	if registry == nil {
		http.Error(w, domain.ErrSessionNotStarted.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Statuses(registry)); err != nil {
		s.logger.Error(zerr.Wrap(err, "failed to encode entries"))
	}
}
