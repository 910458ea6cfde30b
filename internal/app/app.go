// Package app implements the application layer for prebundle.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/prebundle/internal/adapters/devserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/prebundle/internal/core/ports"
	"go.trai.ch/prebundle/internal/engine/prebundler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	prebundler   *prebundler.Prebundler
	watcher      ports.Watcher
	graph        *devserver.ModuleGraph
	recorder     *metrics.Recorder
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	pb *prebundler.Prebundler,
	w ports.Watcher,
	graph *devserver.ModuleGraph,
	recorder *metrics.Recorder,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		prebundler:   pb,
		watcher:      w,
		graph:        graph,
		recorder:     recorder,
		logger:       log,
	}
}

// logControl is implemented by loggers whose level and format can change at runtime.
type logControl interface {
	SetVerbose(bool)
	SetJSON(bool)
}

// ConfigureLogging enables debug output and forces JSON records when requested.
func (a *App) ConfigureLogging(verbose, jsonMode bool) {
	lc, ok := a.logger.(logControl)
	if !ok {
		return
	}
	lc.SetVerbose(verbose)
	if jsonMode {
		lc.SetJSON(true)
	}
}

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	// ConfigPath is an explicit config file; empty means discover it.
	ConfigPath string
	// Addr overrides the configured listen address.
	Addr string
	// NoWatch disables file watching.
	NoWatch bool
}

// Serve runs the dev server until ctx is done.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}

	tp := telemetry.Setup(telemetry.NewBridge(a.logger))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	if err := a.prebundler.Start(cfg.Host, cfg.Plugin); err != nil {
		return zerr.Wrap(err, "failed to start prebundler")
	}
	defer a.prebundler.Stop()

	root := a.prebundler.Registry().Root()
	server := devserver.NewServer(cfg.Server, root, a.prebundler, a.graph, a.logger, a.recorder.Handler())

	if !opts.NoWatch {
		if err := a.watcher.Start(ctx, root); err != nil {
			return err
		}
		a.logger.Debug(fmt.Sprintf("watching %s", root))
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx)
	})

	if !opts.NoWatch {
		g.Go(func() error {
			<-ctx.Done()
			return a.watcher.Stop()
		})
		g.Go(func() error {
			debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, server.HandleChanges)
			for event := range a.watcher.Events() {
				debouncer.Add(event.Path)
			}
			debouncer.Flush()
			return nil
		})
	}

	return g.Wait()
}

// BundleOptions configuration for the Bundle method.
type BundleOptions struct {
	// ConfigPath is an explicit config file; empty means discover it.
	ConfigPath string
	// Entry is the entry to bundle, relative to the working directory or absolute.
	Entry string
	// Output is the file to write the bundle to. When empty the bundle goes to Out.
	Output string
	// Out receives the bundle when Output is empty.
	Out io.Writer
}

// Bundle bundles a single registered entry once and writes the result.
func (a *App) Bundle(ctx context.Context, opts BundleOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if err := a.prebundler.Start(cfg.Host, cfg.Plugin); err != nil {
		return zerr.Wrap(err, "failed to start prebundler")
	}
	defer a.prebundler.Stop()

	id, err := filepath.Abs(opts.Entry)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve entry"), "entry", opts.Entry)
	}

	cache, err := a.prebundler.Load(ctx, id)
	if err != nil {
		return err
	}
	if cache == nil {
		return zerr.With(zerr.Wrap(domain.ErrEntryNotFound, "failed to bundle"), "entry", id)
	}

	if opts.Output == "" {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		if _, err := io.WriteString(out, cache.Code); err != nil {
			return zerr.Wrap(domain.ErrOutputWriteFailed, err.Error())
		}
		return nil
	}

	if err := writeOutput(opts.Output, []byte(cache.Code)); err != nil {
		return err
	}
	if len(cache.Sourcemap) > 0 {
		if err := writeOutput(opts.Output+".map", cache.Sourcemap); err != nil {
			return err
		}
	}
	a.logger.Info(fmt.Sprintf("wrote %s (%.2f KB, %d files)",
		opts.Output, float64(len(cache.Code))/1024, cache.BundledFiles.Len()))
	return nil
}

func writeOutput(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrOutputWriteFailed, err.Error()), "path", path)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { //nolint:gosec // Bundles are meant to be readable
		return zerr.With(zerr.Wrap(domain.ErrOutputWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// Entries loads the configuration and returns its normalized entries without bundling anything.
func (a *App) Entries(_ context.Context, configPath string) (*domain.Registry, error) {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	registry, err := domain.NewRegistry(cfg.Host.Root, cfg.Plugin.Entries, cfg.Plugin.Defaults())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read entries")
	}
	return registry, nil
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(cwd, path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.logger.Debug(fmt.Sprintf("loaded %s", cfg.Path))
	return cfg, nil
}
