// Package config provides the configuration loader for prebundle.yaml.
package config

import (
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"
	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/prebundle/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// DefaultShutdownTimeout bounds the graceful shutdown of the dev server.
const DefaultShutdownTimeout = 5 * time.Second

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path, or discovers prebundle.yaml from cwd when path is empty.
// A relative path is resolved against cwd.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	switch {
	case path == "":
		discovered, err := l.DiscoverConfig(cwd)
		if err != nil {
			return nil, err
		}
		path = discovered
	case !filepath.IsAbs(path):
		path = filepath.Join(cwd, path)
	}

	var file Prebundlefile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return l.buildConfig(path, &file)
}

// DiscoverConfig walks up from cwd and returns the path of the nearest prebundle.yaml.
func (l *Loader) DiscoverConfig(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.DefaultConfigFilename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "failed to discover config"), "cwd", cwd)
}

func (l *Loader) buildConfig(path string, file *Prebundlefile) (*domain.Config, error) {
	defaultPolicy, err := toPolicy(file.BundleDependencies)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.EntryDeclaration, 0, len(file.Entries))
	for i := range file.Entries {
		decl, err := toDeclaration(&file.Entries[i])
		if err != nil {
			return nil, zerr.With(err, "entry", i)
		}
		entries = append(entries, decl)
	}
	if len(entries) == 0 {
		l.Logger.Warn(path + " declares no entries, nothing will be prebundled")
	}

	warnOnDuplicate := true
	if file.WarnOnDuplicate != nil {
		warnOnDuplicate = *file.WarnOnDuplicate
	}

	server := domain.ServerConfig{
		Addr:            file.Server.Addr,
		ShutdownTimeout: file.Server.ShutdownTimeout,
	}
	if server.Addr == "" {
		server.Addr = domain.DefaultServerAddr
	}
	if server.ShutdownTimeout <= 0 {
		server.ShutdownTimeout = DefaultShutdownTimeout
	}

	return &domain.Config{
		Path: path,
		Host: domain.HostConfig{
			Root:      resolveRoot(path, file.Root),
			Sourcemap: file.Sourcemap,
			Define:    maps.Clone(file.Define),
		},
		Plugin: domain.PluginOptions{
			Entries:            entries,
			Bundler:            toBundler(file.Bundler),
			PersistentCache:    file.PersistentCache,
			BundleDependencies: defaultPolicy,
			WarnOnDuplicate:    warnOnDuplicate,
		},
		Server: server,
	}, nil
}

func toDeclaration(dto *EntryDTO) (domain.EntryDeclaration, error) {
	if dto.Filepath == "" {
		return domain.EntryDeclaration{}, zerr.With(
			zerr.Wrap(domain.ErrInvalidEntry, "entry has no filepath"), "field", "filepath")
	}
	if dto.bare {
		return domain.EntryPath(dto.Filepath), nil
	}

	policy, err := toPolicy(dto.BundleDependencies)
	if err != nil {
		return domain.EntryDeclaration{}, zerr.With(err, "filepath", dto.Filepath)
	}

	return domain.EntryRecord(domain.EntryOptions{
		Filepath:           dto.Filepath,
		Bundler:            toBundler(dto.Bundler),
		PersistentCache:    dto.PersistentCache,
		BundleDependencies: policy,
	}), nil
}

// toBundler maps a configured name to a selector; an empty name leaves it unset.
func toBundler(name string) domain.Bundler {
	if name == "" {
		return domain.Bundler{}
	}
	return domain.BuiltinBundler(name)
}

// toPolicy compiles the configured dependency policy.
// Patterns are globs over package specifiers with "/" as separator.
func toPolicy(dto *DependenciesDTO) (domain.DependencyPolicy, error) {
	switch {
	case dto == nil:
		return domain.DependencyPolicy{}, nil
	case !dto.list && dto.All:
		return domain.BundleAllDependencies(), nil
	case !dto.list || len(dto.Patterns) == 0:
		return domain.BundleNoDependencies(), nil
	}

	globs := make([]glob.Glob, 0, len(dto.Patterns))
	for _, pattern := range dto.Patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return domain.DependencyPolicy{}, zerr.With(
				zerr.Wrap(domain.ErrInvalidDependencyPolicy, err.Error()), "pattern", pattern,
			)
		}
		globs = append(globs, g)
	}

	return domain.BundleDependenciesMatching(func(specifier string) bool {
		for _, g := range globs {
			if g.Match(specifier) {
				return true
			}
		}
		return false
	}), nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return zerr.Wrap(domain.ErrConfigNotFound, err.Error())
		}
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
