package config

import (
	"time"

	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Prebundlefile represents the structure of the prebundle.yaml configuration file.
type Prebundlefile struct {
	Root               string            `yaml:"root"`
	Bundler            string            `yaml:"bundler"`
	PersistentCache    *bool             `yaml:"persistentCache"`
	BundleDependencies *DependenciesDTO  `yaml:"bundleDependencies"`
	WarnOnDuplicate    *bool             `yaml:"warnOnDuplicate"`
	Sourcemap          bool              `yaml:"sourcemap"`
	Define             map[string]string `yaml:"define"`
	Server             ServerDTO         `yaml:"server"`
	Entries            []EntryDTO        `yaml:"entries"`
}

// ServerDTO represents the dev server section.
type ServerDTO struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// EntryDTO represents one entry: either a bare path or a mapping with overrides.
type EntryDTO struct {
	Filepath           string           `yaml:"filepath"`
	Bundler            string           `yaml:"bundler"`
	PersistentCache    *bool            `yaml:"persistentCache"`
	BundleDependencies *DependenciesDTO `yaml:"bundleDependencies"`

	bare bool
}

// UnmarshalYAML accepts a scalar path or a mapping.
func (e *EntryDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = EntryDTO{Filepath: node.Value, bare: true}
		return nil
	case yaml.MappingNode:
		type plain EntryDTO
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*e = EntryDTO(p)
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidEntry, "entry must be a path or a mapping"), "line", node.Line)
	}
}

// DependenciesDTO represents bundleDependencies: a bool or a list of glob patterns.
type DependenciesDTO struct {
	All      bool
	Patterns []string

	list bool
}

// UnmarshalYAML accepts a bool or a sequence of strings.
func (d *DependenciesDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var all bool
		if err := node.Decode(&all); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrInvalidDependencyPolicy, err.Error()), "line", node.Line)
		}
		*d = DependenciesDTO{All: all}
		return nil
	case yaml.SequenceNode:
		var patterns []string
		if err := node.Decode(&patterns); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrInvalidDependencyPolicy, err.Error()), "line", node.Line)
		}
		*d = DependenciesDTO{Patterns: patterns, list: true}
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidDependencyPolicy, "unexpected value"), "line", node.Line)
	}
}
