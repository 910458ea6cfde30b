package domain

// DependencyPolicy decides which bare import specifiers of an entry are inlined into its bundle.
// The zero value means "not set" and behaves like BundleNoDependencies.
type DependencyPolicy struct {
	set   bool
	all   bool
	match func(specifier string) bool
}

// BundleAllDependencies inlines every package import.
func BundleAllDependencies() DependencyPolicy {
	return DependencyPolicy{set: true, all: true}
}

// BundleNoDependencies keeps every package import external.
func BundleNoDependencies() DependencyPolicy {
	return DependencyPolicy{set: true}
}

// BundleDependenciesMatching inlines the package imports accepted by match.
func BundleDependenciesMatching(match func(specifier string) bool) DependencyPolicy {
	return DependencyPolicy{set: true, match: match}
}

// IsZero reports whether the policy was left unset.
func (p DependencyPolicy) IsZero() bool {
	return !p.set
}

// Includes reports whether the given bare specifier should be inlined.
func (p DependencyPolicy) Includes(specifier string) bool {
	if p.all {
		return true
	}
	if p.match != nil {
		return p.match(specifier)
	}
	return false
}

// String implements fmt.Stringer.
func (p DependencyPolicy) String() string {
	switch {
	case !p.set:
		return "unset"
	case p.all:
		return "all"
	case p.match != nil:
		return "matching"
	default:
		return "none"
	}
}

// EntryOptions are the per-entry options after merging declaration and defaults.
// Filepath is always present once normalized; the other fields may be unset.
type EntryOptions struct {
	Filepath           string
	Bundler            Bundler
	PersistentCache    *bool
	BundleDependencies DependencyPolicy
}

// Declaration returns the options as a record declaration.
func (o EntryOptions) Declaration() EntryDeclaration {
	return EntryRecord(o)
}

// EntryDeclaration is an entry as written by the user:
// either a bare path or a full options record.
type EntryDeclaration struct {
	path   string
	record *EntryOptions
}

// EntryPath declares an entry by its path only.
func EntryPath(path string) EntryDeclaration {
	return EntryDeclaration{path: path}
}

// EntryRecord declares an entry with per-entry overrides.
func EntryRecord(opts EntryOptions) EntryDeclaration {
	return EntryDeclaration{record: &opts}
}

// Filepath returns the declared path regardless of the declaration form.
func (d EntryDeclaration) Filepath() string {
	if d.record != nil {
		return d.record.Filepath
	}
	return d.path
}

// Normalize merges a declaration over the given defaults.
// Fields set on the declaration win; unset fields fall back to defaults.
// The Filepath of defaults is never used.
func Normalize(decl EntryDeclaration, defaults EntryOptions) EntryOptions {
	out := EntryOptions{
		Filepath:           decl.Filepath(),
		Bundler:            defaults.Bundler,
		PersistentCache:    defaults.PersistentCache,
		BundleDependencies: defaults.BundleDependencies,
	}
	if decl.record == nil {
		return out
	}

	rec := decl.record
	if !rec.Bundler.IsZero() {
		out.Bundler = rec.Bundler
	}
	if rec.PersistentCache != nil {
		out.PersistentCache = rec.PersistentCache
	}
	if !rec.BundleDependencies.IsZero() {
		out.BundleDependencies = rec.BundleDependencies
	}
	return out
}
