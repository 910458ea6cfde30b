package bundler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// bareSpecifierFilter matches import paths that are neither relative nor absolute.
	bareSpecifierFilter = `^[^./]`
	// localStylesheetFilter matches relative or absolute stylesheet imports.
	localStylesheetFilter = `^[./].*\.css$`
)

// Esbuild bundles the entry and its relative imports into one ES module.
// Package imports are kept external unless the entry's dependency policy includes them.
func Esbuild(ctx context.Context, bc domain.BundleContext) (*domain.BundleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry := bc.Entry.ResolvedFilepath
	root := bc.Host.Root
	if root == "" {
		root = filepath.Dir(entry)
	}

	opts := api.BuildOptions{
		EntryPoints:   []string{entry},
		AbsWorkingDir: root,
		Outfile:       outfileFor(entry),
		Bundle:        true,
		Write:         false,
		Metafile:      true,
		Format:        api.FormatESModule,
		Platform:      api.PlatformBrowser,
		Target:        api.ESNext,
		Define:        bc.Host.Define,
		LogLevel:      api.LogLevelSilent,
		Plugins: []api.Plugin{
			externalStylesheets(root),
			externalPackages(bc.Entry.Options.BundleDependencies),
		},
	}
	if bc.Host.Sourcemap {
		opts.Sourcemap = api.SourceMapExternal
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrBundleFailed, formatMessage(result.Errors[0])), "entry", entry),
			"errors", len(result.Errors),
		)
	}

	// Stylesheets pulled in through packages still produce a .css output; only the
	// JavaScript output and its map belong to the entry.
	out := &domain.BundleResult{}
	found := false
	for _, file := range result.OutputFiles {
		switch file.Path {
		case opts.Outfile:
			out.Code = string(file.Contents)
			found = true
		case opts.Outfile + ".map":
			out.Sourcemap = file.Contents
		}
	}
	if !found {
		return nil, zerr.With(zerr.Wrap(domain.ErrBundleFailed, "esbuild produced no javascript output"), "entry", entry)
	}

	files, err := parseMetafile(result.Metafile, root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrBundleFailed, "invalid esbuild metafile"), "entry", entry)
	}
	out.BundledFiles = files

	return out, nil
}

// externalPackages marks package imports as external unless policy includes them.
// Returning an empty result hands resolution back to esbuild.
func externalPackages(policy domain.DependencyPolicy) api.Plugin {
	return api.Plugin{
		Name: "prebundle-externals",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: bareSpecifierFilter},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if policy.Includes(args.Path) {
						return api.OnResolveResult{}, nil
					}
					return api.OnResolveResult{Path: args.Path, External: true}, nil
				})
		},
	}
}

// externalStylesheets keeps local .css imports out of the bundle. The import is
// rewritten to a root-relative URL so the browser fetches the stylesheet from the
// dev server instead.
func externalStylesheets(root string) api.Plugin {
	return api.Plugin{
		Name: "prebundle-stylesheets",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: localStylesheetFilter},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					path := args.Path
					if !filepath.IsAbs(path) {
						path = filepath.Join(args.ResolveDir, filepath.FromSlash(path))
					}
					rel, err := filepath.Rel(root, path)
					if err != nil || strings.HasPrefix(rel, "..") {
						return api.OnResolveResult{Path: args.Path, External: true}, nil
					}
					return api.OnResolveResult{Path: "/" + filepath.ToSlash(rel), External: true}, nil
				})
		},
	}
}

// outfileFor names the virtual output file of an entry; nothing is written to disk.
func outfileFor(entry string) string {
	ext := filepath.Ext(entry)
	return strings.TrimSuffix(entry, ext) + ".prebundle.js"
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}
