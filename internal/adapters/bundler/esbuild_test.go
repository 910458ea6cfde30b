package bundler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prebundle/internal/adapters/bundler"
	"go.trai.ch/prebundle/internal/core/domain"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	writeFiles(t, root, map[string]string{
		"src/main.entry.js": `import { greet } from './greet.js'
import { h } from 'preact'
export const out = greet(h)
export const mode = process.env.NODE_ENV
`,
		"src/greet.js":                   "export function greet(fn) { return 'hello ' + fn() }\n",
		"node_modules/preact/package.json": `{"name":"preact","main":"index.js"}`,
		"node_modules/preact/index.js":     "export function h() { return 'preact' }\n",
	})
	return root
}

func bundleContext(root string, policy domain.DependencyPolicy) domain.BundleContext {
	entry := filepath.Join(root, "src", "main.entry.js")
	return domain.BundleContext{
		Host: domain.HostConfig{Root: root},
		Entry: &domain.ResolvedEntry{
			Options:          domain.EntryOptions{Filepath: entry, BundleDependencies: policy},
			ResolvedFilepath: entry,
		},
	}
}

func TestEsbuild_KeepsPackagesExternalByDefault(t *testing.T) {
	root := projectRoot(t)

	res, err := bundler.Esbuild(context.Background(), bundleContext(root, domain.DependencyPolicy{}))
	require.NoError(t, err)

	assert.Contains(t, res.Code, `"preact"`)
	assert.Contains(t, res.Code, "hello ")
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "src", "main.entry.js"),
		filepath.Join(root, "src", "greet.js"),
	}, res.BundledFiles)
	assert.Empty(t, res.Sourcemap)
}

func TestEsbuild_BundleAllDependencies(t *testing.T) {
	root := projectRoot(t)

	res, err := bundler.Esbuild(context.Background(), bundleContext(root, domain.BundleAllDependencies()))
	require.NoError(t, err)

	assert.NotContains(t, res.Code, `from "preact"`)
	assert.Contains(t, res.BundledFiles, filepath.Join(root, "node_modules", "preact", "index.js"))
	assert.Len(t, res.BundledFiles, 3)
}

func TestEsbuild_BundleMatchingDependencies(t *testing.T) {
	root := projectRoot(t)

	policy := domain.BundleDependenciesMatching(func(s string) bool { return s == "lodash-es" })
	res, err := bundler.Esbuild(context.Background(), bundleContext(root, policy))
	require.NoError(t, err)

	assert.Contains(t, res.Code, `"preact"`)
	assert.Len(t, res.BundledFiles, 2)
}

func TestEsbuild_HostOptions(t *testing.T) {
	root := projectRoot(t)

	bc := bundleContext(root, domain.BundleNoDependencies())
	bc.Host.Sourcemap = true
	bc.Host.Define = map[string]string{"process.env.NODE_ENV": `"development"`}

	res, err := bundler.Esbuild(context.Background(), bc)
	require.NoError(t, err)

	assert.Contains(t, res.Code, `"development"`)
	assert.NotEmpty(t, res.Sourcemap)
}

func TestEsbuild_StylesheetImportStaysExternal(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	writeFiles(t, root, map[string]string{
		"src/main.entry.js": "import './style.css'\nimport './parts/card.js'\nexport const answer = 42\n",
		"src/style.css":     "body { color: red; }\n",
		"src/parts/card.js": "import '../card.css'\nexport const card = 'card'\n",
		"src/card.css":      ".card { margin: 0; }\n",
	})

	bc := bundleContext(root, domain.BundleNoDependencies())
	bc.Host.Sourcemap = true

	res, err := bundler.Esbuild(context.Background(), bc)
	require.NoError(t, err)

	require.Contains(t, res.Code, "answer")
	assert.NotContains(t, res.Code, "color: red")
	assert.Contains(t, res.Code, `"/src/style.css"`)
	assert.Contains(t, res.Code, `"/src/card.css"`)
	assert.Contains(t, string(res.Sourcemap), "main.entry.js")
	assert.NotContains(t, res.BundledFiles, filepath.Join(root, "src", "style.css"))
}

func TestEsbuild_SyntaxError(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"broken.js": "export const = ;\n"})

	entry := filepath.Join(root, "broken.js")
	res, err := bundler.Esbuild(context.Background(), domain.BundleContext{
		Host:  domain.HostConfig{Root: root},
		Entry: &domain.ResolvedEntry{ResolvedFilepath: entry},
	})
	require.ErrorIs(t, err, domain.ErrBundleFailed)
	assert.Nil(t, res)
}

func TestEsbuild_CancelledContext(t *testing.T) {
	root := projectRoot(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bundler.Esbuild(ctx, bundleContext(root, domain.BundleNoDependencies()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPassthrough(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"raw.js": "export default 1\n"})
	entry := filepath.Join(root, "raw.js")

	res, err := bundler.Passthrough(context.Background(), domain.BundleContext{
		Entry: &domain.ResolvedEntry{ResolvedFilepath: entry},
	})
	require.NoError(t, err)
	assert.Equal(t, "export default 1\n", res.Code)
	assert.Equal(t, []string{entry}, res.BundledFiles)

	_, err = bundler.Passthrough(context.Background(), domain.BundleContext{
		Entry: &domain.ResolvedEntry{ResolvedFilepath: filepath.Join(root, "missing.js")},
	})
	require.ErrorIs(t, err, domain.ErrBundleFailed)
}
