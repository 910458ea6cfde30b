package devserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prebundle/internal/adapters/devserver"
	"go.trai.ch/prebundle/internal/core/domain"
	"go.trai.ch/prebundle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type harness struct {
	root   string
	loader *mocks.MockPrebundler
	logger *mocks.MockLogger
	graph  *devserver.ModuleGraph
	server *devserver.Server
}

func newHarness(t *testing.T, metrics http.Handler) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		root:   t.TempDir(),
		loader: mocks.NewMockPrebundler(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		graph:  devserver.NewModuleGraph(),
	}
	h.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	h.server = devserver.NewServer(
		domain.ServerConfig{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second},
		h.root, h.loader, h.graph, h.logger, metrics,
	)
	return h
}

func (h *harness) get(t *testing.T, target string, header http.Header) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec.Result()
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestServer_ServesBundle(t *testing.T) {
	h := newHarness(t, nil)
	file := filepath.Join(h.root, "src", "vendor.entry.js")
	cache := &domain.Cache{Code: "export const a = 1;", Hash: 0xabc}

	h.loader.EXPECT().Load(gomock.Any(), file).Return(cache, nil)

	resp := h.get(t, "/src/vendor.entry.js", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/javascript; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `"0000000000000abc"`, resp.Header.Get("ETag"))
	assert.Empty(t, resp.Header.Get("SourceMap"))
	assert.Equal(t, cache.Code, body(t, resp))

	nodes := h.graph.GetModulesByFile(file)
	require.Len(t, nodes, 1)
	assert.Equal(t, "/src/vendor.entry.js", nodes[0].URL)
}

func TestServer_NotModified(t *testing.T) {
	h := newHarness(t, nil)
	cache := &domain.Cache{Code: "x", Hash: 1}
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(cache, nil)

	resp := h.get(t, "/a.entry.js", http.Header{"If-None-Match": {devserver.ETag(cache)}})
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, body(t, resp))
}

func TestServer_FallsBackToFile(t *testing.T) {
	h := newHarness(t, nil)
	file := filepath.Join(h.root, "src", "app.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o750))
	require.NoError(t, os.WriteFile(file, []byte("import 'preact';"), 0o600))

	h.loader.EXPECT().Load(gomock.Any(), file).Return(nil, nil)

	resp := h.get(t, "/src/app.js", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "import 'preact';", body(t, resp))

	_, tracked := h.graph.Version("/src/app.js")
	assert.True(t, tracked)
}

func TestServer_MissingFileIsNotTracked(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(h.root, "src"), 0o750))
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)

	for _, target := range []string{"/missing.js", "/src/gone.js", "/src"} {
		resp := h.get(t, target, nil)
		_ = body(t, resp)

		_, tracked := h.graph.Version(target)
		assert.False(t, tracked, target)
	}
	assert.Empty(t, h.graph.GetModulesByFile(filepath.Join(h.root, "missing.js")))
}

func TestServer_LoadError(t *testing.T) {
	h := newHarness(t, nil)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, domain.ErrBundleFailed)
	h.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrBundleFailed)
	})

	resp := h.get(t, "/broken.entry.js", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body(t, resp), domain.ErrBundleFailed.Error())
}

func TestServer_Sourcemap(t *testing.T) {
	h := newHarness(t, nil)
	registry, err := domain.NewRegistry(h.root, []domain.EntryDeclaration{
		domain.EntryPath("vendor.entry.js"),
	}, domain.EntryOptions{})
	require.NoError(t, err)
	file := filepath.Join(h.root, "vendor.entry.js")
	cache := &domain.Cache{Code: "x", Sourcemap: []byte(`{"version":3}`)}

	h.loader.EXPECT().Registry().Return(registry).AnyTimes()
	h.loader.EXPECT().Load(gomock.Any(), file).Return(cache, nil).Times(2)

	resp := h.get(t, "/vendor.entry.js", nil)
	assert.Equal(t, "/vendor.entry.js.map", resp.Header.Get("SourceMap"))
	_ = body(t, resp)

	resp = h.get(t, "/vendor.entry.js.map", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, string(cache.Sourcemap), body(t, resp))
}

func TestServer_Entries(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		h := newHarness(t, nil)
		h.loader.EXPECT().Registry().Return(nil)

		resp := h.get(t, devserver.EntriesPath, nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		_ = body(t, resp)
	})

	t.Run("lists entries", func(t *testing.T) {
		h := newHarness(t, nil)
		registry, err := domain.NewRegistry(h.root, []domain.EntryDeclaration{
			domain.EntryPath("b.entry.js"),
			domain.EntryRecord(domain.EntryOptions{
				Filepath:           "a.entry.js",
				Bundler:            domain.BuiltinBundler("passthrough"),
				BundleDependencies: domain.BundleAllDependencies(),
			}),
		}, domain.EntryOptions{})
		require.NoError(t, err)

		a, ok := registry.Get(filepath.Join(h.root, "a.entry.js"))
		require.True(t, ok)
		a.StoreCache(&domain.Cache{
			Code:         "x",
			BundledFiles: domain.NewFileSet(a.ResolvedFilepath),
			Time:         time.Unix(1700000000, 0).UTC(),
			Hash:         7,
		})

		h.loader.EXPECT().Registry().Return(registry)

		resp := h.get(t, devserver.EntriesPath, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got []devserver.EntryStatus
		require.NoError(t, json.Unmarshal([]byte(body(t, resp)), &got))
		require.Len(t, got, 2)

		assert.Equal(t, a.ResolvedFilepath, got[0].Filepath)
		assert.Equal(t, "passthrough", got[0].Bundler)
		assert.Equal(t, "all", got[0].BundleDependencies)
		assert.True(t, got[0].Cached)
		assert.Equal(t, []string{a.ResolvedFilepath}, got[0].BundledFiles)
		assert.Equal(t, `"0000000000000007"`, got[0].ETag)

		assert.Equal(t, "esbuild", got[1].Bundler)
		assert.False(t, got[1].Cached)
		assert.Nil(t, got[1].BundledAt)
	})
}

func TestServer_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "prebundle_bundles_total 1\n")
	})
	h := newHarness(t, metrics)

	resp := h.get(t, devserver.MetricsPath, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "prebundle_bundles_total")
}

func TestServer_HandleChanges(t *testing.T) {
	h := newHarness(t, nil)

	entry := filepath.Join(h.root, "vendor.entry.js")
	dep := filepath.Join(h.root, "node_modules", "preact", "index.js")
	plain := filepath.Join(h.root, "src", "app.js")

	entryNode := h.graph.Ensure("/vendor.entry.js", entry)
	plainNode := h.graph.Ensure("/src/app.js", plain)

	h.loader.EXPECT().HandleFileChange(dep, h.graph).Return([]*domain.ModuleNode{entryNode})
	h.loader.EXPECT().HandleFileChange(plain, h.graph).Return(nil)

	h.server.HandleChanges([]string{dep, plain})

	assert.Equal(t, uint64(1), entryNode.Version)
	assert.Equal(t, uint64(1), plainNode.Version, "unbundled files invalidate their own modules")
}

func TestServer_Serve(t *testing.T) {
	h := newHarness(t, nil)
	h.logger.EXPECT().Info(gomock.Any())
	h.loader.EXPECT().Registry().Return(nil)

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.server.Serve(ctx, ln) }()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+ln.Addr().String()+devserver.EntriesPath, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = body(t, resp)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunInvalidAddr(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := devserver.NewServer(
		domain.ServerConfig{Addr: "256.0.0.1:bad"},
		t.TempDir(), mocks.NewMockPrebundler(ctrl), devserver.NewModuleGraph(), mocks.NewMockLogger(ctrl), nil,
	)

	err := server.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrServerFailed))
}
