package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prebundle/internal/adapters/watcher"
	"go.trai.ch/prebundle/internal/core/ports"
)

func collect(w *watcher.Watcher) <-chan ports.WatchEvent {
	ch := make(chan ports.WatchEvent, 64)
	go func() {
		defer close(ch)
		for ev := range w.Events() {
			ch <- ev
		}
	}()
	return ch
}

func waitFor(t *testing.T, ch <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			require.True(t, ok, "event stream closed before %s", path)
			if ev.Path == path {
				return ev
			}
		case <-timeout:
			t.Fatalf("timed out waiting for event on %s", path)
		}
	}
}

func TestWatcher_ReportsWrites(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "src", "a.entry.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o750))
	require.NoError(t, os.WriteFile(file, []byte("export {}"), 0o600))

	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))
	defer func() { _ = w.Stop() }()

	events := collect(w)

	require.NoError(t, os.WriteFile(file, []byte("export const a = 1"), 0o600))
	ev := waitFor(t, events, file)
	assert.Contains(t, []ports.WatchOp{ports.OpWrite, ports.OpCreate}, ev.Operation)
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, root))
	defer func() { _ = w.Stop() }()

	events := collect(w)

	dir := filepath.Join(root, "lib")
	require.NoError(t, os.Mkdir(dir, 0o750))
	waitFor(t, events, dir)

	// The new directory is watched once its create event is processed.
	file := filepath.Join(dir, "util.js")
	require.Eventually(t, func() bool {
		if err := os.WriteFile(file, []byte("export {}"), 0o600); err != nil {
			return false
		}
		for {
			select {
			case ev := <-events:
				if ev.Path == file {
					return true
				}
			case <-time.After(50 * time.Millisecond):
				return false
			}
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), root))

	events := collect(w)
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not close after Stop")
	}
}
