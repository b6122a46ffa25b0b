package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the watcher:
// - A Go file change triggers a debounced rebuild
// - A burst of saves coalesces into a single rebuild
// - Non-Go and test files do not trigger rebuilds
// - Stop returns promptly and is safe to call twice

func newTestWatcher(t *testing.T, root string, rebuilds chan struct{}) *Watcher {
	t.Helper()

	w, err := NewWatcher(root, func(ctx context.Context) error {
		rebuilds <- struct{}{}
		return nil
	})
	require.NoError(t, err)
	w.debounceTime = 50 * time.Millisecond
	t.Cleanup(w.Stop)
	return w
}

func waitRebuild(t *testing.T, rebuilds chan struct{}) {
	t.Helper()

	select {
	case <-rebuilds:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
	}
}

func assertNoRebuild(t *testing.T, rebuilds chan struct{}) {
	t.Helper()

	select {
	case <-rebuilds:
		t.Fatal("unexpected rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_RebuildsOnGoFileChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rebuilds := make(chan struct{}, 4)
	w := newTestWatcher(t, root, rebuilds)
	w.Start(context.Background())

	require.NoError(t, os.WriteFile(filepath.Join(root, "config.go"), []byte("package main\n"), 0o644))
	waitRebuild(t, rebuilds)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rebuilds := make(chan struct{}, 4)
	w := newTestWatcher(t, root, rebuilds)
	w.Start(context.Background())

	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "config.go")
		require.NoError(t, os.WriteFile(name, []byte("package main\n"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	waitRebuild(t, rebuilds)
	assertNoRebuild(t, rebuilds)
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rebuilds := make(chan struct{}, 4)
	w := newTestWatcher(t, root, rebuilds)
	w.Start(context.Background())

	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# readme\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config_test.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden.go"), []byte("package main\n"), 0o644))

	assertNoRebuild(t, rebuilds)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rebuilds := make(chan struct{}, 4)
	w := newTestWatcher(t, root, rebuilds)
	w.Start(context.Background())

	done := make(chan struct{})
	go func() {
		w.Stop()
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Empty(t, rebuilds)
}
