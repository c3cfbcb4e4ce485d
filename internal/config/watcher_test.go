package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"monokai\"\n"), 0o644))

	changed := make(chan struct{}, 4)
	w, err := NewWatcher(path, func() { changed <- struct{}{} }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("theme = \"github\"\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherCloseStopsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := NewWatcher(path, func() {})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
