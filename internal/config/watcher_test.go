package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.xml")
	require.NoError(t, os.WriteFile(path, []byte("<testcase/>"), 0o644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(path))

	require.NoError(t, os.WriteFile(path, []byte("<testcase></testcase>"), 0o644))

	select {
	case changed, ok := <-w.Events():
		require.True(t, ok)
		require.Equal(t, path, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change event")
	}
}

func TestWatcherCloseEndsEvents(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events():
		require.False(t, ok, "events channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("events channel was not closed")
	}
}
