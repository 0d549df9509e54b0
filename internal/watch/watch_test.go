package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var calls atomic.Int32
	go func() { done <- w.Run(ctx, func() { calls.Add(1) }) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.json"), []byte(`[]`), 0o600))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewMissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	w := &Watcher{prefix: "/data/timetags.db"}

	assert.True(t, w.relevant(fsnotify.Event{Name: "/data/timetags.db", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/data/timetags.db-wal", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/data/config.yaml", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/data/timetags.db", Op: fsnotify.Chmod}))

	dirWatch := &Watcher{}
	assert.True(t, dirWatch.relevant(fsnotify.Event{Name: "/data/tags.json", Op: fsnotify.Rename}))
	assert.False(t, dirWatch.relevant(fsnotify.Event{Name: "/data/tags.json.tmp", Op: fsnotify.Create}))
}

func TestReserveThrottles(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	w := &Watcher{now: func() time.Time { return now }}

	assert.Zero(t, w.reserve())
	now = now.Add(400 * time.Millisecond)
	assert.Equal(t, 600*time.Millisecond, w.reserve())
	now = now.Add(600 * time.Millisecond)
	assert.Zero(t, w.reserve())
}

func TestRunDeliversLastWriteOfBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	entriesPath := filepath.Join(dir, "time_entries.json")

	var (
		mu   sync.Mutex
		seen []string
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = w.Run(ctx, func() {
			data, _ := os.ReadFile(entriesPath)
			mu.Lock()
			seen = append(seen, string(data))
			mu.Unlock()
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.json"), []byte(`[]`), 0o600))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(entriesPath, []byte(`[{"id":"e1"}]`), 0o600))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == `[{"id":"e1"}]`
	}, 3*time.Second, 20*time.Millisecond)
}
