package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Interval is the minimum time between two onChange calls.
const Interval = time.Second

// Watcher reports changes to a storage location. A directory is watched as a
// whole; for a file the parent directory is watched and only events on the
// file and its siblings sharing its name as prefix (sqlite -wal, -journal)
// count.
type Watcher struct {
	fsw    *fsnotify.Watcher
	prefix string

	mu       sync.Mutex
	lastFire time.Time
	now      func() time.Time
}

// New starts watching path. Events are only delivered once Run is called.
func New(path string) (*Watcher, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	dir, prefix := path, ""
	if !info.IsDir() {
		dir, prefix = filepath.Dir(path), path
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watcher.Add: %w", err)
	}
	return &Watcher{fsw: fsw, prefix: prefix, now: time.Now}, nil
}

// Run calls onChange for relevant writes until ctx is done or the watcher
// fails. Changes inside the Interval after a call are folded into one
// trailing call, so the last write of a burst is always reported. Run closes
// the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fsw.Close()

	var (
		pending  *time.Timer
		trailing <-chan time.Time
	)
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) || pending != nil {
				continue
			}
			if wait := w.reserve(); wait > 0 {
				pending = time.NewTimer(wait)
				trailing = pending.C
				continue
			}
			slog.Debug("storage changed", "path", event.Name, "op", event.Op.String())
			onChange()
		case <-trailing:
			if wait := w.reserve(); wait > 0 {
				pending.Reset(wait)
				continue
			}
			pending, trailing = nil, nil
			slog.Debug("storage changed", "trailing", true)
			onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	if strings.HasSuffix(event.Name, ".tmp") {
		return false
	}
	return w.prefix == "" || strings.HasPrefix(event.Name, w.prefix)
}

// reserve returns zero and records a call when onChange may run now,
// otherwise the time left until it may. Calls happen at most once per
// Interval.
func (w *Watcher) reserve() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if left := Interval - now.Sub(w.lastFire); left > 0 {
		return left
	}
	w.lastFire = now
	return 0
}
