package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notestore"
)

// WatchFile watches the file driver's slot for external modification and
// reloads the store when its content actually changed, until ctx is
// cancelled. Our own atomic saves show up as events too, so the payload
// is compared against the current snapshot before restoring; debouncing
// absorbs the write-then-rename event pairs.
func WatchFile(ctx context.Context, f *File, st *notestore.Store, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory: the slot file is replaced by rename on every
	// save, which would invalidate a watch on the file itself.
	dir := filepath.Dir(f.Path())
	if err := w.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(f.Path())

	logger.Info("watcher: started", slog.String("path", target))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time
	schedule := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			reloadIfChanged(f, st, logger)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reloadIfChanged restores the store from the slot when the on-disk
// payload differs from the in-memory snapshot. Stale or unreadable
// payloads are logged and skipped; the in-memory state wins.
func reloadIfChanged(p Provider, st *notestore.Store, logger *slog.Logger) {
	data, err := p.Load()
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			logger.Warn("watcher: reload read failed", slog.String("error", err.Error()))
		}
		return
	}

	current, err := json.Marshal(st.Snapshot())
	if err == nil && bytes.Equal(bytes.TrimSpace(data), current) {
		return
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Warn("watcher: reload decode failed", slog.String("error", err.Error()))
		return
	}
	st.Restore(snap)
	logger.Info("watcher: state reloaded from disk")
}
