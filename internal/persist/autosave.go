package persist

import (
	"context"
	"log/slog"
	"time"

	"github.com/starford/ansuz/internal/notestore"
)

// Autosave persists the store whenever it changes, debounced so bursts
// of edits collapse into one write. It runs until ctx is cancelled and
// performs a final save on the way out.
//
// Restore events are skipped: they originate from the persistence layer
// itself, and re-saving them would ping-pong with the external-change
// watcher under the file driver.
func Autosave(ctx context.Context, p Provider, st *notestore.Store, debounce time.Duration, logger *slog.Logger) {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	events := st.Subscribe()
	defer st.Unsubscribe(events)

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	save := func() {
		if err := SaveState(p, st); err != nil {
			logger.Warn("autosave failed", slog.String("error", err.Error()))
		} else {
			logger.Debug("autosave: state persisted")
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			save()
			return

		case <-fire:
			save()

		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type == notestore.EventStateRestored {
				continue
			}
			schedule()
		}
	}
}
