// Package uistate implements the transient UI signal store: an ephemeral
// toast queue plus last-write-wins loading/error flags. It has no
// dependency on the note store and no domain knowledge.
package uistate

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/ansuz/internal/models"
)

// DefaultTTL is how long a toast stays visible without explicit dismissal.
const DefaultTTL = 3 * time.Second

// Store holds the transient UI signals. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	toasts  []models.Toast
	timers  map[string]*time.Timer
	loading bool
	lastErr string
	closed  bool

	ttl    time.Duration
	newID  func() string
	notify func(models.Toast)
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the toast expiry delay.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithIDSource overrides the toast id generator. Intended for tests.
func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithNotify registers a callback invoked after each new toast, outside
// the store lock. Used to forward toasts to display transports.
func WithNotify(fn func(models.Toast)) Option {
	return func(s *Store) { s.notify = fn }
}

// New creates a Store with the default 3-second toast TTL.
func New(opts ...Option) *Store {
	s := &Store{
		timers: make(map[string]*time.Timer),
		ttl:    DefaultTTL,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShowToast appends a toast with a fresh id and schedules its automatic
// removal. Each toast carries its own independent expiry timer.
func (s *Store) ShowToast(message string, typ models.ToastType) models.Toast {
	if !typ.Valid() {
		typ = models.ToastInfo
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.Toast{}
	}
	toast := models.Toast{ID: s.newID(), Message: message, Type: typ}
	s.toasts = append(s.toasts, toast)
	id := toast.ID
	s.timers[id] = time.AfterFunc(s.ttl, func() { s.RemoveToast(id) })
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify(toast)
	}
	return toast
}

// RemoveToast dismisses a toast immediately and cancels its expiry timer.
// Removing an already-removed id is a no-op.
func (s *Store) RemoveToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	for i := range s.toasts {
		if s.toasts[i].ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns a copy of the live toast queue in display order.
func (s *Store) Toasts() []models.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Loading reports the current loading flag.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetError records the last error message; empty clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// LastError returns the last recorded error message.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close stops all pending expiry timers. Subsequent ShowToast calls are
// no-ops.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
