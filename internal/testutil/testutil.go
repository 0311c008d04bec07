// Package testutil provides shared test helpers for deterministic stores.
package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/notestore"
)

// Clock is a fake clock that advances by a fixed step on every call,
// so successive timestamps are strictly increasing.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a Clock starting at a fixed instant with a 1s step.
func NewClock() *Clock {
	return &Clock{
		now:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		step: time.Second,
	}
}

// Now returns the current fake time and advances it by one step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// IDSeq returns an ID generator producing "n1", "n2", ...
func IDSeq() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("n%d", n)
	}
}

// TestStore creates a note store with a deterministic clock and ID sequence.
func TestStore(t *testing.T) *notestore.Store {
	t.Helper()
	return notestore.New(
		notestore.WithClock(NewClock().Now),
		notestore.WithIDSource(IDSeq()),
	)
}
