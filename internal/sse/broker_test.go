package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/notestore"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "toast", Data: map[string]string{"message": "saved"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: toast") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"message":"saved"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishStoreEvent_NoteEventsCarryID(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishStoreEvent(notestore.Event{Type: notestore.EventNoteUpdated, NoteID: "n1"})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: note.updated") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"note_id":"n1"`) {
			t.Errorf("missing note id in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishStoreEvent_PrefsThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Rapid-fire preference changes, as search keystrokes would produce.
	b.PublishStoreEvent(notestore.Event{Type: notestore.EventPrefsChanged})
	b.PublishStoreEvent(notestore.Event{Type: notestore.EventPrefsChanged})
	b.PublishStoreEvent(notestore.Event{Type: notestore.EventPrefsChanged})

	time.Sleep(50 * time.Millisecond)
	count := 0
loop:
	for {
		select {
		case msg := <-ch:
			if strings.Contains(string(msg), "prefs.changed") {
				count++
			}
		default:
			break loop
		}
	}

	if count != 1 {
		t.Errorf("prefs events delivered = %d, want 1 (throttled)", count)
	}
}

func TestPublishStoreEvent_NoteEventsNotThrottled(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishStoreEvent(notestore.Event{Type: notestore.EventNoteCreated, NoteID: "a"})
	b.PublishStoreEvent(notestore.Event{Type: notestore.EventNoteCreated, NoteID: "b"})

	time.Sleep(50 * time.Millisecond)
	count := 0
loop:
	for {
		select {
		case <-ch:
			count++
		default:
			break loop
		}
	}
	if count != 2 {
		t.Errorf("note events delivered = %d, want 2", count)
	}
}

func TestServeHTTP_StreamsEvents(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	srv := httptest.NewServer(http.HandlerFunc(b.ServeHTTP))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}

	// Wait for the subscription to register, then publish.
	deadline := time.Now().Add(time.Second)
	for b.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	b.PublishStoreEvent(notestore.Event{Type: notestore.EventNoteDeleted, NoteID: "gone"})

	buf := make([]byte, 512)
	n, err := resp.Body.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	body := string(buf[:n])
	if !strings.Contains(body, "event: note.deleted") || !strings.Contains(body, `"note_id":"gone"`) {
		t.Errorf("stream payload = %q", body)
	}
}

func TestClose_Idempotent(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	b.Close()
	b.Close()

	if _, ok := <-ch; ok {
		t.Error("client channel should be closed")
	}
	if got := b.ClientCount(); got != 0 {
		t.Errorf("client count after close = %d", got)
	}
	// Publishing after close is a no-op, not a panic.
	b.Publish(Event{Type: "toast", Data: nil})
}
