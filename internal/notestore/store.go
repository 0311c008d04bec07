// Package notestore implements the note collection state manager: notes,
// the active-note pointer, per-note chat transcripts, and process-wide
// view preferences. The Store is the single source of truth; it performs
// no I/O of its own and notifies subscribers after every committed
// mutation so persistence and display layers can react.
package notestore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/ansuz/internal/models"
)

// EventType classifies a committed state transition.
type EventType string

// Event types published to subscribers.
const (
	EventNoteCreated   EventType = "note.created"
	EventNoteUpdated   EventType = "note.updated"
	EventNoteDeleted   EventType = "note.deleted"
	EventActiveChanged EventType = "note.activated"
	EventChatAppended  EventType = "chat.appended"
	EventPrefsChanged  EventType = "prefs.changed"
	EventStateRestored EventType = "state.restored"
)

// Event describes one committed state transition. NoteID is empty for
// preference and restore events.
type Event struct {
	Type   EventType
	NoteID string
}

// subscriberBuffer is the per-subscriber channel capacity. Events beyond
// a full buffer are dropped rather than blocking a mutation.
const subscriberBuffer = 64

// Store owns the durable domain state. All methods are safe for
// concurrent use; each mutation is atomic under the store mutex, so no
// partial transition is ever observable.
type Store struct {
	mu       sync.RWMutex
	notes    []models.Note
	activeID string
	chat     map[string][]models.ChatMessage
	prefs    models.Preferences

	now   func() time.Time
	newID func() string

	subMu sync.Mutex
	subs  map[chan Event]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDSource overrides the id generator. Intended for tests.
func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty Store with default preferences.
func New(opts ...Option) *Store {
	s := &Store{
		chat:  make(map[string][]models.ChatMessage),
		prefs: models.DefaultPreferences(),
		now:   time.Now,
		newID: uuid.NewString,
		subs:  make(map[chan Event]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a change listener and returns its event channel.
func (s *Store) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(ch chan Event) {
	s.subMu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.subMu.Unlock()
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber buffer full; skip to avoid blocking the mutation.
		}
	}
}

// Create generates a new note with defaults, inserts it at the front of
// the collection, and makes it the active note.
func (s *Store) Create() models.Note {
	s.mu.Lock()
	now := s.now()
	note := models.Note{
		ID:        s.newID(),
		Title:     models.DefaultTitle,
		Content:   "",
		Tags:      []string{},
		Color:     models.DefaultColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]models.Note{note}, s.notes...)
	s.activeID = note.ID
	s.mu.Unlock()

	s.publish(Event{Type: EventNoteCreated, NoteID: note.ID})
	return note
}

// Add inserts a fully-formed note at the front of the collection without
// touching the active pointer. A note whose id is already present is
// rejected to preserve id uniqueness.
func (s *Store) Add(note models.Note) bool {
	s.mu.Lock()
	if s.indexOf(note.ID) >= 0 {
		s.mu.Unlock()
		return false
	}
	note.Tags = normalizeTags(note.Tags)
	if note.UpdatedAt.Before(note.CreatedAt) {
		note.UpdatedAt = note.CreatedAt
	}
	s.notes = append([]models.Note{note}, s.notes...)
	s.mu.Unlock()

	s.publish(Event{Type: EventNoteCreated, NoteID: note.ID})
	return true
}

// Update merges the patch into the note matching id and bumps its
// updated-at timestamp. Unknown ids are a silent no-op (false).
func (s *Store) Update(id string, patch models.NotePatch) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	n := &s.notes[i]
	if patch.Title != nil {
		n.Title = *patch.Title
		if n.Title == "" {
			n.Title = models.DefaultTitle
		}
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = normalizeTags(*patch.Tags)
	}
	if patch.Color != nil {
		n.Color = *patch.Color
		if n.Color == "" {
			n.Color = models.DefaultColor
		}
	}
	if patch.IsPinned != nil {
		n.IsPinned = *patch.IsPinned
	}
	n.UpdatedAt = s.now()
	s.mu.Unlock()

	s.publish(Event{Type: EventNoteUpdated, NoteID: id})
	return true
}

// Delete removes the note, cascades removal of its chat transcript, and
// clears the active pointer when it referenced the deleted note. Unknown
// ids are a silent no-op (false).
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	delete(s.chat, id)
	if s.activeID == id {
		s.activeID = ""
	}
	s.mu.Unlock()

	s.publish(Event{Type: EventNoteDeleted, NoteID: id})
	return true
}

// SetActive reassigns the active pointer without touching any note's
// updated-at timestamp. An empty id clears the selection; an id not
// present in the collection is rejected so the pointer always references
// a live note or nothing.
func (s *Store) SetActive(id string) bool {
	s.mu.Lock()
	if id != "" && s.indexOf(id) < 0 {
		s.mu.Unlock()
		return false
	}
	s.activeID = id
	s.mu.Unlock()

	s.publish(Event{Type: EventActiveChanged, NoteID: id})
	return true
}

// Pin marks the note as pinned.
func (s *Store) Pin(id string) bool {
	pinned := true
	return s.Update(id, models.NotePatch{IsPinned: &pinned})
}

// Unpin clears the note's pinned flag.
func (s *Store) Unpin(id string) bool {
	pinned := false
	return s.Update(id, models.NotePatch{IsPinned: &pinned})
}

// SetColor sets the note's color token.
func (s *Store) SetColor(id, color string) bool {
	return s.Update(id, models.NotePatch{Color: &color})
}

// AddTag adds a tag to the note's tag set. Adding an already-present tag
// is an idempotent set-insert; the timestamp is bumped either way.
func (s *Store) AddTag(id, tag string) bool {
	if tag == "" {
		return false
	}
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	n := &s.notes[i]
	n.Tags = normalizeTags(append(n.Tags, tag))
	n.UpdatedAt = s.now()
	s.mu.Unlock()

	s.publish(Event{Type: EventNoteUpdated, NoteID: id})
	return true
}

// RemoveTag removes a tag from the note's tag set.
func (s *Store) RemoveTag(id, tag string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	n := &s.notes[i]
	out := n.Tags[:0]
	for _, t := range n.Tags {
		if t != tag {
			out = append(out, t)
		}
	}
	n.Tags = out
	n.UpdatedAt = s.now()
	s.mu.Unlock()

	s.publish(Event{Type: EventNoteUpdated, NoteID: id})
	return true
}

// AppendChat appends a message to the note's transcript, creating the
// sequence if absent. Missing id or timestamp are filled in. Transcript
// activity is not a document edit, so the note's updated-at timestamp is
// untouched. Appending for an id with no live note is a silent no-op,
// which keeps transcripts keyed only by live notes.
func (s *Store) AppendChat(noteID string, msg models.ChatMessage) (models.ChatMessage, bool) {
	s.mu.Lock()
	if s.indexOf(noteID) < 0 {
		s.mu.Unlock()
		return models.ChatMessage{}, false
	}
	msg.NoteID = noteID
	if msg.ID == "" {
		msg.ID = s.newID()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	if !msg.Role.Valid() {
		msg.Role = models.RoleUser
	}
	s.chat[noteID] = append(s.chat[noteID], msg)
	s.mu.Unlock()

	s.publish(Event{Type: EventChatAppended, NoteID: noteID})
	return msg, true
}

// History returns a copy of the note's transcript in arrival order.
func (s *Store) History(noteID string) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.chat[noteID]
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

// Get returns the note matching id.
func (s *Store) Get(id string) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Note{}, false
	}
	return cloneNote(s.notes[i]), true
}

// Notes returns a copy of the note collection in insertion order
// (newest first).
func (s *Store) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// ActiveNoteID returns the active note's id, or empty when nothing is
// selected.
func (s *Store) ActiveNoteID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Prefs returns a copy of the current preferences.
func (s *Store) Prefs() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.prefs
	p.SelectedTags = append([]string(nil), p.SelectedTags...)
	return p
}

func (s *Store) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneNote(n models.Note) models.Note {
	n.Tags = append([]string(nil), n.Tags...)
	return n
}

func cloneNotes(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	for i, n := range notes {
		out[i] = cloneNote(n)
	}
	return out
}

// normalizeTags deduplicates tags preserving first occurrence, dropping
// empties. Uniqueness is structural: callers may hand in any slice.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
