package notestore

import (
	"fmt"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
)

// newTestStore returns a store with a stepped clock (strictly increasing
// timestamps) and a predictable id sequence.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	n := 0
	return New(
		WithClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		}),
		WithIDSource(func() string {
			n++
			return fmt.Sprintf("n%d", n)
		}),
	)
}

func strPtr(s string) *string { return &s }

func TestCreate_DefaultsAndActivation(t *testing.T) {
	s := newTestStore(t)

	note := s.Create()
	if note.Title != models.DefaultTitle {
		t.Errorf("title = %q, want %q", note.Title, models.DefaultTitle)
	}
	if note.Color != models.DefaultColor {
		t.Errorf("color = %q, want %q", note.Color, models.DefaultColor)
	}
	if len(note.Tags) != 0 {
		t.Errorf("tags = %v, want empty", note.Tags)
	}
	if note.IsPinned {
		t.Error("new note should not be pinned")
	}
	if !note.UpdatedAt.Equal(note.CreatedAt) {
		t.Error("created_at and updated_at should match on create")
	}
	if s.ActiveNoteID() != note.ID {
		t.Errorf("active = %q, want %q", s.ActiveNoteID(), note.ID)
	}
}

func TestCreate_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	first := s.Create()
	second := s.Create()

	notes := s.Notes()
	if len(notes) != 2 {
		t.Fatalf("len = %d, want 2", len(notes))
	}
	if notes[0].ID != second.ID || notes[1].ID != first.ID {
		t.Errorf("order = [%s %s], want [%s %s]", notes[0].ID, notes[1].ID, second.ID, first.ID)
	}
	if s.ActiveNoteID() != second.ID {
		t.Errorf("active = %q, want %q", s.ActiveNoteID(), second.ID)
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	s := New()
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		n := s.Create()
		if _, dup := seen[n.ID]; dup {
			t.Fatalf("duplicate id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
}

func TestAdd_RejectsDuplicateID(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()

	if s.Add(models.Note{ID: note.ID, Title: "dup"}) {
		t.Fatal("Add should reject an existing id")
	}
	if len(s.Notes()) != 1 {
		t.Errorf("len = %d, want 1", len(s.Notes()))
	}
}

func TestAdd_DoesNotStealActivePointer(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()

	if !s.Add(models.Note{ID: "imported", Title: "Imported"}) {
		t.Fatal("Add failed")
	}
	if s.ActiveNoteID() != note.ID {
		t.Errorf("active = %q, want %q", s.ActiveNoteID(), note.ID)
	}
}

func TestUpdate_MergesPatchAndBumpsTimestamp(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()

	content := "hello world"
	if !s.Update(note.ID, models.NotePatch{Content: &content}) {
		t.Fatal("Update failed")
	}
	got, _ := s.Get(note.ID)
	if got.Content != content {
		t.Errorf("content = %q, want %q", got.Content, content)
	}
	if got.Title != note.Title {
		t.Errorf("title changed to %q, patch did not carry it", got.Title)
	}
	if !got.UpdatedAt.After(note.UpdatedAt) {
		t.Errorf("updated_at %v not after %v", got.UpdatedAt, note.UpdatedAt)
	}
	if !got.CreatedAt.Equal(note.CreatedAt) {
		t.Error("created_at must never change")
	}
}

func TestUpdate_EmptyTitleAndColorFallBackToDefaults(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()
	s.Update(note.ID, models.NotePatch{Title: strPtr("Named"), Color: strPtr("#ff0000")})

	s.Update(note.ID, models.NotePatch{Title: strPtr(""), Color: strPtr("")})
	got, _ := s.Get(note.ID)
	if got.Title != models.DefaultTitle {
		t.Errorf("title = %q, want default", got.Title)
	}
	if got.Color != models.DefaultColor {
		t.Errorf("color = %q, want default", got.Color)
	}
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.Create()
	if s.Update("ghost", models.NotePatch{Title: strPtr("x")}) {
		t.Fatal("Update of unknown id should return false")
	}
}

func TestUpdate_TagPatchDeduplicates(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()

	tags := []string{"work", "work", "home", ""}
	s.Update(note.ID, models.NotePatch{Tags: &tags})
	got, _ := s.Get(note.ID)
	if len(got.Tags) != 2 || got.Tags[0] != "work" || got.Tags[1] != "home" {
		t.Errorf("tags = %v, want [work home]", got.Tags)
	}
}

func TestDelete_CascadesTranscriptAndClearsActive(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()
	s.AppendChat(note.ID, models.ChatMessage{Role: models.RoleUser, Content: "hi"})

	if !s.Delete(note.ID) {
		t.Fatal("Delete failed")
	}
	if s.ActiveNoteID() != "" {
		t.Errorf("active = %q, want cleared", s.ActiveNoteID())
	}
	if len(s.History(note.ID)) != 0 {
		t.Error("transcript should be removed with the note")
	}
	if _, ok := s.Get(note.ID); ok {
		t.Error("note still present after delete")
	}
}

func TestDelete_OtherNoteKeepsActivePointer(t *testing.T) {
	s := newTestStore(t)
	keep := s.Create()
	other := s.Create()
	s.SetActive(keep.ID)

	s.Delete(other.ID)
	if s.ActiveNoteID() != keep.ID {
		t.Errorf("active = %q, want %q", s.ActiveNoteID(), keep.ID)
	}
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.Create()
	if s.Delete("ghost") {
		t.Fatal("Delete of unknown id should return false")
	}
	if len(s.Notes()) != 1 {
		t.Error("collection should be untouched")
	}
}

func TestSetActive_ValidatesAndNeverBumpsTimestamps(t *testing.T) {
	s := newTestStore(t)
	a := s.Create()
	b := s.Create()

	if !s.SetActive(a.ID) {
		t.Fatal("SetActive failed for a live note")
	}
	if s.SetActive("ghost") {
		t.Fatal("SetActive should reject an unknown id")
	}
	if s.ActiveNoteID() != a.ID {
		t.Errorf("active = %q, want %q", s.ActiveNoteID(), a.ID)
	}

	if !s.SetActive("") {
		t.Fatal("clearing selection should succeed")
	}
	if s.ActiveNoteID() != "" {
		t.Error("active pointer not cleared")
	}

	gotA, _ := s.Get(a.ID)
	gotB, _ := s.Get(b.ID)
	if !gotA.UpdatedAt.Equal(a.UpdatedAt) || !gotB.UpdatedAt.Equal(b.UpdatedAt) {
		t.Error("selection must not touch note timestamps")
	}
}

func TestPinUnpin(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()

	s.Pin(note.ID)
	got, _ := s.Get(note.ID)
	if !got.IsPinned {
		t.Error("note should be pinned")
	}

	s.Unpin(note.ID)
	got, _ = s.Get(note.ID)
	if got.IsPinned {
		t.Error("note should be unpinned")
	}
}

func TestAddTag_IdempotentSetInsert(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()

	if !s.AddTag(note.ID, "work") {
		t.Fatal("AddTag failed")
	}
	if !s.AddTag(note.ID, "work") {
		t.Fatal("re-adding a tag should still succeed")
	}
	got, _ := s.Get(note.ID)
	if len(got.Tags) != 1 || got.Tags[0] != "work" {
		t.Errorf("tags = %v, want [work]", got.Tags)
	}
}

func TestAddTag_EmptyTagRejected(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()
	if s.AddTag(note.ID, "") {
		t.Fatal("empty tag should be rejected")
	}
}

func TestRemoveTag(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()
	s.AddTag(note.ID, "work")
	s.AddTag(note.ID, "home")

	s.RemoveTag(note.ID, "work")
	got, _ := s.Get(note.ID)
	if len(got.Tags) != 1 || got.Tags[0] != "home" {
		t.Errorf("tags = %v, want [home]", got.Tags)
	}
}

func TestAppendChat_FillsIdentityAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()

	msg, ok := s.AppendChat(note.ID, models.ChatMessage{Role: models.RoleUser, Content: "hi"})
	if !ok {
		t.Fatal("AppendChat failed")
	}
	if msg.ID == "" {
		t.Error("message id not assigned")
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp not assigned")
	}
	if msg.NoteID != note.ID {
		t.Errorf("note_id = %q, want %q", msg.NoteID, note.ID)
	}
}

func TestAppendChat_UnknownNoteRejected(t *testing.T) {
	s := newTestStore(t)
	if _, ok := s.AppendChat("ghost", models.ChatMessage{Role: models.RoleUser, Content: "hi"}); ok {
		t.Fatal("AppendChat should reject an unknown note")
	}
}

func TestAppendChat_DoesNotBumpNoteTimestamp(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()

	s.AppendChat(note.ID, models.ChatMessage{Role: models.RoleUser, Content: "hi"})
	got, _ := s.Get(note.ID)
	if !got.UpdatedAt.Equal(note.UpdatedAt) {
		t.Error("transcript activity must not count as a document edit")
	}
}

func TestHistory_ArrivalOrderPerNote(t *testing.T) {
	s := newTestStore(t)
	a := s.Create()
	b := s.Create()

	s.AppendChat(a.ID, models.ChatMessage{Role: models.RoleUser, Content: "one"})
	s.AppendChat(b.ID, models.ChatMessage{Role: models.RoleUser, Content: "other"})
	s.AppendChat(a.ID, models.ChatMessage{Role: models.RoleAssistant, Content: "two"})

	hist := s.History(a.ID)
	if len(hist) != 2 {
		t.Fatalf("len = %d, want 2", len(hist))
	}
	if hist[0].Content != "one" || hist[1].Content != "two" {
		t.Errorf("order = [%s %s], want [one two]", hist[0].Content, hist[1].Content)
	}
	if len(s.History(b.ID)) != 1 {
		t.Error("transcripts must be isolated per note")
	}
}

func TestNotes_ReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()
	s.AddTag(note.ID, "work")

	out := s.Notes()
	out[0].Title = "mutated"
	out[0].Tags[0] = "mutated"

	got, _ := s.Get(note.ID)
	if got.Title == "mutated" || got.Tags[0] == "mutated" {
		t.Error("reads must not alias internal state")
	}
}

func TestSubscribe_PublishesMutationEvents(t *testing.T) {
	s := newTestStore(t)
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	note := s.Create()
	s.Update(note.ID, models.NotePatch{Content: strPtr("x")})
	s.Delete(note.ID)

	want := []EventType{EventNoteCreated, EventNoteUpdated, EventNoteDeleted}
	for _, w := range want {
		select {
		case ev := <-ch:
			if ev.Type != w {
				t.Errorf("event = %q, want %q", ev.Type, w)
			}
		default:
			t.Fatalf("missing event %q", w)
		}
	}
}
