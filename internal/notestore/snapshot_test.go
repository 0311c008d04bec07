package notestore

import (
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
)

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()
	s.Update(note.ID, models.NotePatch{Title: strPtr("Shopping List")})
	s.AddTag(note.ID, "home")
	s.AppendChat(note.ID, models.ChatMessage{Role: models.RoleUser, Content: "hi"})
	s.ToggleTheme()
	s.SetSearchQuery("shop")

	snap := s.Snapshot()

	restored := newTestStore(t)
	restored.Restore(snap)

	got, ok := restored.Get(note.ID)
	if !ok {
		t.Fatal("note lost in round trip")
	}
	if got.Title != "Shopping List" || len(got.Tags) != 1 {
		t.Errorf("note = %+v", got)
	}
	if restored.ActiveNoteID() != note.ID {
		t.Errorf("active = %q, want %q", restored.ActiveNoteID(), note.ID)
	}
	if len(restored.History(note.ID)) != 1 {
		t.Error("transcript lost in round trip")
	}
	prefs := restored.Prefs()
	if prefs.Theme != models.ThemeDark || prefs.SearchQuery != "shop" {
		t.Errorf("prefs = %+v", prefs)
	}
}

func TestRestore_RepairsDamagedSnapshot(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Restore(models.Snapshot{
		Notes: []models.Note{
			{ID: "a", Title: "", Color: "", Tags: []string{"x", "x", ""}, CreatedAt: now, UpdatedAt: now.Add(-time.Hour)},
			{ID: "a", Title: "duplicate"},
			{ID: "", Title: "no id"},
		},
		ActiveNoteID: "ghost",
		ChatHistory: map[string][]models.ChatMessage{
			"a":     {{Role: models.RoleUser, Content: "kept"}},
			"ghost": {{Role: models.RoleUser, Content: "orphan"}},
		},
	})

	notes := s.Notes()
	if len(notes) != 2 {
		t.Fatalf("len = %d, want 2 (duplicate dropped)", len(notes))
	}
	a := notes[0]
	if a.Title != models.DefaultTitle || a.Color != models.DefaultColor {
		t.Errorf("defaults not applied: %+v", a)
	}
	if len(a.Tags) != 1 || a.Tags[0] != "x" {
		t.Errorf("tags = %v, want [x]", a.Tags)
	}
	if a.UpdatedAt.Before(a.CreatedAt) {
		t.Error("updated_at still before created_at")
	}
	if notes[1].ID == "" {
		t.Error("missing id not filled")
	}

	if s.ActiveNoteID() != "" {
		t.Errorf("dangling active pointer = %q, want cleared", s.ActiveNoteID())
	}
	if len(s.History("ghost")) != 0 {
		t.Error("orphan transcript should be pruned")
	}
	if len(s.History("a")) != 1 {
		t.Error("live transcript lost")
	}

	prefs := s.Prefs()
	if prefs.Theme != models.ThemeLight || prefs.ViewMode != models.ViewList {
		t.Errorf("empty prefs not defaulted: %+v", prefs)
	}
}

func TestSnapshot_IsDetachedFromStore(t *testing.T) {
	s := newTestStore(t)
	note := s.Create()
	s.AddTag(note.ID, "work")

	snap := s.Snapshot()
	snap.Notes[0].Title = "mutated"
	snap.Notes[0].Tags[0] = "mutated"

	got, _ := s.Get(note.ID)
	if got.Title == "mutated" || got.Tags[0] == "mutated" {
		t.Error("snapshot aliases live store state")
	}
}
