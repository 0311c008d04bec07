package notestore

import (
	"reflect"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
)

func mkNote(id, title string, pinned bool, updated time.Time, tags ...string) models.Note {
	return models.Note{
		ID:        id,
		Title:     title,
		Tags:      tags,
		IsPinned:  pinned,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func ids(notes []models.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestVisible_PinnedFirstThenRecency(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	notes := []models.Note{
		mkNote("a", "A", false, base.Add(3*time.Hour)),
		mkNote("b", "B", true, base.Add(1*time.Hour)),
		mkNote("c", "C", false, base.Add(2*time.Hour)),
		mkNote("d", "D", true, base.Add(4*time.Hour)),
	}

	got := ids(Visible(notes, "", nil))
	// Pinned keep their relative order (b before d); unpinned by
	// updated-at descending.
	want := []string{"b", "d", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestVisible_TitleSearchIsCaseInsensitive(t *testing.T) {
	base := time.Now()
	notes := []models.Note{
		mkNote("a", "Shopping List", false, base),
		mkNote("b", "Recipe Ideas", false, base.Add(time.Minute)),
	}

	got := Visible(notes, "shop", nil)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("got %v, want only Shopping List", ids(got))
	}

	if n := len(Visible(notes, "ZZZ", nil)); n != 0 {
		t.Errorf("no-match query returned %d notes", n)
	}
}

func TestVisible_TagFilterRequiresIntersection(t *testing.T) {
	base := time.Now()
	notes := []models.Note{
		mkNote("a", "Work journal", false, base, "work"),
		mkNote("b", "Chores", false, base.Add(time.Minute), "home"),
		mkNote("c", "Untagged", false, base.Add(2*time.Minute)),
	}

	got := ids(Visible(notes, "", []string{"work", "home"}))
	want := []string{"b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestVisible_SearchAndTagFilterCompose(t *testing.T) {
	base := time.Now()
	notes := []models.Note{
		mkNote("a", "Shopping List", false, base, "home"),
		mkNote("b", "Shopping Research", false, base.Add(time.Minute), "work"),
	}

	got := Visible(notes, "shopping", []string{"home"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("got %v, want [a]", ids(got))
	}
}

func TestVisible_DoesNotMutateInput(t *testing.T) {
	base := time.Now()
	notes := []models.Note{
		mkNote("a", "A", false, base),
		mkNote("b", "B", true, base.Add(time.Minute)),
	}
	before := ids(notes)

	Visible(notes, "", nil)

	if !reflect.DeepEqual(ids(notes), before) {
		t.Error("projection reordered its input slice")
	}
}

func TestVisible_EmptyCollection(t *testing.T) {
	if got := Visible(nil, "anything", []string{"work"}); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestAllTags_SortedDistinctUnion(t *testing.T) {
	base := time.Now()
	notes := []models.Note{
		mkNote("a", "A", false, base, "work", "ideas"),
		mkNote("b", "B", false, base, "home", "work"),
	}

	got := AllTags(notes)
	want := []string{"home", "ideas", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStoreVisible_UsesCurrentPreferences(t *testing.T) {
	s := newTestStore(t)
	a := s.Create()
	s.Update(a.ID, models.NotePatch{Title: strPtr("Shopping List")})
	s.AddTag(a.ID, "home")
	b := s.Create()
	s.Update(b.ID, models.NotePatch{Title: strPtr("Recipe Ideas")})

	s.SetSearchQuery("shop")
	got := s.Visible()
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("search projection = %v, want [%s]", ids(got), a.ID)
	}

	s.SetSearchQuery("")
	s.ToggleTag("home")
	got = s.Visible()
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("tag projection = %v, want [%s]", ids(got), a.ID)
	}

	s.ToggleTag("home") // second toggle removes the filter
	if len(s.Visible()) != 2 {
		t.Error("cleared filter should show everything")
	}
}
