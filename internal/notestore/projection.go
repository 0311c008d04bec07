package notestore

import (
	"sort"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// Visible computes the ordered, filtered note listing for the sidebar.
// It is a pure function: inputs are never mutated and the result is a
// fresh slice on every call.
//
// Ordering: pinned notes first, keeping their relative order; unpinned
// notes by updated-at descending with a stable tie-break. Filtering: the
// title must contain the query case-insensitively, and when the selected
// tag set is non-empty the note must carry at least one selected tag.
func Visible(notes []models.Note, query string, selectedTags []string) []models.Note {
	sorted := cloneNotes(notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if a.IsPinned {
			return false
		}
		return a.UpdatedAt.After(b.UpdatedAt)
	})

	q := strings.ToLower(query)
	out := make([]models.Note, 0, len(sorted))
	for _, n := range sorted {
		if q != "" && !strings.Contains(strings.ToLower(n.Title), q) {
			continue
		}
		if len(selectedTags) > 0 && !intersects(n.Tags, selectedTags) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// AllTags returns the distinct tags across all notes, sorted for
// deterministic output. Display order is the consumer's concern.
func AllTags(notes []models.Note) []string {
	seen := make(map[string]struct{})
	for _, n := range notes {
		for _, t := range n.Tags {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Visible projects the store's notes through its current search query and
// selected tag filter.
func (s *Store) Visible() []models.Note {
	s.mu.RLock()
	notes := cloneNotes(s.notes)
	query := s.prefs.SearchQuery
	selected := append([]string(nil), s.prefs.SelectedTags...)
	s.mu.RUnlock()
	return Visible(notes, query, selected)
}

// AllTags returns the distinct tags across the store's notes.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	notes := s.notes
	tags := AllTags(notes)
	s.mu.RUnlock()
	return tags
}

func intersects(tags, selected []string) bool {
	for _, t := range tags {
		for _, sel := range selected {
			if t == sel {
				return true
			}
		}
	}
	return false
}
