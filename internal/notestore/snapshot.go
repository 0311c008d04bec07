package notestore

import "github.com/starford/ansuz/internal/models"

// Snapshot returns the full serializable store state for persistence.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chat := make(map[string][]models.ChatMessage, len(s.chat))
	for id, msgs := range s.chat {
		cp := make([]models.ChatMessage, len(msgs))
		copy(cp, msgs)
		chat[id] = cp
	}
	prefs := s.prefs
	prefs.SelectedTags = append([]string(nil), prefs.SelectedTags...)

	return models.Snapshot{
		Notes:        cloneNotes(s.notes),
		ActiveNoteID: s.activeID,
		ChatHistory:  chat,
		Preferences:  prefs,
	}
}

// Restore replaces the store state with the snapshot, repairing anything
// a damaged or hand-edited slot could have introduced: duplicate note
// ids, duplicate tags, transcripts keyed to missing notes, a dangling
// active pointer, and timestamps running backwards.
func (s *Store) Restore(snap models.Snapshot) {
	s.mu.Lock()

	notes := make([]models.Note, 0, len(snap.Notes))
	seen := make(map[string]struct{}, len(snap.Notes))
	for _, n := range snap.Notes {
		if n.ID == "" {
			n.ID = s.newID()
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		if n.Title == "" {
			n.Title = models.DefaultTitle
		}
		if n.Color == "" {
			n.Color = models.DefaultColor
		}
		n.Tags = normalizeTags(n.Tags)
		if n.UpdatedAt.Before(n.CreatedAt) {
			n.UpdatedAt = n.CreatedAt
		}
		notes = append(notes, n)
	}
	s.notes = notes

	s.chat = make(map[string][]models.ChatMessage, len(snap.ChatHistory))
	for id, msgs := range snap.ChatHistory {
		if _, ok := seen[id]; !ok {
			continue
		}
		cp := make([]models.ChatMessage, len(msgs))
		copy(cp, msgs)
		s.chat[id] = cp
	}

	s.activeID = snap.ActiveNoteID
	if _, ok := seen[s.activeID]; s.activeID != "" && !ok {
		s.activeID = ""
	}

	prefs := snap.Preferences
	if prefs.Theme == "" {
		prefs.Theme = models.ThemeLight
	}
	if prefs.ViewMode == "" {
		prefs.ViewMode = models.ViewList
	}
	s.prefs = prefs

	s.mu.Unlock()
	s.publish(Event{Type: EventStateRestored})
}
