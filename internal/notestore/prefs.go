package notestore

import "github.com/starford/ansuz/internal/models"

// Preference setters mutate only the process-wide view settings; none of
// them touch any note's timestamps.

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme() {
	s.mu.Lock()
	if s.prefs.Theme == models.ThemeLight {
		s.prefs.Theme = models.ThemeDark
	} else {
		s.prefs.Theme = models.ThemeLight
	}
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// SetTheme sets the theme directly.
func (s *Store) SetTheme(theme models.Theme) {
	s.mu.Lock()
	s.prefs.Theme = theme
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// ToggleViewMode flips between list and grid.
func (s *Store) ToggleViewMode() {
	s.mu.Lock()
	if s.prefs.ViewMode == models.ViewList {
		s.prefs.ViewMode = models.ViewGrid
	} else {
		s.prefs.ViewMode = models.ViewList
	}
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// SetViewMode sets the listing layout directly.
func (s *Store) SetViewMode(mode models.ViewMode) {
	s.mu.Lock()
	s.prefs.ViewMode = mode
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// ToggleSidebar flips sidebar visibility.
func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	s.prefs.SidebarOpen = !s.prefs.SidebarOpen
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// ToggleChat flips the assistant panel visibility.
func (s *Store) ToggleChat() {
	s.mu.Lock()
	s.prefs.ChatOpen = !s.prefs.ChatOpen
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// SetChatOpen sets the assistant panel visibility directly.
func (s *Store) SetChatOpen(open bool) {
	s.mu.Lock()
	s.prefs.ChatOpen = open
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// SetSearchQuery sets the free-text sidebar filter.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	s.prefs.SearchQuery = query
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// ToggleTag adds the tag to the selected filter set if absent, removes it
// if present. This is the sidebar filter, unrelated to any note's own
// tag list.
func (s *Store) ToggleTag(tag string) {
	if tag == "" {
		return
	}
	s.mu.Lock()
	found := false
	out := make([]string, 0, len(s.prefs.SelectedTags))
	for _, t := range s.prefs.SelectedTags {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	s.prefs.SelectedTags = out
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}

// ClearTags empties the selected tag filter set.
func (s *Store) ClearTags() {
	s.mu.Lock()
	s.prefs.SelectedTags = nil
	s.mu.Unlock()
	s.publish(Event{Type: EventPrefsChanged})
}
