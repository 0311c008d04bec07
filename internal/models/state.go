package models

// Theme is the display color scheme.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ViewMode is the sidebar listing layout.
type ViewMode string

// View modes.
const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

// Preferences holds the process-wide view settings. They live for the
// process lifetime and are rehydrated from the persisted snapshot.
type Preferences struct {
	Theme        Theme    `json:"theme"`
	ViewMode     ViewMode `json:"view_mode"`
	SidebarOpen  bool     `json:"sidebar_open"`
	ChatOpen     bool     `json:"chat_open"`
	SearchQuery  string   `json:"search_query"`
	SelectedTags []string `json:"selected_tags"`
}

// DefaultPreferences returns the startup preference values.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:       ThemeLight,
		ViewMode:    ViewList,
		SidebarOpen: true,
	}
}

// Snapshot is the full serializable state of the note store: the durable
// payload written to the persistence slot and restored at startup.
type Snapshot struct {
	Notes        []Note                   `json:"notes"`
	ActiveNoteID string                   `json:"active_note_id,omitempty"`
	ChatHistory  map[string][]ChatMessage `json:"chat_history,omitempty"`
	Preferences  Preferences              `json:"preferences"`
}

// ToastType classifies a transient notification.
type ToastType string

// Toast types.
const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// Valid reports whether the toast type is one of the known kinds.
func (t ToastType) Valid() bool {
	switch t {
	case ToastSuccess, ToastError, ToastInfo, ToastWarning:
		return true
	}
	return false
}

// Toast is a short-lived user-facing notification. It self-destructs after
// a fixed delay or on explicit dismissal and is never persisted.
type Toast struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}
