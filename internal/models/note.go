// Package models defines the domain types for Ansuz.
package models

import "time"

// Defaults applied when a note is created without explicit values.
const (
	DefaultTitle = "Untitled Note"
	DefaultColor = "#ffffff"
)

// Note is a titled document with organizational metadata and timestamps.
// Content is an opaque serialized string owned by the document editor;
// the store never parses it.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Color     string    `json:"color"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch is a partial update of a note. A nil field leaves the
// corresponding attribute untouched; a non-nil field overwrites it.
type NotePatch struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Color    *string   `json:"color,omitempty"`
	IsPinned *bool     `json:"is_pinned,omitempty"`
}

// IsZero reports whether the patch carries no fields.
func (p NotePatch) IsZero() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.Color == nil && p.IsPinned == nil
}

// Role identifies the author of a chat message.
type Role string

// Chat roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the known chat roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatMessage is one turn in a note's assistant transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
