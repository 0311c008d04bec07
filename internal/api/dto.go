package api

import (
	"github.com/starford/ansuz/internal/models"
)

// PatchNoteRequest is the request body for partially updating a note.
// Absent fields leave the corresponding attribute untouched.
type PatchNoteRequest = models.NotePatch

// ImportNoteRequest is the request body for importing a fully-formed note.
type ImportNoteRequest struct {
	Note models.Note `json:"note" validate:"required"`
}

// ColorRequest sets a note's color token.
type ColorRequest struct {
	Color string `json:"color" example:"#fef3c7" validate:"required"`
}

// TagRequest names a single tag.
type TagRequest struct {
	Tag string `json:"tag" example:"work" validate:"required"`
}

// ActiveRequest reassigns the active-note pointer; an empty id clears it.
type ActiveRequest struct {
	ID string `json:"id" example:"4f7c..."`
}

// ThemeRequest sets the theme directly.
type ThemeRequest struct {
	Theme models.Theme `json:"theme" example:"dark" validate:"required"`
}

// ViewRequest sets the listing layout directly.
type ViewRequest struct {
	Mode models.ViewMode `json:"mode" example:"grid" validate:"required"`
}

// ChatOpenRequest sets the assistant panel visibility directly.
type ChatOpenRequest struct {
	Open bool `json:"open"`
}

// SearchRequest sets the sidebar search query.
type SearchRequest struct {
	Query string `json:"query" example:"recipe"`
}

// ChatSendRequest is the request body for submitting a chat message.
type ChatSendRequest struct {
	Text string `json:"text" example:"help me organize" validate:"required"`
}

// ChatSendResponse carries the appended transcript turns. Assistant is
// omitted when the responder failed (the user turn is kept regardless).
type ChatSendResponse struct {
	User      models.ChatMessage  `json:"user" validate:"required"`
	Assistant *models.ChatMessage `json:"assistant,omitempty"`
}

// NoteListResponse wraps the projected sidebar listing.
type NoteListResponse struct {
	Notes []models.Note `json:"notes" validate:"required"`
	Total int           `json:"total" example:"42" validate:"required"`
}

// TagListResponse wraps the distinct tag union.
type TagListResponse struct {
	Tags []string `json:"tags" validate:"required"`
}

// ActiveResponse reports the active-note pointer; empty means none.
type ActiveResponse struct {
	ID string `json:"id"`
}

// ChatHistoryResponse wraps a note's transcript.
type ChatHistoryResponse struct {
	Messages []models.ChatMessage `json:"messages" validate:"required"`
}

// ToastListResponse wraps the live toast queue.
type ToastListResponse struct {
	Toasts []models.Toast `json:"toasts" validate:"required"`
}
