package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/chat"
	"github.com/starford/ansuz/internal/notestore"
	"github.com/starford/ansuz/internal/uistate"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(store *notestore.Store, chatSvc *chat.Service, signals *uistate.Store, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(store, chatSvc, signals)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Notes.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Post("/notes/import", h.ImportNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Patch("/notes/{id}", h.PatchNote)
	r.Delete("/notes/{id}", h.DeleteNote)

	// Organization.
	r.Put("/notes/{id}/pin", h.PinNote)
	r.Delete("/notes/{id}/pin", h.UnpinNote)
	r.Put("/notes/{id}/color", h.SetColor)
	r.Post("/notes/{id}/tags", h.AddTag)
	r.Delete("/notes/{id}/tags/{tag}", h.RemoveTag)
	r.Get("/tags", h.ListTags)

	// Active-note pointer.
	r.Get("/active", h.GetActive)
	r.Put("/active", h.SetActive)

	// Assistant transcript.
	r.Get("/notes/{id}/chat", h.ChatHistory)
	r.Post("/notes/{id}/chat", h.SendChat)

	// View preferences.
	r.Get("/prefs", h.GetPrefs)
	r.Post("/prefs/theme/toggle", h.ToggleTheme)
	r.Put("/prefs/theme", h.SetTheme)
	r.Post("/prefs/view/toggle", h.ToggleViewMode)
	r.Put("/prefs/view", h.SetViewMode)
	r.Post("/prefs/sidebar/toggle", h.ToggleSidebar)
	r.Post("/prefs/chat/toggle", h.ToggleChat)
	r.Put("/prefs/chat", h.SetChatOpen)
	r.Put("/prefs/search", h.SetSearchQuery)
	r.Post("/prefs/tags/toggle", h.ToggleTagFilter)
	r.Delete("/prefs/tags", h.ClearTagFilters)

	// Transient notifications.
	r.Get("/toasts", h.ListToasts)
	r.Delete("/toasts/{id}", h.DismissToast)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
