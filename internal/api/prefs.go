package api

import (
	"encoding/json"
	"net/http"

	"github.com/starford/ansuz/internal/models"
)

// GetPrefs handles GET /api/prefs.
//
//	@Summary		Get the process-wide view preferences
//	@Tags			prefs
//	@Produce		json
//	@Success		200	{object}	models.Preferences
//	@Security		BearerAuth
//	@Router			/prefs [get]
func (h *Handler) GetPrefs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// ToggleTheme handles POST /api/prefs/theme/toggle.
func (h *Handler) ToggleTheme(w http.ResponseWriter, _ *http.Request) {
	h.store.ToggleTheme()
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// SetTheme handles PUT /api/prefs/theme.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Theme != models.ThemeLight && req.Theme != models.ThemeDark {
		writeJSON(w, http.StatusBadRequest, errorBody("theme must be light or dark"))
		return
	}
	h.store.SetTheme(req.Theme)
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// ToggleViewMode handles POST /api/prefs/view/toggle.
func (h *Handler) ToggleViewMode(w http.ResponseWriter, _ *http.Request) {
	h.store.ToggleViewMode()
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// SetViewMode handles PUT /api/prefs/view.
func (h *Handler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Mode != models.ViewList && req.Mode != models.ViewGrid {
		writeJSON(w, http.StatusBadRequest, errorBody("mode must be list or grid"))
		return
	}
	h.store.SetViewMode(req.Mode)
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// ToggleSidebar handles POST /api/prefs/sidebar/toggle.
func (h *Handler) ToggleSidebar(w http.ResponseWriter, _ *http.Request) {
	h.store.ToggleSidebar()
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// ToggleChat handles POST /api/prefs/chat/toggle.
func (h *Handler) ToggleChat(w http.ResponseWriter, _ *http.Request) {
	h.store.ToggleChat()
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// SetChatOpen handles PUT /api/prefs/chat.
func (h *Handler) SetChatOpen(w http.ResponseWriter, r *http.Request) {
	var req ChatOpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.store.SetChatOpen(req.Open)
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// SetSearchQuery handles PUT /api/prefs/search.
func (h *Handler) SetSearchQuery(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.store.SetSearchQuery(req.Query)
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// ToggleTagFilter handles POST /api/prefs/tags/toggle: adds the tag to
// the selected filter set if absent, removes it if present.
func (h *Handler) ToggleTagFilter(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Tag == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("tag is required"))
		return
	}
	h.store.ToggleTag(req.Tag)
	writeJSON(w, http.StatusOK, h.store.Prefs())
}

// ClearTagFilters handles DELETE /api/prefs/tags.
func (h *Handler) ClearTagFilters(w http.ResponseWriter, _ *http.Request) {
	h.store.ClearTags()
	writeJSON(w, http.StatusOK, h.store.Prefs())
}
