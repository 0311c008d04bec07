package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/chat"
	"github.com/starford/ansuz/internal/notestore"
	"github.com/starford/ansuz/internal/uistate"
)

// Handler holds API route handlers.
type Handler struct {
	store   *notestore.Store
	chat    *chat.Service
	signals *uistate.Store
}

// NewHandler creates a new Handler.
func NewHandler(store *notestore.Store, chatSvc *chat.Service, signals *uistate.Store) *Handler {
	return &Handler{store: store, chat: chatSvc, signals: signals}
}

func noteID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List notes projected through the current search query and tag filter
//	@Tags			notes
//	@Produce		json
//	@Success		200	{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, _ *http.Request) {
	notes := h.store.Visible()
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: notes, Total: len(notes)})
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a new note with defaults and make it active
//	@Tags			notes
//	@Produce		json
//	@Success		201	{object}	models.Note
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, _ *http.Request) {
	note := h.store.Create()
	writeJSON(w, http.StatusCreated, note)
}

// ImportNote handles POST /api/notes/import.
//
//	@Summary		Import a fully-formed note without touching the active pointer
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	models.Note
//	@Failure		400	{object}	errResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/import [post]
func (h *Handler) ImportNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req ImportNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Note.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("note id is required"))
		return
	}
	if !h.store.Add(req.Note) {
		writeJSON(w, http.StatusConflict, errorBody(apperr.ErrAlreadyExists.Error()))
		return
	}
	note, _ := h.store.Get(req.Note.ID)
	writeJSON(w, http.StatusCreated, note)
}

// GetNote handles GET /api/notes/{id}.
//
//	@Summary		Get a single note by id
//	@Tags			notes
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	models.Note
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, ok := h.store.Get(noteID(r))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// PatchNote handles PATCH /api/notes/{id}.
//
//	@Summary		Merge a partial update into a note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Note id"
//	@Param			body	body		PatchNoteRequest	true	"Fields to overwrite"
//	@Success		200		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [patch]
func (h *Handler) PatchNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	id := noteID(r)
	var patch PatchNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if !h.store.Update(id, patch) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	note, _ := h.store.Get(id)
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary		Delete a note and its chat transcript
//	@Tags			notes
//	@Param			id	path	string	true	"Note id"
//	@Success		204	"Note deleted"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(noteID(r)) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PinNote handles PUT /api/notes/{id}/pin.
func (h *Handler) PinNote(w http.ResponseWriter, r *http.Request) {
	h.notePatchResult(w, r, h.store.Pin(noteID(r)))
}

// UnpinNote handles DELETE /api/notes/{id}/pin.
func (h *Handler) UnpinNote(w http.ResponseWriter, r *http.Request) {
	h.notePatchResult(w, r, h.store.Unpin(noteID(r)))
}

// SetColor handles PUT /api/notes/{id}/color.
func (h *Handler) SetColor(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.notePatchResult(w, r, h.store.SetColor(noteID(r), req.Color))
}

// AddTag handles POST /api/notes/{id}/tags. Adding a tag the note already
// carries succeeds without duplicating it.
func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Tag == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("tag is required"))
		return
	}
	h.notePatchResult(w, r, h.store.AddTag(noteID(r), req.Tag))
}

// RemoveTag handles DELETE /api/notes/{id}/tags/{tag}.
func (h *Handler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	h.notePatchResult(w, r, h.store.RemoveTag(noteID(r), chi.URLParam(r, "tag")))
}

// notePatchResult renders the post-mutation note, or 404 when the
// mutation targeted an unknown id.
func (h *Handler) notePatchResult(w http.ResponseWriter, r *http.Request, ok bool) {
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	note, _ := h.store.Get(noteID(r))
	writeJSON(w, http.StatusOK, note)
}

// ListTags handles GET /api/tags.
//
//	@Summary		List the distinct tags across all notes
//	@Tags			tags
//	@Produce		json
//	@Success		200	{object}	TagListResponse
//	@Security		BearerAuth
//	@Router			/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TagListResponse{Tags: h.store.AllTags()})
}

// GetActive handles GET /api/active.
func (h *Handler) GetActive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ActiveResponse{ID: h.store.ActiveNoteID()})
}

// SetActive handles PUT /api/active. An empty id clears the selection;
// selecting a note never touches its timestamps.
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req ActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if !h.store.SetActive(req.ID) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, ActiveResponse{ID: h.store.ActiveNoteID()})
}

// ListToasts handles GET /api/toasts.
func (h *Handler) ListToasts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ToastListResponse{Toasts: h.signals.Toasts()})
}

// DismissToast handles DELETE /api/toasts/{id}. Dismissing an expired or
// unknown toast is a no-op, not an error.
func (h *Handler) DismissToast(w http.ResponseWriter, r *http.Request) {
	h.signals.RemoveToast(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
