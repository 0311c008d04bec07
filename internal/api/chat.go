package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/ansuz/internal/apperr"
)

// ChatHistory handles GET /api/notes/{id}/chat.
//
//	@Summary		Get a note's chat transcript in arrival order
//	@Tags			chat
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	ChatHistoryResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/chat [get]
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	if _, ok := h.store.Get(id); !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, ChatHistoryResponse{Messages: h.chat.History(id)})
}

// SendChat handles POST /api/notes/{id}/chat.
//
// The user turn is committed before the responder runs, so it survives a
// responder failure; that case returns 502 with the user turn attached.
//
//	@Summary		Submit a chat message and await the assistant reply
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Note id"
//	@Param			body	body		ChatSendRequest	true	"Message text"
//	@Success		200		{object}	ChatSendResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		502		{object}	ChatSendResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/chat [post]
func (h *Handler) SendChat(w http.ResponseWriter, r *http.Request) {
	var req ChatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}

	exchange, err := h.chat.Send(r.Context(), noteID(r), req.Text)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("chat send failed", slog.String("note_id", noteID(r)), slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, ChatSendResponse{User: exchange.User})
		return
	}
	writeJSON(w, http.StatusOK, ChatSendResponse{User: exchange.User, Assistant: &exchange.Assistant})
}
