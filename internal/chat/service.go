// Package chat mediates the assistant round trip for a note's transcript.
package chat

import (
	"context"
	"log/slog"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/assistant"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notestore"
	"github.com/starford/ansuz/internal/uistate"
)

// Service ties the note store, the responder, and the UI signal store
// together for the submit-and-await path.
type Service struct {
	store     *notestore.Store
	responder assistant.Responder
	signals   *uistate.Store
	logger    *slog.Logger
}

// NewService creates a chat service.
func NewService(store *notestore.Store, responder assistant.Responder, signals *uistate.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, responder: responder, signals: signals, logger: logger}
}

// Exchange is the outcome of one submission. User is always populated
// once the submission was accepted; Assistant is zero when the responder
// failed.
type Exchange struct {
	User      models.ChatMessage
	Assistant models.ChatMessage
}

// Send appends the user's message to the note's transcript, awaits the
// responder, and appends the assistant reply. On responder failure the
// user message stays in the transcript (no rollback), the failure is
// logged and surfaced as an error toast, and the error is returned.
func (s *Service) Send(ctx context.Context, noteID, text string) (Exchange, error) {
	userMsg, ok := s.store.AppendChat(noteID, models.ChatMessage{
		Role:    models.RoleUser,
		Content: text,
	})
	if !ok {
		return Exchange{}, apperr.ErrNotFound
	}

	reply, err := s.responder.Respond(ctx, text)
	if err != nil {
		s.logger.Error("assistant response failed",
			slog.String("note_id", noteID),
			slog.String("error", err.Error()))
		if s.signals != nil {
			s.signals.ShowToast("Assistant is unavailable right now. Please try again.", models.ToastError)
		}
		return Exchange{User: userMsg}, err
	}

	assistantMsg, _ := s.store.AppendChat(noteID, models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: reply,
	})
	return Exchange{User: userMsg, Assistant: assistantMsg}, nil
}

// History returns the note's transcript in arrival order.
func (s *Service) History(noteID string) []models.ChatMessage {
	return s.store.History(noteID)
}
