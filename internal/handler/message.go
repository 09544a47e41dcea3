package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/tripshare/tripshare/backend/internal/middleware"
	"github.com/tripshare/tripshare/backend/internal/validate"
)

// sendMessage handles POST /api/messages.
func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) error {
	var in validate.MessageInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	recipientID, err := uuid.Parse(in.RecipientID)
	if err != nil {
		return validate.Fail("recipientId", "must be a valid UUID")
	}

	msg, err := s.messages.Send(r.Context(), middleware.UserID(r.Context()), recipientID, in.Content)
	if err != nil {
		return notFound(err, "Recipient not found")
	}
	writeJSON(w, http.StatusCreated, map[string]messageResponse{"message": messageToResponse(msg)})
	return nil
}

// getConversation handles GET /api/messages/{userId}. Fetching the
// conversation marks the other user's messages to the caller as read.
func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) error {
	var otherID uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "userId", chi.URLParam(r, "userId"), &otherID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return &apiError{status: http.StatusBadRequest, msg: "Invalid user id", err: err}
	}

	msgs, err := s.messages.Conversation(r.Context(), middleware.UserID(r.Context()), otherID)
	if err != nil {
		return err
	}
	out := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = messageToResponse(m)
	}
	writeJSON(w, http.StatusOK, map[string][]messageResponse{"messages": out})
	return nil
}
