package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/service"
)

type MessageHandler struct {
	messagingSvc service.MessagingService
}

func NewMessageHandler(messagingSvc service.MessagingService) *MessageHandler {
	return &MessageHandler{messagingSvc: messagingSvc}
}

// ListConversations handles GET /messages/conversations.
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	conversations, err := h.messagingSvc.ListConversations(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"conversations": conversations})
}

type findOrCreateRequest struct {
	UserID    int32  `json:"userId"`
	BookingID *int32 `json:"bookingId,omitempty"`
}

// FindOrCreateConversation handles POST /messages/conversations. It returns
// the existing thread between the two users when one exists, otherwise it
// creates one.
func (h *MessageHandler) FindOrCreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req findOrCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validationf("invalid request body"))
		return
	}

	conversation, err := h.messagingSvc.FindOrCreateConversation(r.Context(), userID, req.UserID, req.BookingID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, conversation)
}

// ListMessages handles GET /messages/{conversationId}.
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	conversationID := mux.Vars(r)["conversationId"]
	page, pageSize := pagination(r)

	messages, err := h.messagingSvc.ListMessages(r.Context(), conversationID, userID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

type postMessageRequest struct {
	Text string `json:"text"`
}

// PostMessage handles POST /messages/{conversationId}.
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	conversationID := mux.Vars(r)["conversationId"]

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validationf("invalid request body"))
		return
	}

	message, err := h.messagingSvc.PostMessage(r.Context(), conversationID, userID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, message)
}

// MarkRead handles POST /messages/{conversationId}/read.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	conversationID := mux.Vars(r)["conversationId"]
	if err := h.messagingSvc.MarkRead(r.Context(), conversationID, userID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
