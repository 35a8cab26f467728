package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/devyanip/sarathi/internal/models"
)

type startConversationRequest struct {
	PersonaSlug string  `json:"philosopherSlug"`
	UserID      *string `json:"userId"`
}

type startConversationResponse struct {
	ConversationID string                `json:"conversationId"`
	Persona        models.PersonaSummary `json:"philosopher"`
}

// handleStartConversation always answers 200: when the store is down the
// service hands back a local fallback id and the built-in persona.
func (s *Server) handleStartConversation(w http.ResponseWriter, r *http.Request) {
	var req startConversationRequest
	if r.Body != nil {
		// Body is optional; decode errors fall through to defaults.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result := s.conversations.Start(r.Context(), req.PersonaSlug, req.UserID)

	writeJSON(w, http.StatusOK, startConversationResponse{
		ConversationID: result.ConversationID,
		Persona:        result.Persona,
	})
}

type listConversationsResponse struct {
	Conversations []models.ConversationSummary `json:"conversations"`
	HasMore       bool                         `json:"hasMore"`
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var userID *string
	if v := q.Get("userId"); v != "" {
		userID = &v
	}
	limit := parsePositiveInt(q.Get("limit"), 20)
	offset := parsePositiveInt(q.Get("offset"), 0)

	conversations, hasMore := s.conversations.List(r.Context(), userID, limit, offset)
	if conversations == nil {
		conversations = []models.ConversationSummary{}
	}

	writeJSON(w, http.StatusOK, listConversationsResponse{
		Conversations: conversations,
		HasMore:       hasMore,
	})
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
