package server

import (
	"encoding/json"
	"net/http"
)

type chatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
	PersonaSlug    string `json:"philosopherSlug"`
}

type chatResponse struct {
	Response      string `json:"response"`
	PersonaName   string `json:"philosopher"`
	HasDisclaimer bool   `json:"hasDisclaimer"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.ConversationID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := s.chat.Respond(r.Context(), req.ConversationID, req.Message, req.PersonaSlug)
	if err != nil {
		s.logger.Error("chat turn failed", "conversation_id", req.ConversationID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:      result.Reply,
		PersonaName:   result.PersonaName,
		HasDisclaimer: result.HasDisclaimer,
	})
}
