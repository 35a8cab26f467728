package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devyanip/sarathi/internal/service"
)

type createInsightRequest struct {
	ConversationID string   `json:"conversationId"`
	Content        string   `json:"content"`
	Tags           []string `json:"tags"`
	UserID         *string  `json:"userId"`
}

type createInsightResponse struct {
	Success bool `json:"success"`
}

// handleCreateInsight saves a highlighted piece of guidance. Insights are
// the one write that is not masked: losing one silently defeats its point.
func (s *Server) handleCreateInsight(w http.ResponseWriter, r *http.Request) {
	var req createInsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.ConversationID == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := s.conversations.SaveInsight(r.Context(), req.ConversationID, req.Content, req.Tags, req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "Insights are unavailable right now")
			return
		}
		s.logger.Error("insight save failed", "conversation_id", req.ConversationID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save insight")
		return
	}

	writeJSON(w, http.StatusOK, createInsightResponse{Success: true})
}
