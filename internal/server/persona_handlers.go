package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devyanip/sarathi/internal/models"
	"github.com/devyanip/sarathi/internal/persona"
	"github.com/devyanip/sarathi/internal/service"
)

// personaResponse is the GET /api/krishna payload: the full persona record
// plus a pre-picked random starter so clients need no client-side logic.
type personaResponse struct {
	Persona       models.Persona      `json:"philosopher"`
	Starters      []string            `json:"conversationStarters"`
	RandomStarter string              `json:"randomStarter"`
	VoiceConfig   *models.VoiceConfig `json:"voiceConfig,omitempty"`
}

func (s *Server) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	p := s.personas.GetPersona(r.Context(), persona.FallbackSlug)

	writeJSON(w, http.StatusOK, personaResponse{
		Persona:       p,
		Starters:      p.ConversationStarters,
		RandomStarter: persona.RandomStarter(p.ConversationStarters),
		VoiceConfig:   p.VoiceConfig,
	})
}

type startersRequest struct {
	Category string `json:"category"`
}

type startersResponse struct {
	Starters []string `json:"starters"`
	Category string   `json:"category"`
}

// handleStarters returns conversation starters filtered by category. Unlike
// the persona read this is strict: a missing record or unreachable store is
// reported rather than masked.
func (s *Server) handleStarters(w http.ResponseWriter, r *http.Request) {
	var req startersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := s.personas.Lookup(r.Context(), persona.FallbackSlug)
	if err != nil {
		if errors.Is(err, service.ErrPersonaNotFound) {
			writeError(w, http.StatusNotFound, "Krishna data not found")
			return
		}
		s.logger.Error("starters lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch conversation starters")
		return
	}

	category := req.Category
	if category == "" {
		category = "all"
	}

	writeJSON(w, http.StatusOK, startersResponse{
		Starters: persona.FilterStarters(p.ConversationStarters, req.Category),
		Category: category,
	})
}
