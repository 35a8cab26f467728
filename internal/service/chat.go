package service

import (
	"context"
	"log/slog"

	"github.com/devyanip/sarathi/internal/models"
	"github.com/devyanip/sarathi/internal/persona"
)

// ReplyModel generates a persona reply from a system prompt, prior turns,
// and the new user message. *llm.Model satisfies it.
type ReplyModel interface {
	Reply(ctx context.Context, systemPrompt string, history []models.Turn, userMessage string) (string, error)
}

// ChatService orchestrates a chat turn: persona resolution and persistence
// are masked by the degraded-mode policy, reply generation is not.
type ChatService struct {
	personas        *PersonaService
	conversations   *ConversationService
	model           ReplyModel
	guidanceContext string
	logger          *slog.Logger
}

// NewChatService creates a chat service.
func NewChatService(personas *PersonaService, conversations *ConversationService, model ReplyModel, guidanceContext string, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		personas:        personas,
		conversations:   conversations,
		model:           model,
		guidanceContext: guidanceContext,
		logger:          logger,
	}
}

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Reply         string
	PersonaName   string
	HasDisclaimer bool
}

// Respond handles one chat turn for the conversation. Store interactions
// (persona fetch, history fetch, both message appends) are masked per the
// degraded-mode policy; a generation failure is propagated because there is
// no meaningful fallback text to substitute. When the user's message
// contains crisis language, the fixed safety disclaimer is appended to the
// reply after two newlines.
func (s *ChatService) Respond(ctx context.Context, conversationID, message, slug string) (ChatResult, error) {
	p := s.personas.GetPersona(ctx, slug)

	// History is read before the new message is appended so the prompt
	// carries only prior turns.
	history := s.conversations.History(ctx, conversationID)

	s.conversations.AppendMessage(ctx, conversationID,
		models.Turn{Role: models.RoleUser, Content: message}, models.TypeText)

	systemPrompt := persona.SystemPrompt(s.guidanceContext)
	if p.BackgroundPrompt != "" {
		systemPrompt = p.BackgroundPrompt
	}

	reply, err := s.model.Reply(ctx, systemPrompt, history, message)
	if err != nil {
		return ChatResult{}, err
	}

	hasDisclaimer := persona.ContainsCrisisLanguage(message)
	if hasDisclaimer {
		reply += "\n\n" + persona.CrisisDisclaimer()
	}

	s.conversations.AppendMessage(ctx, conversationID,
		models.Turn{Role: models.RoleAssistant, Content: reply}, models.TypeText)

	return ChatResult{
		Reply:         reply,
		PersonaName:   p.Name,
		HasDisclaimer: hasDisclaimer,
	}, nil
}
