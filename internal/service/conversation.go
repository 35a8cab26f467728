package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/devyanip/sarathi/internal/models"
	"github.com/devyanip/sarathi/internal/persona"
)

// ConversationService manages conversation lifecycle with the degraded-mode
// policy: creates always succeed (with a local fallback id if needed), read
// failures come back empty, message-append failures are dropped.
type ConversationService struct {
	store  Store // nil when no store is configured
	logger *slog.Logger
}

// NewConversationService creates a conversation service. store may be nil.
func NewConversationService(store Store, logger *slog.Logger) *ConversationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationService{store: store, logger: logger}
}

// StartResult is the outcome of starting a conversation. The id is always
// usable; Degraded reports whether it is a local, never-persisted one.
type StartResult struct {
	ConversationID string
	Persona        models.PersonaSummary
	Degraded       bool
}

// Start creates a conversation for the persona slug (empty means the
// built-in persona) and optional user. It never fails: on any store
// failure it synthesizes a local conversation id and reports the built-in
// persona summary.
func (s *ConversationService) Start(ctx context.Context, slug string, userID *string) StartResult {
	if slug == "" {
		slug = persona.FallbackSlug
	}

	p, id, err := s.tryStart(ctx, slug, userID)
	if err != nil {
		s.logger.Warn("conversation create failed, using local id", "slug", slug, "error", err)
		return StartResult{
			ConversationID: NewFallbackConversationID(),
			Persona:        persona.FallbackSummary(),
			Degraded:       true,
		}
	}

	return StartResult{ConversationID: id, Persona: p.Summary()}
}

// tryStart attempts the store-backed create.
func (s *ConversationService) tryStart(ctx context.Context, slug string, userID *string) (*models.Persona, string, error) {
	if s.store == nil {
		return nil, "", ErrStoreUnavailable
	}

	p, err := s.store.GetPersonaBySlug(ctx, slug)
	if err != nil {
		return nil, "", fmt.Errorf("get persona: %w", err)
	}
	if p == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrPersonaNotFound, slug)
	}

	personaID, err := models.RecordIDString(p.ID)
	if err != nil {
		return nil, "", fmt.Errorf("persona id: %w", err)
	}

	id, err := s.store.CreateConversation(ctx, personaID, userID)
	if err != nil {
		return nil, "", fmt.Errorf("create conversation: %w", err)
	}
	return p, id, nil
}

// List returns conversation summaries for a user (nil means anonymous
// conversations). Store failures come back as an empty list; hasMore is
// true when a full page was returned.
func (s *ConversationService) List(ctx context.Context, userID *string, limit, offset int) ([]models.ConversationSummary, bool) {
	if s.store == nil {
		return []models.ConversationSummary{}, false
	}

	summaries, err := s.store.ListConversations(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Warn("conversation list failed, returning empty", "error", err)
		return []models.ConversationSummary{}, false
	}
	return summaries, len(summaries) == limit
}

// History returns the prior turns of a conversation in order. Store
// failures are treated as empty history.
func (s *ConversationService) History(ctx context.Context, conversationID string) []models.Turn {
	if s.store == nil {
		return nil
	}

	messages, err := s.store.ListMessages(ctx, conversationID)
	if err != nil {
		s.logger.Warn("history fetch failed, treating as empty", "conversation", conversationID, "error", err)
		return nil
	}

	turns := make([]models.Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, models.Turn{Role: msg.Role, Content: msg.Content})
	}
	return turns
}

// AppendMessage appends a turn to a conversation. Failures are logged and
// dropped; the in-memory state of the caller remains the only record.
func (s *ConversationService) AppendMessage(ctx context.Context, conversationID string, turn models.Turn, messageType string) {
	if s.store == nil || IsFallbackConversationID(conversationID) {
		return
	}

	if err := s.store.AppendMessage(ctx, conversationID, turn, messageType, nil, nil); err != nil {
		s.logger.Warn("message append failed, dropping", "conversation", conversationID, "role", turn.Role, "error", err)
	}
}

// SaveInsight stores a user-saved excerpt. This is a write with no
// meaningful fallback, so failures propagate.
func (s *ConversationService) SaveInsight(ctx context.Context, conversationID, content string, tags []string, userID *string) error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	if IsFallbackConversationID(conversationID) {
		return fmt.Errorf("%w: conversation is not persisted", ErrStoreUnavailable)
	}
	return s.store.CreateInsight(ctx, conversationID, content, tags, userID)
}
