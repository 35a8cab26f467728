// Package service implements the chat flows over the store and the hosted
// endpoints, including the degraded-mode policy that keeps the service
// usable when no store is reachable.
package service

import (
	"context"
	"errors"

	"github.com/devyanip/sarathi/internal/models"
)

// ErrStoreUnavailable indicates no store is configured or reachable.
// Read paths mask it; strict paths surface it.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrPersonaNotFound indicates a reachable store has no active persona
// with the requested slug.
var ErrPersonaNotFound = errors.New("persona not found")

// Store is the persistence surface the services depend on.
// *db.Client satisfies it; tests substitute fakes.
type Store interface {
	GetPersonaBySlug(ctx context.Context, slug string) (*models.Persona, error)
	CreateConversation(ctx context.Context, personaID string, userID *string) (string, error)
	AppendMessage(ctx context.Context, conversationID string, msg models.Turn, messageType string, audioURL *string, audioDuration *float64) error
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	ListConversations(ctx context.Context, userID *string, limit, offset int) ([]models.ConversationSummary, error)
	CreateInsight(ctx context.Context, conversationID, content string, tags []string, userID *string) error
}
