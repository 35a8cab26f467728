package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message types.
const (
	TypeText  = "text"
	TypeVoice = "voice"
)

// Conversation is an ordered thread of messages between a user and a persona.
type Conversation struct {
	ID        surrealmodels.RecordID `json:"id"`
	UserID    *string                `json:"user_id,omitempty"`
	Persona   surrealmodels.RecordID `json:"persona"`
	Title     *string                `json:"title,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Message is a single chat turn within a conversation. Append-only,
// ordered by creation time.
type Message struct {
	ID            surrealmodels.RecordID `json:"id"`
	Conversation  surrealmodels.RecordID `json:"conversation"`
	Role          string                 `json:"role"`
	Content       string                 `json:"content"`
	MessageType   string                 `json:"message_type"`
	AudioURL      *string                `json:"audio_url,omitempty"`
	AudioDuration *float64               `json:"audio_duration,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// Turn is the transport shape of a prior message handed to the LLM:
// role plus content, nothing else.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationSummary is the list-endpoint shape: conversation metadata
// joined with its persona and last message.
type ConversationSummary struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Persona      PersonaSummary `json:"philosopher"`
	LastMessage  *string        `json:"lastMessage"`
	MessageCount int            `json:"messageCount"`
}

// ValidRole reports whether role is a known message role.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}

// ValidMessageType reports whether t is a known message type.
func ValidMessageType(t string) bool {
	return t == TypeText || t == TypeVoice
}
