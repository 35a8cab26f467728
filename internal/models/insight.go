package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Insight is a user-saved excerpt of an assistant message with free-form
// tags. Write-only from the chat flow's perspective.
type Insight struct {
	ID           surrealmodels.RecordID `json:"id"`
	UserID       *string                `json:"user_id,omitempty"`
	Conversation surrealmodels.RecordID `json:"conversation"`
	Content      string                 `json:"content"`
	Tags         []string               `json:"tags"`
	CreatedAt    time.Time              `json:"created_at"`
}
