package db

import (
	"context"
	"fmt"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/devyanip/sarathi/internal/models"
)

// GetPersonaBySlug retrieves an active persona by its slug.
// Returns nil if no active persona with that slug exists.
func (c *Client) GetPersonaBySlug(ctx context.Context, slug string) (*models.Persona, error) {
	results, err := query[[]models.Persona](ctx, c, `
		SELECT * FROM persona WHERE slug = $slug AND is_active = true LIMIT 1
	`, map[string]any{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("get persona: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// ListPersonas returns all active personas ordered by sort_order.
func (c *Client) ListPersonas(ctx context.Context) ([]models.Persona, error) {
	results, err := query[[]models.Persona](ctx, c, `
		SELECT * FROM persona WHERE is_active = true ORDER BY sort_order ASC
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.Persona{}, nil
	}
	return (*results)[0].Result, nil
}

// UpsertPersona creates or updates a persona record keyed by slug.
// Used to seed the built-in persona into a freshly configured store.
func (c *Client) UpsertPersona(ctx context.Context, p models.Persona) error {
	_, err := query[any](ctx, c, `
		UPSERT type::thing("persona", $slug) SET
			name = $name,
			slug = $slug,
			title = $title,
			tradition = $tradition,
			description = $description,
			specialties = $specialties,
			avatar_url = $avatar_url,
			background_prompt = $background_prompt,
			conversation_starters = $starters,
			is_active = $is_active,
			sort_order = $sort_order
	`, map[string]any{
		"slug":              p.Slug,
		"name":              p.Name,
		"title":             p.Title,
		"tradition":         p.Tradition,
		"description":       p.Description,
		"specialties":       p.Specialties,
		"avatar_url":        p.AvatarURL,
		"background_prompt": p.BackgroundPrompt,
		"starters":          p.ConversationStarters,
		"is_active":         p.IsActive,
		"sort_order":        p.SortOrder,
	})
	if err != nil {
		return fmt.Errorf("upsert persona: %w", wrapQueryError(err))
	}
	return nil
}

// CreateConversation creates a conversation for the given persona record id
// and optional user, returning the store-issued conversation id.
func (c *Client) CreateConversation(ctx context.Context, personaID string, userID *string) (string, error) {
	results, err := query[[]models.Conversation](ctx, c, `
		CREATE conversation SET
			persona = type::record("persona", $persona),
			user_id = $user_id
	`, map[string]any{
		"persona": personaID,
		"user_id": userID,
	})
	if err != nil {
		return "", fmt.Errorf("create conversation: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return "", fmt.Errorf("create conversation: empty result")
	}

	id, err := models.RecordIDString((*results)[0].Result[0].ID)
	if err != nil {
		return "", fmt.Errorf("create conversation: %w", err)
	}
	return id, nil
}

// GetConversation retrieves a conversation by id.
// Returns ErrNotFound if it does not exist.
func (c *Client) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	results, err := query[[]models.Conversation](ctx, c, `
		SELECT * FROM type::record("conversation", $id)
	`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

// AppendMessage appends a message to a conversation and bumps the
// conversation's updated_at timestamp.
func (c *Client) AppendMessage(ctx context.Context, conversationID string, msg models.Turn, messageType string, audioURL *string, audioDuration *float64) error {
	_, err := query[any](ctx, c, `
		CREATE message SET
			conversation = type::record("conversation", $conv),
			role = $role,
			content = $content,
			message_type = $message_type,
			audio_url = $audio_url,
			audio_duration = $audio_duration;
		UPDATE type::record("conversation", $conv) SET updated_at = time::now();
	`, map[string]any{
		"conv":           conversationID,
		"role":           msg.Role,
		"content":        msg.Content,
		"message_type":   messageType,
		"audio_url":      audioURL,
		"audio_duration": audioDuration,
	})
	if err != nil {
		return fmt.Errorf("append message: %w", wrapQueryError(err))
	}
	return nil
}

// ListMessages returns all messages of a conversation ordered by creation time.
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	results, err := query[[]models.Message](ctx, c, `
		SELECT * FROM message
		WHERE conversation = type::record("conversation", $conv)
		ORDER BY created_at ASC
	`, map[string]any{"conv": conversationID})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.Message{}, nil
	}
	return (*results)[0].Result, nil
}

// conversationRow is the decode target for ListConversations.
type conversationRow struct {
	ID           surrealmodels.RecordID `json:"id"`
	Title        *string                `json:"title"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	Persona      models.Persona         `json:"persona"`
	LastMessage  *string                `json:"last_message"`
	MessageCount int                    `json:"message_count"`
}

// ListConversations returns conversation summaries for a user (or anonymous
// conversations when userID is nil), newest-updated first.
func (c *Client) ListConversations(ctx context.Context, userID *string, limit, offset int) ([]models.ConversationSummary, error) {
	userClause := "user_id IS NONE"
	vars := map[string]any{
		"limit":  limit,
		"offset": offset,
	}
	if userID != nil {
		userClause = "user_id = $user_id"
		vars["user_id"] = *userID
	}

	sql := fmt.Sprintf(`
		SELECT
			id,
			title,
			created_at,
			updated_at,
			persona.* AS persona,
			(SELECT VALUE content FROM message WHERE conversation = $parent.id ORDER BY created_at DESC LIMIT 1)[0] AS last_message,
			count(SELECT VALUE id FROM message WHERE conversation = $parent.id) AS message_count
		FROM conversation
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT $limit START $offset
	`, userClause)

	results, err := query[[]conversationRow](ctx, c, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.ConversationSummary{}, nil
	}

	rows := (*results)[0].Result
	summaries := make([]models.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		title := "New Conversation"
		if row.Title != nil && *row.Title != "" {
			title = *row.Title
		}
		summaries = append(summaries, models.ConversationSummary{
			ID:           models.RecordIDStringOr(row.ID, ""),
			Title:        title,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
			Persona:      row.Persona.Summary(),
			LastMessage:  row.LastMessage,
			MessageCount: row.MessageCount,
		})
	}
	return summaries, nil
}

// CreateInsight stores a user-saved excerpt with free-form tags.
func (c *Client) CreateInsight(ctx context.Context, conversationID, content string, tags []string, userID *string) error {
	if tags == nil {
		tags = []string{}
	}

	_, err := query[any](ctx, c, `
		CREATE insight SET
			conversation = type::record("conversation", $conv),
			content = $content,
			tags = $tags,
			user_id = $user_id
	`, map[string]any{
		"conv":    conversationID,
		"content": content,
		"tags":    tags,
		"user_id": userID,
	})
	if err != nil {
		return fmt.Errorf("create insight: %w", wrapQueryError(err))
	}
	return nil
}
