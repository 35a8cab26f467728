//go:build integration

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devyanip/sarathi/internal/models"
	"github.com/devyanip/sarathi/internal/persona"
)

// seedPersona wipes the store and seeds the built-in persona, returning
// its record id.
func seedPersona(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, testDB.WipeData(ctx))
	require.NoError(t, testDB.UpsertPersona(ctx, persona.Fallback()))

	p, err := testDB.GetPersonaBySlug(ctx, persona.FallbackSlug)
	require.NoError(t, err)
	require.NotNil(t, p)

	id, err := models.RecordIDString(p.ID)
	require.NoError(t, err)
	return id
}

func TestGetPersonaBySlug(t *testing.T) {
	seedPersona(t)
	ctx := context.Background()

	p, err := testDB.GetPersonaBySlug(ctx, "krishna")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "Krishna", p.Name)
	assert.Equal(t, "krishna", p.Slug)
	assert.True(t, p.IsActive)
	assert.NotEmpty(t, p.ConversationStarters)
}

func TestGetPersonaBySlugMissing(t *testing.T) {
	seedPersona(t)

	p, err := testDB.GetPersonaBySlug(context.Background(), "socrates")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetPersonaBySlugInactive(t *testing.T) {
	seedPersona(t)
	ctx := context.Background()

	inactive := persona.Fallback()
	inactive.Slug = "retired"
	inactive.IsActive = false
	require.NoError(t, testDB.UpsertPersona(ctx, inactive))

	p, err := testDB.GetPersonaBySlug(ctx, "retired")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestListPersonas(t *testing.T) {
	seedPersona(t)

	personas, err := testDB.ListPersonas(context.Background())
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, "krishna", personas[0].Slug)
}

func TestCreateConversationAndMessages(t *testing.T) {
	personaID := seedPersona(t)
	ctx := context.Background()

	convID, err := testDB.CreateConversation(ctx, personaID, nil)
	require.NoError(t, err)
	require.NotEmpty(t, convID)

	conv, err := testDB.GetConversation(ctx, convID)
	require.NoError(t, err)
	assert.Nil(t, conv.UserID)

	require.NoError(t, testDB.AppendMessage(ctx, convID,
		models.Turn{Role: models.RoleUser, Content: "What is dharma?"}, models.TypeText, nil, nil))
	require.NoError(t, testDB.AppendMessage(ctx, convID,
		models.Turn{Role: models.RoleAssistant, Content: "Dharma is righteous duty."}, models.TypeText, nil, nil))

	messages, err := testDB.ListMessages(ctx, convID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Ordered by creation time
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, "What is dharma?", messages[0].Content)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)

	// Append bumps the conversation timestamp
	updated, err := testDB.GetConversation(ctx, convID)
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(conv.UpdatedAt))
}

func TestGetConversationMissing(t *testing.T) {
	seedPersona(t)

	_, err := testDB.GetConversation(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListMessagesEmptyConversation(t *testing.T) {
	personaID := seedPersona(t)
	ctx := context.Background()

	convID, err := testDB.CreateConversation(ctx, personaID, nil)
	require.NoError(t, err)

	messages, err := testDB.ListMessages(ctx, convID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestListConversations(t *testing.T) {
	personaID := seedPersona(t)
	ctx := context.Background()

	userID := "user-1"
	first, err := testDB.CreateConversation(ctx, personaID, &userID)
	require.NoError(t, err)
	second, err := testDB.CreateConversation(ctx, personaID, &userID)
	require.NoError(t, err)

	// Anonymous conversation must not show up for user-1
	_, err = testDB.CreateConversation(ctx, personaID, nil)
	require.NoError(t, err)

	require.NoError(t, testDB.AppendMessage(ctx, first,
		models.Turn{Role: models.RoleUser, Content: "first question"}, models.TypeText, nil, nil))
	require.NoError(t, testDB.AppendMessage(ctx, first,
		models.Turn{Role: models.RoleAssistant, Content: "first answer"}, models.TypeText, nil, nil))

	summaries, err := testDB.ListConversations(ctx, &userID, 20, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Newest-updated first: the conversation with messages was touched last
	assert.Equal(t, first, summaries[0].ID)
	assert.Equal(t, 2, summaries[0].MessageCount)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "first answer", *summaries[0].LastMessage)
	assert.Equal(t, "krishna", summaries[0].Persona.Slug)

	assert.Equal(t, second, summaries[1].ID)
	assert.Equal(t, 0, summaries[1].MessageCount)
	assert.Nil(t, summaries[1].LastMessage)
	assert.Equal(t, "New Conversation", summaries[1].Title)
}

func TestListConversationsAnonymous(t *testing.T) {
	personaID := seedPersona(t)
	ctx := context.Background()

	userID := "user-1"
	_, err := testDB.CreateConversation(ctx, personaID, &userID)
	require.NoError(t, err)
	anon, err := testDB.CreateConversation(ctx, personaID, nil)
	require.NoError(t, err)

	summaries, err := testDB.ListConversations(ctx, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, anon, summaries[0].ID)
}

func TestListConversationsPagination(t *testing.T) {
	personaID := seedPersona(t)
	ctx := context.Background()

	for range 5 {
		_, err := testDB.CreateConversation(ctx, personaID, nil)
		require.NoError(t, err)
	}

	page, err := testDB.ListConversations(ctx, nil, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := testDB.ListConversations(ctx, nil, 10, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestCreateInsight(t *testing.T) {
	personaID := seedPersona(t)
	ctx := context.Background()

	convID, err := testDB.CreateConversation(ctx, personaID, nil)
	require.NoError(t, err)

	err = testDB.CreateInsight(ctx, convID, "Act without attachment to results.", []string{"karma", "detachment"}, nil)
	require.NoError(t, err)

	// nil tags default to an empty array
	err = testDB.CreateInsight(ctx, convID, "See the sacred in all beings.", nil, nil)
	require.NoError(t, err)
}
