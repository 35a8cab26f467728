package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devyanip/sarathi/internal/models"
	"github.com/devyanip/sarathi/internal/persona"
)

// fakeModel records the last Reply call.
type fakeModel struct {
	lastSystem  string
	lastHistory []models.Turn
	lastMessage string
	reply       string
	err         error
}

func (f *fakeModel) Reply(ctx context.Context, systemPrompt string, history []models.Turn, userMessage string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastHistory = history
	f.lastMessage = userMessage
	return f.reply, f.err
}

func newChatService(store Store, model ReplyModel) *ChatService {
	return NewChatService(
		NewPersonaService(store, nil),
		NewConversationService(store, nil),
		model,
		"spiritual guidance and life wisdom",
		nil,
	)
}

func TestRespond(t *testing.T) {
	store := newFakeStore()
	model := &fakeModel{reply: "Act without attachment, dear one."}
	s := newChatService(store, model)

	res, err := s.Respond(context.Background(), "conv-1", "What is karma yoga?", "")
	require.NoError(t, err)

	assert.Equal(t, "Act without attachment, dear one.", res.Reply)
	assert.Equal(t, "Krishna", res.PersonaName)
	assert.False(t, res.HasDisclaimer)

	// System prompt carries the guidance context
	assert.Contains(t, model.lastSystem, "spiritual guidance and life wisdom")
	assert.Equal(t, "What is karma yoga?", model.lastMessage)

	// Both turns were persisted, user first
	require.Len(t, store.appended, 2)
	assert.Equal(t, models.RoleUser, store.appended[0].Role)
	assert.Equal(t, models.RoleAssistant, store.appended[1].Role)
	assert.Equal(t, res.Reply, store.appended[1].Content)
}

func TestRespondHistoryExcludesNewMessage(t *testing.T) {
	store := newFakeStore()
	model := &fakeModel{reply: "reply"}
	s := newChatService(store, model)

	_, err := s.Respond(context.Background(), "conv-1", "first", "")
	require.NoError(t, err)
	assert.Empty(t, model.lastHistory)

	_, err = s.Respond(context.Background(), "conv-1", "second", "")
	require.NoError(t, err)

	// Second turn sees only the first exchange, not its own message
	require.Len(t, model.lastHistory, 2)
	assert.Equal(t, "first", model.lastHistory[0].Content)
	assert.Equal(t, "second", model.lastMessage)
}

func TestRespondAppendsDisclaimer(t *testing.T) {
	store := newFakeStore()
	model := &fakeModel{reply: "You are not alone."}
	s := newChatService(store, model)

	res, err := s.Respond(context.Background(), "conv-1", "I want to kill myself", "")
	require.NoError(t, err)

	assert.True(t, res.HasDisclaimer)
	assert.True(t, strings.HasSuffix(res.Reply, persona.CrisisDisclaimer()))
	assert.Contains(t, res.Reply, "You are not alone.\n\n")

	// The persisted assistant turn includes the disclaimer
	require.Len(t, store.appended, 2)
	assert.Equal(t, res.Reply, store.appended[1].Content)
}

func TestRespondGenerationFailurePropagates(t *testing.T) {
	store := newFakeStore()
	model := &fakeModel{err: errors.New("upstream unavailable")}
	s := newChatService(store, model)

	_, err := s.Respond(context.Background(), "conv-1", "hello", "")
	require.Error(t, err)

	// The user turn was still recorded before the failure
	require.Len(t, store.appended, 1)
	assert.Equal(t, models.RoleUser, store.appended[0].Role)
}

func TestRespondDegradedStore(t *testing.T) {
	model := &fakeModel{reply: "Wisdom flows regardless."}
	s := newChatService(nil, model)

	res, err := s.Respond(context.Background(), "fallback-1-abc123xyz", "guide me", "")
	require.NoError(t, err)

	assert.Equal(t, "Wisdom flows regardless.", res.Reply)
	assert.Equal(t, "Krishna", res.PersonaName)
	assert.Empty(t, model.lastHistory)
}

func TestRespondUsesStoredBackgroundPrompt(t *testing.T) {
	store := newFakeStore()
	p := store.personas["krishna"]
	p.BackgroundPrompt = "You are a custom-tuned guide."
	model := &fakeModel{reply: "reply"}
	s := newChatService(store, model)

	_, err := s.Respond(context.Background(), "conv-1", "hello", "krishna")
	require.NoError(t, err)
	assert.Equal(t, "You are a custom-tuned guide.", model.lastSystem)
}
