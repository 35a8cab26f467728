package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devyanip/sarathi/internal/client"
)

func TestStartedMsgReady(t *testing.T) {
	m := NewModel(client.New("http://localhost:1"))

	updated, _ := m.Update(startedMsg{
		conversationID: "conversation:abc",
		personaName:    "Krishna",
		starter:        "What is my purpose?",
	})

	got := updated.(Model)
	assert.False(t, got.starting)
	assert.Equal(t, "Krishna", got.personaName)
	require.Len(t, got.lines, 1)
	assert.True(t, got.lines[0].notice)
}

func TestStartedMsgError(t *testing.T) {
	m := NewModel(client.New("http://localhost:1"))

	updated, _ := m.Update(startedMsg{err: errors.New("connection refused")})

	got := updated.(Model)
	assert.Error(t, got.err)
}

func TestReplyAppendsLine(t *testing.T) {
	m := NewModel(client.New("http://localhost:1"))
	m.starting = false
	m.personaName = "Krishna"
	m.waiting = true

	updated, _ := m.Update(replyMsg{reply: &client.ChatReply{Response: "Act without attachment."}})

	got := updated.(Model)
	assert.False(t, got.waiting)
	require.Len(t, got.lines, 1)
	assert.Equal(t, "Krishna", got.lines[0].speaker)
	assert.Equal(t, "Act without attachment.", got.lines[0].text)
}

func TestReplyErrorBecomesNotice(t *testing.T) {
	m := NewModel(client.New("http://localhost:1"))
	m.starting = false
	m.waiting = true

	updated, _ := m.Update(replyMsg{err: errors.New("server error: Failed to process message")})

	got := updated.(Model)
	assert.False(t, got.waiting)
	require.Len(t, got.lines, 1)
	assert.True(t, got.lines[0].notice)
}

func TestSubmitIgnoresEmptyInput(t *testing.T) {
	m := NewModel(client.New("http://localhost:1"))
	m.starting = false

	updated, cmd := m.submit()

	got := updated.(Model)
	assert.Nil(t, cmd)
	assert.Empty(t, got.lines)
	assert.False(t, got.waiting)
}
