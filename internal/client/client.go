// Package client provides a REST client for the Sarathi server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/devyanip/sarathi/internal/models"
)

// Client is an HTTP client for the Sarathi server API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
// If baseURL is empty, uses SARATHI_SERVER_URL env var or defaults to localhost:8480.
// Timeout can be configured via SARATHI_CLIENT_TIMEOUT env var (default 2m for LLM and speech calls).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("SARATHI_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8480"
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("SARATHI_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// errorResponse is the server's JSON error shape.
type errorResponse struct {
	Error string `json:"error"`
}

// do sends a JSON request and decodes the JSON response into result.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server error: %s - %s", resp.Status, string(data))
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

// PersonaInfo is the persona payload returned by the server.
type PersonaInfo struct {
	Persona       models.Persona      `json:"philosopher"`
	Starters      []string            `json:"conversationStarters"`
	RandomStarter string              `json:"randomStarter"`
	VoiceConfig   *models.VoiceConfig `json:"voiceConfig"`
}

// Persona fetches the persona record with starters and voice settings.
func (c *Client) Persona(ctx context.Context) (*PersonaInfo, error) {
	var info PersonaInfo
	if err := c.do(ctx, http.MethodGet, "/api/krishna", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// StartersResult holds category-filtered conversation starters.
type StartersResult struct {
	Starters []string `json:"starters"`
	Category string   `json:"category"`
}

// Starters fetches conversation starters, optionally filtered by category.
func (c *Client) Starters(ctx context.Context, category string) (*StartersResult, error) {
	var result StartersResult
	body := map[string]string{"category": category}
	if err := c.do(ctx, http.MethodPost, "/api/krishna", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StartedConversation is the result of starting a conversation.
type StartedConversation struct {
	ConversationID string                `json:"conversationId"`
	Persona        models.PersonaSummary `json:"philosopher"`
}

// StartConversation creates a new conversation for the optional user.
func (c *Client) StartConversation(ctx context.Context, userID *string) (*StartedConversation, error) {
	var result StartedConversation
	body := map[string]any{}
	if userID != nil {
		body["userId"] = *userID
	}
	if err := c.do(ctx, http.MethodPost, "/api/conversations", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ConversationPage is one page of the conversation list.
type ConversationPage struct {
	Conversations []models.ConversationSummary `json:"conversations"`
	HasMore       bool                         `json:"hasMore"`
}

// Conversations lists conversations for the optional user, newest first.
func (c *Client) Conversations(ctx context.Context, userID *string, limit, offset int) (*ConversationPage, error) {
	q := url.Values{}
	if userID != nil {
		q.Set("userId", *userID)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	path := "/api/conversations"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var page ConversationPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ChatReply is the result of one chat turn.
type ChatReply struct {
	Response      string `json:"response"`
	PersonaName   string `json:"philosopher"`
	HasDisclaimer bool   `json:"hasDisclaimer"`
}

// Chat sends a user message and returns the persona's reply.
func (c *Client) Chat(ctx context.Context, conversationID, message string) (*ChatReply, error) {
	var reply ChatReply
	body := map[string]string{
		"conversationId": conversationID,
		"message":        message,
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Synthesize converts text to MP3 audio bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	data, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/voice/synthesize", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("server error: %s", errResp.Error)
		}
		return nil, fmt.Errorf("server error: %s", resp.Status)
	}

	return body, nil
}

// Transcription is the transcription result.
type Transcription struct {
	Transcript string  `json:"transcript"`
	Duration   float64 `json:"duration"`
}

// Transcribe uploads audio and returns the transcribed text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte) (*Transcription, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename="%s"`, filename))
	hdr.Set("Content-Type", audioContentType(filename))
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("write audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/voice/transcribe", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("server error: %s", errResp.Error)
		}
		return nil, fmt.Errorf("server error: %s", resp.Status)
	}

	var t Transcription
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &t, nil
}

// audioContentType maps a filename extension to an audio MIME type.
func audioContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	default:
		return "audio/webm"
	}
}

// SaveInsight stores a highlighted piece of guidance from a conversation.
func (c *Client) SaveInsight(ctx context.Context, conversationID, content string, tags []string) error {
	body := map[string]any{
		"conversationId": conversationID,
		"content":        content,
	}
	if len(tags) > 0 {
		body["tags"] = tags
	}
	return c.do(ctx, http.MethodPost, "/api/insights", body, nil)
}
