// Package speech is the bridge to the hosted speech endpoints: text to
// audio (synthesis) and audio to text (transcription). Each operation is a
// single synchronous round trip; nothing is retried, cached, or streamed.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/devyanip/sarathi/internal/metrics"
)

// Input ceilings enforced before any provider call.
const (
	// MaxTextLen is the synthesis character ceiling (the provider caps at 4096).
	MaxTextLen = 4000

	// MaxAudioBytes is the transcription upload ceiling.
	MaxAudioBytes = 25 * 1024 * 1024
)

const defaultTimeout = 2 * time.Minute

// Config holds speech provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	TTSModel string
	TTSVoice string
	TTSSpeed float64
	STTModel string
}

// Client calls the hosted speech-synthesis and transcription endpoints.
type Client struct {
	cfg        Config
	httpClient *http.Client
	metrics    *metrics.Collector
}

// NewClient creates a speech client. The metrics collector may be nil.
func NewClient(cfg Config, mc *metrics.Collector) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		metrics:    mc,
	}
}

// apiError is the provider's error response body.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// synthesizeRequest is the request payload for speech synthesis.
type synthesizeRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed,omitempty"`
	ResponseFormat string  `json:"response_format"`
}

// Synthesize converts text to MP3 audio bytes.
// Text must be non-empty and at most MaxTextLen characters; both
// preconditions are checked before any network call.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(text) > MaxTextLen {
		return nil, fmt.Errorf("%w: maximum %d characters", ErrTextTooLong, MaxTextLen)
	}

	body, err := json.Marshal(synthesizeRequest{
		Model:          c.cfg.TTSModel,
		Input:          text,
		Voice:          c.cfg.TTSVoice,
		Speed:          c.cfg.TTSSpeed,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordTiming(metrics.OpSynthesize, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.classifyError(resp, "synthesize")
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}

// transcribeResponse is the transcription response body.
type transcribeResponse struct {
	Text string `json:"text"`
}

// Transcribe converts uploaded audio to text. The returned transcript is
// whitespace-trimmed; if nothing remains, ErrEmptyTranscript is returned.
// Callers enforce the MIME-type and size preconditions before calling.
func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := writer.WriteField("model", c.cfg.STTModel); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordTiming(metrics.OpTranscribe, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.classifyError(resp, "transcribe")
	}

	var result transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	transcript := strings.TrimSpace(result.Text)
	if transcript == "" {
		return "", ErrEmptyTranscript
	}
	return transcript, nil
}

// classifyError maps a provider error response to one of the coarse
// sentinel errors by status code and message text.
func (c *Client) classifyError(resp *http.Response, op string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := string(body)
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	lower := strings.ToLower(message)
	switch {
	case resp.StatusCode == http.StatusTooManyRequests || strings.Contains(lower, "rate limit"):
		return fmt.Errorf("%w: %s", ErrRateLimited, message)
	case resp.StatusCode == http.StatusBadRequest || strings.Contains(lower, "invalid"):
		return fmt.Errorf("%w: %s", ErrInvalidInput, message)
	default:
		return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, message)
	}
}
