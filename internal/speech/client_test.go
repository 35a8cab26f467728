package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		TTSModel: "tts-1",
		TTSVoice: "nova",
		TTSSpeed: 0.9,
		STTModel: "whisper-1",
	}, nil)
}

func TestSynthesize(t *testing.T) {
	var gotPath, gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	})

	audio, err := c.Synthesize(context.Background(), "May peace find you.")
	require.NoError(t, err)

	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "/audio/speech", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestSynthesizeEmptyText(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for empty text")
	})

	_, err := c.Synthesize(context.Background(), "")
	assert.True(t, errors.Is(err, ErrEmptyText))
}

func TestSynthesizeTextCeiling(t *testing.T) {
	called := false
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte("ok"))
	})

	// One character over the ceiling is rejected before any call
	_, err := c.Synthesize(context.Background(), strings.Repeat("a", MaxTextLen+1))
	assert.True(t, errors.Is(err, ErrTextTooLong))
	assert.False(t, called)

	// Exactly at the ceiling proceeds to the provider
	_, err = c.Synthesize(context.Background(), strings.Repeat("a", MaxTextLen))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestSynthesizeRateLimited(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached for requests"}}`))
	})

	_, err := c.Synthesize(context.Background(), "hello")
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestSynthesizeInvalidInput(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid request: unsupported voice"}}`))
	})

	_, err := c.Synthesize(context.Background(), "hello")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSynthesizeGenericError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := c.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRateLimited))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestTranscribe(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "recording.webm", header.Filename)

		_, _ = w.Write([]byte(`{"text":"  What is dharma?  "}`))
	})

	transcript, err := c.Transcribe(context.Background(), "recording.webm", []byte("audio-bytes"))
	require.NoError(t, err)

	// Transcript is always whitespace-trimmed
	assert.Equal(t, "What is dharma?", transcript)
}

func TestTranscribeEmptyResult(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"   "}`))
	})

	_, err := c.Transcribe(context.Background(), "recording.webm", []byte("audio-bytes"))
	assert.True(t, errors.Is(err, ErrEmptyTranscript))
}

func TestTranscribeRateLimited(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	})

	_, err := c.Transcribe(context.Background(), "recording.webm", []byte("audio-bytes"))
	assert.True(t, errors.Is(err, ErrRateLimited))
}
