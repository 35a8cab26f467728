// Package server exposes the HTTP API for the Sarathi chat backend.
package server

import (
	"log/slog"
	"net/http"

	"github.com/devyanip/sarathi/internal/metrics"
	"github.com/devyanip/sarathi/internal/service"
	"github.com/devyanip/sarathi/internal/speech"
)

// Server holds the API handlers and their dependencies.
type Server struct {
	personas      *service.PersonaService
	conversations *service.ConversationService
	chat          *service.ChatService
	speech        *speech.Client
	metrics       *metrics.Collector
	logger        *slog.Logger
}

// Config bundles the dependencies a Server needs. Speech may be nil when
// no speech API key is configured; the voice endpoints then report 500.
type Config struct {
	Personas      *service.PersonaService
	Conversations *service.ConversationService
	Chat          *service.ChatService
	Speech        *speech.Client
	Metrics       *metrics.Collector
	Logger        *slog.Logger
}

// New creates a Server from its dependencies.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		personas:      cfg.Personas,
		conversations: cfg.Conversations,
		chat:          cfg.Chat,
		speech:        cfg.Speech,
		metrics:       cfg.Metrics,
		logger:        logger,
	}
}

// Handler returns the full route tree with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/krishna", s.handleGetPersona)
	mux.HandleFunc("POST /api/krishna", s.handleStarters)
	mux.HandleFunc("POST /api/conversations", s.handleStartConversation)
	mux.HandleFunc("GET /api/conversations", s.handleListConversations)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/voice/synthesize", s.handleSynthesize)
	mux.HandleFunc("POST /api/voice/transcribe", s.handleTranscribe)
	mux.HandleFunc("GET /api/voice/stream", s.handleVoiceStream)
	mux.HandleFunc("POST /api/insights", s.handleCreateInsight)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)

	var h http.Handler = mux
	h = CORSMiddleware(h)
	h = LoggingMiddleware(s.logger)(h)
	h = RecoverMiddleware(s.logger)(h)
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}
