package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/devyanip/sarathi/internal/speech"
)

type synthesizeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	if s.speech == nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate speech")
		return
	}

	audio, err := s.speech.Synthesize(r.Context(), strings.TrimSpace(req.Text))
	if err != nil {
		s.writeSynthesizeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (s *Server) writeSynthesizeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, speech.ErrEmptyText):
		writeError(w, http.StatusBadRequest, "Text is required")
	case errors.Is(err, speech.ErrTextTooLong):
		writeError(w, http.StatusBadRequest, "Text too long. Maximum 4000 characters.")
	case errors.Is(err, speech.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	case errors.Is(err, speech.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid text for speech synthesis")
	default:
		s.logger.Error("speech synthesis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate speech")
	}
}

type transcribeResponse struct {
	Transcript string  `json:"transcript"`
	Duration   float64 `json:"duration"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(speech.MaxAudioBytes); err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "audio/") {
		writeError(w, http.StatusBadRequest, "Invalid file type. Please provide an audio file.")
		return
	}
	if header.Size > speech.MaxAudioBytes {
		writeError(w, http.StatusBadRequest, "File too large. Maximum size is 25MB.")
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, speech.MaxAudioBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	if len(audio) > speech.MaxAudioBytes {
		writeError(w, http.StatusBadRequest, "File too large. Maximum size is 25MB.")
		return
	}

	if s.speech == nil {
		writeError(w, http.StatusInternalServerError, "Failed to transcribe audio")
		return
	}

	transcript, err := s.speech.Transcribe(r.Context(), header.Filename, audio)
	if err != nil {
		s.writeTranscribeError(w, err)
		return
	}

	// Duration is not derivable from the provider response; clients
	// measure it during capture.
	writeJSON(w, http.StatusOK, transcribeResponse{Transcript: transcript, Duration: 0})
}

func (s *Server) writeTranscribeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, speech.ErrEmptyTranscript):
		writeError(w, http.StatusBadRequest, "No speech detected in audio file")
	case errors.Is(err, speech.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	case errors.Is(err, speech.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid audio file format")
	default:
		s.logger.Error("transcription failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to transcribe audio")
	}
}
