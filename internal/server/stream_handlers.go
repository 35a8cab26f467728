package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/devyanip/sarathi/internal/speech"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // same-origin in prod, proxy in dev
	},
}

// streamEvent is the wire shape for all voice stream server messages.
type streamEvent struct {
	Event      string `json:"event"`
	Bytes      int    `json:"bytes,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Message    string `json:"message,omitempty"`
}

type streamCommand struct {
	Event string `json:"event"`
}

// handleVoiceStream runs a capture session over a websocket: the client
// streams binary audio chunks, each acknowledged with a chunk event, then
// sends {"event":"stop"} to have the accumulated audio transcribed. The
// session ends after the final transcript or on the first error.
func (s *Server) handleVoiceStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("voice stream upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if s.speech == nil {
		_ = conn.WriteJSON(streamEvent{Event: "error", Message: "Failed to transcribe audio"})
		return
	}

	var buf []byte
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			if len(buf)+len(data) > speech.MaxAudioBytes {
				_ = conn.WriteJSON(streamEvent{Event: "error", Message: "File too large. Maximum size is 25MB."})
				return
			}
			buf = append(buf, data...)
			if err := conn.WriteJSON(streamEvent{Event: "chunk", Bytes: len(buf)}); err != nil {
				return
			}

		case websocket.TextMessage:
			var cmd streamCommand
			if err := json.Unmarshal(data, &cmd); err != nil || cmd.Event != "stop" {
				_ = conn.WriteJSON(streamEvent{Event: "error", Message: "Invalid command"})
				return
			}
			s.finishVoiceStream(r, conn, buf)
			return

		default:
			_ = conn.WriteJSON(streamEvent{Event: "error", Message: "Invalid file type. Please provide an audio file."})
			return
		}
	}
}

func (s *Server) finishVoiceStream(r *http.Request, conn *websocket.Conn, audio []byte) {
	transcript, err := s.speech.Transcribe(r.Context(), "capture.webm", audio)
	if err != nil {
		s.logger.Error("stream transcription failed", "error", err)
		_ = conn.WriteJSON(streamEvent{Event: "error", Message: transcribeErrorMessage(err)})
		return
	}
	_ = conn.WriteJSON(streamEvent{Event: "final", Transcript: transcript})
}

func transcribeErrorMessage(err error) string {
	switch {
	case errors.Is(err, speech.ErrEmptyTranscript):
		return "No speech detected in audio file"
	case errors.Is(err, speech.ErrRateLimited):
		return "Rate limit exceeded. Please try again later."
	case errors.Is(err, speech.ErrInvalidInput):
		return "Invalid audio file format"
	default:
		return "Failed to transcribe audio"
	}
}
