package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const fallbackIDPrefix = "fallback-"

const fallbackIDCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewFallbackConversationID synthesizes a local, never-persisted
// conversation identifier of the form fallback-<epoch-ms>-<9-char-random>.
// Generated fresh per call; nothing is cached process-wide.
func NewFallbackConversationID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = fallbackIDCharset[rand.Intn(len(fallbackIDCharset))]
	}
	return fmt.Sprintf("%s%d-%s", fallbackIDPrefix, time.Now().UnixMilli(), suffix)
}

// IsFallbackConversationID reports whether id was synthesized locally
// rather than issued by the store.
func IsFallbackConversationID(id string) bool {
	return strings.HasPrefix(id, fallbackIDPrefix)
}
