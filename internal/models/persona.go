// Package models defines data structures for the Sarathi chat store.
package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// VoiceConfig describes how a persona's speech should be synthesized.
type VoiceConfig struct {
	Provider string        `json:"provider"`
	VoiceID  string        `json:"voiceId"`
	Settings VoiceSettings `json:"settings"`
}

// VoiceSettings holds provider-agnostic synthesis tuning values.
type VoiceSettings struct {
	Stability float64 `json:"stability"`
	Clarity   float64 `json:"clarity"`
	Warmth    float64 `json:"warmth"`
	Pace      string  `json:"pace"`
	Accent    string  `json:"accent"`
}

// Persona is an AI character definition. Immutable once loaded; either
// sourced from the store or from the built-in fallback record.
type Persona struct {
	ID                   surrealmodels.RecordID `json:"id"`
	Name                 string                 `json:"name"`
	Slug                 string                 `json:"slug"`
	Title                string                 `json:"title"`
	Tradition            string                 `json:"tradition"`
	Description          string                 `json:"description"`
	Specialties          []string               `json:"specialties"`
	AvatarURL            *string                `json:"avatar_url,omitempty"`
	BackgroundPrompt     string                 `json:"background_prompt,omitempty"`
	ConversationStarters []string               `json:"conversation_starters"`
	VoiceConfig          *VoiceConfig           `json:"voice_config,omitempty"`
	IsActive             bool                   `json:"is_active"`
	SortOrder            int                    `json:"sort_order"`
	CreatedAt            time.Time              `json:"created_at"`
}

// PersonaSummary is the compact persona shape returned alongside
// conversations and chat responses.
type PersonaSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Title     string  `json:"title"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Summary returns the compact shape of the persona.
func (p *Persona) Summary() PersonaSummary {
	return PersonaSummary{
		ID:        RecordIDStringOr(p.ID, p.Slug),
		Name:      p.Name,
		Slug:      p.Slug,
		Title:     p.Title,
		AvatarURL: p.AvatarURL,
	}
}
