package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackRecord(t *testing.T) {
	p := Fallback()

	assert.Equal(t, "Krishna", p.Name)
	assert.Equal(t, "krishna", p.Slug)
	assert.Equal(t, "Divine Teacher and Guide", p.Title)
	assert.True(t, p.IsActive)
	require.NotEmpty(t, p.ConversationStarters)
	assert.Contains(t, p.Specialties, "dharma")
}

func TestFallbackReturnsCopy(t *testing.T) {
	p := Fallback()
	p.ConversationStarters[0] = "mutated"
	p.Specialties[0] = "mutated"

	fresh := Fallback()
	assert.NotEqual(t, "mutated", fresh.ConversationStarters[0])
	assert.NotEqual(t, "mutated", fresh.Specialties[0])
}

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt("career guidance")
	assert.Contains(t, prompt, "You are Krishna")
	assert.Contains(t, prompt, "The user is seeking guidance about: career guidance")

	// Empty context falls back to a generic phrase
	prompt = SystemPrompt("")
	assert.Contains(t, prompt, "life challenges and spiritual growth")
}

func TestRandomStarter(t *testing.T) {
	starters := Fallback().ConversationStarters
	got := RandomStarter(starters)
	assert.Contains(t, starters, got)

	assert.Empty(t, RandomStarter(nil))
}

func TestFilterStarters(t *testing.T) {
	starters := Fallback().ConversationStarters

	tests := []struct {
		name     string
		category string
		keywords []string
		all      bool
	}{
		{"purpose", "purpose", []string{"purpose", "dharma", "duty", "path"}, false},
		{"grief", "grief", []string{"grief", "loss", "death", "letting go"}, false},
		{"case insensitive category", "PEACE", []string{"peace", "chaos", "calm", "stress"}, false},
		{"unknown category returns all", "cooking", nil, true},
		{"empty category returns all", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterStarters(starters, tt.category)
			if tt.all {
				assert.Equal(t, starters, got)
				return
			}
			require.NotEmpty(t, got)
			assert.Less(t, len(got), len(starters))
			for _, s := range got {
				matched := false
				for _, kw := range tt.keywords {
					if strings.Contains(strings.ToLower(s), kw) {
						matched = true
						break
					}
				}
				assert.True(t, matched, "starter %q matches no %s keyword", s, tt.category)
			}
		})
	}
}

func TestContainsCrisisLanguage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"explicit crisis phrase", "I want to kill myself", true},
		{"uppercase", "I think about SUICIDE", true},
		{"embedded phrase", "lately it feels like it's not worth living anymore", true},
		{"benign message", "I had a great day", false},
		{"empty message", "", false},
		{"near miss", "my plants keep dying", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsCrisisLanguage(tt.message))
		})
	}
}

func TestCrisisDisclaimer(t *testing.T) {
	d := CrisisDisclaimer()
	assert.Contains(t, d, "professional mental health support")
}
