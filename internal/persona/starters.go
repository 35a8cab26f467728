package persona

import (
	"math/rand"
	"strings"
)

// categoryKeywords maps a starter category to the substrings that place a
// starter in it. Unknown categories match nothing; callers treat an empty
// keyword list as "no filter".
var categoryKeywords = map[string][]string{
	"purpose":       {"purpose", "dharma", "duty", "path"},
	"relationships": {"relationship", "family", "love", "attachment"},
	"grief":         {"grief", "loss", "death", "letting go"},
	"decisions":     {"decision", "choice", "right", "wrong"},
	"peace":         {"peace", "chaos", "calm", "stress"},
}

// RandomStarter returns a random element of starters, or "" when empty.
func RandomStarter(starters []string) string {
	if len(starters) == 0 {
		return ""
	}
	return starters[rand.Intn(len(starters))]
}

// FilterStarters returns the starters matching the given category's
// keywords. A blank or unknown category returns all starters unfiltered.
// Matching is a plain case-insensitive substring search.
func FilterStarters(starters []string, category string) []string {
	keywords := categoryKeywords[strings.ToLower(category)]
	if len(keywords) == 0 {
		return starters
	}

	var filtered []string
	for _, starter := range starters {
		lower := strings.ToLower(starter)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				filtered = append(filtered, starter)
				break
			}
		}
	}
	return filtered
}
