package persona

import "strings"

// crisisKeywords are the substrings that trigger the safety disclaimer.
// This is deliberately a plain substring scan, not a classifier: rephrased
// distress will slip past it, and clinical discussion will trip it.
var crisisKeywords = []string{
	"suicide",
	"kill myself",
	"end it all",
	"not worth living",
	"severe depression",
	"panic attack",
	"self harm",
	"hurt myself",
}

const crisisDisclaimer = "I sense you may be going through a particularly difficult time. While I'm here to offer spiritual guidance, please remember that professional mental health support can be invaluable. Consider reaching out to a counselor, therapist, or crisis helpline if you need immediate support."

// ContainsCrisisLanguage reports whether the message contains any of the
// fixed crisis-related keyword substrings, case-insensitively.
func ContainsCrisisLanguage(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CrisisDisclaimer returns the fixed safety paragraph appended to replies
// when the user's message contains crisis language.
func CrisisDisclaimer() string {
	return crisisDisclaimer
}
