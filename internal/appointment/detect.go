// Package appointment implements the heuristic extraction of appointment
// details from free-form chat text. Everything in this package is pure:
// no network, no clock, no UI.
package appointment

import "strings"

// Affirmative tokens that confirm a pending appointment. The first group
// matches anywhere in the message; the second only when it is the entire
// (trimmed, lowercased) message, so that e.g. "anyone" does not read as a
// confirmation via the bare "y".
var (
	confirmSubstrings = []string{"yes", "confirm", "correct"}
	confirmExact      = []string{"y", "confirm", "confirmed", "ok", "okay", "sure", "sounds good"}
)

// Keywords that signal the user is trying to set up an appointment.
var requestKeywords = []string{"appointment", "schedule", "book", "set up"}

// IsConfirmation reports whether text affirms a pending appointment.
func IsConfirmation(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, token := range confirmSubstrings {
		if strings.Contains(lower, token) {
			return true
		}
	}
	for _, token := range confirmExact {
		if lower == token {
			return true
		}
	}
	return false
}

// IsRequest reports whether text expresses appointment-scheduling intent.
func IsRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range requestKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
