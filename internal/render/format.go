// Package render decides how a bot message should be presented by the
// widget: plain text, markdown-formatted, or as a structured appointment
// card.
package render

import "strings"

// formatting indicators: numbered lists, emphasis/bullets, headings, or
// any line break trigger the markdown renderer client-side.
var formatIndicators = []string{"1.", "*", "-", "#", "\n"}

// IsFormatted reports whether text should be rendered through the
// markdown renderer rather than as a plain paragraph.
func IsFormatted(text string) bool {
	for _, ind := range formatIndicators {
		if strings.Contains(text, ind) {
			return true
		}
	}
	return false
}
