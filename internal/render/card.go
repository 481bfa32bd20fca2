package render

import "strings"

// CardStatus is the banner shown on an appointment card.
type CardStatus string

const (
	StatusPending   CardStatus = "pending"
	StatusConfirmed CardStatus = "confirmed"
)

// Card is the structured rendering of a bot message that recaps an
// appointment. Labeled lines become fields; everything else is kept as
// prose lines in order.
type Card struct {
	Name   string     `json:"name,omitempty"`
	Phone  string     `json:"phone,omitempty"`
	Email  string     `json:"email,omitempty"`
	Date   string     `json:"date,omitempty"`
	Time   string     `json:"time,omitempty"`
	Lines  []string   `json:"lines,omitempty"`
	Status CardStatus `json:"status"`
}

// IsAppointmentCard reports whether a bot message should be rendered as a
// structured appointment card instead of prose.
func IsAppointmentCard(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "appointment") &&
		strings.Contains(lower, "confirm") &&
		(strings.Contains(lower, "name:") || strings.Contains(lower, "date:"))
}

// ExtractCard builds a Card from a recap message, line by line. A line is
// claimed by the first matching label; the value is whatever follows the
// first colon.
func ExtractCard(text string) Card {
	card := Card{Status: StatusConfirmed}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "please respond with") || strings.Contains(lower, "please confirm") {
		card.Status = StatusPending
	}

	for _, line := range strings.Split(text, "\n") {
		lowerLine := strings.ToLower(line)
		switch {
		case strings.Contains(lowerLine, "name:"):
			card.Name = labelValue(line)
		case strings.Contains(lowerLine, "phone:") || strings.Contains(lowerLine, "contact:"):
			card.Phone = labelValue(line)
		case strings.Contains(lowerLine, "email:"):
			card.Email = labelValue(line)
		case strings.Contains(lowerLine, "date:"):
			card.Date = labelValue(line)
		case strings.Contains(lowerLine, "time:"):
			card.Time = labelValue(line)
		case strings.TrimSpace(line) != "":
			card.Lines = append(card.Lines, line)
		}
	}
	return card
}

// labelValue returns the text after the first colon, trimmed. Empty when
// the line has no colon or nothing after it.
func labelValue(line string) string {
	_, after, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(after)
}
