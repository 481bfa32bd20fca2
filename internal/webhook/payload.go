// Package webhook is the client side of the external automation workflow:
// it shapes the outbound request body (including the heuristic appointment
// payload) and decodes the loosely specified responses.
package webhook

import (
	"fmt"
	"strings"
	"time"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/appointment"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/chat"
)

const payloadSource = "website-chat"

// Website identifies the site the chat widget is embedded on.
type Website struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// HistoryEntry is one prior message as sent to the workflow.
type HistoryEntry struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// AppointmentPayload carries the detection flags and, when extraction
// succeeded, the normalized field copy.
type AppointmentPayload struct {
	IsRequest      bool              `json:"isRequest"`
	IsConfirmation bool              `json:"isConfirmation"`
	Data           *appointment.Data `json:"data,omitempty"`
}

// Payload is the outbound request body for the automation webhook.
type Payload struct {
	Message     string             `json:"message"`
	Timestamp   string             `json:"timestamp"`
	UserID      string             `json:"userId"`
	ChatHistory []HistoryEntry     `json:"chatHistory"`
	Source      string             `json:"source"`
	Page        string             `json:"page"`
	Website     Website            `json:"website"`
	Appointment AppointmentPayload `json:"appointment"`
}

// BuildPayload assembles the webhook request body for a user message.
// When the message confirms or requests an appointment and details could
// be extracted, the free-form text is replaced with a rigid script the
// workflow's agent is known to follow.
func BuildPayload(text, userID, page string, history []chat.Message, site Website) Payload {
	isConfirmation := appointment.IsConfirmation(text)
	isRequest := appointment.IsRequest(text)
	data := appointment.Extract(text, chat.BotTexts(history))

	entries := make([]HistoryEntry, 0, len(history))
	for _, m := range history {
		entries = append(entries, HistoryEntry{
			Text:      m.Text,
			Sender:    m.Sender,
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	p := Payload{
		Message:     text,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		UserID:      userID,
		ChatHistory: entries,
		Source:      payloadSource,
		Page:        page,
		Website:     site,
		Appointment: AppointmentPayload{
			IsRequest:      isRequest,
			IsConfirmation: isConfirmation,
		},
	}

	if data != nil {
		if isConfirmation {
			p.Message = confirmationScript(*data, text)
		} else if isRequest {
			p.Message = requestScript(*data)
		}
		normalized := appointment.Normalize(*data)
		p.Appointment.Data = &normalized
	}
	return p
}

// confirmationScript tells the workflow to create the calendar event now.
// The attendee line is only emitted for a deliverable-looking email.
func confirmationScript(d appointment.Data, rawText string) string {
	email := ""
	attendeeLine := "// Skip adding attendee due to invalid email format"
	if appointment.ValidEmail(d.Email) {
		email = strings.ToLower(strings.TrimSpace(d.Email))
		attendeeLine = "ADD THE ATTENDEE: " + email
	}

	return fmt.Sprintf(`YES I CONFIRM THE APPOINTMENT.

NAME: %s
PHONE: %s
EMAIL: %s
DATE: %s
TIME: %s

PLEASE USE THE GOOGLE CALENDAR TOOL TO CREATE THIS APPOINTMENT NOW.
SET THE TITLE TO "Douglas Driveway Services Appointment - %s"
SET THE DESCRIPTION TO "Customer appointment for driveway services. Contact: %s, Email: %s"
%s

The user has confirmed with "%s". Please create this appointment immediately.`,
		d.Name, d.Phone, email, d.Date, d.Time,
		d.Name, d.Phone, email, attendeeLine, rawText)
}

// requestScript asks the workflow to echo the details back for
// confirmation before booking.
func requestScript(d appointment.Data) string {
	email := ""
	if appointment.ValidEmail(d.Email) {
		email = strings.ToLower(strings.TrimSpace(d.Email))
	}

	return fmt.Sprintf(`I WANT TO SCHEDULE AN APPOINTMENT.

NAME: %s
PHONE: %s
EMAIL: %s
DATE: %s
TIME: %s

Please confirm these details and then create the appointment.`,
		d.Name, d.Phone, email, d.Date, d.Time)
}
