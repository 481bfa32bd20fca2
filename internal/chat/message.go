// Package chat owns the chat widget transport: the message model, the
// transcript stores, and the WebSocket/HTTP handler the widget talks to.
package chat

import (
	"context"
	"time"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/appointment"
)

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one entry in a chat session. Messages are transient and
// UI-scoped; they live only as long as the transcript store keeps them.
type Message struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	Sender      string            `json:"sender"`
	Timestamp   time.Time         `json:"timestamp"`
	IsFormatted bool              `json:"isFormatted,omitempty"`
	Appointment *appointment.Data `json:"appointmentData,omitempty"`
}

// TranscriptStore keeps the ordered message log for a session.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	List(ctx context.Context, sessionID string, limit int64) ([]Message, error)
}

// Responder produces the bot reply for a user message given the session
// history so far.
type Responder interface {
	Respond(ctx context.Context, sessionID, page, text string, history []Message) Message
}

// BotTexts returns the texts of bot messages in order, for the
// appointment recap scan.
func BotTexts(history []Message) []string {
	out := make([]string, 0, len(history))
	for _, m := range history {
		if m.Sender == SenderBot {
			out = append(out, m.Text)
		}
	}
	return out
}
