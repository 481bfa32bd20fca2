package webhook

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/appointment"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/chat"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/render"
)

// Engine answers chat messages by round-tripping the automation webhook.
// It implements chat.Responder.
type Engine struct {
	client *Client
	site   Website
}

func NewEngine(client *Client, site Website) *Engine {
	return &Engine{client: client, site: site}
}

// Respond builds the outbound payload for a user message, sends it, and
// wraps the decoded text as a bot message. The appointment card payload is
// attached when the reply recaps an appointment.
func (e *Engine) Respond(ctx context.Context, sessionID, page, text string, history []chat.Message) chat.Message {
	payload := BuildPayload(text, sessionID, page, history, e.site)
	reply := e.client.Send(ctx, payload, text)

	msg := chat.Message{
		ID:          uuid.NewString(),
		Text:        reply.Text,
		Sender:      chat.SenderBot,
		Timestamp:   time.Now().UTC(),
		IsFormatted: reply.IsFormatted,
	}
	if render.IsAppointmentCard(reply.Text) {
		msg.Appointment = cardData(reply.Text, payload.Appointment.Data)
	}
	return msg
}

// cardData merges the recap card parsed from the bot reply with the data
// extracted from the user message. The reply is authoritative for the
// fields it names; extraction fills the rest.
func cardData(text string, extracted *appointment.Data) *appointment.Data {
	var data appointment.Data
	if extracted != nil {
		data = *extracted
	}

	card := render.ExtractCard(text)
	if card.Name != "" {
		data.Name = card.Name
	}
	if card.Phone != "" {
		data.Phone = card.Phone
	}
	if card.Email != "" {
		data.Email = card.Email
	}
	if card.Date != "" {
		data.Date = card.Date
	}
	if card.Time != "" {
		data.Time = card.Time
	}
	data.Confirmed = card.Status == render.StatusConfirmed
	return &data
}
