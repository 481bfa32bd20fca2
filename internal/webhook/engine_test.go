package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/chat"
)

func newEngineServer(t *testing.T, replyText string) *Engine {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal([]map[string]string{{"output": replyText}})
		require.NoError(t, err)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return NewEngine(NewClient(srv.URL, time.Second, nil, nil), testSite)
}

func TestEngineRespondPlainReply(t *testing.T) {
	e := newEngineServer(t, "Happy to help!")

	msg := e.Respond(context.Background(), "sess-1", "/", "hello", nil)

	assert.Equal(t, "Happy to help!", msg.Text)
	assert.Equal(t, chat.SenderBot, msg.Sender)
	assert.False(t, msg.IsFormatted)
	assert.Nil(t, msg.Appointment)
}

func TestEngineRespondAttachesPendingCard(t *testing.T) {
	recap := "I'd like to confirm your appointment details:\n" +
		"Name: John Doe\n" +
		"Phone: 555-123-4567\n" +
		"Email: john@example.com\n" +
		"Date: tomorrow\n" +
		"Time: 2pm\n" +
		"Please respond with YES to confirm."
	e := newEngineServer(t, recap)

	msg := e.Respond(context.Background(), "sess-1", "/",
		"I want to schedule an appointment: John Doe, 555-123-4567, john@example.com", nil)

	require.NotNil(t, msg.Appointment)
	assert.Equal(t, "John Doe", msg.Appointment.Name)
	assert.Equal(t, "555-123-4567", msg.Appointment.Phone)
	assert.Equal(t, "john@example.com", msg.Appointment.Email)
	assert.Equal(t, "tomorrow", msg.Appointment.Date)
	assert.Equal(t, "2pm", msg.Appointment.Time)
	assert.False(t, msg.Appointment.Confirmed)
	assert.True(t, msg.IsFormatted)
}

func TestEngineRespondConfirmedCard(t *testing.T) {
	recap := "Your appointment is confirmed!\nName: Jane Roe\nDate: friday\nTime: 10am"
	e := newEngineServer(t, recap)

	msg := e.Respond(context.Background(), "sess-1", "/", "yes", nil)

	require.NotNil(t, msg.Appointment)
	assert.Equal(t, "Jane Roe", msg.Appointment.Name)
	assert.True(t, msg.Appointment.Confirmed)
}
