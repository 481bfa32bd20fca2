package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/chat"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/forms"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/site"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/voice"
)

type echoResponder struct{}

func (echoResponder) Respond(_ context.Context, _, _, text string, _ []chat.Message) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Text:      "echo: " + text,
		Sender:    chat.SenderBot,
		Timestamp: time.Now().UTC(),
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	siteHandler, err := site.NewHandler("Douglas Driveway Services", "(555) 123-4567", nil)
	require.NoError(t, err)

	return New(Config{
		Site:               siteHandler,
		Chat:               chat.NewHandler(echoResponder{}, chat.NewMemoryTranscriptStore(), nil, nil),
		Voice:              voice.NewHandler(nil),
		Forms:              forms.NewHandler(nil),
		Registry:           prometheus.NewRegistry(),
		CORSAllowedOrigins: []string{"*"},
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSiteRoutes(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/", "/services", "/gallery", "/schedule", "/contact", "/widget.js"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestChatMessageRoute(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/message",
		strings.NewReader(`{"text":"hello","page":"home"}`))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "echo: hello")
}

func TestChatWebSocketRoute(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err, "upgrade must survive the full middleware stack")
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	var evt chat.OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &evt))
	require.Equal(t, "session", evt.Type)
	assert.NotEmpty(t, evt.SessionID)

	// Fresh sessions are greeted before any user input.
	require.NoError(t, websocket.JSON.Receive(conn, &evt))
	require.Equal(t, "message", evt.Type)
	require.NotNil(t, evt.Message)
	assert.Equal(t, chat.SenderBot, evt.Message.Sender)

	require.NoError(t, websocket.JSON.Send(conn, chat.InboundMessage{
		Type: "message",
		Text: "hello",
		Page: "home",
	}))

	// Typing indicator may arrive before the reply.
	var echoed bool
	for i := 0; i < 5; i++ {
		require.NoError(t, websocket.JSON.Receive(conn, &evt))
		if evt.Type == "message" && evt.Message != nil && evt.Message.Text == "echo: hello" {
			echoed = true
			break
		}
	}
	assert.True(t, echoed, "expected the responder reply over the socket")
}

func TestVoiceCommandRoute(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/voice/command",
		strings.NewReader(`{"transcript":"what are your services"}`))
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sealcoating")
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	siteHandler, err := site.NewHandler("Douglas Driveway Services", "(555) 123-4567", nil)
	require.NoError(t, err)

	r := New(Config{
		Site:            siteHandler,
		Forms:           forms.NewHandler(nil),
		RateLimitPerSec: 1,
		RateLimitBurst:  2,
	})

	var last int
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/schedule/options", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
