package chat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/observability/metrics"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/responses"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/pkg/logging"
)

// Handler manages chat widget connections and messages.
type Handler struct {
	responder  Responder
	transcript TranscriptStore
	logger     *logging.Logger
	metrics    *metrics.ChatMetrics

	mu       sync.RWMutex
	sessions map[string]*wsConn // sessionID -> active connection
}

type wsConn struct {
	conn *websocket.Conn
	done chan struct{}
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type      string `json:"type"` // "message", "ping"
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	Page      string `json:"page"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string    `json:"type"` // "message", "typing", "history", "session", "pong", "error"
	Message   *Message  `json:"message,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Messages  []Message `json:"messages,omitempty"`
}

// NewHandler creates a chat handler.
func NewHandler(responder Responder, transcript TranscriptStore, logger *logging.Logger, m *metrics.ChatMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		responder:  responder,
		transcript: transcript,
		logger:     logger,
		metrics:    m,
		sessions:   make(map[string]*wsConn),
	}
}

// generateSessionID creates a random visitor/session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}
	page := r.URL.Query().Get("page")

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})

	// Replay history, or open a fresh session with the greeting.
	history, _ := h.history(r.Context(), sessionID, 50)
	if len(history) > 0 {
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: history})
	} else {
		greeting := h.greet(r.Context(), sessionID)
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "message", Message: &greeting})
	}

	wsc := &wsConn{conn: conn, done: make(chan struct{})}
	h.mu.Lock()
	h.sessions[sessionID] = wsc
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.sessions[sessionID] == wsc {
			delete(h.sessions, sessionID)
		}
		h.mu.Unlock()
		close(wsc.done)
	}()

	h.logger.Info("chat: connection opened", "session_id", sessionID, "page", page)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("chat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}
		if msg.Page == "" {
			msg.Page = page
		}

		// The webhook round-trip can take up to a minute; answer in the
		// background so pings keep flowing.
		go func(text, page string) {
			reply := h.processMessage(r.Context(), sessionID, page, text)
			h.sendToSession(sessionID, OutboundMessage{Type: "message", Message: &reply})
		}(msg.Text, msg.Page)
	}
}

// processMessage stores the user message, round-trips the responder, and
// stores the bot reply.
func (h *Handler) processMessage(ctx context.Context, sessionID, page, text string) Message {
	userMsg := Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: time.Now().UTC(),
	}

	history, err := h.history(ctx, sessionID, 0)
	if err != nil {
		h.logger.Error("chat: failed to load history", "error", err, "session_id", sessionID)
	}

	h.append(ctx, sessionID, userMsg)
	h.metrics.ObserveMessage(SenderUser)
	h.sendToSession(sessionID, OutboundMessage{Type: "typing"})

	reply := h.responder.Respond(ctx, sessionID, page, text, history)
	h.append(ctx, sessionID, reply)
	h.metrics.ObserveMessage(SenderBot)
	return reply
}

// greet seeds a new session with the canned greeting.
func (h *Handler) greet(ctx context.Context, sessionID string) Message {
	greeting := Message{
		ID:        uuid.NewString(),
		Text:      responses.Get(responses.KeyGreeting),
		Sender:    SenderBot,
		Timestamp: time.Now().UTC(),
	}
	h.append(ctx, sessionID, greeting)
	return greeting
}

func (h *Handler) append(ctx context.Context, sessionID string, msg Message) {
	if h.transcript == nil {
		return
	}
	if err := h.transcript.Append(ctx, sessionID, msg); err != nil {
		h.logger.Error("chat: failed to store message", "error", err, "session_id", sessionID)
	}
}

func (h *Handler) history(ctx context.Context, sessionID string, limit int64) ([]Message, error) {
	if h.transcript == nil {
		return nil, nil
	}
	return h.transcript.List(ctx, sessionID, limit)
}

// sendToSession sends a message to an active WebSocket session, if any.
func (h *Handler) sendToSession(sessionID string, msg OutboundMessage) {
	h.mu.RLock()
	wsc, ok := h.sessions[sessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	_ = websocket.JSON.Send(wsc.conn, msg)
}

// HandleMessage is the HTTP fallback for sending messages. Unlike the
// WebSocket path it blocks until the bot reply is ready.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Text      string `json:"text"`
		Page      string `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = generateSessionID()
	}

	reply := h.processMessage(r.Context(), req.SessionID, req.Page, req.Text)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(OutboundMessage{
		Type:      "message",
		SessionID: req.SessionID,
		Message:   &reply,
	})
}

// HandleHistory returns chat history for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	history, err := h.history(r.Context(), sessionID, 100)
	if err != nil {
		h.logger.Error("chat: failed to load history", "error", err, "session_id", sessionID)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []Message{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": history})
}
