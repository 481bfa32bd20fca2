package chat

import (
	"context"
	"sync"
)

// maxTranscriptMessages caps each session log so abandoned sessions do not
// grow without bound.
const maxTranscriptMessages = 250

// MemoryTranscriptStore keeps transcripts in process memory. This is the
// default store; messages vanish on restart, which matches the
// session-scoped lifetime of the widget.
type MemoryTranscriptStore struct {
	mu       sync.RWMutex
	sessions map[string][]Message
}

func NewMemoryTranscriptStore() *MemoryTranscriptStore {
	return &MemoryTranscriptStore{sessions: make(map[string][]Message)}
}

func (s *MemoryTranscriptStore) Append(_ context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(s.sessions[sessionID], msg)
	if len(msgs) > maxTranscriptMessages {
		msgs = msgs[len(msgs)-maxTranscriptMessages:]
	}
	s.sessions[sessionID] = msgs
	return nil
}

func (s *MemoryTranscriptStore) List(_ context.Context, sessionID string, limit int64) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.sessions[sessionID]
	if limit > 0 && int64(len(msgs)) > limit {
		msgs = msgs[int64(len(msgs))-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
