package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendList(t *testing.T) {
	store := NewMemoryTranscriptStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, "s1", Message{ID: fmt.Sprintf("m%d", i), Text: "hi", Sender: SenderUser}))
	}

	msgs, err := store.List(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 5)
	assert.Equal(t, "m0", msgs[0].ID)

	msgs, err = store.List(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m3", msgs[0].ID)
	assert.Equal(t, "m4", msgs[1].ID)
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	store := NewMemoryTranscriptStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "a", Message{ID: "1"}))
	msgs, err := store.List(ctx, "b", 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMemoryStoreCapsTranscript(t *testing.T) {
	store := NewMemoryTranscriptStore()
	ctx := context.Background()

	for i := 0; i < maxTranscriptMessages+10; i++ {
		require.NoError(t, store.Append(ctx, "s1", Message{ID: fmt.Sprintf("m%d", i)}))
	}

	msgs, err := store.List(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Len(t, msgs, maxTranscriptMessages)
	assert.Equal(t, "m10", msgs[0].ID)
}

func newTestRedisStore(t *testing.T) *RedisTranscriptStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTranscriptStore(client)
}

func TestRedisStoreAppendList(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	msg := Message{
		ID:        "m1",
		Text:      "hello",
		Sender:    SenderUser,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Append(ctx, "s1", msg))
	require.NoError(t, store.Append(ctx, "s1", Message{ID: "m2", Text: "world", Sender: SenderBot}))

	msgs, err := store.List(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, SenderBot, msgs[1].Sender)
}

func TestRedisStoreListLimit(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Append(ctx, "s1", Message{ID: fmt.Sprintf("m%d", i)}))
	}

	msgs, err := store.List(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m2", msgs[0].ID)
}

func TestRedisStoreFillsDefaults(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", Message{Text: "no id"}))
	msgs, err := store.List(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.NotEmpty(t, msgs[0].ID)
	assert.False(t, msgs[0].Timestamp.IsZero())
}

func TestRedisStoreRequiresSession(t *testing.T) {
	store := newTestRedisStore(t)
	assert.Error(t, store.Append(context.Background(), "", Message{}))
}

func TestRedisStoreNilSafe(t *testing.T) {
	var store *RedisTranscriptStore
	assert.NoError(t, store.Append(context.Background(), "s1", Message{}))
	msgs, err := store.List(context.Background(), "s1", 0)
	assert.NoError(t, err)
	assert.Nil(t, msgs)
}
