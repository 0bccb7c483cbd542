package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	ctx := context.Background()

	assert.NoError(t, n.PublishBroadcast(ctx, Event{Type: EventPostCreated}))
	assert.NoError(t, n.PublishPost(ctx, 1, Event{Type: EventCommentCreated}))
	assert.NoError(t, n.StartSubscriber(ctx, func(string, Event) { t.Fatal("unexpected message") }))

	var nilNotifier *Notifier
	assert.NoError(t, nilNotifier.PublishBroadcast(ctx, Event{Type: EventPostCreated}))
}

func TestNotifier_PublishPost(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, PostChannel(42))
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := NewNotifier(rdb)
	require.NoError(t, n.PublishPost(ctx, 42, Event{
		Type:    EventPostReactionUpdated,
		Payload: map[string]any{"postId": 42, "likesCount": 3},
	}))

	recvCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(recvCtx)
	require.NoError(t, err)
	assert.Equal(t, "community:post:42", msg.Channel)

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, EventPostReactionUpdated, ev.Type)
	assert.Equal(t, float64(3), ev.Payload["likesCount"])
}

func TestNotifier_StartSubscriber(t *testing.T) {
	rdb := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type received struct {
		channel string
		ev      Event
	}
	got := make(chan received, 4)

	n := NewNotifier(rdb)
	require.NoError(t, n.StartSubscriber(ctx, func(channel string, ev Event) {
		got <- received{channel, ev}
	}))

	require.NoError(t, n.PublishBroadcast(ctx, Event{Type: EventPostCreated, Payload: map[string]any{"postId": 1}}))
	require.NoError(t, rdb.Publish(ctx, PostChannel(7), "not json").Err())
	require.NoError(t, n.PublishPost(ctx, 7, Event{Type: EventCommentCreated}))

	want := []received{
		{BroadcastChannel, Event{Type: EventPostCreated}},
		{"community:post:7", Event{Type: EventCommentCreated}},
	}
	for _, w := range want {
		select {
		case r := <-got:
			assert.Equal(t, w.channel, r.channel)
			assert.Equal(t, w.ev.Type, r.ev.Type)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", w.ev.Type)
		}
	}
}
