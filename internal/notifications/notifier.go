// Package notifications publishes community events on Redis pub/sub so other
// processes (socket relays, workers) can fan them out.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"

	"bridgehead/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Event types.
const (
	EventPostCreated         = "post_created"
	EventPostReactionUpdated = "post_reaction_updated"
	EventCommentCreated      = "comment_created"
)

// BroadcastChannel carries events every subscriber sees.
const BroadcastChannel = "community:broadcast"

const postChannelPattern = "community:post:*"

// Event is the envelope published on every channel.
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// Notifier provides helpers to publish events into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier. A nil client turns every call into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PostChannel derives the Redis channel name for a post.
func PostChannel(postID uint) string {
	return "community:post:" + strconv.FormatUint(uint64(postID), 10)
}

func (n *Notifier) publish(ctx context.Context, channel string, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	return n.rdb.Publish(ctx, channel, payload).Err()
}

// PublishBroadcast sends an event to all subscribers.
func (n *Notifier) PublishBroadcast(ctx context.Context, ev Event) error {
	return n.publish(ctx, BroadcastChannel, ev)
}

// PublishPost sends an event to the subscribers of one post.
func (n *Notifier) PublishPost(ctx context.Context, postID uint, ev Event) error {
	return n.publish(ctx, PostChannel(postID), ev)
}

// StartSubscriber subscribes to the broadcast channel and every post channel
// and calls onMessage for each incoming message until ctx is done. It returns
// once the subscription is confirmed.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(channel string, ev Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, BroadcastChannel, postChannelPattern)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					observability.Logger.Warn("dropping malformed event",
						slog.String("channel", msg.Channel), slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							observability.Logger.Error("panic in event subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage(msg.Channel, ev)
				}()
			}
		}
	}()

	return nil
}
