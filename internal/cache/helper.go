package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bridgehead/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Key formats.
const (
	PostKeyPrefix     = "post:%d"
	FeedHeadKeyPrefix = "feed:head:%s:%d"
)

// TTLs.
const (
	PostTTL     = 5 * time.Minute
	FeedHeadTTL = 15 * time.Second
)

// PostKey is the cache key for a single post.
func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// FeedHeadKey is the cache key for the anonymous first feed page of a topic
// ("all" when unfiltered) at a given limit.
func FeedHeadKey(topic string, limit int) string {
	if topic == "" {
		topic = "all"
	}
	return fmt.Sprintf(FeedHeadKeyPrefix, topic, limit)
}

// Store is a JSON cache on top of Redis. A Store with a nil client misses
// every read and drops every write.
type Store struct {
	rdb *redis.Client
}

// NewStore wraps rdb, which may be nil.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Enabled reports whether a Redis client is attached.
func (s *Store) Enabled() bool {
	return s != nil && s.rdb != nil
}

// GetJSON reads key into dest. It returns (false, nil) on a miss.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores v under key for ttl.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, ttl).Err()
}

// Aside serves key from Redis when present. On a miss, or when Redis fails,
// it calls fetch (which must fill dest) and stores the result best-effort.
func (s *Store) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := s.GetJSON(ctx, key, dest)
	if err != nil {
		observability.Logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
	if found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	if err := s.SetJSON(ctx, key, dest, ttl); err != nil {
		observability.Logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

// Invalidate deletes keys, logging failures.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if !s.Enabled() || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		observability.Logger.WarnContext(ctx, "cache invalidation failed",
			slog.Any("keys", keys), slog.String("error", err.Error()))
	}
}

// InvalidatePost drops the cached copy of a post.
func (s *Store) InvalidatePost(ctx context.Context, postID uint) {
	s.Invalidate(ctx, PostKey(postID))
}

// InvalidateFeedHeads drops every cached first feed page.
func (s *Store) InvalidateFeedHeads(ctx context.Context) {
	s.invalidatePattern(ctx, "feed:head:*")
}

// InvalidateAllPosts drops every cached post.
func (s *Store) InvalidateAllPosts(ctx context.Context) {
	s.invalidatePattern(ctx, "post:*")
}

func (s *Store) invalidatePattern(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		observability.Logger.WarnContext(ctx, "cache scan failed",
			slog.String("pattern", pattern), slog.String("error", err.Error()))
		return
	}
	s.Invalidate(ctx, keys...)
}
