// Package repository provides the data access layer for the community API.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bridgehead/internal/models"
	"bridgehead/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownCounter is returned for a column that is not a post counter.
var ErrUnknownCounter = errors.New("unknown counter column")

// FeedQuery selects one page of the feed.
type FeedQuery struct {
	Topic  string
	Before *time.Time
	Limit  int
}

// PostRepository defines the post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetActive(ctx context.Context, id uint) (*models.Post, error)
	ListFeed(ctx context.Context, q FeedQuery) ([]models.Post, error)
	AdjustCounter(ctx context.Context, postID uint, column string, delta int) error
	CounterValue(ctx context.Context, postID uint, column string) (int, error)
	RecountAll(ctx context.Context) (int64, error)
}

type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("community_posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "community_posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return fmt.Errorf("create post: %w", err)
	}
	r.log.LogCreate(ctx, map[string]any{"id": post.ID, "author_id": post.AuthorID, "topic": post.Topic})
	return nil
}

// GetByID returns the post regardless of status, or gorm.ErrRecordNotFound.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get", "community_posts")()
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetActive returns the post only while its status is active.
func (r *postRepository) GetActive(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get", "community_posts")()
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.StatusActive).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListFeed returns active posts newest first, strictly older than q.Before when set.
func (r *postRepository) ListFeed(ctx context.Context, q FeedQuery) ([]models.Post, error) {
	defer observability.TrackQuery("list", "community_posts")()

	query := r.db.WithContext(ctx).Where("status = ?", models.StatusActive)
	if q.Topic != "" {
		query = query.Where("topic = ?", q.Topic)
	}
	if q.Before != nil {
		query = query.Where("created_at < ?", *q.Before)
	}

	posts := make([]models.Post, 0, q.Limit)
	err := query.Order("created_at DESC").Order("id DESC").Limit(q.Limit).Find(&posts).Error
	if err != nil {
		r.log.LogError(ctx, err, "list_feed")
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return posts, nil
}

func counterColumn(column string) (string, error) {
	switch column {
	case models.ColumnLikes, models.ColumnReplies, models.ColumnReposts:
		return column, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCounter, column)
}

// AdjustCounter moves a counter by +1 or -1 in SQL. Decrements stop at zero.
func (r *postRepository) AdjustCounter(ctx context.Context, postID uint, column string, delta int) error {
	col, err := counterColumn(column)
	if err != nil {
		return err
	}
	defer observability.TrackQuery("adjust_counter", "community_posts")()

	var expr clause.Expr
	switch {
	case delta > 0:
		expr = gorm.Expr(col+" + ?", delta)
	case delta < 0:
		expr = gorm.Expr("CASE WHEN " + col + " > 0 THEN " + col + " - 1 ELSE 0 END")
	default:
		return nil
	}

	err = r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn(col, expr).Error
	if err != nil {
		r.log.LogError(ctx, err, "adjust_counter")
		return fmt.Errorf("adjust %s: %w", col, err)
	}
	r.log.LogUpdate(ctx, map[string]any{"id": postID, "column": col, "delta": delta})
	return nil
}

// CounterValue reads the current value of one counter.
func (r *postRepository) CounterValue(ctx context.Context, postID uint, column string) (int, error) {
	col, err := counterColumn(column)
	if err != nil {
		return 0, err
	}
	var value int
	err = r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(col).
		Where("id = ?", postID).
		Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", col, err)
	}
	return value, nil
}

const recountSQL = `
UPDATE community_posts SET
	likes_count = (SELECT COUNT(*) FROM interactions WHERE interactions.post_id = community_posts.id AND interactions.type = ?),
	reposts_count = (SELECT COUNT(*) FROM interactions WHERE interactions.post_id = community_posts.id AND interactions.type = ?),
	replies_count = (SELECT COUNT(*) FROM community_comments WHERE community_comments.post_id = community_posts.id AND community_comments.status = ?)
WHERE
	likes_count <> (SELECT COUNT(*) FROM interactions WHERE interactions.post_id = community_posts.id AND interactions.type = ?)
	OR reposts_count <> (SELECT COUNT(*) FROM interactions WHERE interactions.post_id = community_posts.id AND interactions.type = ?)
	OR replies_count <> (SELECT COUNT(*) FROM community_comments WHERE community_comments.post_id = community_posts.id AND community_comments.status = ?)`

// RecountAll recomputes every counter from the ledger and comment rows and
// returns how many posts changed.
func (r *postRepository) RecountAll(ctx context.Context) (int64, error) {
	defer observability.TrackQuery("recount", "community_posts")()
	like, repost := string(models.InteractionLike), string(models.InteractionRepost)
	res := r.db.WithContext(ctx).Exec(recountSQL,
		like, repost, models.StatusActive,
		like, repost, models.StatusActive,
	)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "recount")
		return 0, fmt.Errorf("recount counters: %w", res.Error)
	}
	r.log.LogUpdate(ctx, map[string]any{"recounted": res.RowsAffected})
	return res.RowsAffected, nil
}
