package service

import (
	"context"

	"bridgehead/internal/cache"
	"bridgehead/internal/models"
	"bridgehead/internal/observability"
	"bridgehead/internal/repository"
)

// CommentService creates and lists replies.
type CommentService struct {
	store *repository.Store
	cache *cache.Store
}

type CreateReplyInput struct {
	UserID  uint
	PostID  uint
	Content string
	Media   []string
}

func NewCommentService(store *repository.Store, cacheStore *cache.Store) *CommentService {
	return &CommentService{store: store, cache: cacheStore}
}

// CreateReply stores a reply and bumps the parent's replies_count in one transaction.
func (s *CommentService) CreateReply(ctx context.Context, in CreateReplyInput) (comment *models.Comment, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "CommentService", "CreateReply")
	defer func() { observability.EndSpan(span, err) }()

	content, err := cleanContent(in.Content, MaxCommentContentLen)
	if err != nil {
		return nil, err
	}
	media, err := cleanMedia(in.Media, MaxCommentMedia)
	if err != nil {
		return nil, err
	}

	author, err := s.store.Users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, authorNotFound(err)
	}

	comment = &models.Comment{
		PostID:       in.PostID,
		AuthorID:     author.ID,
		AuthorName:   author.SnapshotName(),
		AuthorAvatar: author.Avatar,
		AuthorBadge:  author.Badge,
		Content:      content,
		Media:        media,
		Status:       models.StatusActive,
	}

	err = s.store.InTx(ctx, func(tx *repository.Store) error {
		if _, err := tx.Posts.GetActive(ctx, in.PostID); err != nil {
			return postNotFound(err, in.PostID)
		}
		if err := tx.Comments.Create(ctx, comment); err != nil {
			return err
		}
		return tx.Posts.AdjustCounter(ctx, in.PostID, models.ColumnReplies, 1)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePost(ctx, in.PostID)
	observability.RepliesCreated.Inc()
	return comment, nil
}

// ListReplies returns the active replies of an active post, oldest first.
func (s *CommentService) ListReplies(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.store.Posts.GetActive(ctx, postID); err != nil {
		return nil, postNotFound(err, postID)
	}
	return s.store.Comments.ListByPost(ctx, postID)
}
