package server

import (
	"context"
	"log/slog"
	"time"

	"bridgehead/internal/models"
	"bridgehead/internal/notifications"
	"bridgehead/internal/observability"
)

const publishTimeout = 2 * time.Second

// publish sends ev after the response data is ready. Failures are logged and
// never reach the client.
func (s *Server) publish(ctx context.Context, postID uint, broadcast bool, ev notifications.Event) {
	if s.notifier == nil || s.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	var err error
	if broadcast {
		err = s.notifier.PublishBroadcast(ctx, ev)
	} else {
		err = s.notifier.PublishPost(ctx, postID, ev)
	}
	if err != nil {
		observability.Logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", ev.Type),
			slog.Any("post_id", postID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Server) publishPostCreated(ctx context.Context, post *models.Post) {
	s.publish(ctx, post.ID, true, notifications.Event{
		Type: notifications.EventPostCreated,
		Payload: map[string]any{
			"postId":    post.ID,
			"authorId":  post.AuthorID,
			"topic":     post.Topic,
			"createdAt": post.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	})
}

func (s *Server) publishReaction(ctx context.Context, postID, userID uint, res *models.ToggleResult) {
	s.publish(ctx, postID, false, notifications.Event{
		Type: notifications.EventPostReactionUpdated,
		Payload: map[string]any{
			"postId": postID,
			"userId": userID,
			"type":   string(res.Type),
			"active": res.Active,
			"count":  res.Count,
		},
	})
}

func (s *Server) publishCommentCreated(ctx context.Context, comment *models.Comment) {
	s.publish(ctx, comment.PostID, false, notifications.Event{
		Type: notifications.EventCommentCreated,
		Payload: map[string]any{
			"postId":    comment.PostID,
			"commentId": comment.ID,
			"authorId":  comment.AuthorID,
		},
	})
}
