package repository

import (
	"context"
	"fmt"

	"bridgehead/internal/models"
	"bridgehead/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository is the like/repost ledger.
type InteractionRepository interface {
	Exists(ctx context.Context, postID, userID uint, kind models.InteractionType) (bool, error)
	Insert(ctx context.Context, postID, userID uint, kind models.InteractionType) (bool, error)
	Delete(ctx context.Context, postID, userID uint, kind models.InteractionType) (bool, error)
	StatesForPosts(ctx context.Context, userID uint, postIDs []uint) (map[uint]models.InteractionState, error)
}

type interactionRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewInteractionRepository creates a new ledger repository.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db, log: observability.NewRepoLogger("interactions")}
}

func (r *interactionRepository) Exists(ctx context.Context, postID, userID uint, kind models.InteractionType) (bool, error) {
	defer observability.TrackQuery("get", "interactions")()
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("post_id = ? AND user_id = ? AND type = ?", postID, userID, string(kind)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", kind, err)
	}
	return count > 0, nil
}

// Insert adds a ledger row. It reports false when the row already existed.
func (r *interactionRepository) Insert(ctx context.Context, postID, userID uint, kind models.InteractionType) (bool, error) {
	defer observability.TrackQuery("create", "interactions")()
	row := models.Interaction{PostID: postID, UserID: userID, Type: kind}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "create")
		return false, fmt.Errorf("insert %s: %w", kind, res.Error)
	}
	created := res.RowsAffected > 0
	if created {
		r.log.LogCreate(ctx, map[string]any{"post_id": postID, "user_id": userID, "type": kind})
	}
	return created, nil
}

// Delete removes a ledger row. It reports false when there was nothing to remove.
func (r *interactionRepository) Delete(ctx context.Context, postID, userID uint, kind models.InteractionType) (bool, error) {
	defer observability.TrackQuery("delete", "interactions")()
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ? AND type = ?", postID, userID, string(kind)).
		Delete(&models.Interaction{})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return false, fmt.Errorf("delete %s: %w", kind, res.Error)
	}
	removed := res.RowsAffected > 0
	if removed {
		r.log.LogDelete(ctx, map[string]any{"post_id": postID, "user_id": userID, "type": kind})
	}
	return removed, nil
}

// StatesForPosts loads the caller's likes and reposts for postIDs in one query.
func (r *interactionRepository) StatesForPosts(ctx context.Context, userID uint, postIDs []uint) (map[uint]models.InteractionState, error) {
	states := make(map[uint]models.InteractionState, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return states, nil
	}
	defer observability.TrackQuery("list", "interactions")()

	var rows []struct {
		PostID uint
		Type   string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Select("post_id, type").
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load interaction states: %w", err)
	}

	for _, row := range rows {
		st := states[row.PostID]
		switch models.InteractionType(row.Type) {
		case models.InteractionLike:
			st.Liked = true
		case models.InteractionRepost:
			st.Reposted = true
		}
		states[row.PostID] = st
	}
	return states, nil
}
