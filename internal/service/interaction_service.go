package service

import (
	"context"
	"strconv"

	"bridgehead/internal/cache"
	"bridgehead/internal/models"
	"bridgehead/internal/observability"
	"bridgehead/internal/repository"
)

// InteractionService toggles likes and reposts.
type InteractionService struct {
	store *repository.Store
	cache *cache.Store
}

func NewInteractionService(store *repository.Store, cacheStore *cache.Store) *InteractionService {
	return &InteractionService{store: store, cache: cacheStore}
}

// ToggleLike likes the post if the caller has not, and unlikes it otherwise.
func (s *InteractionService) ToggleLike(ctx context.Context, userID, postID uint) (*models.ToggleResult, error) {
	return s.toggle(ctx, userID, postID, models.InteractionLike)
}

// ToggleRepost reposts the post if the caller has not, and undoes it otherwise.
func (s *InteractionService) ToggleRepost(ctx context.Context, userID, postID uint) (*models.ToggleResult, error) {
	return s.toggle(ctx, userID, postID, models.InteractionRepost)
}

// toggle flips the ledger row and moves the matching counter in one
// transaction. The counter only moves when the ledger write changed a row,
// so concurrent toggles cannot push it away from the ledger.
func (s *InteractionService) toggle(ctx context.Context, userID, postID uint, kind models.InteractionType) (result *models.ToggleResult, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "InteractionService", "Toggle")
	defer func() { observability.EndSpan(span, err) }()

	column := models.CounterFor(kind)
	result = &models.ToggleResult{Type: kind}

	err = s.store.InTx(ctx, func(tx *repository.Store) error {
		if _, err := tx.Posts.GetActive(ctx, postID); err != nil {
			return postNotFound(err, postID)
		}

		exists, err := tx.Interactions.Exists(ctx, postID, userID, kind)
		if err != nil {
			return err
		}

		if exists {
			removed, err := tx.Interactions.Delete(ctx, postID, userID, kind)
			if err != nil {
				return err
			}
			if removed {
				if err := tx.Posts.AdjustCounter(ctx, postID, column, -1); err != nil {
					return err
				}
			}
			result.Active = false
		} else {
			created, err := tx.Interactions.Insert(ctx, postID, userID, kind)
			if err != nil {
				return err
			}
			if created {
				if err := tx.Posts.AdjustCounter(ctx, postID, column, 1); err != nil {
					return err
				}
			}
			result.Active = true
		}

		count, err := tx.Posts.CounterValue(ctx, postID, column)
		if err != nil {
			return err
		}
		result.Count = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePost(ctx, postID)
	observability.InteractionToggles.WithLabelValues(string(kind), strconv.FormatBool(result.Active)).Inc()
	return result, nil
}
