package service

import (
	"context"
	"log/slog"

	"bridgehead/internal/cache"
	"bridgehead/internal/observability"
	"bridgehead/internal/repository"
)

// ReconcileService rebuilds the denormalized post counters from source rows.
type ReconcileService struct {
	store *repository.Store
	cache *cache.Store
}

func NewReconcileService(store *repository.Store, cacheStore *cache.Store) *ReconcileService {
	return &ReconcileService{store: store, cache: cacheStore}
}

// Reconcile recounts likes, reposts and replies for every post and returns
// how many posts were corrected.
func (s *ReconcileService) Reconcile(ctx context.Context) (updated int64, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "ReconcileService", "Reconcile")
	defer func() { observability.EndSpan(span, err) }()

	updated, err = s.store.Posts.RecountAll(ctx)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		s.cache.InvalidateAllPosts(ctx)
		s.cache.InvalidateFeedHeads(ctx)
		observability.CountersReconciled.Add(float64(updated))
	}
	observability.Logger.InfoContext(ctx, "counters reconciled", slog.Int64("updated", updated))
	return updated, nil
}
