package service

import (
	"testing"
	"time"

	"bridgehead/internal/cache"
	"bridgehead/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_RepairsDivergedCounters(t *testing.T) {
	mr, store := newTestRedis(t)
	f := newFixture(t, store, "")
	author := f.user(t, "author")
	fan := f.user(t, "fan")

	drifted := f.post(t, author, "general", time.Now())
	healthy := f.post(t, author, "general", time.Now().Add(-time.Minute))

	_, err := f.interactions.ToggleLike(ctx, fan.ID, drifted.ID)
	require.NoError(t, err)
	_, err = f.comments.CreateReply(ctx, CreateReplyInput{UserID: fan.ID, PostID: drifted.ID, Content: "nice"})
	require.NoError(t, err)
	_, err = f.interactions.ToggleRepost(ctx, fan.ID, healthy.ID)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Post{}).Where("id = ?", drifted.ID).
		UpdateColumns(map[string]any{"likes_count": 40, "replies_count": 0, "reposts_count": 3}).Error)

	_, err = f.feed.GetPost(ctx, drifted.ID, 0)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.PostKey(drifted.ID)))

	updated, err := f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	assert.False(t, mr.Exists(cache.PostKey(drifted.ID)))

	got := f.reload(t, drifted.ID)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.RepliesCount)
	assert.Equal(t, 0, got.RepostsCount)
	assert.Equal(t, 1, f.reload(t, healthy.ID).RepostsCount)

	updated, err = f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestReconcile_IgnoresInactiveReplies(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	post := f.post(t, author, "general", time.Now())

	c, err := f.comments.CreateReply(ctx, CreateReplyInput{UserID: author.ID, PostID: post.ID, Content: "spam"})
	require.NoError(t, err)
	require.NoError(t, f.db.Model(c).Update("status", models.StatusFlagged).Error)

	updated, err := f.reconcile.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	assert.Equal(t, 0, f.reload(t, post.ID).RepliesCount)
}
