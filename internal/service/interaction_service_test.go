package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"bridgehead/internal/cache"
	"bridgehead/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike_TwiceRestoresCounter(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	liker := f.user(t, "liker")
	post := f.post(t, author, "startups", time.Now())

	res, err := f.interactions.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, res.Active)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 1, f.reload(t, post.ID).LikesCount)

	res, err = f.interactions.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, 0, f.reload(t, post.ID).LikesCount)
	assert.Equal(t, int64(0), f.ledgerCount(t, post.ID, models.InteractionLike))
}

func TestToggleRepost_IndependentOfLikes(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	u := f.user(t, "u")
	post := f.post(t, author, "general", time.Now())

	_, err := f.interactions.ToggleLike(ctx, u.ID, post.ID)
	require.NoError(t, err)
	res, err := f.interactions.ToggleRepost(ctx, u.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InteractionRepost, res.Type)
	assert.True(t, res.Active)
	assert.Equal(t, 1, res.Count)

	got := f.reload(t, post.ID)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.RepostsCount)
	assert.Equal(t, 0, got.RepliesCount)
}

func TestToggle_UnknownOrInactivePost(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	u := f.user(t, "u")

	_, err := f.interactions.ToggleLike(ctx, u.ID, 9999)
	assertAppErrorCode(t, err, models.CodeNotFound)

	flagged := f.post(t, author, "general", time.Now())
	require.NoError(t, f.db.Model(flagged).Update("status", models.StatusFlagged).Error)

	_, err = f.interactions.ToggleRepost(ctx, u.ID, flagged.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
	assert.Equal(t, int64(0), f.ledgerCount(t, flagged.ID, models.InteractionRepost))
}

func TestToggleLike_ConcurrentUsersKeepCounterConsistent(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	post := f.post(t, author, "general", time.Now())

	const users = 12
	likers := make([]*models.User, users)
	for i := range likers {
		likers[i] = f.user(t, fmt.Sprintf("liker%d", i))
	}

	var wg sync.WaitGroup
	for _, u := range likers {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := f.interactions.ToggleLike(ctx, userID, post.ID)
			assert.NoError(t, err)
		}(u.ID)
	}
	wg.Wait()

	got := f.reload(t, post.ID)
	assert.Equal(t, users, got.LikesCount)
	assert.Equal(t, int64(users), f.ledgerCount(t, post.ID, models.InteractionLike))
}

func TestToggleLike_ConcurrentSameUserMatchesLedger(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	u := f.user(t, "clicker")
	post := f.post(t, author, "general", time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.interactions.ToggleLike(ctx, u.ID, post.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ledger := f.ledgerCount(t, post.ID, models.InteractionLike)
	assert.LessOrEqual(t, ledger, int64(1))
	assert.Equal(t, int(ledger), f.reload(t, post.ID).LikesCount)
}

func TestToggleLike_InvalidatesCachedPost(t *testing.T) {
	mr, store := newTestRedis(t)
	f := newFixture(t, store, "")
	author := f.user(t, "author")
	u := f.user(t, "u")
	post := f.post(t, author, "general", time.Now())

	_, err := f.feed.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	_, err = f.interactions.ToggleLike(ctx, u.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.PostKey(post.ID)))

	got, err := f.feed.GetPost(ctx, post.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.True(t, got.IsLiked)
}
