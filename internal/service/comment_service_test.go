package service

import (
	"testing"
	"time"

	"bridgehead/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReply_IncrementsRepliesCount(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	replier := f.user(t, "replier")
	post := f.post(t, author, "general", time.Now())

	first, err := f.comments.CreateReply(ctx, CreateReplyInput{UserID: replier.ID, PostID: post.ID, Content: "first!"})
	require.NoError(t, err)
	assert.Equal(t, "Display replier", first.AuthorName)
	assert.Equal(t, post.ID, first.PostID)

	_, err = f.comments.CreateReply(ctx, CreateReplyInput{UserID: author.ID, PostID: post.ID, Content: "thanks <i>all</i>"})
	require.NoError(t, err)

	assert.Equal(t, 2, f.reload(t, post.ID).RepliesCount)

	replies, err := f.comments.ListReplies(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "first!", replies[0].Content)
	assert.Equal(t, "thanks all", replies[1].Content)
}

func TestCreateReply_MissingPostLeavesNoRow(t *testing.T) {
	f := newFixture(t, nil, "")
	replier := f.user(t, "replier")

	_, err := f.comments.CreateReply(ctx, CreateReplyInput{UserID: replier.ID, PostID: 777, Content: "hello?"})
	assertAppErrorCode(t, err, models.CodeNotFound)

	var n int64
	require.NoError(t, f.db.Model(&models.Comment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateReply_Validation(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	post := f.post(t, author, "general", time.Now())

	_, err := f.comments.CreateReply(ctx, CreateReplyInput{UserID: author.ID, PostID: post.ID, Content: ""})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = f.comments.CreateReply(ctx, CreateReplyInput{UserID: 999, PostID: post.ID, Content: "ghost"})
	assertAppErrorCode(t, err, models.CodeUnauthorized)

	assert.Equal(t, 0, f.reload(t, post.ID).RepliesCount)
}

func TestListReplies_InactivePost(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	post := f.post(t, author, "general", time.Now())
	require.NoError(t, f.db.Model(post).Update("status", models.StatusDeleted).Error)

	_, err := f.comments.ListReplies(ctx, post.ID)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestListReplies_EmptyIsNotNil(t *testing.T) {
	f := newFixture(t, nil, "")
	author := f.user(t, "author")
	post := f.post(t, author, "general", time.Now())

	replies, err := f.comments.ListReplies(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)
}
