package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"bridgehead/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ListFeed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	before := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t2 := before.Add(-time.Hour)
	t1 := before.Add(-2 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "community_posts" WHERE status = $1 AND topic = $2 AND created_at < $3 ORDER BY created_at DESC,id DESC LIMIT $4`)).
		WithArgs(models.StatusActive, "startups", before, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "media", "topic", "likes_count", "created_at"}).
			AddRow(2, "second", `["https://cdn.example.com/a.png"]`, "startups", 3, t2).
			AddRow(1, "first", `[]`, "startups", 0, t1))

	posts, err := repo.ListFeed(ctx, FeedQuery{Topic: "startups", Before: &before, Limit: 2})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, uint(2), posts[0].ID)
	assert.Equal(t, models.MediaList{"https://cdn.example.com/a.png"}, posts[0].Media)
	assert.Equal(t, 3, posts[0].LikesCount)
	assert.Empty(t, posts[1].Media)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListFeedUnfiltered(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "community_posts" WHERE status = $1 ORDER BY created_at DESC,id DESC LIMIT $2`)).
		WithArgs(models.StatusActive, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posts, err := repo.ListFeed(context.Background(), FeedQuery{Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AdjustCounter(t *testing.T) {
	tests := []struct {
		name   string
		column string
		delta  int
		sql    string
		args   []driver.Value
	}{
		{
			name:   "increment likes",
			column: models.ColumnLikes,
			delta:  1,
			sql:    `UPDATE "community_posts" SET "likes_count"=likes_count + $1 WHERE id = $2`,
			args:   []driver.Value{1, 7},
		},
		{
			name:   "decrement replies floors at zero",
			column: models.ColumnReplies,
			delta:  -1,
			sql:    `UPDATE "community_posts" SET "replies_count"=CASE WHEN replies_count > 0 THEN replies_count - 1 ELSE 0 END WHERE id = $1`,
			args:   []driver.Value{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(tt.sql)).
				WithArgs(tt.args...).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			err := repo.AdjustCounter(context.Background(), 7, tt.column, tt.delta)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_AdjustCounterRejectsUnknownColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	err := repo.AdjustCounter(context.Background(), 1, "id; DROP TABLE users", 1)
	assert.ErrorIs(t, err, ErrUnknownCounter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetActive(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "community_posts" WHERE id = $1 AND status = $2 ORDER BY "community_posts"."id" LIMIT $3`)).
		WithArgs(5, models.StatusActive, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_name", "status"}).AddRow(5, "Ada", models.StatusActive))

	post, err := repo.GetActive(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ada", post.AuthorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_RecountAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE community_posts SET`)).
		WithArgs("like", "repost", models.StatusActive, "like", "repost", models.StatusActive).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.RecountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
