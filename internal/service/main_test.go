package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"bridgehead/internal/cache"
	"bridgehead/internal/database"
	"bridgehead/internal/featureflags"
	"bridgehead/internal/models"
	"bridgehead/internal/repository"
	"bridgehead/internal/topics"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *cache.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, cache.NewStore(rdb)
}

type fixture struct {
	db           *gorm.DB
	store        *repository.Store
	feed         *FeedService
	interactions *InteractionService
	comments     *CommentService
	reconcile    *ReconcileService
}

func newFixture(t *testing.T, cacheStore *cache.Store, flags string) *fixture {
	t.Helper()
	if cacheStore == nil {
		cacheStore = cache.NewStore(nil)
	}
	db := newTestDB(t)
	store := repository.NewStore(db)
	return &fixture{
		db:           db,
		store:        store,
		feed:         NewFeedService(store, topics.Default(), cacheStore, featureflags.NewManager(flags), FeedOptions{}),
		interactions: NewInteractionService(store, cacheStore),
		comments:     NewCommentService(store, cacheStore),
		reconcile:    NewReconcileService(store, cacheStore),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{
		Username:    name,
		Email:       name + "@example.com",
		Password:    "x",
		DisplayName: "Display " + name,
		Avatar:      "https://cdn.example.com/" + name + ".png",
		Badge:       "member",
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) post(t *testing.T, author *models.User, topic string, createdAt time.Time) *models.Post {
	t.Helper()
	p := &models.Post{
		AuthorID:   author.ID,
		AuthorName: author.SnapshotName(),
		Content:    "post at " + createdAt.Format(time.RFC3339),
		Topic:      topic,
		Status:     models.StatusActive,
		CreatedAt:  createdAt.UTC(),
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) reload(t *testing.T, id uint) models.Post {
	t.Helper()
	var p models.Post
	require.NoError(t, f.db.First(&p, id).Error)
	return p
}

func (f *fixture) ledgerCount(t *testing.T, postID uint, kind models.InteractionType) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Interaction{}).
		Where("post_id = ? AND type = ?", postID, string(kind)).Count(&n).Error)
	return n
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

var ctx = context.Background()
