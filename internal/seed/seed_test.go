package seed

import (
	"context"
	"testing"

	"bridgehead/internal/cache"
	"bridgehead/internal/database"
	"bridgehead/internal/models"
	"bridgehead/internal/repository"
	"bridgehead/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestSeeder_RunKeepsCountersConsistent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	s := NewSeeder(db, Options{
		Users:             6,
		Posts:             15,
		MaxLikesPerPost:   5,
		MaxRepliesPerPost: 2,
		MaxDays:           3,
		RandSeed:          42,
	})
	sum, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, sum.Users)
	assert.Equal(t, 15, sum.Posts)

	var likes int64
	require.NoError(t, db.Model(&models.Interaction{}).Where("type = ?", "like").Count(&likes).Error)
	assert.Equal(t, int64(sum.Likes), likes)

	var total struct{ Likes, Replies int64 }
	require.NoError(t, db.Model(&models.Post{}).
		Select("COALESCE(SUM(likes_count), 0) AS likes, COALESCE(SUM(replies_count), 0) AS replies").
		Scan(&total).Error)
	assert.Equal(t, int64(sum.Likes), total.Likes)
	assert.Equal(t, int64(sum.Replies), total.Replies)

	updated, err := service.NewReconcileService(repository.NewStore(db), cache.NewStore(nil)).Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, updated)

	var admin models.User
	require.NoError(t, db.Where("is_admin = ?", true).First(&admin).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(DefaultPassword)))

	require.NoError(t, s.ClearAll(ctx))
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}
