// Package bootstrap wires configuration into live dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"bridgehead/internal/cache"
	"bridgehead/internal/config"
	"bridgehead/internal/database"
	"bridgehead/internal/models"
	"bridgehead/internal/observability"
	"bridgehead/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo fills an empty development database with fake data.
	SeedDemo bool
}

// InitRuntime connects to the database and Redis. The Redis client is nil
// when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := cache.InitRedis(cfg.RedisURL)

	if opts.SeedDemo {
		if err := seedIfEmpty(context.Background(), cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, rdb, nil
}

func seedIfEmpty(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg.IsProduction() {
		return nil
	}
	var n int64
	if err := db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	observability.Logger.InfoContext(ctx, "empty database, seeding demo data", slog.String("env", cfg.Env))
	_, err := seed.NewSeeder(db, seed.DefaultOptions()).Run(ctx)
	return err
}
