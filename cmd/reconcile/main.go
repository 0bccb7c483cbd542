// Command reconcile recomputes denormalized post counters from the interaction ledger.
package main

import (
	"context"
	"log"
	"time"

	"bridgehead/internal/cache"
	"bridgehead/internal/config"
	"bridgehead/internal/database"
	"bridgehead/internal/repository"
	"bridgehead/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis is only needed to drop stale cached posts.
	rdb := cache.InitRedis(cfg.RedisURL)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	svc := service.NewReconcileService(repository.NewStore(db), cache.NewStore(rdb))
	updated, err := svc.Reconcile(ctx)
	if err != nil {
		log.Fatalf("Reconcile failed: %v", err)
	}
	log.Printf("Reconciled counters on %d posts", updated)
}
