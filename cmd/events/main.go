// Command events prints realtime community events as they are published.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bridgehead/internal/cache"
	"bridgehead/internal/config"
	"bridgehead/internal/notifications"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rdb := cache.InitRedis(cfg.RedisURL)
	if rdb == nil {
		log.Fatalf("Redis at %s is not reachable", cfg.RedisURL)
	}
	defer func() { _ = rdb.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := notifications.NewNotifier(rdb)
	err = notifier.StartSubscriber(ctx, func(channel string, ev notifications.Event) {
		payload, _ := json.Marshal(ev.Payload)
		fmt.Printf("%-24s %-24s %s\n", channel, ev.Type, payload)
	})
	if err != nil {
		log.Fatalf("Subscribe failed: %v", err)
	}

	log.Println("Listening for community events, Ctrl+C to stop")
	<-ctx.Done()
}
