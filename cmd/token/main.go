// Command token issues a bearer token for local testing.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"bridgehead/internal/config"
	"bridgehead/internal/middleware"
)

func main() {
	userID := flag.Uint("user", 0, "User ID to issue the token for")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	if *userID == 0 {
		log.Fatal("usage: token -user <id> [-ttl 24h]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to mint tokens in production")
	}

	tok, err := middleware.IssueToken(cfg.JWTSecret, uint(*userID), *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(tok)
}
