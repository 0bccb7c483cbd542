// Command seed fills the database with demo users, posts and engagement.
package main

import (
	"context"
	"flag"
	"log"

	"bridgehead/internal/config"
	"bridgehead/internal/database"
	"bridgehead/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of users to create")
	numPosts := flag.Int("posts", defaults.Posts, "Number of posts to create")
	maxLikes := flag.Int("max-likes", defaults.MaxLikesPerPost, "Upper bound of likes per post")
	maxReplies := flag.Int("max-replies", defaults.MaxRepliesPerPost, "Upper bound of replies per post")
	randSeed := flag.Int64("rand-seed", 0, "Faker seed (0 picks a random one)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Seeding %d users, %d posts, clean=%v", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := defaults
	opts.Users = *numUsers
	opts.Posts = *numPosts
	opts.MaxLikesPerPost = *maxLikes
	opts.MaxRepliesPerPost = *maxReplies
	opts.RandSeed = *randSeed

	ctx := context.Background()
	s := seed.NewSeeder(db, opts)

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users, %d posts, %d likes, %d reposts, %d replies",
		sum.Users, sum.Posts, sum.Likes, sum.Reposts, sum.Replies)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
