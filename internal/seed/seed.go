// Package seed fills a development database with fake users, posts,
// interactions and replies.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bridgehead/internal/cache"
	"bridgehead/internal/models"
	"bridgehead/internal/observability"
	"bridgehead/internal/repository"
	"bridgehead/internal/service"
	"bridgehead/internal/topics"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user gets.
const DefaultPassword = "password123"

// Options configures the seeder.
type Options struct {
	Users             int
	Posts             int
	MaxLikesPerPost   int
	MaxRepliesPerPost int
	// MaxDays spreads post creation times over the last N days.
	MaxDays  int
	RandSeed int64
}

// DefaultOptions is a small but non-trivial data set.
func DefaultOptions() Options {
	return Options{
		Users:             25,
		Posts:             120,
		MaxLikesPerPost:   10,
		MaxRepliesPerPost: 4,
		MaxDays:           30,
	}
}

// Summary reports what a run created.
type Summary struct {
	Users   int
	Posts   int
	Likes   int
	Reposts int
	Replies int
}

// Seeder writes fake data. Interactions and replies go through the services
// so the denormalized counters stay in step with the ledger.
type Seeder struct {
	db           *gorm.DB
	store        *repository.Store
	interactions *service.InteractionService
	comments     *service.CommentService
	catalog      *topics.Catalog
	faker        *gofakeit.Faker
	opts         Options
}

// NewSeeder builds a Seeder over db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	store := repository.NewStore(db)
	noCache := cache.NewStore(nil)
	return &Seeder{
		db:           db,
		store:        store,
		interactions: service.NewInteractionService(store, noCache),
		comments:     service.NewCommentService(store, noCache),
		catalog:      topics.Default(),
		faker:        gofakeit.New(seed),
		opts:         opts,
	}
}

// ClearAll removes every community row and user.
func (s *Seeder) ClearAll(ctx context.Context) error {
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range []any{&models.Comment{}, &models.Interaction{}, &models.Post{}, &models.User{}} {
		if err := tx.Delete(m).Error; err != nil {
			return fmt.Errorf("clear %T: %w", m, err)
		}
	}
	return nil
}

// Run creates users, posts, then likes, reposts and replies.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	users, err := s.createUsers(ctx)
	if err != nil {
		return nil, err
	}
	sum.Users = len(users)
	if len(users) == 0 {
		return sum, nil
	}

	posts, err := s.createPosts(ctx, users)
	if err != nil {
		return nil, err
	}
	sum.Posts = len(posts)

	for _, p := range posts {
		if err := s.engage(ctx, p, users, sum); err != nil {
			return nil, err
		}
	}

	observability.Logger.InfoContext(ctx, "seed complete",
		slog.Int("users", sum.Users),
		slog.Int("posts", sum.Posts),
		slog.Int("likes", sum.Likes),
		slog.Int("reposts", sum.Reposts),
		slog.Int("replies", sum.Replies),
	)
	return sum, nil
}

func (s *Seeder) createUsers(ctx context.Context) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		u := &models.User{
			Username:    fmt.Sprintf("%s%d", s.faker.Username(), i),
			Email:       fmt.Sprintf("user%d@bridgehead.local", i),
			Password:    string(hash),
			DisplayName: s.faker.Name(),
			Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", s.faker.UUID()),
			Badge:       s.badge(),
			IsAdmin:     i == 0,
		}
		if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Seeder) badge() string {
	badges := []string{"", "", "", "verified", "landlord", "founder", "moderator"}
	return badges[s.faker.Rand.Intn(len(badges))]
}

func (s *Seeder) createPosts(ctx context.Context, users []*models.User) ([]*models.Post, error) {
	catalog := s.catalog.All()
	posts := make([]*models.Post, 0, s.opts.Posts)
	for i := 0; i < s.opts.Posts; i++ {
		author := users[s.faker.Rand.Intn(len(users))]
		p := &models.Post{
			AuthorID:     author.ID,
			AuthorName:   author.SnapshotName(),
			AuthorAvatar: author.Avatar,
			AuthorBadge:  author.Badge,
			Content:      s.faker.Paragraph(1, 3, 12, " "),
			Media:        s.media(),
			Topic:        catalog[s.faker.Rand.Intn(len(catalog))].Slug,
			Status:       models.StatusActive,
			CreatedAt:    s.createdAt(),
		}
		if err := s.store.Posts.Create(ctx, p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *Seeder) media() models.MediaList {
	n := s.faker.Rand.Intn(4) - 1
	out := models.MediaList{}
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("https://picsum.photos/seed/%s/800/600", s.faker.UUID()))
	}
	return out
}

func (s *Seeder) createdAt() time.Time {
	back := time.Duration(s.faker.Rand.Int63n(int64(s.opts.MaxDays) * int64(24*time.Hour)))
	return time.Now().UTC().Add(-back)
}

func (s *Seeder) engage(ctx context.Context, p *models.Post, users []*models.User, sum *Summary) error {
	order := s.faker.Rand.Perm(len(users))

	likes := s.upTo(s.opts.MaxLikesPerPost, len(users))
	for _, idx := range order[:likes] {
		if _, err := s.interactions.ToggleLike(ctx, users[idx].ID, p.ID); err != nil {
			return fmt.Errorf("seed like: %w", err)
		}
		sum.Likes++
	}

	// At most one repost per post in five.
	if s.faker.Rand.Intn(5) == 0 {
		u := users[order[len(order)-1]]
		if _, err := s.interactions.ToggleRepost(ctx, u.ID, p.ID); err != nil {
			return fmt.Errorf("seed repost: %w", err)
		}
		sum.Reposts++
	}

	replies := s.upTo(s.opts.MaxRepliesPerPost, s.opts.MaxRepliesPerPost)
	for i := 0; i < replies; i++ {
		u := users[s.faker.Rand.Intn(len(users))]
		_, err := s.comments.CreateReply(ctx, service.CreateReplyInput{
			UserID:  u.ID,
			PostID:  p.ID,
			Content: s.faker.Sentence(s.faker.Rand.Intn(12) + 3),
		})
		if err != nil {
			return fmt.Errorf("seed reply: %w", err)
		}
		sum.Replies++
	}
	return nil
}

// upTo returns a random count in [0, min(n, limit)].
func (s *Seeder) upTo(n, limit int) int {
	if n > limit {
		n = limit
	}
	if n <= 0 {
		return 0
	}
	return s.faker.Rand.Intn(n + 1)
}
