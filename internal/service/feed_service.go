package service

import (
	"context"
	"strconv"
	"time"

	"bridgehead/internal/cache"
	"bridgehead/internal/featureflags"
	"bridgehead/internal/models"
	"bridgehead/internal/observability"
	"bridgehead/internal/repository"
	"bridgehead/internal/topics"
)

// Feed page size bounds used when none are configured.
const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50
)

// FeedService serves the community feed and creates posts.
type FeedService struct {
	store        *repository.Store
	topics       *topics.Catalog
	cache        *cache.Store
	flags        *featureflags.Manager
	defaultLimit int
	maxLimit     int
}

// FeedOptions configures page sizes. Zero values fall back to 20/50.
type FeedOptions struct {
	DefaultLimit int
	MaxLimit     int
}

type ListFeedInput struct {
	Topic         string
	Cursor        string
	Limit         int
	CurrentUserID uint
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Media   []string
	Topic   string
}

func NewFeedService(
	store *repository.Store,
	catalog *topics.Catalog,
	cacheStore *cache.Store,
	flags *featureflags.Manager,
	opts FeedOptions,
) *FeedService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultFeedLimit
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = MaxFeedLimit
	}
	return &FeedService{
		store:        store,
		topics:       catalog,
		cache:        cacheStore,
		flags:        flags,
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
	}
}

// Topics returns the topic catalog.
func (s *FeedService) Topics() []topics.Topic {
	return s.topics.All()
}

func (s *FeedService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// ParseCursor parses an RFC 3339 timestamp, fractional seconds allowed.
func ParseCursor(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, models.NewValidationError("Invalid cursor: expected an RFC 3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}

// FormatCursor renders a post creation time as a cursor.
func FormatCursor(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ListFeed returns one page of active posts, newest first. Posts created at
// exactly the cursor instant are skipped; ties are not disambiguated.
func (s *FeedService) ListFeed(ctx context.Context, in ListFeedInput) (page *models.FeedPage, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FeedService", "ListFeed")
	defer func() { observability.EndSpan(span, err) }()

	limit := s.clampLimit(in.Limit)

	before, err := ParseCursor(in.Cursor)
	if err != nil {
		return nil, err
	}

	topic := topics.Normalize(in.Topic)
	if topic != "" && !s.topics.Valid(topic) {
		return nil, models.NewValidationError("Unknown topic: " + topic)
	}

	q := repository.FeedQuery{Topic: topic, Before: before, Limit: limit}
	var posts []models.Post

	if in.CurrentUserID == 0 && before == nil && s.flags.Enabled(featureflags.FeedCache, 0) {
		err = s.cache.Aside(ctx, cache.FeedHeadKey(topic, limit), &posts, cache.FeedHeadTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.store.Posts.ListFeed(ctx, q)
			return fetchErr
		})
	} else {
		posts, err = s.store.Posts.ListFeed(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}

	if err := s.annotate(ctx, in.CurrentUserID, posts); err != nil {
		return nil, err
	}

	page = &models.FeedPage{Data: posts}
	if len(posts) == limit {
		next := FormatCursor(posts[len(posts)-1].CreatedAt)
		page.NextCursor = &next
	}

	observability.FeedPagesServed.WithLabelValues(strconv.FormatBool(in.CurrentUserID != 0)).Inc()
	return page, nil
}

// annotate sets IsLiked/IsReposted for the caller with one ledger query.
func (s *FeedService) annotate(ctx context.Context, userID uint, posts []models.Post) error {
	if userID == 0 || len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	states, err := s.store.Interactions.StatesForPosts(ctx, userID, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		st := states[posts[i].ID]
		posts[i].IsLiked = st.Liked
		posts[i].IsReposted = st.Reposted
	}
	return nil
}

// GetPost returns one active post, served from the cache when possible.
func (s *FeedService) GetPost(ctx context.Context, postID, currentUserID uint) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FeedService", "GetPost")
	defer func() { observability.EndSpan(span, err) }()

	var p models.Post
	err = s.cache.Aside(ctx, cache.PostKey(postID), &p, cache.PostTTL, func() error {
		found, fetchErr := s.store.Posts.GetActive(ctx, postID)
		if fetchErr != nil {
			return postNotFound(fetchErr, postID)
		}
		p = *found
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The cached copy may predate a status change.
	if p.Status != models.StatusActive {
		return nil, models.NewNotFoundError("Post", postID)
	}

	one := []models.Post{p}
	if err := s.annotate(ctx, currentUserID, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// CreatePost validates and stores a post, snapshotting the author's display fields.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "FeedService", "CreatePost")
	defer func() { observability.EndSpan(span, err) }()

	content, err := cleanContent(in.Content, MaxPostContentLen)
	if err != nil {
		return nil, err
	}
	media, err := cleanMedia(in.Media, MaxPostMedia)
	if err != nil {
		return nil, err
	}

	topic := topics.Normalize(in.Topic)
	if topic == "" {
		topic = s.topics.DefaultSlug()
	}
	if !s.topics.Valid(topic) {
		return nil, models.NewValidationError("Unknown topic: " + topic)
	}

	author, err := s.store.Users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, authorNotFound(err)
	}

	post = &models.Post{
		AuthorID:     author.ID,
		AuthorName:   author.SnapshotName(),
		AuthorAvatar: author.Avatar,
		AuthorBadge:  author.Badge,
		Content:      content,
		Media:        media,
		Topic:        topic,
		Status:       models.StatusActive,
	}
	if err := s.store.Posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.cache.InvalidateFeedHeads(ctx)
	observability.PostsCreated.WithLabelValues(topic).Inc()
	return post, nil
}
