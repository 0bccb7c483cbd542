package server

import (
	"bridgehead/internal/middleware"
	"bridgehead/internal/models"
	"bridgehead/internal/service"

	"github.com/gofiber/fiber/v2"
)

// createPostRequest is the body of POST /community/posts.
type createPostRequest struct {
	Content string   `json:"content"`
	Media   []string `json:"media"`
	Topic   string   `json:"topic"`
}

// createReplyRequest is the body of POST /community/posts/{id}/reply.
type createReplyRequest struct {
	Content string   `json:"content"`
	Media   []string `json:"media"`
}

// GetFeed handles GET /api/community/posts
// @Summary List the community feed
// @Description Active posts, newest first, cursor-paginated by creation time.
// @Tags community
// @Produce json
// @Param topic query string false "Topic slug"
// @Param cursor query string false "RFC 3339 timestamp from a previous nextCursor"
// @Param limit query int false "Page size (default 20, max 50)"
// @Success 200 {object} models.FeedPage
// @Failure 400 {object} models.ErrorResponse
// @Router /community/posts [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)

	page, err := s.feedService.ListFeed(c.UserContext(), service.ListFeedInput{
		Topic:         c.Query("topic"),
		Cursor:        c.Query("cursor"),
		Limit:         c.QueryInt("limit", 0),
		CurrentUserID: userID,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/community/posts/:id
// @Summary Get one post
// @Tags community
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /community/posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	post, err := s.feedService.GetPost(c.UserContext(), id, userID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/community/posts
// @Summary Create a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createPostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /community/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.feedService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:  userID,
		Content: req.Content,
		Media:   req.Media,
		Topic:   req.Topic,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	s.publishPostCreated(c.UserContext(), post)
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ToggleLike handles PUT /api/community/posts/:id/like
// @Summary Like or unlike a post
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /community/posts/{id}/like [put]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := middleware.UserID(c)

	res, err := s.interactionService.ToggleLike(c.UserContext(), userID, postID)
	if err != nil {
		return s.respondError(c, err)
	}

	s.publishReaction(c.UserContext(), postID, userID, res)

	message := "Unliked"
	if res.Active {
		message = "Liked"
	}
	return c.JSON(fiber.Map{
		"message":    message,
		"isLiked":    res.Active,
		"likesCount": res.Count,
	})
}

// ToggleRepost handles PUT /api/community/posts/:id/repost
// @Summary Repost or un-repost a post
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /community/posts/{id}/repost [put]
func (s *Server) ToggleRepost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := middleware.UserID(c)

	res, err := s.interactionService.ToggleRepost(c.UserContext(), userID, postID)
	if err != nil {
		return s.respondError(c, err)
	}

	s.publishReaction(c.UserContext(), postID, userID, res)

	message := "Unreposted"
	if res.Active {
		message = "Reposted"
	}
	return c.JSON(fiber.Map{
		"message":      message,
		"isReposted":   res.Active,
		"repostsCount": res.Count,
	})
}

// CreateReply handles POST /api/community/posts/:id/reply
// @Summary Reply to a post
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param body body createReplyRequest true "Reply"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /community/posts/{id}/reply [post]
func (s *Server) CreateReply(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := middleware.UserID(c)

	var req createReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateReply(c.UserContext(), service.CreateReplyInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
		Media:   req.Media,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	s.publishCommentCreated(c.UserContext(), comment)
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/community/posts/:id/comments
// @Summary List replies to a post, oldest first
// @Tags community
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /community/posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListReplies(c.UserContext(), postID)
	if err != nil {
		return s.respondError(c, err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return c.JSON(fiber.Map{"data": comments})
}

// GetTopics handles GET /api/community/topics
// @Summary List the topic catalog
// @Tags community
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /community/topics [get]
func (s *Server) GetTopics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": s.feedService.Topics()})
}
