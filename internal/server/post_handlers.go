package server

import (
	"time"

	"squadsync/internal/models"
	"squadsync/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts?filterType=&userId=
// Public; the userId query parameter scopes the "Created By Me" filter.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	filter := c.Query("filterType")
	userID := uint(c.QueryInt("userId", 0))

	posts, err := s.postService.ListPosts(c.Context(), filter, userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"posts": posts,
	})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		EventName string `json:"eventName"`
		EventDate string `json:"eventDate"`
		Text      string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var eventDate *time.Time
	if req.EventDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			parsed, err = time.Parse("2006-01-02", req.EventDate)
		}
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid eventDate format"))
		}
		eventDate = &parsed
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:  callerID(c),
		EventName: req.EventName,
		EventDate: eventDate,
		Text:      req.Text,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":   true,
		"post": post,
	})
}

// ExpressInterest handles POST /api/posts/:id/interest
func (s *Server) ExpressInterest(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "post ID")
	if err != nil {
		return nil
	}

	interestsSent, err := s.interestService.ExpressInterest(c.Context(), postID, callerID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Interest notification sent successfully",
		"stats": fiber.Map{
			"interestsSent": interestsSent,
		},
	})
}

// MarkFound handles PATCH /api/posts/:id/mark-found
func (s *Server) MarkFound(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "post ID")
	if err != nil {
		return nil
	}

	post, err := s.postService.MarkFound(c.Context(), postID, callerID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Post marked as found teammate",
		"post": fiber.Map{
			"id":             post.ID,
			"status":         post.Status,
			"found_teammate": post.FoundTeammate(),
		},
	})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "post ID")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), postID, callerID(c)); err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Post deleted successfully",
	})
}
