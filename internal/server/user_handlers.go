package server

import (
	"encoding/json"

	"squadsync/internal/models"
	"squadsync/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id (public profile)
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "user ID")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":   true,
		"user": user.Public(),
	})
}

// UpdateMyProfile handles PUT /api/users/profile.
// Skills may arrive as a JSON array or a comma-separated string; absent
// fields are left untouched.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Bio    *string         `json:"bio"`
		Skills json.RawMessage `json:"skills"`
		Links  *struct {
			Github   string `json:"github"`
			Linkedin string `json:"linkedin"`
		} `json:"links"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateProfileInput{
		UserID: callerID(c),
		Bio:    req.Bio,
	}

	if len(req.Skills) > 0 {
		var asList []string
		if err := json.Unmarshal(req.Skills, &asList); err == nil {
			in.Skills = asList
		} else {
			var asString string
			if err := json.Unmarshal(req.Skills, &asString); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("skills must be a list or a comma-separated string"))
			}
			in.SkillsCSV = &asString
		}
	}

	if req.Links != nil {
		in.GithubURL = &req.Links.Github
		in.LinkedinURL = &req.Links.Linkedin
	}

	user, err := s.userService.UpdateProfile(c.Context(), in)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

// GetMyStats handles GET /api/users/stats/me
func (s *Server) GetMyStats(c *fiber.Ctx) error {
	stats, err := s.userService.GetStats(c.Context(), callerID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"stats": stats,
	})
}
