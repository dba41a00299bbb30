package server

import (
	"squadsync/internal/models"
	"squadsync/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendInvites handles POST /api/invite. Each recipient is attempted
// independently; the response carries a per-recipient summary and the
// overall status is 200 even with partial failures.
func (s *Server) SendInvites(c *fiber.Ctx) error {
	var req struct {
		InviterName  string   `json:"inviterName"`
		InviterEmail string   `json:"inviterEmail"`
		TeamName     string   `json:"teamName"`
		Invitees     []string `json:"invitees"`
		Message      string   `json:"message"`
		InviteLink   string   `json:"inviteLink"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	results, err := s.inviteService.SendInvites(c.Context(), service.SendInvitesInput{
		InviterName:  req.InviterName,
		InviterEmail: req.InviterEmail,
		TeamName:     req.TeamName,
		Invitees:     req.Invitees,
		Message:      req.Message,
		InviteLink:   req.InviteLink,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"summary": results,
	})
}

// SendEmail handles POST /api/send-email, a raw relay through the mail
// gateway.
func (s *Server) SendEmail(c *fiber.Ctx) error {
	var req struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Text    string `json:"text"`
		HTML    string `json:"html"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.To == "" || req.Subject == "" || (req.Text == "" && req.HTML == "") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing required fields: to, subject, and text/html"))
	}

	if err := s.mailer.Send(req.To, req.Subject, req.Text, req.HTML); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewDeliveryError(err))
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Email sent successfully",
	})
}
