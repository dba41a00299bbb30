package service

import (
	"context"
	"strings"

	"squadsync/internal/mail"
	"squadsync/internal/middleware"
	"squadsync/internal/models"
	"squadsync/internal/validation"
)

// InviteService sends team-invitation emails to a list of recipients.
// Each recipient is attempted independently; individual failures do not
// abort the batch.
type InviteService struct {
	mailer mail.Mailer
}

// SendInvitesInput is the payload for a bulk invitation.
type SendInvitesInput struct {
	InviterName  string
	InviterEmail string
	TeamName     string
	Invitees     []string
	Message      string
	InviteLink   string
}

// InviteResult is the per-recipient outcome of a bulk invitation.
type InviteResult struct {
	To    string `json:"to"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewInviteService returns a new InviteService.
func NewInviteService(mailer mail.Mailer) *InviteService {
	return &InviteService{mailer: mailer}
}

// SendInvites validates the batch and sends one invitation per recipient,
// returning a per-recipient summary.
func (s *InviteService) SendInvites(ctx context.Context, in SendInvitesInput) ([]InviteResult, error) {
	if in.InviterName == "" || in.InviterEmail == "" || in.TeamName == "" || len(in.Invitees) == 0 {
		return nil, models.NewValidationError("Missing required fields: inviterName, inviterEmail, teamName, invitees")
	}
	if in.InviteLink == "" {
		return nil, models.NewValidationError("inviteLink is required")
	}

	for _, to := range in.Invitees {
		if err := validation.ValidateEmailAddress(to); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	results := make([]InviteResult, 0, len(in.Invitees))
	for _, to := range in.Invitees {
		params := mail.InviteParams{
			PersonalName: strings.SplitN(to, "@", 2)[0],
			InviterName:  in.InviterName,
			InviterEmail: in.InviterEmail,
			TeamName:     in.TeamName,
			Message:      in.Message,
			InviteLink:   in.InviteLink,
		}

		err := s.mailer.Send(to, mail.InviteSubject(params), mail.InviteText(params), mail.InviteHTML(params))
		if err != nil {
			middleware.EmailsSent.WithLabelValues("invite", "error").Inc()
			middleware.Logger.ErrorContext(ctx, "invite email failed", "to", to, "error", err.Error())
			results = append(results, InviteResult{To: to, OK: false, Error: err.Error()})
			continue
		}
		middleware.EmailsSent.WithLabelValues("invite", "ok").Inc()
		results = append(results, InviteResult{To: to, OK: true})
	}

	return results, nil
}
