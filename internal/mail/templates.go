package mail

import (
	"fmt"
	"html"
	"strings"

	"squadsync/internal/models"
)

// InterestSubject builds the subject line for an interest alert.
func InterestSubject(interested *models.User) string {
	return fmt.Sprintf("%s is interested in your post!", interested.Name)
}

// InterestText builds the plain-text body of an interest alert sent to the
// post author, containing the interested student's contact card.
func InterestText(author, interested *models.User, post *models.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", author.Name)
	fmt.Fprintf(&b, "%s (%s) is interested in joining your team for %q!\n\n", interested.Name, interested.SRN, post.EventName)
	b.WriteString("Their details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", interested.Name)
	fmt.Fprintf(&b, "- SRN: %s\n", interested.SRN)
	fmt.Fprintf(&b, "- Email: %s\n", interested.Email)
	if len(interested.Skills) > 0 {
		fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(interested.Skills, ", "))
	}
	b.WriteString("\nReach out to them to discuss further!\n\nBest regards,\nSquadSync Team")
	return b.String()
}

// InterestHTML builds the HTML body of an interest alert.
func InterestHTML(author, interested *models.User, post *models.Post) string {
	skillsRow := ""
	if len(interested.Skills) > 0 {
		skillsRow = fmt.Sprintf("<p><strong>Skills:</strong> %s</p>",
			html.EscapeString(strings.Join(interested.Skills, ", ")))
	}
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #6366f1;">New Team Interest!</h2>
  <p>Hi %s,</p>
  <p><strong>%s</strong> is interested in joining your team for "<strong>%s</strong>"!</p>
  <div style="background: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #4b5563;">Contact Details:</h3>
    <p><strong>Name:</strong> %s</p>
    <p><strong>SRN:</strong> %s</p>
    <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
    %s
  </div>
  <p>Reach out to them to discuss collaboration!</p>
  <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">
    Best regards,<br>
    SquadSync Team
  </p>
</div>`,
		html.EscapeString(author.Name),
		html.EscapeString(interested.Name),
		html.EscapeString(post.EventName),
		html.EscapeString(interested.Name),
		html.EscapeString(interested.SRN),
		html.EscapeString(interested.Email),
		html.EscapeString(interested.Email),
		skillsRow,
	)
}

// InviteParams carries the fields rendered into a team invitation email.
type InviteParams struct {
	PersonalName string
	InviterName  string
	InviterEmail string
	TeamName     string
	Message      string
	InviteLink   string
}

// InviteSubject builds the subject line for a team invitation.
func InviteSubject(p InviteParams) string {
	return fmt.Sprintf("%s invited you to join %s on SquadSync", p.InviterName, p.TeamName)
}

// InviteText builds the plain-text body of a team invitation.
func InviteText(p InviteParams) string {
	return fmt.Sprintf("%s invited you to join %s on SquadSync. Accept here: %s",
		p.InviterName, p.TeamName, p.InviteLink)
}

// InviteHTML builds the HTML body of a team invitation.
func InviteHTML(p InviteParams) string {
	name := p.PersonalName
	if name == "" {
		name = "there"
	}
	messageBlock := ""
	if p.Message != "" {
		messageBlock = fmt.Sprintf(`<blockquote style="border-left:3px solid #eee; padding-left:10px; color:#444">%s</blockquote>`,
			html.EscapeString(p.Message))
	}
	return fmt.Sprintf(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Invitation to join %s</title>
</head>
<body style="font-family: Arial, sans-serif; line-height:1.4; color:#222;">
  <h2>You're invited to join <span style="color:#2b6cb0">%s</span></h2>
  <p>Hi %s,</p>
  <p>
    <strong>%s</strong> (<a href="mailto:%s">%s</a>) invited you to join the <strong>%s</strong> workspace on SquadSync.
  </p>
  %s
  <p><a href="%s">Accept the invitation</a></p>
  <hr/>
  <p style="font-size:12px; color:#666">If you didn't expect this invitation, you can ignore this email.</p>
</body>
</html>`,
		html.EscapeString(p.TeamName),
		html.EscapeString(p.TeamName),
		html.EscapeString(name),
		html.EscapeString(p.InviterName),
		html.EscapeString(p.InviterEmail),
		html.EscapeString(p.InviterEmail),
		html.EscapeString(p.TeamName),
		messageBlock,
		html.EscapeString(p.InviteLink),
	)
}
