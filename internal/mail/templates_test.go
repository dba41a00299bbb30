package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"squadsync/internal/models"
)

func TestInterestTemplates(t *testing.T) {
	author := &models.User{Name: "Priya Sharma", SRN: "PES1UG23CS101", Email: "priya@stu.pes.edu"}
	interested := &models.User{
		Name:   "Rahul Verma",
		SRN:    "PES1UG23CS202",
		Email:  "rahul@stu.pes.edu",
		Skills: []string{"Go", "React"},
	}
	post := &models.Post{EventName: "Hackathon 2026"}

	subject := InterestSubject(interested)
	assert.Equal(t, "Rahul Verma is interested in your post!", subject)

	text := InterestText(author, interested, post)
	assert.Contains(t, text, "Hi Priya Sharma,")
	assert.Contains(t, text, "Rahul Verma (PES1UG23CS202)")
	assert.Contains(t, text, `"Hackathon 2026"`)
	assert.Contains(t, text, "- Email: rahul@stu.pes.edu")
	assert.Contains(t, text, "- Skills: Go, React")

	html := InterestHTML(author, interested, post)
	assert.Contains(t, html, "Hackathon 2026")
	assert.Contains(t, html, "mailto:rahul@stu.pes.edu")
	assert.Contains(t, html, "<strong>Skills:</strong> Go, React")
}

func TestInterestText_NoSkills(t *testing.T) {
	author := &models.User{Name: "A"}
	interested := &models.User{Name: "B", SRN: "PES1UG23CS001", Email: "b@stu.pes.edu"}
	post := &models.Post{EventName: "CTF"}

	text := InterestText(author, interested, post)
	assert.NotContains(t, text, "Skills:")
}

func TestInterestHTML_EscapesUserContent(t *testing.T) {
	author := &models.User{Name: "A"}
	interested := &models.User{Name: "<script>alert(1)</script>", SRN: "PES1UG23CS001", Email: "x@stu.pes.edu"}
	post := &models.Post{EventName: "Hack & Build"}

	html := InterestHTML(author, interested, post)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Hack &amp; Build")
}

func TestInviteTemplates(t *testing.T) {
	p := InviteParams{
		PersonalName: "Asha",
		InviterName:  "Dev Patel",
		InviterEmail: "dev@stu.pes.edu",
		TeamName:     "Team Rocket",
		Message:      "Join us for the hackathon!",
		InviteLink:   "https://squadsync.example.com/invite/abc123",
	}

	assert.Equal(t, "Dev Patel invited you to join Team Rocket on SquadSync", InviteSubject(p))

	text := InviteText(p)
	assert.Contains(t, text, "Dev Patel invited you to join Team Rocket")
	assert.Contains(t, text, p.InviteLink)

	html := InviteHTML(p)
	assert.Contains(t, html, "Hi Asha,")
	assert.Contains(t, html, "Join us for the hackathon!")
	assert.Contains(t, html, `href="https://squadsync.example.com/invite/abc123"`)
	assert.Contains(t, html, "mailto:dev@stu.pes.edu")
}

func TestInviteHTML_Defaults(t *testing.T) {
	p := InviteParams{
		InviterName:  "Dev",
		InviterEmail: "dev@stu.pes.edu",
		TeamName:     "Squad",
		InviteLink:   "https://example.com/i/1",
	}

	html := InviteHTML(p)
	assert.Contains(t, html, "Hi there,")
	assert.NotContains(t, html, "<blockquote")
}
