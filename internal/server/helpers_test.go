package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"squadsync/internal/config"
	"squadsync/internal/database"
	"squadsync/internal/models"
	"squadsync/internal/repository"
	"squadsync/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMailer records outbound emails and can be told to fail.
type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m *fakeMailer) Send(to, subject, textBody, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Text: textBody, HTML: htmlBody})
	return nil
}

func (m *fakeMailer) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *fakeMailer) outbox() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test_secret",
		StudentEmailDomain: "stu.pes.edu",
	}
}

// newTestServer builds a Server over an in-memory sqlite database and a
// fake mailer, with the real routes registered.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB, *fakeMailer) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mailer := &fakeMailer{}
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	interestRepo := repository.NewInterestRepository(db)

	s := &Server{
		config:       testConfig(),
		db:           db,
		userRepo:     userRepo,
		postRepo:     postRepo,
		interestRepo: interestRepo,
		mailer:       mailer,
	}
	s.postService = service.NewPostService(postRepo, userRepo)
	s.interestService = service.NewInterestService(postRepo, userRepo, interestRepo, mailer)
	s.userService = service.NewUserService(userRepo, postRepo, interestRepo)
	s.inviteService = service.NewInviteService(mailer)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db, mailer
}

// seedUser inserts a student with the password "Password123!".
func seedUser(t *testing.T, db *gorm.DB, n int) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         fmt.Sprintf("Student %d", n),
		SRN:          fmt.Sprintf("PES1UG23CS%03d", n),
		Email:        fmt.Sprintf("student%d@stu.pes.edu", n),
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// bearerToken logs the user in and returns the issued token.
func bearerToken(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": "Password123!",
	}))
	require.Equal(t, http.StatusOK, status, "login failed: %v", body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
