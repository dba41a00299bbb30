package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"squadsync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(t *testing.T, method, path string, token string, body any) *http.Request {
	t.Helper()
	req := jsonRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestPostAndInterestFlow(t *testing.T) {
	_, app, db, mailer := newTestServer(t)

	alice := seedUser(t, db, 1)
	bob := seedUser(t, db, 2)
	carol := seedUser(t, db, 3)

	aliceToken := bearerToken(t, app, alice.Email)
	bobToken := bearerToken(t, app, bob.SRN)
	carolToken := bearerToken(t, app, carol.Email)

	// Alice announces she is looking for teammates.
	status, body := doJSON(t, app, authedRequest(t, http.MethodPost, "/api/posts", aliceToken, map[string]string{
		"eventName": "Hackathon 2026",
		"eventDate": "2026-09-15",
		"text":      "Need a frontend dev",
	}))
	require.Equal(t, http.StatusCreated, status, "create post: %v", body)
	post := body["post"].(map[string]any)
	postID := uint(post["id"].(float64))
	assert.Equal(t, "active", post["status"])
	assert.Equal(t, alice.SRN, post["author"].(map[string]any)["srn"])

	interestPath := fmt.Sprintf("/api/posts/%d/interest", postID)

	// Bob expresses interest; Alice gets his contact card by email.
	status, body = doJSON(t, app, authedRequest(t, http.MethodPost, interestPath, bobToken, nil))
	require.Equal(t, http.StatusOK, status, "express interest: %v", body)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["interestsSent"])

	outbox := mailer.outbox()
	require.Len(t, outbox, 1)
	assert.Equal(t, alice.Email, outbox[0].To)
	assert.Contains(t, outbox[0].Text, bob.SRN)
	assert.Contains(t, outbox[0].Text, bob.Email)

	// A second attempt from Bob is a conflict and sends nothing.
	status, body = doJSON(t, app, authedRequest(t, http.MethodPost, interestPath, bobToken, nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeConflict, body["code"])
	assert.Len(t, mailer.outbox(), 1)

	// Alice cannot be interested in her own post.
	status, body = doJSON(t, app, authedRequest(t, http.MethodPost, interestPath, aliceToken, nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeValidation, body["code"])

	// A failed delivery leaves no trace; retrying after recovery works.
	mailer.fail(errors.New("smtp: connection refused"))
	status, body = doJSON(t, app, authedRequest(t, http.MethodPost, interestPath, carolToken, nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, models.CodeDelivery, body["code"])

	var interestCount int64
	require.NoError(t, db.Model(&models.Interest{}).Where("user_id = ?", carol.ID).Count(&interestCount).Error)
	assert.Zero(t, interestCount, "no interest row for an undelivered email")

	mailer.fail(nil)
	status, _ = doJSON(t, app, authedRequest(t, http.MethodPost, interestPath, carolToken, nil))
	assert.Equal(t, http.StatusOK, status)

	// Only the owner can close the post.
	markPath := fmt.Sprintf("/api/posts/%d/mark-found", postID)
	status, body = doJSON(t, app, authedRequest(t, http.MethodPatch, markPath, bobToken, nil))
	assert.Equal(t, http.StatusForbidden, status)

	status, body = doJSON(t, app, authedRequest(t, http.MethodPatch, markPath, aliceToken, nil))
	require.Equal(t, http.StatusOK, status, "mark found: %v", body)
	assert.Equal(t, true, body["post"].(map[string]any)["found_teammate"])

	// A closed post accepts no further interest.
	dave := seedUser(t, db, 4)
	daveToken := bearerToken(t, app, dave.Email)
	status, body = doJSON(t, app, authedRequest(t, http.MethodPost, interestPath, daveToken, nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeConflict, body["code"])

	// The closed post drops out of Available but stays in All.
	status, body = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/posts?filterType=Available", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["posts"])

	status, body = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"], 1)

	// Deleting hides the post from every public listing.
	status, _ = doJSON(t, app, authedRequest(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), aliceToken, nil))
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["posts"])

	// Acting on the deleted post reads as not found, even for the owner.
	status, body = doJSON(t, app, authedRequest(t, http.MethodPatch, markPath, aliceToken, nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetPosts_CreatedByMe(t *testing.T) {
	_, app, db, _ := newTestServer(t)

	alice := seedUser(t, db, 1)
	bob := seedUser(t, db, 2)
	aliceToken := bearerToken(t, app, alice.Email)
	bobToken := bearerToken(t, app, bob.Email)

	status, _ := doJSON(t, app, authedRequest(t, http.MethodPost, "/api/posts", aliceToken, map[string]string{
		"eventName": "CTF", "text": "need a pwn player",
	}))
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, app, authedRequest(t, http.MethodPost, "/api/posts", bobToken, map[string]string{
		"eventName": "Hackathon", "text": "need a designer",
	}))
	require.Equal(t, http.StatusCreated, status)

	path := fmt.Sprintf("/api/posts?filterType=%s&userId=%d", "Created+By+Me", alice.ID)
	status, body := doJSON(t, app, jsonRequest(t, http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, status)
	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, "CTF", posts[0].(map[string]any)["event_name"])

	// Without a userId the filter matches nothing rather than everything.
	status, body = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/posts?filterType=Created+By+Me", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["posts"])
}

func TestCreatePost_Validation(t *testing.T) {
	_, app, db, _ := newTestServer(t)

	alice := seedUser(t, db, 1)
	token := bearerToken(t, app, alice.Email)

	t.Run("missing fields", func(t *testing.T) {
		status, body := doJSON(t, app, authedRequest(t, http.MethodPost, "/api/posts", token, map[string]string{
			"eventName": "Hackathon",
		}))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, models.CodeValidation, body["code"])
	})

	t.Run("bad event date", func(t *testing.T) {
		status, body := doJSON(t, app, authedRequest(t, http.MethodPost, "/api/posts", token, map[string]string{
			"eventName": "Hackathon",
			"eventDate": "next tuesday",
			"text":      "need help",
		}))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, models.CodeValidation, body["code"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		status, _ := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/posts", map[string]string{
			"eventName": "Hackathon", "text": "need help",
		}))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("bad post id", func(t *testing.T) {
		status, body := doJSON(t, app, authedRequest(t, http.MethodPost, "/api/posts/abc/interest", token, nil))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["message"], "Invalid post ID")
	})
}
