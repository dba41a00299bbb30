// Package service contains the application's domain logic, sitting between
// HTTP handlers and repositories.
package service

import (
	"context"
	"time"

	"squadsync/internal/models"
	"squadsync/internal/repository"
)

// PostService manages the team-request post lifecycle: creation, listing
// with status filters, and the owner-only found/delete transitions.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	AuthorID  uint
	EventName string
	EventDate *time.Time
	Text      string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// ListPosts returns post views for the given filter, newest first, capped
// at 50, each enriched with its author's public identity.
func (s *PostService) ListPosts(ctx context.Context, filter string, userID uint) ([]models.PostView, error) {
	posts, err := s.postRepo.List(ctx, filter, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, posts[i].View(&posts[i].Author))
	}
	return views, nil
}

// CreatePost validates and persists a new active post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostView, error) {
	if in.EventName == "" || in.Text == "" {
		return nil, models.NewValidationError("Missing required fields: eventName, text")
	}

	const maxEventNameLen = 200
	const maxTextLen = 5000
	if len(in.EventName) > maxEventNameLen {
		return nil, models.NewValidationError("Event name too long (max 200 characters)")
	}
	if len(in.Text) > maxTextLen {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}

	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:    in.AuthorID,
		EventName:   in.EventName,
		EventDate:   in.EventDate,
		Description: in.Text,
		Status:      models.PostStatusActive,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	view := post.View(author)
	return &view, nil
}

// MarkFound closes the post after its owner found a teammate. Marking an
// already-found post again is accepted. Deleted posts are treated as
// absent.
func (s *PostService) MarkFound(ctx context.Context, postID, callerID uint) (*models.Post, error) {
	post, err := s.ownedPost(ctx, postID, callerID, "You can only mark your own posts")
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.SetStatus(ctx, post.ID, models.PostStatusFound); err != nil {
		return nil, err
	}
	post.Status = models.PostStatusFound
	return post, nil
}

// DeletePost soft-deletes the post. There is no transition out of deleted.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint) error {
	post, err := s.ownedPost(ctx, postID, callerID, "You can only delete your own posts")
	if err != nil {
		return err
	}

	return s.postRepo.SetStatus(ctx, post.ID, models.PostStatusDeleted)
}

func (s *PostService) ownedPost(ctx context.Context, postID, callerID uint, forbiddenMsg string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Deleted() {
		return nil, models.NewNotFoundError("Post", postID)
	}
	if post.AuthorID != callerID {
		return nil, models.NewForbiddenError(forbiddenMsg)
	}
	return post, nil
}
