package service

import (
	"context"
	"time"

	"squadsync/internal/mail"
	"squadsync/internal/middleware"
	"squadsync/internal/models"
	"squadsync/internal/repository"
)

// InterestService records one-time-per-post interest actions and notifies
// the post author by email. The notification must succeed before any
// bookkeeping is persisted, so a counter is never incremented for a mail
// the author never received.
type InterestService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	interestRepo repository.InterestRepository
	mailer       mail.Mailer
}

// NewInterestService returns a new InterestService.
func NewInterestService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	interestRepo repository.InterestRepository,
	mailer mail.Mailer,
) *InterestService {
	return &InterestService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		interestRepo: interestRepo,
		mailer:       mailer,
	}
}

// ExpressInterest sends the post author the caller's contact card and logs
// the interest. Returns the caller's updated sent counter.
func (s *InterestService) ExpressInterest(ctx context.Context, postID, callerID uint) (int, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post.Deleted() {
		return 0, models.NewNotFoundError("Post", postID)
	}
	if post.FoundTeammate() {
		return 0, models.NewConflictError("This post is no longer looking for teammates")
	}

	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		return 0, err
	}
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return 0, err
	}

	if post.AuthorID == callerID {
		return 0, models.NewValidationError("Cannot express interest in your own post")
	}

	exists, err := s.interestRepo.Exists(ctx, callerID, postID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, models.NewConflictError("You have already expressed interest in this post")
	}

	subject := mail.InterestSubject(caller)
	text := mail.InterestText(author, caller, post)
	html := mail.InterestHTML(author, caller, post)

	if err := s.mailer.Send(author.Email, subject, text, html); err != nil {
		middleware.EmailsSent.WithLabelValues("interest", "error").Inc()
		return 0, models.NewDeliveryError(err)
	}
	middleware.EmailsSent.WithLabelValues("interest", "ok").Inc()

	// Bookkeeping happens only after a successful send. A duplicate racing
	// past the Exists check above dies on the unique index here.
	interest := &models.Interest{
		UserID:   callerID,
		PostID:   postID,
		AuthorID: post.AuthorID,
		SentAt:   time.Now(),
	}
	if err := s.interestRepo.Create(ctx, interest); err != nil {
		return 0, err
	}
	if err := s.userRepo.IncrementInterestsSent(ctx, callerID); err != nil {
		return 0, err
	}

	// Re-read after the atomic increment; the pre-send read may be stale.
	updated, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return 0, err
	}
	return updated.InterestsSent, nil
}
