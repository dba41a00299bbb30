package service

import (
	"context"
	"strings"

	"squadsync/internal/models"
	"squadsync/internal/repository"
)

// UserService handles profile reads and updates plus per-user statistics.
type UserService struct {
	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	interestRepo repository.InterestRepository
}

// UpdateProfileInput is the payload for a profile update. Skills accepts
// either a list or a comma-separated string, matching the client contract.
type UpdateProfileInput struct {
	UserID      uint
	Bio         *string
	Skills      []string
	SkillsCSV   *string
	GithubURL   *string
	LinkedinURL *string
}

// UserStats summarizes a user's activity.
type UserStats struct {
	PostsCreated      int64 `json:"postsCreated"`
	InterestsSent     int   `json:"interestsSent"`
	InterestsReceived int64 `json:"interestsReceived"`
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	interestRepo repository.InterestRepository,
) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, interestRepo: interestRepo}
}

// GetUserByID returns the user or a not-found error.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields to the caller's profile.
// Nil pointers leave the corresponding field untouched.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}

	if in.Skills != nil {
		user.Skills = cleanSkills(in.Skills)
	} else if in.SkillsCSV != nil {
		user.Skills = cleanSkills(strings.Split(*in.SkillsCSV, ","))
	}

	// An empty incoming link keeps the stored URL; the client sends the
	// whole links object even when only one field was edited.
	if in.GithubURL != nil && *in.GithubURL != "" {
		user.GithubURL = *in.GithubURL
	}
	if in.LinkedinURL != nil && *in.LinkedinURL != "" {
		user.LinkedinURL = *in.LinkedinURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetStats returns the caller's post and interest counts.
func (s *UserService) GetStats(ctx context.Context, userID uint) (*UserStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	postsCreated, err := s.postRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	interestsReceived, err := s.interestRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		PostsCreated:      postsCreated,
		InterestsSent:     user.InterestsSent,
		InterestsReceived: interestsReceived,
	}, nil
}

func cleanSkills(raw []string) []string {
	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			skills = append(skills, t)
		}
	}
	return skills
}
