// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"squadsync/internal/cache"
	"squadsync/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailOrSRN(ctx context.Context, login string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	IncrementInterestsSent(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userCacheEntry is the cache projection of a user row. models.User hides
// PasswordHash from JSON, so caching the model directly would strip the
// credential on the way through Redis; this type keeps every column.
type userCacheEntry struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	SRN           string    `json:"srn"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Bio           string    `json:"bio"`
	Skills        []string  `json:"skills"`
	GithubURL     string    `json:"github_url"`
	LinkedinURL   string    `json:"linkedin_url"`
	InterestsSent int       `json:"interests_sent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newUserCacheEntry(u *models.User) userCacheEntry {
	return userCacheEntry{
		ID:            u.ID,
		Name:          u.Name,
		SRN:           u.SRN,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Bio:           u.Bio,
		Skills:        u.Skills,
		GithubURL:     u.GithubURL,
		LinkedinURL:   u.LinkedinURL,
		InterestsSent: u.InterestsSent,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (e *userCacheEntry) user() *models.User {
	return &models.User{
		ID:            e.ID,
		Name:          e.Name,
		SRN:           e.SRN,
		Email:         e.Email,
		PasswordHash:  e.PasswordHash,
		Bio:           e.Bio,
		Skills:        e.Skills,
		GithubURL:     e.GithubURL,
		LinkedinURL:   e.LinkedinURL,
		InterestsSent: e.InterestsSent,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var entry userCacheEntry

	err := cache.Aside(ctx, cache.UserKey(id), &entry, cache.UserTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		entry = newUserCacheEntry(&user)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return entry.user(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmailOrSRN looks a user up by the login identifier, matching the
// lowercased email or the uppercased SRN. Returns (nil, nil) when no user
// matches.
func (r *userRepository) GetByEmailOrSRN(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR srn = ?", strings.ToLower(login), strings.ToUpper(login)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User with this email or SRN already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// IncrementInterestsSent bumps the sent counter as a single column update so
// concurrent increments cannot lose each other.
func (r *userRepository) IncrementInterestsSent(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("interests_sent", gorm.Expr("interests_sent + ?", 1)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
