package repository

import (
	"context"

	"squadsync/internal/models"

	"gorm.io/gorm"
)

// InterestRepository defines persistence operations for interest records.
type InterestRepository interface {
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	Create(ctx context.Context, interest *models.Interest) error
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type interestRepository struct {
	db *gorm.DB
}

// NewInterestRepository returns a new InterestRepository implementation.
func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Interest{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the interest record. The composite unique index on
// (user_id, post_id) turns a lost race between two duplicate requests into
// a conflict here instead of a second row.
func (r *interestRepository) Create(ctx context.Context, interest *models.Interest) error {
	if err := r.db.WithContext(ctx).Create(interest).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already expressed interest in this post")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// CountByAuthor counts interest records targeting the given author's posts.
func (r *interestRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Interest{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
