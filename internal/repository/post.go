package repository

import (
	"context"
	"errors"

	"squadsync/internal/models"

	"gorm.io/gorm"
)

// Post list filters. Values match the filterType query parameter the
// client sends.
const (
	FilterAll         = "All"
	FilterAvailable   = "Available"
	FilterCreatedByMe = "Created By Me"
	FilterStopped     = "Stopped"
)

// listLimit caps every post listing, newest first.
const listLimit = 50

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context, filter string, userID uint) ([]models.Post, error)
	SetStatus(ctx context.Context, id uint, status string) error
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.Status == "" {
		post.Status = models.PostStatusActive
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// List returns posts for the given filter, newest first, capped at 50.
// userID scopes the "Created By Me" filter; with a zero userID that filter
// yields no rows.
func (r *postRepository) List(ctx context.Context, filter string, userID uint) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})

	switch filter {
	case FilterAvailable:
		q = q.Where("status = ?", models.PostStatusActive)
	case FilterCreatedByMe:
		if userID == 0 {
			return []models.Post{}, nil
		}
		q = q.Where("author_id = ? AND status <> ?", userID, models.PostStatusDeleted)
	case FilterStopped:
		q = q.Where("status <> ?", models.PostStatusActive)
	default: // FilterAll
		q = q.Where("status <> ?", models.PostStatusDeleted)
	}

	var posts []models.Post
	err := q.Preload("Author").
		Order("created_at DESC").
		Limit(listLimit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) SetStatus(ctx context.Context, id uint, status string) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
