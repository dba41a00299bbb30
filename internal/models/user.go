// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a student account in the SquadSync application.
// SRN and email are case-normalized before persistence: SRN uppercase,
// email lowercase.
type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"not null" json:"name"`
	SRN          string   `gorm:"column:srn;unique;not null;index" json:"srn"`
	Email        string   `gorm:"unique;not null;index" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Bio          string   `json:"bio"`
	Skills       []string `gorm:"serializer:json" json:"skills"`
	GithubURL    string   `json:"github_url"`
	LinkedinURL  string   `json:"linkedin_url"`
	// InterestsSent counts interest notifications this user has successfully
	// sent. Incremented only after the email was delivered.
	InterestsSent int        `gorm:"not null;default:0" json:"interests_sent"`
	Interests     []Interest `gorm:"foreignKey:UserID" json:"interests,omitempty"`
	Posts         []Post     `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PublicProfile is the externally visible subset of a user record.
type PublicProfile struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	SRN         string   `json:"srn"`
	Email       string   `json:"email"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	GithubURL   string   `json:"github_url,omitempty"`
	LinkedinURL string   `json:"linkedin_url,omitempty"`
}

// Public returns the user's public profile, excluding the password hash
// and bookkeeping fields.
func (u *User) Public() PublicProfile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return PublicProfile{
		ID:          u.ID,
		Name:        u.Name,
		SRN:         u.SRN,
		Email:       u.Email,
		Bio:         u.Bio,
		Skills:      skills,
		GithubURL:   u.GithubURL,
		LinkedinURL: u.LinkedinURL,
	}
}

// Interest records that a user expressed interest in a post. One row per
// (user, post) pair; the composite unique index makes the duplicate check
// atomic at the store layer.
type Interest struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_interests_user_post" json:"user_id"`
	PostID uint `gorm:"not null;uniqueIndex:idx_interests_user_post" json:"post_id"`
	// AuthorID is the post owner at the time the interest was sent. Kept
	// denormalized the way the source system logged it.
	AuthorID uint      `gorm:"not null" json:"author_id"`
	SentAt   time.Time `gorm:"not null" json:"sent_at"`
}
