package models

import (
	"time"
)

// Post status values. A post starts active, its owner can mark it found
// (teammate located, no further interest accepted) or delete it. There is
// no transition out of deleted.
const (
	PostStatusActive  = "active"
	PostStatusFound   = "found"
	PostStatusDeleted = "deleted"
)

// Post is a "looking for teammates" announcement for an event.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	AuthorID  uint       `gorm:"not null;index" json:"author_id"`
	Author    User       `gorm:"foreignKey:AuthorID" json:"-"`
	EventName string     `gorm:"not null" json:"event_name"`
	EventDate *time.Time `json:"event_date,omitempty"`
	// Description is serialized as "text", matching the client contract.
	Description string    `gorm:"type:text;not null" json:"text"`
	Status      string    `gorm:"not null;default:active;index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FoundTeammate reports whether the post's owner has closed it after
// finding a teammate.
func (p *Post) FoundTeammate() bool {
	return p.Status == PostStatusFound
}

// Deleted reports whether the post has been soft-deleted by its owner.
func (p *Post) Deleted() bool {
	return p.Status == PostStatusDeleted
}

// PostAuthor is the author identity embedded in post responses.
type PostAuthor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	SRN  string `json:"srn"`
	// Username mirrors the SRN; the client renders it as the handle.
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PostView is a post enriched with its author's public identity, the shape
// returned by the posts API.
type PostView struct {
	ID            uint       `json:"id"`
	EventName     string     `json:"event_name"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	Text          string     `json:"text"`
	Status        string     `json:"status"`
	FoundTeammate bool       `json:"found_teammate"`
	Author        PostAuthor `json:"author"`
	CreatedAt     time.Time  `json:"created_at"`
}

// View builds the API representation of the post using the given author.
func (p *Post) View(author *User) PostView {
	v := PostView{
		ID:            p.ID,
		EventName:     p.EventName,
		EventDate:     p.EventDate,
		Text:          p.Description,
		Status:        p.Status,
		FoundTeammate: p.FoundTeammate(),
		CreatedAt:     p.CreatedAt,
	}
	if author != nil {
		v.Author = PostAuthor{
			ID:       author.ID,
			Name:     author.Name,
			SRN:      author.SRN,
			Username: author.SRN,
			Email:    author.Email,
		}
	}
	return v
}
