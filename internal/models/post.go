package models

import "time"

// Post represents a blog post owned by exactly one user.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	// Tags is populated by the repository through the post_tags join; it is
	// not a GORM association so that ownership stays with the explicit
	// PostTag rows.
	Tags []Tag `gorm:"-" json:"tags,omitempty"`
	// CreatedAt is set once at creation and never updated.
	CreatedAt time.Time `json:"created_at"`
}

// FriendlyDate renders the creation time the way the post pages display it.
func (p Post) FriendlyDate() string {
	return p.CreatedAt.Format("Mon Jan 2 2006, 3:04 PM")
}
