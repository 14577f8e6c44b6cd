// Package models contains data structures for the application's domain models.
package models

// DefaultImageURL is the placeholder used when a user submits no image URL.
const DefaultImageURL = "https://icon-library.com/images/default-user-icon/default-user-icon-4.jpg"

// User represents an author on the blog.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	// ImgURL is never stored empty; see service.UserService.
	ImgURL string `gorm:"not null" json:"img_url"`
	Posts  []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// FullName returns the user's display name. Value receiver so templates can
// call it on users stored by value in slices.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
