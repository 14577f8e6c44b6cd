package models

// Tag is a label that can be attached to any number of posts.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_tag_name" json:"name"`
	// Posts is populated by the repository through the post_tags join.
	Posts []Post `gorm:"-" json:"posts,omitempty"`
}

// PostTag links one post to one tag. Each (post_id, tag_id) pair occurs at
// most once; rows are removed whenever either owner is deleted.
type PostTag struct {
	PostID uint `gorm:"primaryKey" json:"post_id"`
	TagID  uint `gorm:"primaryKey;index:idx_post_tag_tag" json:"tag_id"`
}

// TableName keeps the join table name explicit.
func (PostTag) TableName() string {
	return "post_tags"
}
