package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogly/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListRecent(ctx context.Context, limit int) ([]models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post, tagIDs []uint) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// GetByID returns one post with its owner and tags resolved through the
// post_tags join.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", id).
		Order("tags.name").
		Find(&post.Tags).Error; err != nil {
		return nil, err
	}

	return &post, nil
}

// ListRecent returns the most recently created posts, newest first.
func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// List returns every post, newest first. Used to populate the tag forms.
func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Create inserts the post and its tag associations in one transaction. Every
// submitted tag id must resolve to an existing tag; otherwise nothing is
// committed.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := verifyIDsExist(tx, &models.Tag{}, "Tag", tagIDs); err != nil {
			return err
		}

		if err := tx.Create(post).Error; err != nil {
			return err
		}

		for _, tagID := range dedupeIDs(tagIDs) {
			if err := tx.Create(&models.PostTag{PostID: post.ID, TagID: tagID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update persists title and content only. Owner and creation time are
// immutable.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Select("title", "content").
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		}).Error
}

// Delete removes the post's tag associations and then the post itself, in one
// transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).
			Delete(&models.PostTag{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
}

// verifyIDsExist fails with a validation error when any of the given ids does
// not resolve to a row of the given model. The ids come from form checkboxes,
// so a miss means the row was deleted since the form rendered; the whole
// request fails rather than silently skipping the stale id.
func verifyIDsExist(tx *gorm.DB, model interface{}, resource string, ids []uint) error {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).Where("id IN ?", unique).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(unique)) {
		return models.NewValidationError(fmt.Sprintf("One of the selected %ss no longer exists.", strings.ToLower(resource)))
	}
	return nil
}

// dedupeIDs drops duplicate ids while preserving order.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
