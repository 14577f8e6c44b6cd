package repository

import (
	"context"
	"errors"

	"blogly/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag, postIDs []uint) error
	Update(ctx context.Context, tag *models.Tag, postIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

// tagRepository implements TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// List returns all tags ordered by name.
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&tags).Error
	return tags, err
}

// GetByID returns one tag with its posts resolved through the post_tags join.
func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", id).
		Order("posts.created_at DESC").
		Find(&tag.Posts).Error; err != nil {
		return nil, err
	}

	return &tag, nil
}

// GetByName returns the tag with exactly the given name, or NotFound.
func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", name)
		}
		return nil, err
	}
	return &tag, nil
}

// Create inserts the tag and its post associations in one transaction. Every
// submitted post id must resolve to an existing post.
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag, postIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := verifyIDsExist(tx, &models.Post{}, "Post", postIDs); err != nil {
			return err
		}

		if err := tx.Create(tag).Error; err != nil {
			return err
		}

		for _, postID := range dedupeIDs(postIDs) {
			if err := tx.Create(&models.PostTag{PostID: postID, TagID: tag.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update renames the tag and replaces its post associations in one
// transaction.
func (r *tagRepository) Update(ctx context.Context, tag *models.Tag, postIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := verifyIDsExist(tx, &models.Post{}, "Post", postIDs); err != nil {
			return err
		}

		res := tx.Model(&models.Tag{}).
			Where("id = ?", tag.ID).
			Update("name", tag.Name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Tag", tag.ID)
		}

		if err := tx.Where("tag_id = ?", tag.ID).
			Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		for _, postID := range dedupeIDs(postIDs) {
			if err := tx.Create(&models.PostTag{PostID: postID, TagID: tag.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes every post_tags row referencing the tag and then the tag
// itself, in one transaction.
func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).
			Delete(&models.PostTag{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Tag", id)
		}
		return nil
	})
}
