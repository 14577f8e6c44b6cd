package service

import (
	"context"

	"blogly/internal/models"
	"blogly/internal/repository"
)

// TagService implements tag management policy, including the unique-name rule.
type TagService struct {
	tagRepo repository.TagRepository
}

// TagInput carries the fields submitted by the new-tag and edit-tag forms.
// Posts are attached by id from checkboxes, never by title.
type TagInput struct {
	Name    string
	PostIDs []uint
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

// CreateTag validates the form input and persists the tag with its post
// associations. Tag names must be unique.
func (s *TagService) CreateTag(ctx context.Context, in TagInput) (*models.Tag, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Must provide a tag name.")
	}
	if err := s.checkNameAvailable(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: in.Name}
	if err := s.tagRepo.Create(ctx, tag, in.PostIDs); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag renames the tag and replaces its post associations.
func (s *TagService) UpdateTag(ctx context.Context, id uint, in TagInput) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name == "" {
		return nil, models.NewValidationError("Must provide a tag name.")
	}
	if err := s.checkNameAvailable(ctx, in.Name, id); err != nil {
		return nil, err
	}

	tag.Name = in.Name
	if err := s.tagRepo.Update(ctx, tag, in.PostIDs); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes the tag and every association referencing it. It returns
// the deleted tag for flash messaging.
func (s *TagService) DeleteTag(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return tag, nil
}

// checkNameAvailable fails with a conflict when another tag already uses the
// name. The unique index on tags.name backs this against races.
func (s *TagService) checkNameAvailable(ctx context.Context, name string, selfID uint) error {
	existing, err := s.tagRepo.GetByName(ctx, name)
	if err != nil {
		if models.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return models.NewConflictError("A tag named '" + name + "' already exists.")
	}
	return nil
}
