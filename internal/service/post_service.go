package service

import (
	"context"

	"blogly/internal/models"
	"blogly/internal/repository"
)

// HomepagePostCount is how many recent posts the homepage shows.
const HomepagePostCount = 5

// PostService implements post management policy.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// CreatePostInput carries the fields submitted by the new-post form. Tags are
// attached by id from checkboxes, never by name.
type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
	TagIDs  []uint
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// RecentPosts returns the posts shown on the homepage, newest first.
func (s *PostService) RecentPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.ListRecent(ctx, HomepagePostCount)
}

// ListPosts returns every post, for the tag form post pickers.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

// CreatePost validates the form input and persists the post together with its
// tag associations. The owning user must exist; an unknown tag id fails the
// whole request.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Must provide a title and content.")
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post, in.TagIDs); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits title and content in place. The owner, creation time, and
// tag set are not editable through this path.
func (s *PostService) UpdatePost(ctx context.Context, id uint, title, content string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title == "" || content == "" {
		return nil, models.NewValidationError("Must provide a title and content.")
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and its tag associations, returning the owning
// user's id so the handler can redirect to their page.
func (s *PostService) DeletePost(ctx context.Context, id uint) (uint, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return 0, err
	}
	return post.UserID, nil
}
