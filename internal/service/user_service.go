// Package service contains the domain logic between handlers and repositories.
package service

import (
	"context"

	"blogly/internal/models"
	"blogly/internal/repository"
)

// UserService implements user management policy: required-field validation and
// image URL defaulting.
type UserService struct {
	userRepo repository.UserRepository
}

// UserInput carries the fields submitted by the new-user and edit-user forms.
type UserInput struct {
	FirstName string
	LastName  string
	ImgURL    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser validates the form input and persists a new user. An empty image
// URL is replaced with the default placeholder, never stored empty.
func (s *UserService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	if in.FirstName == "" || in.LastName == "" {
		return nil, models.NewValidationError("Must provide a valid first and last name.")
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		ImgURL:    in.ImgURL,
	}
	if user.ImgURL == "" {
		user.ImgURL = models.DefaultImageURL
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser validates and applies the edit form. Submitting an empty image
// URL resets it to the default placeholder, not to the previous value.
func (s *UserService) UpdateUser(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName == "" || in.LastName == "" {
		return nil, models.NewValidationError("Must provide a valid first and last name.")
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.ImgURL = in.ImgURL
	if user.ImgURL == "" {
		user.ImgURL = models.DefaultImageURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and, by policy, their posts and those posts'
// tag associations. It returns the deleted user for flash messaging.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}
