package service

import (
	"context"
	"testing"

	"blogly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"Empty title", CreatePostInput{UserID: 1, Title: "", Content: "body"}},
		{"Empty content", CreatePostInput{UserID: 1, Title: "t", Content: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)
			postRepo := new(MockPostRepository)
			svc := NewPostService(postRepo, userRepo)

			post, err := svc.CreatePost(context.Background(), tt.input)
			assert.Nil(t, post)
			assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
			postRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestPostService_CreatePost_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(9)).Return(nil, models.NewNotFoundError("User", 9))
	postRepo := new(MockPostRepository)
	svc := NewPostService(postRepo, userRepo)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 9, Title: "t", Content: "c"})
	assert.True(t, models.IsNotFound(err))
	postRepo.AssertNotCalled(t, "Create")
}

func TestPostService_CreatePost_PassesTagIDs(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)
	postRepo := new(MockPostRepository)
	postRepo.On("Create", mock.Anything, mock.Anything, []uint{3, 5}).Return(nil)
	svc := NewPostService(postRepo, userRepo)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  1,
		Title:   "t",
		Content: "c",
		TagIDs:  []uint{3, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.UserID)
	postRepo.AssertExpectations(t)
}

func TestPostService_RecentPosts_UsesHomepageWindow(t *testing.T) {
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	postRepo.On("ListRecent", mock.Anything, HomepagePostCount).Return([]models.Post{}, nil)
	svc := NewPostService(postRepo, userRepo)

	_, err := svc.RecentPosts(context.Background())
	require.NoError(t, err)
	postRepo.AssertExpectations(t)
}

func TestPostService_UpdatePost_Validation(t *testing.T) {
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Post{ID: 1, Title: "old", Content: "old"}, nil)
	svc := NewPostService(postRepo, userRepo)

	_, err := svc.UpdatePost(context.Background(), 1, "", "content")
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	postRepo.AssertNotCalled(t, "Update")
}

func TestPostService_DeletePost_ReturnsOwner(t *testing.T) {
	userRepo := new(MockUserRepository)
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(4)).
		Return(&models.Post{ID: 4, UserID: 2}, nil)
	postRepo.On("Delete", mock.Anything, uint(4)).Return(nil)
	svc := NewPostService(postRepo, userRepo)

	ownerID, err := svc.DeletePost(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint(2), ownerID)
}
