package repository

import (
	"context"
	"testing"

	"blogly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_List_OrderedByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	for _, name := range []string{"zoology", "art", "music"} {
		require.NoError(t, repo.Create(ctx, &models.Tag{Name: name}, nil))
	}

	tags, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "art", tags[0].Name)
	assert.Equal(t, "music", tags[1].Name)
	assert.Equal(t, "zoology", tags[2].Name)
}

func TestTagRepository_UniqueNameEnforced(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "science"}, nil))
	err := repo.Create(ctx, &models.Tag{Name: "science"}, nil)
	assert.Error(t, err, "duplicate tag names are rejected by the unique index")

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTagRepository_GetByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "science"}, nil))

	tag, err := repo.GetByName(ctx, "science")
	require.NoError(t, err)
	assert.Equal(t, "science", tag.Name)

	_, err = repo.GetByName(ctx, "missing")
	assert.True(t, models.IsNotFound(err))
}

func TestTagRepository_GetByID_IncludesPosts(t *testing.T) {
	db := setupTestDB(t)
	tagRepo := NewTagRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	tag := &models.Tag{Name: "science"}
	require.NoError(t, tagRepo.Create(ctx, tag, nil))

	post := &models.Post{Title: "Notes", Content: "engine", UserID: user.ID}
	require.NoError(t, postRepo.Create(ctx, post, []uint{tag.ID}))

	got, err := tagRepo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, "Notes", got.Posts[0].Title)
}

func TestTagRepository_Create_WithPosts(t *testing.T) {
	db := setupTestDB(t)
	tagRepo := NewTagRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	a := &models.Post{Title: "A", Content: "a", UserID: user.ID}
	require.NoError(t, postRepo.Create(ctx, a, nil))
	b := &models.Post{Title: "B", Content: "b", UserID: user.ID}
	require.NoError(t, postRepo.Create(ctx, b, nil))

	tag := &models.Tag{Name: "science"}
	require.NoError(t, tagRepo.Create(ctx, tag, []uint{a.ID, b.ID}))

	got, err := tagRepo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Len(t, got.Posts, 2)
}

func TestTagRepository_Create_UnknownPostFailsWhole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Tag{Name: "science"}, []uint{999})
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTagRepository_Update_ReplacesAssociations(t *testing.T) {
	db := setupTestDB(t)
	tagRepo := NewTagRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	a := &models.Post{Title: "A", Content: "a", UserID: user.ID}
	require.NoError(t, postRepo.Create(ctx, a, nil))
	b := &models.Post{Title: "B", Content: "b", UserID: user.ID}
	require.NoError(t, postRepo.Create(ctx, b, nil))

	tag := &models.Tag{Name: "science"}
	require.NoError(t, tagRepo.Create(ctx, tag, []uint{a.ID}))

	tag.Name = "research"
	require.NoError(t, tagRepo.Update(ctx, tag, []uint{b.ID}))

	got, err := tagRepo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "research", got.Name)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, "B", got.Posts[0].Title)
}

func TestTagRepository_Delete_RemovesEveryAssociation(t *testing.T) {
	db := setupTestDB(t)
	tagRepo := NewTagRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db)

	doomed := &models.Tag{Name: "doomed"}
	require.NoError(t, tagRepo.Create(ctx, doomed, nil))
	survivor := &models.Tag{Name: "survivor"}
	require.NoError(t, tagRepo.Create(ctx, survivor, nil))

	// Several posts use the doomed tag; deletion must remove every link,
	// not just the first.
	for _, title := range []string{"A", "B", "C"} {
		post := &models.Post{Title: title, Content: "c", UserID: user.ID}
		require.NoError(t, postRepo.Create(ctx, post, []uint{doomed.ID, survivor.ID}))
	}

	require.NoError(t, tagRepo.Delete(ctx, doomed.ID))

	_, err := tagRepo.GetByID(ctx, doomed.ID)
	assert.True(t, models.IsNotFound(err))

	var remaining []models.PostTag
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 3)
	for _, link := range remaining {
		assert.Equal(t, survivor.ID, link.TagID, "only the surviving tag's links remain")
	}
}

func TestTagRepository_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)

	err := repo.Delete(context.Background(), 5)
	assert.True(t, models.IsNotFound(err))
}
