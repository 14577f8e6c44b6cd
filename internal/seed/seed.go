// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"blogly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users        int
	PostsPerUser int
	Tags         int
	// MaxDays spreads post creation times over the past N days.
	MaxDays int
}

// DefaultOptions is a small but browsable data set.
var DefaultOptions = Options{
	Users:        5,
	PostsPerUser: 3,
	Tags:         8,
	MaxDays:      90,
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildUser constructs an unsaved user with realistic fields.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		ImgURL:    fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser persists a generated user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs an unsaved post for the given user with a realistic
// created_at spread over the recent past.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
		UserID:  user.ID,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost persists a generated post.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateTag persists a tag with a unique generated name.
func (f *Factory) CreateTag() (*models.Tag, error) {
	// Hobby words collide occasionally; suffix with a counter on retry.
	for attempt := 0; attempt < 5; attempt++ {
		name := gofakeit.Hobby()
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d", name, f.rand.Intn(1000))
		}
		tag := &models.Tag{Name: name}
		if err := f.db.Create(tag).Error; err == nil {
			return tag, nil
		}
	}
	return nil, fmt.Errorf("could not generate a unique tag name")
}

// AttachTag links a post to a tag, ignoring an already-existing link.
func (f *Factory) AttachTag(post *models.Post, tag *models.Tag) error {
	link := &models.PostTag{PostID: post.ID, TagID: tag.ID}
	err := f.db.Create(link).Error
	if err != nil && f.db.Where(link).First(&models.PostTag{}).Error == nil {
		return nil
	}
	return err
}

// Run populates the database with a browsable demo data set: users with
// posts, a tag vocabulary, and random post-tag links.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	tags := make([]*models.Tag, 0, opts.Tags)
	for i := 0; i < opts.Tags; i++ {
		tag, err := f.CreateTag()
		if err != nil {
			return err
		}
		tags = append(tags, tag)
	}

	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		for j := 0; j < opts.PostsPerUser; j++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				continue
			}
			for _, tag := range pickTags(f.rand, tags) {
				if err := f.AttachTag(post, tag); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// pickTags selects up to 3 distinct tags.
func pickTags(r *rand.Rand, tags []*models.Tag) []*models.Tag {
	n := r.Intn(4)
	if n > len(tags) {
		n = len(tags)
	}
	perm := r.Perm(len(tags))
	picked := make([]*models.Tag, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, tags[idx])
	}
	return picked
}
