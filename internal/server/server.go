// Package server contains the HTTP handlers and route wiring for the web UI.
package server

import (
	"fmt"
	"time"

	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/middleware"
	"blogly/internal/repository"
	"blogly/internal/service"
	"blogly/internal/sessionstore"
	"blogly/internal/views"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	sessions       *session.Store
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	tagRepo        repository.TagRepository
	userService    *service.UserService
	postService    *service.PostService
	tagService     *service.TagService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var storage fiber.Storage
	if cfg.RedisURL != "" {
		if redisStorage := sessionstore.New(cfg.RedisURL); redisStorage != nil {
			storage = redisStorage
		}
	}

	return NewServerWithDeps(cfg, db, storage)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the DB and session
// storage itself. A nil storage means in-memory sessions.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, storage fiber.Storage) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics("blogly"),
		userRepo:       userRepo,
		postRepo:       postRepo,
		tagRepo:        tagRepo,
	}
	server.userService = service.NewUserService(userRepo)
	server.postService = service.NewPostService(postRepo, userRepo)
	server.tagService = service.NewTagService(tagRepo)

	server.sessions = session.New(session.Config{
		Storage:        storage,
		Expiration:     24 * time.Hour,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	return server, nil
}

// NewApp builds the Fiber application with the template engine, middleware,
// and routes configured.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Blogly",
		Views:   views.Engine(),
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Session cookies are encrypted with the configured secret.
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: s.config.SessionSecret,
	}))

	app.Use(middleware.StructuredLogger())
}

// SetupRoutes registers every route of the site.
func (s *Server) SetupRoutes(app *fiber.App) {
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	app.Get("/", s.Homepage)

	users := app.Group("/users")
	users.Get("/", s.ListUsers)
	users.Get("/new", s.NewUserForm)
	users.Post("/new", s.CreateUser)
	users.Get("/:id", s.ShowUser)
	users.Get("/:id/edit", s.EditUserForm)
	users.Post("/:id/edit", s.UpdateUser)
	users.Post("/:id/delete", s.DeleteUser)
	users.Get("/:id/posts/new", s.NewPostForm)
	users.Post("/:id/posts/new", s.CreatePost)

	posts := app.Group("/posts")
	posts.Get("/:id", s.ShowPost)
	posts.Get("/:id/edit", s.EditPostForm)
	posts.Post("/:id/edit", s.UpdatePost)
	posts.Post("/:id/delete", s.DeletePost)

	tags := app.Group("/tags")
	tags.Get("/", s.ListTags)
	tags.Get("/new", s.NewTagForm)
	tags.Post("/new", s.CreateTag)
	tags.Get("/:id", s.ShowTag)
	tags.Get("/:id/edit", s.EditTagForm)
	tags.Post("/:id/edit", s.UpdateTag)
	tags.Post("/:id/delete", s.DeleteTag)

	// Anything else is a 404 page.
	app.Use(func(c *fiber.Ctx) error {
		return s.renderNotFound(c)
	})
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Homepage renders the five most recent posts.
func (s *Server) Homepage(c *fiber.Ctx) error {
	posts, err := s.postService.RecentPosts(c.UserContext())
	if err != nil {
		return s.handleError(c, err, "/")
	}
	return s.render(c, "homepage", fiber.Map{"Posts": posts})
}
